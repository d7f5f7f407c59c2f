// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns display names into the provider-safe template names
// messaging providers require: lowercase ASCII letters, digits and underscores.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen is the longest name providers accept.
const MaxLen = 512

var (
	// separators are turned into underscores.
	separators = regexp.MustCompile(`[\s\-./]+`)
	// disallowed matches anything that isn't a letter, digit, or underscore.
	disallowed = regexp.MustCompile(`[^a-z0-9_]`)
	// multipleUnderscores collapses runs of underscores into one.
	multipleUnderscores = regexp.MustCompile(`_{2,}`)
)

// Generate creates a provider-safe template name from the given string.
// Accents are folded to their base letter.
// Example: "Order Shipped – Café 2026" → "order_shipped_cafe_2026"
func Generate(s string) string {
	result := foldAccents(strings.ToLower(strings.TrimSpace(s)))
	result = separators.ReplaceAllString(result, "_")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleUnderscores.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")
	if len(result) > MaxLen {
		result = strings.TrimRight(result[:MaxLen], "_")
	}
	return result
}

// foldAccents decomposes s and drops combining marks, so "é" becomes "e".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
