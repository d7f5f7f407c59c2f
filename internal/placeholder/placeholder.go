// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package placeholder implements the {{name}} mini-language used in template
// text: finding placeholders, filling them for preview, and rewriting named
// placeholders into the numbered form some providers require.
package placeholder

import (
	"regexp"
	"strconv"
)

var (
	// token matches "{{", one or more characters other than "}", then "}}".
	// The captured name is taken literally, whitespace included.
	token = regexp.MustCompile(`\{\{([^}]+)\}\}`)

	// validName is the identifier rule every placeholder name must follow.
	validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// Extract returns the distinct placeholder names in text, in order of first
// occurrence. Empty text yields an empty result.
func Extract(text string) []string {
	return Collect(text)
}

// Collect is Extract over several text fields at once: the distinct names
// across all of them, ordered by first occurrence scanning the fields in turn.
func Collect(texts ...string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, m := range token.FindAllStringSubmatch(text, -1) {
			if name := m[1]; !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// ValidName reports whether name starts with a letter and contains only
// letters, digits and underscores.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// Substitute replaces every {{name}} in text with values[name]. A missing
// or empty value leaves the token as written. Replacement values are not
// scanned again.
func Substitute(text string, values map[string]string) string {
	if text == "" {
		return ""
	}
	return token.ReplaceAllStringFunc(text, func(match string) string {
		if v := values[nameOf(match)]; v != "" {
			return v
		}
		return match
	})
}

// ConvertToNumbered rewrites named placeholders as {{1}}, {{2}}, ... in
// first-occurrence order; repeated names keep their number. The returned map
// is keyed by the number and holds the value found under the original name.
// Names without an entry in values get no entry in the result. Numbering
// starts at 1 on every call.
func ConvertToNumbered(text string, values map[string]string) (string, map[string]string) {
	names := Extract(text)
	index := make(map[string]string, len(names))
	numbered := make(map[string]string, len(names))
	for i, name := range names {
		n := strconv.Itoa(i + 1)
		index[name] = n
		if v, ok := values[name]; ok {
			numbered[n] = v
		}
	}

	converted := token.ReplaceAllStringFunc(text, func(match string) string {
		return "{{" + index[nameOf(match)] + "}}"
	})
	return converted, numbered
}

// nameOf strips the surrounding braces from a matched token.
func nameOf(match string) string {
	return match[2 : len(match)-2]
}
