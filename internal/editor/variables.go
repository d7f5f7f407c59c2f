// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"

	"msgstudio/internal/models"
	"msgstudio/internal/placeholder"
)

// Preview value length limits. Name-like variables get the shorter one.
const (
	maxNameValueLen  = 25
	maxOtherValueLen = 100
)

// Variable is one row of the variable editor.
type Variable struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Fallback  string `json:"fallback"`
	MaxLength int    `json:"max_length"`
	Error     string `json:"error,omitempty"`
}

// MaxLength returns the longest preview value accepted for a variable.
func MaxLength(name string) int {
	if strings.Contains(name, "name") {
		return maxNameValueLen
	}
	return maxOtherValueLen
}

// textFields returns the section text the variable editor scans: text
// headers, body and footer, in section order.
func textFields(t *models.Template) []string {
	var texts []string
	for _, s := range t.Sections {
		switch v := s.(type) {
		case models.HeaderSection:
			if v.Format == models.HeaderText {
				texts = append(texts, v.Text)
			}
		case models.BodySection:
			texts = append(texts, v.Text)
		case models.FooterSection:
			texts = append(texts, v.Text)
		}
	}
	return texts
}

// Variables lists the placeholders found in the template's text sections
// with their current preview value, fallback and length check.
func Variables(t *models.Template) []Variable {
	names := placeholder.Collect(textFields(t)...)
	vars := make([]Variable, 0, len(names))
	for _, name := range names {
		v := Variable{
			Name:      name,
			Value:     t.Variables[name],
			Fallback:  t.Fallbacks[name],
			MaxLength: MaxLength(name),
		}
		if utf8.RuneCountInString(v.Value) > v.MaxLength {
			v.Error = fmt.Sprintf("Value exceeds maximum length of %d characters", v.MaxLength)
		}
		vars = append(vars, v)
	}
	return vars
}

// EffectiveValues is the map preview substitution uses: each variable's
// value, or its fallback when the value is empty. Variables whose value is
// too long are left out, so their placeholders render literally.
func EffectiveValues(t *models.Template) map[string]string {
	out := make(map[string]string)
	for _, v := range Variables(t) {
		if v.Error != "" {
			continue
		}
		if v.Value != "" {
			out[v.Name] = v.Value
		} else {
			out[v.Name] = v.Fallback
		}
	}
	return out
}

// SetVariables merges preview values and fallbacks into the template.
// Preview data is not template content, so the edit time is unchanged.
func (e *Editor) SetVariables(t *models.Template, values, fallbacks map[string]string) *models.Template {
	next := t.Clone()
	if next.Variables == nil {
		next.Variables = make(map[string]string, len(values))
	}
	maps.Copy(next.Variables, values)
	if len(fallbacks) > 0 {
		if next.Fallbacks == nil {
			next.Fallbacks = make(map[string]string, len(fallbacks))
		}
		maps.Copy(next.Fallbacks, fallbacks)
	}
	return next
}
