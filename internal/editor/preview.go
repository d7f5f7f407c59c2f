// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"fmt"
	"slices"

	"msgstudio/internal/models"
	"msgstudio/internal/placeholder"
)

// PlaceholderImageURL stands in for an image header that has no URL yet.
const PlaceholderImageURL = "https://placehold.co/600x400?text=Header+Image"

// PreviewHeader is the header as the recipient would see it.
type PreviewHeader struct {
	Format models.HeaderFormat `json:"format"`
	Text   string              `json:"text,omitempty"`
	URL    string              `json:"url,omitempty"`
}

// Preview is the template with preview values filled in. Buttons are shown
// as written.
type Preview struct {
	Header    *PreviewHeader         `json:"header,omitempty"`
	Body      *string                `json:"body,omitempty"`
	Footer    *string                `json:"footer,omitempty"`
	Buttons   []models.Button        `json:"buttons,omitempty"`
	Product   *models.ProductSection `json:"product,omitempty"`
	Variables []string               `json:"variables"`
	Empty     bool                   `json:"empty"`
}

// Render builds the preview of t using its effective variable values.
func Render(t *models.Template) Preview {
	values := EffectiveValues(t)
	p := Preview{
		Variables: placeholder.Collect(textFields(t)...),
		Empty:     len(t.Sections) == 0,
	}
	if p.Variables == nil {
		p.Variables = []string{}
	}

	if h, ok := t.Header(); ok {
		ph := &PreviewHeader{Format: h.Format}
		switch h.Format {
		case models.HeaderText:
			ph.Text = placeholder.Substitute(h.Text, values)
		case models.HeaderImage:
			ph.URL = h.URL
			if ph.URL == "" {
				ph.URL = PlaceholderImageURL
			}
		default:
			ph.URL = h.URL
		}
		p.Header = ph
	}
	if b, ok := t.Body(); ok {
		text := placeholder.Substitute(b.Text, values)
		p.Body = &text
	}
	if f, ok := t.Footer(); ok {
		text := placeholder.Substitute(f.Text, values)
		p.Footer = &text
	}
	if bs, ok := t.Buttons(); ok && len(bs.Buttons) > 0 {
		p.Buttons = slices.Clone(bs.Buttons)
	}
	if i := t.FindSection(models.SectionProduct); i >= 0 {
		ps := models.CloneSection(t.Sections[i]).(models.ProductSection)
		p.Product = &ps
	}
	return p
}

// NumberedField is one text field rewritten with numbered placeholders.
// Numbering restarts at 1 in every field.
type NumberedField struct {
	Field  string            `json:"field"`
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

// Numbered converts each text field of t to numbered placeholders using the
// effective preview values. Text fields always appear; button fields only
// when they contain placeholders.
func Numbered(t *models.Template) []NumberedField {
	values := EffectiveValues(t)
	var fields []NumberedField
	add := func(field, text string) {
		converted, numbered := placeholder.ConvertToNumbered(text, values)
		fields = append(fields, NumberedField{Field: field, Text: converted, Values: numbered})
	}

	if h, ok := t.Header(); ok && h.Format == models.HeaderText {
		add("header", h.Text)
	}
	if b, ok := t.Body(); ok {
		add("body", b.Text)
	}
	if f, ok := t.Footer(); ok {
		add("footer", f.Text)
	}
	if bs, ok := t.Buttons(); ok {
		for i, b := range bs.Buttons {
			if len(placeholder.Extract(b.Text)) > 0 {
				add(fmt.Sprintf("button_%d_text", i+1), b.Text)
			}
			if len(placeholder.Extract(b.URL)) > 0 {
				add(fmt.Sprintf("button_%d_url", i+1), b.URL)
			}
		}
	}
	return fields
}
