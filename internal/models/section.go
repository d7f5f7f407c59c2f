// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// SectionType identifies which structural block a section is.
type SectionType string

const (
	SectionHeader  SectionType = "header"
	SectionBody    SectionType = "body"
	SectionFooter  SectionType = "footer"
	SectionButtons SectionType = "buttons"
	SectionProduct SectionType = "product"
)

// HeaderFormat selects between a text header and a media header.
type HeaderFormat string

const (
	HeaderText  HeaderFormat = "text"
	HeaderImage HeaderFormat = "image"
	HeaderVideo HeaderFormat = "video"
)

// IsMedia reports whether the header carries a URL instead of text.
func (f HeaderFormat) IsMedia() bool {
	return f == HeaderImage || f == HeaderVideo
}

// Valid reports whether f is a known header format.
func (f HeaderFormat) Valid() bool {
	return f == HeaderText || f.IsMedia()
}

// ButtonType is the action a button performs.
type ButtonType string

const (
	ButtonURL        ButtonType = "url"
	ButtonPhone      ButtonType = "phone"
	ButtonQuickReply ButtonType = "quick_reply"
)

// Valid reports whether t is a known button type.
func (t ButtonType) Valid() bool {
	switch t {
	case ButtonURL, ButtonPhone, ButtonQuickReply:
		return true
	}
	return false
}

// RecommendationType controls how a product section picks its product.
type RecommendationType string

const (
	RecommendStatic         RecommendationType = "static"
	RecommendBestSelling    RecommendationType = "best_selling"
	RecommendRecentlyViewed RecommendationType = "recently_viewed"
	RecommendRecommended    RecommendationType = "recommended"
)

// Valid reports whether r is a known recommendation type.
func (r RecommendationType) Valid() bool {
	switch r {
	case RecommendStatic, RecommendBestSelling, RecommendRecentlyViewed, RecommendRecommended:
		return true
	}
	return false
}

// Section is one block of a template. The set of implementations is closed:
// HeaderSection, BodySection, FooterSection, ButtonsSection and ProductSection.
type Section interface {
	Type() SectionType
	isSection()
}

// HeaderSection is the optional top block: a short text or a media URL.
type HeaderSection struct {
	Format HeaderFormat `json:"format"`
	Text   string       `json:"text,omitempty"`
	URL    string       `json:"url,omitempty"`
}

// BodySection is the required main message text.
type BodySection struct {
	Text string `json:"text"`
}

// FooterSection is a short optional line below the body.
type FooterSection struct {
	Text string `json:"text"`
}

// Button is a single call-to-action. URL is only used by url buttons and
// PhoneNumber only by phone buttons.
type Button struct {
	Type        ButtonType `json:"type"`
	Text        string     `json:"text"`
	URL         string     `json:"url,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
}

// ButtonsSection holds the call-to-action buttons in display order.
type ButtonsSection struct {
	Buttons []Button `json:"buttons"`
}

// Product describes a fixed product for static product sections.
type Product struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ProductSection shows a product card. Product is only set for static
// recommendations; other kinds are resolved at send time.
type ProductSection struct {
	RecommendationType RecommendationType `json:"recommendationType"`
	Product            *Product           `json:"product,omitempty"`
}

func (HeaderSection) Type() SectionType  { return SectionHeader }
func (BodySection) Type() SectionType    { return SectionBody }
func (FooterSection) Type() SectionType  { return SectionFooter }
func (ButtonsSection) Type() SectionType { return SectionButtons }
func (ProductSection) Type() SectionType { return SectionProduct }

func (HeaderSection) isSection()  {}
func (BodySection) isSection()    {}
func (FooterSection) isSection()  {}
func (ButtonsSection) isSection() {}
func (ProductSection) isSection() {}

// NewSection returns a section of the given type with empty defaults. The
// format only applies to headers and defaults to text.
func NewSection(typ SectionType, format HeaderFormat) (Section, error) {
	switch typ {
	case SectionHeader:
		if format == "" {
			format = HeaderText
		}
		if !format.Valid() {
			return nil, fmt.Errorf("unknown header format %q", format)
		}
		return HeaderSection{Format: format}, nil
	case SectionBody:
		return BodySection{}, nil
	case SectionFooter:
		return FooterSection{}, nil
	case SectionButtons:
		return ButtonsSection{Buttons: []Button{}}, nil
	case SectionProduct:
		return ProductSection{RecommendationType: RecommendStatic, Product: &Product{}}, nil
	}
	return nil, fmt.Errorf("unknown section type %q", typ)
}

// CloneSection returns a copy of s that shares no mutable state with it.
func CloneSection(s Section) Section {
	switch v := s.(type) {
	case ButtonsSection:
		v.Buttons = slices.Clone(v.Buttons)
		return v
	case ProductSection:
		if v.Product != nil {
			p := *v.Product
			v.Product = &p
		}
		return v
	}
	return s
}

// --- JSON encoding ---

// Sections is an ordered list of sections. It encodes each element with a
// "type" discriminator so the list can be decoded back into concrete types.
type Sections []Section

func marshalTagged(typ SectionType, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	tag, _ := json.Marshal(typ)
	buf.Write(tag)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// The alias types drop the MarshalJSON method so marshalTagged does not recurse.
type (
	headerAlias  HeaderSection
	bodyAlias    BodySection
	footerAlias  FooterSection
	buttonsAlias ButtonsSection
	productAlias ProductSection
)

func (s HeaderSection) MarshalJSON() ([]byte, error) {
	return marshalTagged(SectionHeader, headerAlias(s))
}

func (s BodySection) MarshalJSON() ([]byte, error) {
	return marshalTagged(SectionBody, bodyAlias(s))
}

func (s FooterSection) MarshalJSON() ([]byte, error) {
	return marshalTagged(SectionFooter, footerAlias(s))
}

func (s ButtonsSection) MarshalJSON() ([]byte, error) {
	if s.Buttons == nil {
		s.Buttons = []Button{}
	}
	return marshalTagged(SectionButtons, buttonsAlias(s))
}

func (s ProductSection) MarshalJSON() ([]byte, error) {
	return marshalTagged(SectionProduct, productAlias(s))
}

// DecodeSection decodes one JSON object carrying a "type" discriminator.
// Missing optional fields decode to their zero values.
func DecodeSection(data []byte) (Section, error) {
	var head struct {
		Type SectionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode section: %w", err)
	}

	var (
		s   Section
		err error
	)
	switch head.Type {
	case SectionHeader:
		var v headerAlias
		err = json.Unmarshal(data, &v)
		if v.Format == "" {
			v.Format = HeaderText
		}
		if err == nil && !v.Format.Valid() {
			return nil, fmt.Errorf("decode header section: unknown format %q", v.Format)
		}
		s = HeaderSection(v)
	case SectionBody:
		var v bodyAlias
		err = json.Unmarshal(data, &v)
		s = BodySection(v)
	case SectionFooter:
		var v footerAlias
		err = json.Unmarshal(data, &v)
		s = FooterSection(v)
	case SectionButtons:
		var v buttonsAlias
		err = json.Unmarshal(data, &v)
		if v.Buttons == nil {
			v.Buttons = []Button{}
		}
		for i, b := range v.Buttons {
			if err == nil && !b.Type.Valid() {
				return nil, fmt.Errorf("decode buttons section: button %d: unknown type %q", i+1, b.Type)
			}
		}
		s = ButtonsSection(v)
	case SectionProduct:
		var v productAlias
		err = json.Unmarshal(data, &v)
		if v.RecommendationType == "" {
			v.RecommendationType = RecommendStatic
		}
		if err == nil && !v.RecommendationType.Valid() {
			return nil, fmt.Errorf("decode product section: unknown recommendation type %q", v.RecommendationType)
		}
		s = ProductSection(v)
	default:
		return nil, fmt.Errorf("decode section: unknown type %q", head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s section: %w", head.Type, err)
	}
	return s, nil
}

// UnmarshalJSON decodes a JSON array of tagged section objects.
func (ss *Sections) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode sections: %w", err)
	}
	out := make(Sections, 0, len(raw))
	for i, r := range raw {
		s, err := DecodeSection(r)
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		out = append(out, s)
	}
	*ss = out
	return nil
}

// MarshalJSON encodes a nil list as an empty array.
func (ss Sections) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Section(ss))
}
