// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the provider category a message template is submitted under.
type Category string

const (
	CategoryMarketing       Category = "marketing"
	CategoryUtility         Category = "utility"
	CategoryAuthentication  Category = "authentication"
	CategoryCustomerSupport Category = "customer_support"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMarketing, CategoryUtility, CategoryAuthentication, CategoryCustomerSupport:
		return true
	}
	return false
}

// Status is the lifecycle state of a template.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusLive     Status = "live"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusLive:
		return true
	}
	return false
}

// Label returns the status formatted for display, e.g. "Live".
func (s Status) Label() string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.English).String(string(s))
}

// Defaults applied to a freshly created template.
const (
	DefaultName     = "New Template"
	DefaultLanguage = "en_US"
)

// Template is a structured messaging template: an ordered list of sections
// plus the metadata a provider needs to review it. Errors is derived by the
// validator and is never edited by hand.
type Template struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	ProviderName    string            `json:"provider_name,omitempty"`
	Language        string            `json:"language"`
	Category        Category          `json:"category"`
	Sections        Sections          `json:"sections"`
	Errors          []string          `json:"errors"`
	Status          Status            `json:"status"`
	Version         int               `json:"version"`
	LastEdited      time.Time         `json:"last_edited"`
	ActiveCampaigns []string          `json:"active_campaigns"`
	Variables       map[string]string `json:"variables"`
	Fallbacks       map[string]string `json:"fallbacks,omitempty"`
}

// Clone returns a deep copy of the template. Editor operations never touch
// the snapshot they receive; they work on a clone.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	c := *t
	c.Sections = make(Sections, len(t.Sections))
	for i, s := range t.Sections {
		c.Sections[i] = CloneSection(s)
	}
	c.Errors = slices.Clone(t.Errors)
	c.ActiveCampaigns = slices.Clone(t.ActiveCampaigns)
	c.Variables = maps.Clone(t.Variables)
	c.Fallbacks = maps.Clone(t.Fallbacks)
	return &c
}

// FindSection returns the index of the first section of the given type,
// or -1 when the template has none.
func (t *Template) FindSection(typ SectionType) int {
	for i, s := range t.Sections {
		if s.Type() == typ {
			return i
		}
	}
	return -1
}

// Body returns the first body section, if any.
func (t *Template) Body() (BodySection, bool) {
	if i := t.FindSection(SectionBody); i >= 0 {
		return t.Sections[i].(BodySection), true
	}
	return BodySection{}, false
}

// Header returns the first header section, if any.
func (t *Template) Header() (HeaderSection, bool) {
	if i := t.FindSection(SectionHeader); i >= 0 {
		return t.Sections[i].(HeaderSection), true
	}
	return HeaderSection{}, false
}

// Footer returns the first footer section, if any.
func (t *Template) Footer() (FooterSection, bool) {
	if i := t.FindSection(SectionFooter); i >= 0 {
		return t.Sections[i].(FooterSection), true
	}
	return FooterSection{}, false
}

// Buttons returns the first buttons section, if any.
func (t *Template) Buttons() (ButtonsSection, bool) {
	if i := t.FindSection(SectionButtons); i >= 0 {
		return t.Sections[i].(ButtonsSection), true
	}
	return ButtonsSection{}, false
}
