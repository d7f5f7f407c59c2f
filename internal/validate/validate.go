// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package validate checks a template against the messaging provider's rules
// and reports every violation as a user-facing message.
package validate

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"msgstudio/internal/models"
	"msgstudio/internal/placeholder"
)

// Provider limits.
const (
	MaxBodyLen         = 1024
	MaxFooterLen       = 60
	MaxHeaderLen       = 60
	MaxButtons         = 3
	MaxHeaderVariables = 1
	MaxVariables       = 10

	// MaxMediaURLLen is a rough stand-in for the media size limits: the URL
	// length is checked, not the file behind it.
	MaxMediaURLLen = 1000

	// EditLockWindow is how long a live template stays locked after an edit.
	EditLockWindow = 24 * time.Hour
)

// Messages that do not depend on the section being checked.
const (
	MsgMissingBody      = "Template must include a body section"
	MsgEmptyBody        = "Body text cannot be empty"
	MsgBodyTooLong      = "Body text exceeds 1024 character limit"
	MsgFooterTooLong    = "Footer text exceeds 60 character limit"
	MsgHeaderTooLong    = "Header text exceeds 60 character limit"
	MsgTooManyButtons   = "Maximum 3 buttons allowed"
	MsgMissingMediaURL  = "Media URL is required for header"
	MsgImageTooLarge    = "Header image may exceed the 2MB size limit"
	MsgVideoTooLarge    = "Header video may exceed the 16MB size limit"
	MsgHeaderVariables  = "Header can contain at most 1 variable"
	MsgTooManyVariables = "Template can contain at most 10 variables"
	MsgLiveEditLocked   = "Live templates can only be edited once every 24 hours"
)

// ButtonTextMsg is reported when button i (1-based) has no label.
func ButtonTextMsg(i int) string {
	return fmt.Sprintf("Button %d text cannot be empty", i)
}

// ButtonURLMsg is reported when url button i (1-based) has no URL.
func ButtonURLMsg(i int) string {
	return fmt.Sprintf("Button %d URL cannot be empty", i)
}

// ButtonPhoneMsg is reported when phone button i (1-based) has no number.
func ButtonPhoneMsg(i int) string {
	return fmt.Sprintf("Button %d phone number cannot be empty", i)
}

// InvalidNameMsg is reported once per placeholder name that breaks the
// identifier rule.
func InvalidNameMsg(name string) string {
	return fmt.Sprintf("Invalid variable name %q: must start with a letter and contain only letters, numbers, and underscores", name)
}

// Template runs every rule against t and returns the violations in rule
// order. All rules run even when earlier ones fail, and the same message may
// appear more than once. now is the instant the live edit lock is checked
// against. A nil template is treated as one without sections.
func Template(t *models.Template, now time.Time) []string {
	errs := make([]string, 0)
	if t == nil {
		t = &models.Template{}
	}

	// Body presence and content.
	body, hasBody := t.Body()
	if !hasBody {
		errs = append(errs, MsgMissingBody)
	} else if strings.TrimSpace(body.Text) == "" {
		errs = append(errs, MsgEmptyBody)
	}

	// Character limits, section by section.
	for _, s := range t.Sections {
		switch v := s.(type) {
		case models.BodySection:
			if runeLen(v.Text) > MaxBodyLen {
				errs = append(errs, MsgBodyTooLong)
			}
		case models.FooterSection:
			if runeLen(v.Text) > MaxFooterLen {
				errs = append(errs, MsgFooterTooLong)
			}
		case models.HeaderSection:
			if v.Format == models.HeaderText && runeLen(v.Text) > MaxHeaderLen {
				errs = append(errs, MsgHeaderTooLong)
			}
		}
	}

	errs = append(errs, checkButtons(t)...)
	errs = append(errs, checkMedia(t)...)
	errs = append(errs, checkPlaceholders(t)...)

	if LiveEditLocked(t, now) {
		errs = append(errs, MsgLiveEditLocked)
	}

	return errs
}

// LiveEditLocked reports whether t is live and was edited less than
// EditLockWindow before now.
func LiveEditLocked(t *models.Template, now time.Time) bool {
	return t.Status == models.StatusLive && now.Sub(t.LastEdited) < EditLockWindow
}

func checkButtons(t *models.Template) []string {
	section, ok := t.Buttons()
	if !ok {
		return nil
	}

	var errs []string
	if len(section.Buttons) > MaxButtons {
		errs = append(errs, MsgTooManyButtons)
	}
	for i, b := range section.Buttons {
		n := i + 1
		if strings.TrimSpace(b.Text) == "" {
			errs = append(errs, ButtonTextMsg(n))
		}
		if b.Type == models.ButtonURL && strings.TrimSpace(b.URL) == "" {
			errs = append(errs, ButtonURLMsg(n))
		}
		if b.Type == models.ButtonPhone && strings.TrimSpace(b.PhoneNumber) == "" {
			errs = append(errs, ButtonPhoneMsg(n))
		}
	}
	return errs
}

func checkMedia(t *models.Template) []string {
	var errs []string
	for _, s := range t.Sections {
		h, ok := s.(models.HeaderSection)
		if !ok || !h.Format.IsMedia() {
			continue
		}
		switch {
		case strings.TrimSpace(h.URL) == "":
			errs = append(errs, MsgMissingMediaURL)
		case len(h.URL) > MaxMediaURLLen && h.Format == models.HeaderImage:
			errs = append(errs, MsgImageTooLarge)
		case len(h.URL) > MaxMediaURLLen:
			errs = append(errs, MsgVideoTooLarge)
		}
	}
	return errs
}

// checkPlaceholders enforces the per-header and per-template variable
// counts and the naming rule.
func checkPlaceholders(t *models.Template) []string {
	var (
		errs     []string
		all      []string // every field, in section order
		combined []string // body, footer and buttons only
	)
	for _, s := range t.Sections {
		switch v := s.(type) {
		case models.HeaderSection:
			if v.Format != models.HeaderText {
				continue
			}
			all = append(all, v.Text)
			if len(placeholder.Extract(v.Text)) > MaxHeaderVariables {
				errs = append(errs, MsgHeaderVariables)
			}
		case models.BodySection:
			all = append(all, v.Text)
			combined = append(combined, v.Text)
		case models.FooterSection:
			all = append(all, v.Text)
			combined = append(combined, v.Text)
		case models.ButtonsSection:
			for _, b := range v.Buttons {
				all = append(all, b.Text, b.URL)
				combined = append(combined, b.Text, b.URL)
			}
		}
	}

	if len(placeholder.Collect(combined...)) > MaxVariables {
		errs = append(errs, MsgTooManyVariables)
	}
	for _, name := range placeholder.Collect(all...) {
		if !placeholder.ValidName(name) {
			errs = append(errs, InvalidNameMsg(name))
		}
	}
	return errs
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
