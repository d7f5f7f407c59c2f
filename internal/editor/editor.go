// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the operations a template editor performs on a
// document. Every operation takes a template snapshot and returns a new
// one; the snapshot passed in is never modified. Structural changes
// recompute the validation errors on the returned snapshot.
package editor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"msgstudio/internal/models"
	"msgstudio/internal/slug"
	"msgstudio/internal/validate"
)

// Editor applies edits to template snapshots. The zero value is usable and
// reads the wall clock.
type Editor struct {
	// Now returns the current time. Tests replace it with a fixed clock.
	Now func() time.Time
}

// New creates an editor using the given clock, or time.Now when nil.
func New(now func() time.Time) *Editor {
	return &Editor{Now: now}
}

func (e *Editor) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// NewTemplate returns a fresh draft with default metadata and no sections.
func (e *Editor) NewTemplate() *models.Template {
	return &models.Template{
		ID:              uuid.New(),
		Name:            models.DefaultName,
		Language:        models.DefaultLanguage,
		Category:        models.CategoryMarketing,
		Sections:        models.Sections{},
		Errors:          []string{},
		Status:          models.StatusDraft,
		Version:         1,
		LastEdited:      e.now(),
		ActiveCampaigns: []string{},
		Variables:       map[string]string{},
	}
}

// Meta carries the metadata fields to change; nil fields are left alone.
// Language must already be in canonical form (see models.ParseLanguage).
type Meta struct {
	Name     *string
	Language *string
	Category *models.Category
}

// UpdateMeta changes template metadata. Metadata is not structural, so the
// error list is left as it was.
func (e *Editor) UpdateMeta(t *models.Template, m Meta) *models.Template {
	next := t.Clone()
	if m.Name != nil {
		next.Name = strings.TrimSpace(*m.Name)
	}
	if m.Language != nil {
		next.Language = *m.Language
	}
	if m.Category != nil {
		next.Category = *m.Category
	}
	next.LastEdited = e.now()
	return next
}

// AddSection adds an empty section of the given type. Header, body and
// footer are unique: adding one when it already exists resets the existing
// section in place. Buttons and product sections are appended.
func (e *Editor) AddSection(t *models.Template, typ models.SectionType, format models.HeaderFormat) (*models.Template, error) {
	s, err := models.NewSection(typ, format)
	if err != nil {
		return nil, err
	}

	next := t.Clone()
	existing := next.FindSection(typ)
	switch {
	case isUnique(typ) && existing >= 0:
		next.Sections[existing] = s
	default:
		next.Sections = append(next.Sections, s)
	}
	return e.commit(next), nil
}

// UpdateSection replaces the section at index. An out-of-range index, an
// attempt to turn the body into another kind of section, or a change of type
// that would duplicate a header, body or footer leaves the template unchanged.
func (e *Editor) UpdateSection(t *models.Template, index int, s models.Section) *models.Template {
	if index < 0 || index >= len(t.Sections) || s == nil {
		return t.Clone()
	}
	cur, typ := t.Sections[index].Type(), s.Type()
	if cur == models.SectionBody && typ != models.SectionBody {
		return t.Clone()
	}
	if cur != typ && isUnique(typ) && t.FindSection(typ) >= 0 {
		return t.Clone()
	}

	next := t.Clone()
	next.Sections[index] = models.CloneSection(s)
	return e.commit(next)
}

// RemoveSection deletes the section at index. The body section cannot be
// removed; asking to do so, or passing an out-of-range index, is a no-op.
func (e *Editor) RemoveSection(t *models.Template, index int) *models.Template {
	if index < 0 || index >= len(t.Sections) {
		return t.Clone()
	}
	if t.Sections[index].Type() == models.SectionBody {
		return t.Clone()
	}

	next := t.Clone()
	next.Sections = append(next.Sections[:index], next.Sections[index+1:]...)
	return e.commit(next)
}

// MoveSection moves the section at from so it ends up at index to.
// Out-of-range indexes leave the template unchanged.
func (e *Editor) MoveSection(t *models.Template, from, to int) *models.Template {
	n := len(t.Sections)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return t.Clone()
	}

	next := t.Clone()
	s := next.Sections[from]
	next.Sections = append(next.Sections[:from], next.Sections[from+1:]...)
	next.Sections = append(next.Sections[:to], append(models.Sections{s}, next.Sections[to:]...)...)
	return e.commit(next)
}

// Result summarizes a validation run.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validate recomputes the error list against the current time.
func (e *Editor) Validate(t *models.Template) (*models.Template, Result) {
	next := t.Clone()
	next.Errors = validate.Template(next, e.now())
	return next, Result{
		Valid:   len(next.Errors) == 0,
		Message: strings.Join(next.Errors, ", "),
	}
}

// Save bumps the version and derives the provider name from the display
// name. A name with nothing usable in it (non-Latin scripts, punctuation
// only) falls back to "template_" plus the start of the ID. Saving is not an
// edit, so the edit timestamp is kept.
func (e *Editor) Save(t *models.Template) *models.Template {
	next := t.Clone()
	next.Version++
	next.ProviderName = slug.Generate(next.Name)
	if next.ProviderName == "" {
		next.ProviderName = fallbackProviderName(next.ID)
	}
	return next
}

// fallbackProviderName names a template by the first eight hex digits of id.
func fallbackProviderName(id uuid.UUID) string {
	return "template_" + strings.ReplaceAll(id.String(), "-", "")[:8]
}

// Restore copies the content of a saved snapshot (name, language, category
// and sections) onto t. Version, status, campaigns and preview values stay
// as they are on t. Restoring is an edit.
func (e *Editor) Restore(t, snapshot *models.Template) *models.Template {
	src := snapshot.Clone()
	next := t.Clone()
	next.Name = src.Name
	next.Language = src.Language
	next.Category = src.Category
	next.Sections = src.Sections
	return e.commit(next)
}

// SetStatus moves the template to status. Publishing is handled outside
// this package; this is how its outcome is recorded on the draft.
func (e *Editor) SetStatus(t *models.Template, status models.Status) *models.Template {
	next := t.Clone()
	next.Status = status
	return next
}

// SetActiveCampaigns records which campaigns currently send this template.
func (e *Editor) SetActiveCampaigns(t *models.Template, campaigns []string) *models.Template {
	next := t.Clone()
	next.ActiveCampaigns = append([]string{}, campaigns...)
	return next
}

// commit recomputes errors for an edited snapshot and stamps the edit
// time. Errors are computed before the stamp, so the live edit lock
// reflects the edit before this one.
func (e *Editor) commit(next *models.Template) *models.Template {
	now := e.now()
	next.Errors = validate.Template(next, now)
	next.LastEdited = now
	return next
}

func isUnique(typ models.SectionType) bool {
	return typ == models.SectionHeader || typ == models.SectionBody || typ == models.SectionFooter
}
