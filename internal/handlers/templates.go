// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the template editor API.
// Handlers load a draft, apply one editor operation, store the result and
// answer with JSON.
package handlers

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"msgstudio/internal/editor"
	"msgstudio/internal/models"
	"msgstudio/internal/render"
)

// DraftStore is the storage the handlers need. *drafts.Store implements it.
type DraftStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Template, error)
	Put(ctx context.Context, t *models.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]uuid.UUID, error)
	AddRevision(ctx context.Context, rev models.Revision) error
	Revisions(ctx context.Context, id uuid.UUID) ([]models.Revision, error)
}

// Templates groups the draft template handlers and their dependencies.
type Templates struct {
	drafts   DraftStore
	editor   *editor.Editor
	renderer *render.Renderer
}

// now reads the editor's clock so revision timestamps agree with edits.
func (h *Templates) now() time.Time {
	if h.editor.Now != nil {
		return h.editor.Now()
	}
	return time.Now()
}

// NewTemplates creates the template handler group.
func NewTemplates(drafts DraftStore, ed *editor.Editor, rn *render.Renderer) *Templates {
	return &Templates{drafts: drafts, editor: ed, renderer: rn}
}

// templateResponse is a draft as returned by the API.
type templateResponse struct {
	*models.Template
	StatusLabel string `json:"status_label"`
}

func newTemplateResponse(t *models.Template) templateResponse {
	return templateResponse{Template: t, StatusLabel: t.Status.Label()}
}

// templateSummary is one row of the draft list.
type templateSummary struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    models.Category `json:"category"`
	Status      models.Status   `json:"status"`
	StatusLabel string          `json:"status_label"`
	Version     int             `json:"version"`
	LastEdited  time.Time       `json:"last_edited"`
	ErrorCount  int             `json:"error_count"`
}

// List returns a summary of every stored draft, most recently edited first.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.drafts.List(r.Context())
	if err != nil {
		slog.Error("list drafts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list templates.")
		return
	}

	out := make([]templateSummary, 0, len(ids))
	for _, id := range ids {
		t, err := h.drafts.Get(r.Context(), id)
		if err != nil {
			slog.Warn("skipping unreadable draft", "id", id, "error", err)
			continue
		}
		if t == nil {
			// Expired between List and Get.
			continue
		}
		out = append(out, templateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Category:    t.Category,
			Status:      t.Status,
			StatusLabel: t.Status.Label(),
			Version:     t.Version,
			LastEdited:  t.LastEdited,
			ErrorCount:  len(t.Errors),
		})
	}
	slices.SortFunc(out, func(a, b templateSummary) int {
		return cmp.Or(b.LastEdited.Compare(a.LastEdited), cmp.Compare(a.Name, b.Name))
	})

	writeJSON(w, http.StatusOK, out)
}

// Create starts a new draft. The body is optional and may set name,
// language and category.
func (h *Templates) Create(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	meta, msg := validateMeta(req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	t := h.editor.NewTemplate()
	if meta != (editor.Meta{}) {
		t = h.editor.UpdateMeta(t, meta)
	}
	if !h.store(w, r, t) {
		return
	}
	slog.Info("draft created", "id", t.ID, "name", t.Name)
	writeJSON(w, http.StatusCreated, newTemplateResponse(t))
}

// Get returns a draft.
func (h *Templates) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newTemplateResponse(t))
}

// Delete discards a draft.
func (h *Templates) Delete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.drafts.Delete(r.Context(), t.ID); err != nil {
		slog.Error("delete draft failed", "id", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete template.")
		return
	}
	slog.Info("draft deleted", "id", t.ID)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateMeta changes name, language or category.
func (h *Templates) UpdateMeta(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req metaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	meta, msg := validateMeta(req)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	h.respond(w, r, h.editor.UpdateMeta(t, meta))
}

// addSectionRequest is the body of AddSection.
type addSectionRequest struct {
	Type   models.SectionType  `json:"type"`
	Format models.HeaderFormat `json:"format"`
}

// AddSection adds an empty section, or resets an existing unique one.
func (h *Templates) AddSection(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req addSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	next, err := h.editor.AddSection(t, req.Type, req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, next)
}

// UpdateSection replaces the section at {idx} with the section in the body.
func (h *Templates) UpdateSection(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	idx, ok := sectionIndex(w, r, t)
	if !ok {
		return
	}
	data, ok := readBody(w, r)
	if !ok {
		return
	}
	s, err := models.DecodeSection(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid section: "+err.Error())
		return
	}
	h.respond(w, r, h.editor.UpdateSection(t, idx, s))
}

// RemoveSection deletes the section at {idx}. Removing the body is
// silently refused.
func (h *Templates) RemoveSection(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	idx, ok := sectionIndex(w, r, t)
	if !ok {
		return
	}
	h.respond(w, r, h.editor.RemoveSection(t, idx))
}

// moveRequest is the body of MoveSection.
type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveSection reorders sections.
func (h *Templates) MoveSection(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n := len(t.Sections)
	if req.From < 0 || req.From >= n || req.To < 0 || req.To >= n {
		writeError(w, http.StatusBadRequest, "Section index out of range.")
		return
	}
	h.respond(w, r, h.editor.MoveSection(t, req.From, req.To))
}

// validateResponse is the body returned by Validate.
type validateResponse struct {
	editor.Result
	Template templateResponse `json:"template"`
}

// Validate recomputes the draft's errors and reports the outcome.
func (h *Templates) Validate(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	next, res := h.editor.Validate(t)
	if !h.store(w, r, next) {
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Result: res, Template: newTemplateResponse(next)})
}

// Variables lists the variable editor rows.
func (h *Templates) Variables(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, editor.Variables(t))
}

// variablesRequest is the body of SetVariables.
type variablesRequest struct {
	Values    map[string]string `json:"values"`
	Fallbacks map[string]string `json:"fallbacks"`
}

// SetVariables merges preview values and fallbacks and returns the
// updated variable rows.
func (h *Templates) SetVariables(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req variablesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	next := h.editor.SetVariables(t, req.Values, req.Fallbacks)
	if !h.store(w, r, next) {
		return
	}
	writeJSON(w, http.StatusOK, editor.Variables(next))
}

// Preview renders the draft with its preview values.
func (h *Templates) Preview(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, editor.Render(t))
}

// PreviewHTML renders the draft as a chat bubble page.
func (h *Templates) PreviewHTML(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderer.Preview(w, r, t.Name, editor.Render(t))
}

// Numbered exports each text field with numbered placeholders.
func (h *Templates) Numbered(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	fields := editor.Numbered(t)
	if fields == nil {
		fields = []editor.NumberedField{}
	}
	writeJSON(w, http.StatusOK, fields)
}

// Save bumps the version, assigns the provider name and records a
// revision of the saved template.
func (h *Templates) Save(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	next := h.editor.Save(t)
	if !h.store(w, r, next) {
		return
	}
	rev := models.Revision{Version: next.Version, SavedAt: h.now(), Template: next}
	if err := h.drafts.AddRevision(r.Context(), rev); err != nil {
		// The save itself succeeded; only the history entry is missing.
		slog.Warn("record revision failed", "id", next.ID, "version", next.Version, "error", err)
	}
	slog.Info("draft saved", "id", next.ID, "version", next.Version, "provider_name", next.ProviderName)
	writeJSON(w, http.StatusOK, newTemplateResponse(next))
}

// Revisions lists the saved snapshots of the draft, newest first.
func (h *Templates) Revisions(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	revs, err := h.drafts.Revisions(r.Context(), t.ID)
	if err != nil {
		slog.Error("list revisions failed", "id", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list revisions.")
		return
	}
	if revs == nil {
		revs = []models.Revision{}
	}
	writeJSON(w, http.StatusOK, revs)
}

// RestoreRevision copies the content of the revision saved as {version}
// back onto the draft.
func (h *Templates) RestoreRevision(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid version.")
		return
	}

	revs, err := h.drafts.Revisions(r.Context(), t.ID)
	if err != nil {
		slog.Error("list revisions failed", "id", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load revision.")
		return
	}
	i := slices.IndexFunc(revs, func(rev models.Revision) bool { return rev.Version == version })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Revision not found.")
		return
	}

	next := h.editor.Restore(t, revs[i].Template)
	if !h.store(w, r, next) {
		return
	}
	slog.Info("revision restored", "id", next.ID, "version", version)
	writeJSON(w, http.StatusOK, newTemplateResponse(next))
}

// approveRequest is the body of Approve.
type approveRequest struct {
	Confirm bool `json:"confirm"`
}

// approveError is the body returned when approval is refused.
type approveError struct {
	Error     string   `json:"error"`
	Errors    []string `json:"errors,omitempty"`
	Campaigns []string `json:"campaigns,omitempty"`
}

// Approve approves the draft. Refusals answer 409 (edit lock, unconfirmed
// campaigns) or 422 (validation errors); the refreshed error list is
// stored either way.
func (h *Templates) Approve(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req approveRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	next, err := h.editor.Approve(t, req.Confirm)
	if !h.store(w, r, next) {
		return
	}

	var (
		verr *editor.ValidationError
		cerr *editor.CampaignsError
	)
	switch {
	case err == nil:
		slog.Info("draft approved", "id", next.ID, "status", next.Status)
		writeJSON(w, http.StatusOK, newTemplateResponse(next))
	case errors.Is(err, editor.ErrLiveEditLocked):
		writeJSON(w, http.StatusConflict, approveError{Error: err.Error()})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, approveError{Error: editor.ErrHasErrors.Error(), Errors: verr.Errors})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, approveError{Error: editor.ErrActiveCampaigns.Error(), Campaigns: cerr.Campaigns})
	default:
		slog.Error("approve failed", "id", next.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to approve template.")
	}
}

// statusRequest is the body of SetStatus.
type statusRequest struct {
	Status models.Status `json:"status"`
}

// SetStatus records a status change made outside the editor, such as a
// template going live after publishing.
func (h *Templates) SetStatus(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown status.")
		return
	}
	h.respond(w, r, h.editor.SetStatus(t, req.Status))
}

// campaignsRequest is the body of SetCampaigns.
type campaignsRequest struct {
	Campaigns []string `json:"campaigns"`
}

// SetCampaigns records which campaigns currently send the template.
func (h *Templates) SetCampaigns(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	var req campaignsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateCampaigns(req.Campaigns); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	h.respond(w, r, h.editor.SetActiveCampaigns(t, req.Campaigns))
}

// load fetches the draft named by the {id} URL parameter. It writes the
// error response and returns false when the ID is malformed or unknown.
func (h *Templates) load(w http.ResponseWriter, r *http.Request) (*models.Template, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID.")
		return nil, false
	}

	t, err := h.drafts.Get(r.Context(), id)
	if err != nil {
		slog.Error("load draft failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load template.")
		return nil, false
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "Template not found.")
		return nil, false
	}
	return t, true
}

// store saves t, writing a 500 and returning false on failure.
func (h *Templates) store(w http.ResponseWriter, r *http.Request, t *models.Template) bool {
	if err := h.drafts.Put(r.Context(), t); err != nil {
		slog.Error("store draft failed", "id", t.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save template.")
		return false
	}
	return true
}

// respond stores t and returns it.
func (h *Templates) respond(w http.ResponseWriter, r *http.Request, t *models.Template) {
	if !h.store(w, r, t) {
		return
	}
	writeJSON(w, http.StatusOK, newTemplateResponse(t))
}

// sectionIndex parses the {idx} URL parameter and checks it against t.
func sectionIndex(w http.ResponseWriter, r *http.Request, t *models.Template) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid section index.")
		return 0, false
	}
	if idx < 0 || idx >= len(t.Sections) {
		writeError(w, http.StatusNotFound, "Section not found.")
		return 0, false
	}
	return idx, true
}
