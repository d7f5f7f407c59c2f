// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"msgstudio/internal/editor"
	"msgstudio/internal/handlers"
	"msgstudio/internal/middleware"
	"msgstudio/internal/models"
	"msgstudio/internal/render"
)

// mapStore is a minimal in-memory handlers.DraftStore.
type mapStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*models.Template
	revs   map[uuid.UUID][]models.Revision
}

func (m *mapStore) Get(_ context.Context, id uuid.UUID) (*models.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.drafts[id]; ok {
		return t.Clone(), nil
	}
	return nil, nil
}

func (m *mapStore) Put(_ context.Context, t *models.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[t.ID] = t.Clone()
	return nil
}

func (m *mapStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	delete(m.revs, id)
	return nil
}

func (m *mapStore) AddRevision(_ context.Context, rev models.Revision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rev.Template = rev.Template.Clone()
	m.revs[rev.Template.ID] = append([]models.Revision{rev}, m.revs[rev.Template.ID]...)
	return nil
}

func (m *mapStore) Revisions(_ context.Context, id uuid.UUID) ([]models.Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.revs[id]), nil
}

func (m *mapStore) List(_ context.Context) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(m.drafts))
	for id := range m.drafts {
		ids = append(ids, id)
	}
	return ids, nil
}

func newTestRouter(limiter *middleware.RateLimiter) http.Handler {
	store := &mapStore{
		drafts: make(map[uuid.UUID]*models.Template),
		revs:   make(map[uuid.UUID][]models.Revision),
	}
	rn, err := render.New()
	if err != nil {
		panic(err)
	}
	return New(handlers.NewTemplates(store, editor.New(nil), rn), limiter)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutes(t *testing.T) {
	h := newTestRouter(nil)

	// Create a draft to address.
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/templates", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201", rr.Code)
	}
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	base := "/api/templates/" + created.ID.String()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/templates", "", http.StatusOK},
		{http.MethodGet, base, "", http.StatusOK},
		{http.MethodPatch, base, `{"name":"Welcome"}`, http.StatusOK},
		{http.MethodPost, base + "/sections", `{"type":"body"}`, http.StatusOK},
		{http.MethodPut, base + "/sections/0", `{"type":"body","text":"Hi {{name}}"}`, http.StatusOK},
		{http.MethodPost, base + "/sections", `{"type":"footer"}`, http.StatusOK},
		{http.MethodPost, base + "/sections/move", `{"from":1,"to":0}`, http.StatusOK},
		{http.MethodDelete, base + "/sections/0", "", http.StatusOK},
		{http.MethodPost, base + "/validate", "", http.StatusOK},
		{http.MethodGet, base + "/variables", "", http.StatusOK},
		{http.MethodPut, base + "/variables", `{"values":{"name":"Ana"}}`, http.StatusOK},
		{http.MethodGet, base + "/preview", "", http.StatusOK},
		{http.MethodGet, base + "/preview.html", "", http.StatusOK},
		{http.MethodGet, base + "/numbered", "", http.StatusOK},
		{http.MethodPost, base + "/save", "", http.StatusOK},
		{http.MethodGet, base + "/revisions", "", http.StatusOK},
		{http.MethodPost, base + "/revisions/2/restore", "", http.StatusOK},
		{http.MethodPost, base + "/revisions/9/restore", "", http.StatusNotFound},
		{http.MethodPost, base + "/approve", "", http.StatusOK},
		{http.MethodPut, base + "/status", `{"status":"live"}`, http.StatusOK},
		{http.MethodPut, base + "/campaigns", `{"campaigns":["spring"]}`, http.StatusOK},
		{http.MethodPost, "/api/placeholders/substitute", `{"text":"{{a}}","values":{"a":"b"}}`, http.StatusOK},
		{http.MethodPost, "/api/placeholders/numbered", `{"text":"{{a}}"}`, http.StatusOK},
		{http.MethodDelete, base, "", http.StatusNoContent},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
		{http.MethodPut, "/api/templates", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	h := newTestRouter(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("request ID header missing")
	}
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control: got %q", got)
	}
}

func TestRateLimitAppliesToAPIOnly(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	h := newTestRouter(limiter)

	send := func(path string) int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.1.1.1:5555"
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := send("/api/templates"); got != http.StatusOK {
		t.Fatalf("first API request: got %d, want 200", got)
	}
	if got := send("/api/templates"); got != http.StatusTooManyRequests {
		t.Errorf("second API request: got %d, want 429", got)
	}
	if got := send("/health"); got != http.StatusOK {
		t.Errorf("health: got %d, want 200", got)
	}
}
