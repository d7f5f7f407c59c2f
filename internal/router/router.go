// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// template editor API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"msgstudio/internal/handlers"
	"msgstudio/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. limiter may be nil to disable rate limiting.
func New(templates *handlers.Templates, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	// Health check, not rate limited.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templates.List)
			r.Post("/", templates.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", templates.Get)
				r.Delete("/", templates.Delete)
				r.Patch("/", templates.UpdateMeta)

				// Sections
				r.Post("/sections", templates.AddSection)
				r.Post("/sections/move", templates.MoveSection)
				r.Put("/sections/{idx}", templates.UpdateSection)
				r.Delete("/sections/{idx}", templates.RemoveSection)

				// Checks and previews
				r.Post("/validate", templates.Validate)
				r.Get("/variables", templates.Variables)
				r.Put("/variables", templates.SetVariables)
				r.Get("/preview", templates.Preview)
				r.Get("/preview.html", templates.PreviewHTML)
				r.Get("/numbered", templates.Numbered)

				// Lifecycle
				r.Post("/save", templates.Save)
				r.Get("/revisions", templates.Revisions)
				r.Post("/revisions/{version}/restore", templates.RestoreRevision)
				r.Post("/approve", templates.Approve)
				r.Put("/status", templates.SetStatus)
				r.Put("/campaigns", templates.SetCampaigns)
			})
		})

		// Stateless placeholder tools.
		r.Route("/placeholders", func(r chi.Router) {
			r.Post("/substitute", handlers.Substitute)
			r.Post("/numbered", handlers.ConvertNumbered)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
