// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"msgstudio/internal/placeholder"
)

// placeholderRequest is the body of the stateless placeholder endpoints.
type placeholderRequest struct {
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

// substituteResponse is the body returned by Substitute.
type substituteResponse struct {
	Text         string   `json:"text"`
	Placeholders []string `json:"placeholders"`
}

// numberedResponse is the body returned by ConvertNumbered.
type numberedResponse struct {
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

// Substitute fills placeholders in arbitrary text without touching any
// draft. The names found in the input are returned alongside.
func Substitute(w http.ResponseWriter, r *http.Request) {
	var req placeholderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	names := placeholder.Extract(req.Text)
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, substituteResponse{
		Text:         placeholder.Substitute(req.Text, req.Values),
		Placeholders: names,
	})
}

// ConvertNumbered rewrites named placeholders in arbitrary text as
// numbered ones.
func ConvertNumbered(w http.ResponseWriter, r *http.Request) {
	var req placeholderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text, values := placeholder.ConvertToNumbered(req.Text, req.Values)
	writeJSON(w, http.StatusOK, numberedResponse{Text: text, Values: values})
}
