package handlers

import (
	"strings"
	"unicode/utf8"

	"msgstudio/internal/editor"
	"msgstudio/internal/models"
	"msgstudio/internal/slug"
)

// Request limits.
const (
	maxTemplateNameLen = slug.MaxLen
	maxRequestBody     = 1 << 20
	maxCampaigns       = 100
)

// metaRequest is the body of create and metadata update requests. Absent
// fields are left unchanged.
type metaRequest struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
	Category *string `json:"category"`
}

// validateMeta checks metadata inputs and converts them to an editor.Meta.
// It returns the first problem found as a user-facing message.
func validateMeta(req metaRequest) (editor.Meta, string) {
	var m editor.Meta

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return m, "Template name is required."
		}
		if utf8.RuneCountInString(name) > maxTemplateNameLen {
			return m, "Template name is too long (max 512 characters)."
		}
		m.Name = &name
	}

	if req.Language != nil {
		lang, err := models.ParseLanguage(*req.Language)
		if err != nil {
			return m, "Unsupported language code."
		}
		m.Language = &lang
	}

	if req.Category != nil {
		cat := models.Category(*req.Category)
		if !cat.Valid() {
			return m, "Unknown category."
		}
		m.Category = &cat
	}

	return m, ""
}

// validateCampaigns checks the campaign list sent for a template.
func validateCampaigns(campaigns []string) string {
	if len(campaigns) > maxCampaigns {
		return "Too many campaigns (max 100)."
	}
	for _, c := range campaigns {
		if strings.TrimSpace(c) == "" {
			return "Campaign names must not be empty."
		}
	}
	return ""
}
