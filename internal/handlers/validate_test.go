package handlers

import (
	"strings"
	"testing"

	"msgstudio/internal/models"
)

func ptr(s string) *string { return &s }

func TestValidateMeta(t *testing.T) {
	tests := []struct {
		name      string
		req       metaRequest
		wantError bool
	}{
		{"all absent", metaRequest{}, false},
		{"valid name", metaRequest{Name: ptr("Order Shipped")}, false},
		{"empty name", metaRequest{Name: ptr("")}, true},
		{"whitespace name", metaRequest{Name: ptr("   ")}, true},
		{"name too long", metaRequest{Name: ptr(strings.Repeat("a", 513))}, true},
		{"name at limit", metaRequest{Name: ptr(strings.Repeat("a", 512))}, false},
		{"valid language", metaRequest{Language: ptr("pt-BR")}, false},
		{"bad language", metaRequest{Language: ptr("not a locale!")}, true},
		{"valid category", metaRequest{Category: ptr("utility")}, false},
		{"bad category", metaRequest{Category: ptr("promo")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result := validateMeta(tt.req)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateMetaNormalizes(t *testing.T) {
	m, msg := validateMeta(metaRequest{
		Name:     ptr("  Spring Sale "),
		Language: ptr("pt-BR"),
		Category: ptr("marketing"),
	})
	if msg != "" {
		t.Fatalf("unexpected error: %s", msg)
	}
	if *m.Name != "Spring Sale" {
		t.Errorf("Name = %q", *m.Name)
	}
	if *m.Language != "pt_BR" {
		t.Errorf("Language = %q", *m.Language)
	}
	if *m.Category != models.CategoryMarketing {
		t.Errorf("Category = %q", *m.Category)
	}
}

func TestValidateCampaigns(t *testing.T) {
	tests := []struct {
		name      string
		campaigns []string
		wantError bool
	}{
		{"none", nil, false},
		{"valid", []string{"spring", "summer"}, false},
		{"blank entry", []string{"spring", " "}, true},
		{"too many", make([]string, 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateCampaigns(tt.campaigns)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}
