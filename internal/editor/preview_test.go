package editor

import (
	"maps"
	"slices"
	"testing"

	"msgstudio/internal/models"
)

func TestRender(t *testing.T) {
	tpl := &models.Template{
		Sections: models.Sections{
			models.HeaderSection{Format: models.HeaderText, Text: "Hi {{first_name}}"},
			models.BodySection{Text: "Your order {{order_id}} ships {{when}}."},
			models.FooterSection{Text: "{{store}}"},
			models.ButtonsSection{Buttons: []models.Button{
				{Type: models.ButtonURL, Text: "Track {{order_id}}", URL: "https://x.test/{{order_id}}"},
			}},
		},
		Variables: map[string]string{"first_name": "Ana", "order_id": "A-1"},
		Fallbacks: map[string]string{"store": "Shop"},
	}

	p := Render(tpl)
	if p.Empty {
		t.Error("Empty = true")
	}
	if p.Header == nil || p.Header.Text != "Hi Ana" {
		t.Errorf("Header = %+v", p.Header)
	}
	// "when" has neither value nor fallback, so it renders literally.
	if p.Body == nil || *p.Body != "Your order A-1 ships {{when}}." {
		t.Errorf("Body = %v", p.Body)
	}
	if p.Footer == nil || *p.Footer != "Shop" {
		t.Errorf("Footer = %v", p.Footer)
	}
	if len(p.Buttons) != 1 || p.Buttons[0].Text != "Track {{order_id}}" {
		t.Errorf("Buttons = %+v, want verbatim", p.Buttons)
	}
	want := []string{"first_name", "order_id", "when", "store"}
	if !slices.Equal(p.Variables, want) {
		t.Errorf("Variables = %v, want %v", p.Variables, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	p := Render(&models.Template{})
	if !p.Empty {
		t.Error("Empty = false")
	}
	if p.Body != nil || p.Header != nil || p.Footer != nil {
		t.Errorf("preview = %+v", p)
	}
	if p.Variables == nil {
		t.Error("Variables is nil")
	}
}

func TestRenderMediaHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  models.HeaderSection
		wantURL string
	}{
		{"image without url", models.HeaderSection{Format: models.HeaderImage}, PlaceholderImageURL},
		{"image with url", models.HeaderSection{Format: models.HeaderImage, URL: "https://x.test/a.png"}, "https://x.test/a.png"},
		{"video", models.HeaderSection{Format: models.HeaderVideo, URL: "https://x.test/a.mp4"}, "https://x.test/a.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render(&models.Template{Sections: models.Sections{tt.header}})
			if p.Header == nil || p.Header.URL != tt.wantURL || p.Header.Format != tt.header.Format {
				t.Errorf("Header = %+v, want url %q", p.Header, tt.wantURL)
			}
		})
	}
}

func TestNumbered(t *testing.T) {
	tpl := &models.Template{
		Sections: models.Sections{
			models.HeaderSection{Format: models.HeaderText, Text: "Hi {{first_name}}"},
			models.BodySection{Text: "{{first_name}}, order {{order_id}}"},
			models.FooterSection{Text: "Thanks"},
			models.ButtonsSection{Buttons: []models.Button{
				{Type: models.ButtonQuickReply, Text: "Stop"},
				{Type: models.ButtonURL, Text: "Track", URL: "https://x.test/{{order_id}}"},
			}},
		},
		Variables: map[string]string{"first_name": "Ana", "order_id": "A-1"},
	}

	got := Numbered(tpl)
	want := []NumberedField{
		{Field: "header", Text: "Hi {{1}}", Values: map[string]string{"1": "Ana"}},
		{Field: "body", Text: "{{1}}, order {{2}}", Values: map[string]string{"1": "Ana", "2": "A-1"}},
		{Field: "footer", Text: "Thanks", Values: map[string]string{}},
		{Field: "button_2_url", Text: "https://x.test/{{1}}", Values: map[string]string{"1": "A-1"}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Field != want[i].Field || got[i].Text != want[i].Text {
			t.Errorf("field %d = %s %q, want %s %q", i, got[i].Field, got[i].Text, want[i].Field, want[i].Text)
		}
		if len(got[i].Values) != len(want[i].Values) || (len(want[i].Values) > 0 && !maps.Equal(got[i].Values, want[i].Values)) {
			t.Errorf("field %d values = %v, want %v", i, got[i].Values, want[i].Values)
		}
	}
}
