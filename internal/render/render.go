// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render draws the message preview as HTML, the way the recipient's
// chat app would show it. It supports full-page and HTMX partial rendering,
// detecting the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	"msgstudio/internal/editor"
	"msgstudio/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData holds all data passed to the preview template.
type PageData struct {
	Title   string         // Page title for <title> tag
	Preview editor.Preview // Rendered sections
}

// Renderer executes the parsed preview template.
type Renderer struct {
	tmpl    *template.Template
	funcMap template.FuncMap
}

// New creates a Renderer by parsing the embedded preview template.
func New() (*Renderer, error) {
	r := &Renderer{
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"format": Format,
			// buttonIcon picks the glyph shown before a button label.
			"buttonIcon": func(t models.ButtonType) string {
				switch t {
				case models.ButtonURL:
					return "↗"
				case models.ButtonPhone:
					return "✆"
				default:
					return "↩"
				}
			},
			"isVideo": func(f models.HeaderFormat) bool { return f == models.HeaderVideo },
			"isText":  func(f models.HeaderFormat) bool { return f == models.HeaderText },
		},
	}

	tmpl, err := template.New("preview.html").Funcs(r.funcMap).ParseFS(templatesFS, "templates/preview.html")
	if err != nil {
		return nil, fmt.Errorf("parse template preview.html: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Preview writes the preview of a template named title. For HTMX requests
// only the "content" block is sent.
func (rn *Renderer) Preview(w http.ResponseWriter, r *http.Request, title string, p editor.Preview) {
	name := "preview.html"
	if isHTMX(r) {
		name = "content"
	}

	// Render into a buffer so a template error never leaves half a page.
	var buf bytes.Buffer
	if err := rn.tmpl.ExecuteTemplate(&buf, name, &PageData{Title: title, Preview: p}); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Markup pairs applied after escaping, in order. Each span must open and
// close on the same line.
var markup = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile("```([^`\n]+)```"), "<code>$1</code>"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`(^|[^\w])_([^_\n]+)_`), "$1<em>$2</em>"},
	{regexp.MustCompile(`~([^~\n]+)~`), "<del>$1</del>"},
}

// Format escapes s and turns chat markup (*bold*, _italic_, ~strike~ and
// ```mono```) into HTML. Line breaks become <br>.
func Format(s string) template.HTML {
	out := template.HTMLEscapeString(s)
	for _, m := range markup {
		out = m.re.ReplaceAllString(out, m.repl)
	}
	out = strings.ReplaceAll(out, "\n", "<br>")
	return template.HTML(out)
}
