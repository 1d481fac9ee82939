package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"workoutlog/internal/record"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// mdRenderer escapes raw HTML in memos (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var funcMap = template.FuncMap{
	"num": record.FormatNumber,
	"markdown": func(md string) template.HTML {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
			return template.HTML(template.HTMLEscapeString(md))
		}
		return template.HTML(buf.String())
	},
}

// pages holds one template set per page, each cloned from the layout so
// {{define "content"}} blocks don't collide.
type pages map[string]*template.Template

func loadPages() (pages, error) {
	layout, err := template.New("base.gohtml").Funcs(funcMap).ParseFS(templateFS, "templates/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	out := make(pages)
	for _, name := range []string{"index.gohtml", "calendar.gohtml"} {
		t, err := template.Must(layout.Clone()).ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind a 200.
func (h *Handler) render(w http.ResponseWriter, name string, status int, data any) {
	t, ok := h.pages[name]
	if !ok {
		h.internalError(w, fmt.Errorf("template %q not found", name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.gohtml", data); err != nil {
		h.internalError(w, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
