package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("R$ %.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
}

// Page is the envelope every template receives. Data carries the
// page-specific view model.
type Page struct {
	Title    string
	BasePath string
	Flash    string
	Error    string
	Data     any
}

// Renderer holds the parsed template set, one entry per page sharing
// the layout.
type Renderer struct {
	BasePath string
	pages    map[string]*template.Template
}

var pageNames = []string{
	"login.html",
	"sales.html",
	"leads.html",
	"cta.html",
	"loading.html",
	"noprofile.html",
	"denied.html",
}

func New(basePath string) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{BasePath: basePath, pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(files, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) {
	t, ok := r.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	p.BasePath = r.BasePath

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", p); err != nil {
		// Headers are already out; nothing left to do but log upstream.
		fmt.Fprintf(w, "<!-- render error: %s -->", template.HTMLEscapeString(err.Error()))
	}
}

// Guard screens. The middleware renders these without reaching the
// page handlers.

func (r *Renderer) Loading(w http.ResponseWriter) {
	r.Render(w, http.StatusOK, "loading.html", Page{Title: "Loading"})
}

func (r *Renderer) MissingProfile(w http.ResponseWriter, email string) {
	r.Render(w, http.StatusOK, "noprofile.html", Page{Title: "Profile missing", Data: email})
}

func (r *Renderer) AccessDenied(w http.ResponseWriter, email, role string) {
	r.Render(w, http.StatusForbidden, "denied.html", Page{
		Title: "Access denied",
		Data:  struct{ Email, Role string }{email, role},
	})
}
