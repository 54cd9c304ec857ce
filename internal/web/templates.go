package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/opmc/inventory/internal/export"
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/model"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map. Timestamps render in loc.
func FuncMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"categoryLabel": func(c model.Category) string { return c.Label() },
		"categoryTitle": func(c model.Category) string { return c.Title() },
		"locationLabel": inventory.LocationLabel,
		"timestamp": func(m model.Medicine) string {
			return export.FormatTimestamp(m.LastUpdated, loc)
		},
	}
}

// LoadTemplates parses all page templates in tfs with the layout.
func LoadTemplates(tfs fs.FS, loc *time.Location) (*Templates, error) {
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"inventory.html",
		"settings.html",
		"confirm_delete.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap(loc))
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	Nav   string
	// Notice and Error are the transient success and failure messages.
	Notice string
	Error  string
}

// pageData reads the transient messages carried by a redirect.
func pageData(r *http.Request, title, nav string) PageData {
	q := r.URL.Query()
	return PageData{
		Title:  title,
		Nav:    nav,
		Notice: q.Get("notice"),
		Error:  q.Get("error"),
	}
}

// redirectWith sends the browser to path with extra query values.
func redirectWith(w http.ResponseWriter, r *http.Request, path string, q url.Values) {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Server holds all dependencies for page handlers.
type Server struct {
	Gateway   inventory.Gateway
	Exporter  *export.Exporter
	Templates *Templates
}
