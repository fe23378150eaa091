package admin

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	layoutTmpl   *template.Template
	pageTmpls    map[string]*template.Template
	partialTmpls *template.Template
)

// partialPaths are the fragments htmx swaps in. Pages embed them too.
var partialPaths = []string{
	"templates/rows.html",
	"templates/form.html",
	"templates/dialog.html",
	"templates/gallery.html",
}

var pageDefinitions = map[string]string{
	"login":     "templates/login.html",
	"dashboard": "templates/dashboard.html",
	"list":      "templates/list.html",
}

type rowActions struct {
	Table TableView
	Row   RowView
}

var funcs = template.FuncMap{
	"base":    func() string { return BasePath },
	"actions": func(t TableView, r RowView) rowActions { return rowActions{Table: t, Row: r} },
}

func init() {
	layoutTmpl = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))
	partialTmpls = template.Must(template.New("partials").Funcs(funcs).ParseFS(templateFS, partialPaths...))

	pageTmpls = make(map[string]*template.Template, len(pageDefinitions))
	for name, path := range pageDefinitions {
		tmpl := template.Must(layoutTmpl.Clone())
		tmpl = template.Must(tmpl.ParseFS(templateFS, path))
		pageTmpls[name] = template.Must(tmpl.ParseFS(templateFS, partialPaths...))
	}
}

// ListPage is the shell of a resource screen.
type ListPage struct {
	Title    string
	Resource string
	Table    TableView
	ReadOnly bool
}

type navItem struct {
	Name   string
	Label  string
	Active bool
}

type layoutData struct {
	Title  string
	Nav    []navItem
	Signed bool
	Page   any
}

func pageTitle(data any) string {
	switch p := data.(type) {
	case ListPage:
		return p.Title
	case LoginPage:
		return p.Title
	case map[string]any:
		if t, ok := p["Title"].(string); ok {
			return t
		}
	}
	return "Admin"
}

// renderPage renders page inside the layout.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	h.renderPageStatus(w, r, http.StatusOK, page, data)
}

func (h *Handlers) renderPageStatus(w http.ResponseWriter, _ *http.Request, status int, page string, data any) {
	tmpl, ok := pageTmpls[page]
	if !ok {
		h.logger.Error().Str("page", page).Msg("Unknown admin page")
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	ld := layoutData{Title: pageTitle(data), Page: data}
	if _, isLogin := data.(LoginPage); !isLogin {
		ld.Signed = true
		active := ""
		if lp, ok := data.(ListPage); ok {
			active = lp.Resource
		}
		for _, s := range h.screens {
			ld.Nav = append(ld.Nav, navItem{Name: s.Name(), Label: s.Label(), Active: s.Name() == active})
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", ld); err != nil {
		h.logger.Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderPartial renders a fragment. Headers set before the call are sent
// with it.
func (h *Handlers) renderPartial(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := partialTmpls.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error().Err(err).Str("partial", name).Msg("Failed to render partial")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
