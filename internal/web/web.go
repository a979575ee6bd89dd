// Package web holds the embedded templates and static assets and renders them
// for gin.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"frontend-gin/internal/dashboard"
	"frontend-gin/internal/models"
	"frontend-gin/internal/session"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates static
var files embed.FS

// Page names accepted by Renderer.Instance.
const (
	PageHome      = "home"
	PageAuth      = "auth"
	PageDashboard = "dashboard"
	PageAnalytics = "analytics"
	PageNotFound  = "not_found"
)

var pageNames = []string{PageHome, PageAuth, PageDashboard, PageAnalytics, PageNotFound}

// Page is the data every full page is rendered with.
type Page struct {
	Title    string
	Path     string
	User     models.Session
	SignedIn bool
	Flashes  []session.Flash
	Data     any
}

// DashboardLink is where the header's Dashboard entry points.
func (p Page) DashboardLink() string {
	if p.User.Role == "" {
		return "/dashboard"
	}
	return "/dashboard/" + string(p.User.Role)
}

// SectionData is what a dashboard section template receives. Action is the
// URL its forms post to.
type SectionData struct {
	Action string
	Data   any
}

// Renderer implements gin's render.HTMLRender. Each page is its own template
// set so every page can define "content".
type Renderer struct {
	pages    map[string]*template.Template
	sections *template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}

	sections, err := template.New("sections").Funcs(funcs).ParseFS(files, "templates/sections/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse sections: %w", err)
	}
	r.sections = sections
	return r, nil
}

// Instance renders page name inside the shared layout.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages[PageNotFound]
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

// Section renders a dashboard section to a fragment for the dashboard page.
func (r *Renderer) Section(name string, data SectionData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.sections.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render section %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Static serves the embedded static directory.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	"formatDate": formatDate,
	"yesNo": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"orDefault": func(def string, v any) string {
		s := deref(v)
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	},
	"deref": deref,
	"json": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"trendClass": func(trend string) string {
		switch trend {
		case "Stable":
			return "badge-green"
		case "Improving":
			return "badge-blue"
		case "Worsening":
			return "badge-red"
		}
		return "badge-gray"
	},
	"roles": func() []models.Role { return models.Roles },
}

// formatDate renders backend dates as "January 2, 2006". Empty dates read
// N/A and anything unparseable is shown as received.
func formatDate(s string) string {
	if s == "" {
		return "N/A"
	}
	if t, ok := dashboard.ParseDate(s); ok {
		return t.Format("January 2, 2006")
	}
	return s
}

func deref(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case models.Text:
		return string(x)
	case *models.Text:
		if x == nil {
			return ""
		}
		return string(*x)
	}
	return fmt.Sprint(v)
}
