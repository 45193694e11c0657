package view

import (
	"embed"
	"html/template"
	"strings"
	"sync"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

var (
	templatesOnce sync.Once
	templateSet   *template.Template
)

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"upper": strings.ToUpper,
		"join":  strings.Join,
	}
}

// Templates returns the parsed site templates. The set is parsed once and
// shared; callers must not add to it.
func Templates() *template.Template {
	templatesOnce.Do(func() {
		templateSet = template.Must(template.New("site").Funcs(FuncMap()).ParseFS(templateFiles, "templates/*.html"))
	})
	return templateSet
}

// Page carries the fields every full page template reads.
type Page struct {
	Title        string
	SiteName     string
	Year         int
	CanonicalURL string
}

// NewPage fills in the shared page fields.
func NewPage(title, siteName string, now time.Time) Page {
	if strings.TrimSpace(siteName) == "" {
		siteName = "Portfolio"
	}
	return Page{Title: title, SiteName: siteName, Year: now.Year()}
}

// DownloadLink is a visitor-facing document download.
type DownloadLink struct {
	URL   string
	Label string
}

// HomePage is the model of home.html.
type HomePage struct {
	Page
	Profile   *ProfileView
	Columns   []ColumnView
	Pane      PaneView
	Downloads []DownloadLink
}

// ResumePage is the model of resume.html.
type ResumePage struct {
	Page
	Timeline Timeline
}

// CollectionPage is the model of collection.html.
type CollectionPage struct {
	Page
	Collection CollectionView
}

// ErrorPage is the model of error.html.
type ErrorPage struct {
	Page
	Message string
}
