package view

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/rs/zerolog"

	"github.com/portfolio/internal/document"
	"github.com/portfolio/internal/sidebar"
)

// Swap targets of the public page.
const (
	TargetCategories    = "sidebar-categories"
	TargetSubcategories = "sidebar-subcategories"
	TargetDocuments     = "sidebar-documents"
	TargetContent       = "content-pane"
)

var columnOrder = []sidebar.Column{sidebar.ColumnCategories, sidebar.ColumnSubcategories, sidebar.ColumnDocuments}

var columnTargets = map[sidebar.Column]string{
	sidebar.ColumnCategories:    TargetCategories,
	sidebar.ColumnSubcategories: TargetSubcategories,
	sidebar.ColumnDocuments:     TargetDocuments,
}

// ColumnView is the model of one sidebar column.
type ColumnView struct {
	Column sidebar.Column
	Target string
	Items  []sidebar.Item
	OOB    bool
}

// PaneView is the model of the content pane.
type PaneView struct {
	View ContentView
	OOB  bool
}

// Fragment is a rendered out-of-band swap for one page target.
type Fragment struct {
	Target string
	HTML   template.HTML
}

// Frame is the per-visitor page the navigator draws into. It remembers the
// latest state of every column and the content pane, and which of them
// changed since the last Flush.
type Frame struct {
	templates *template.Template
	renderer  *document.Renderer
	logger    zerolog.Logger

	mu      sync.Mutex
	columns map[sidebar.Column][]sidebar.Item
	pane    ContentView
	dirty   []string
}

// NewFrame creates an empty frame rendering with tmpl.
func NewFrame(tmpl *template.Template, renderer *document.Renderer, logger zerolog.Logger) *Frame {
	return &Frame{
		templates: tmpl,
		renderer:  renderer,
		logger:    logger.With().Str("component", "frame").Logger(),
		columns:   make(map[sidebar.Column][]sidebar.Item, len(columnOrder)),
		pane:      BuildContentView(sidebar.Pane{Kind: sidebar.PaneEmpty}, renderer),
	}
}

// RenderColumn replaces the items of column.
func (f *Frame) RenderColumn(column sidebar.Column, items []sidebar.Item) {
	target, ok := columnTargets[column]
	if !ok {
		f.logger.Warn().Str("column", string(column)).Msg("render to unknown column")
		return
	}
	copied := make([]sidebar.Item, len(items))
	copy(copied, items)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.columns[column] = copied
	f.markLocked(target)
}

// RenderContent replaces the content pane.
func (f *Frame) RenderContent(pane sidebar.Pane) {
	view := BuildContentView(pane, f.renderer)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pane = view
	f.markLocked(TargetContent)
}

func (f *Frame) markLocked(target string) {
	for _, existing := range f.dirty {
		if existing == target {
			return
		}
	}
	f.dirty = append(f.dirty, target)
}

// Pending lists the targets changed since the last Flush, in first-change order.
func (f *Frame) Pending() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dirty...)
}

// Columns returns the current state of all three columns in page order.
func (f *Frame) Columns() []ColumnView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.columnsLocked(false)
}

func (f *Frame) columnsLocked(oob bool) []ColumnView {
	views := make([]ColumnView, 0, len(columnOrder))
	for _, column := range columnOrder {
		views = append(views, ColumnView{Column: column, Target: columnTargets[column], Items: f.columns[column], OOB: oob})
	}
	return views
}

// Pane returns the current content pane.
func (f *Frame) Pane() PaneView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return PaneView{View: f.pane}
}

// Home builds the full page model and clears the pending changes, since a
// full page carries every target.
func (f *Frame) Home(page Page) HomePage {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = nil
	return HomePage{Page: page, Columns: f.columnsLocked(false), Pane: PaneView{View: f.pane}}
}

// Flush renders every changed target as an out-of-band fragment and clears
// the pending list. Targets that fail to render are logged and skipped.
func (f *Frame) Flush() []Fragment {
	f.mu.Lock()
	defer f.mu.Unlock()

	fragments := make([]Fragment, 0, len(f.dirty))
	for _, target := range f.dirty {
		html, err := f.renderTargetLocked(target)
		if err != nil {
			f.logger.Error().Err(err).Str("target", target).Msg("render fragment failed")
			continue
		}
		fragments = append(fragments, Fragment{Target: target, HTML: html})
	}
	f.dirty = nil
	return fragments
}

func (f *Frame) renderTargetLocked(target string) (template.HTML, error) {
	var buf bytes.Buffer
	if target == TargetContent {
		if err := f.templates.ExecuteTemplate(&buf, "content_pane", PaneView{View: f.pane, OOB: true}); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	}
	for _, column := range columnOrder {
		if columnTargets[column] != target {
			continue
		}
		view := ColumnView{Column: column, Target: target, Items: f.columns[column], OOB: true}
		if err := f.templates.ExecuteTemplate(&buf, "sidebar_column", view); err != nil {
			return "", err
		}
	}
	return template.HTML(buf.String()), nil
}

// JoinFragments concatenates fragments into one response body.
func JoinFragments(fragments []Fragment) []byte {
	var buf bytes.Buffer
	for _, fragment := range fragments {
		buf.WriteString(string(fragment.HTML))
	}
	return buf.Bytes()
}
