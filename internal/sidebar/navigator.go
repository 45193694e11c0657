// Package sidebar holds the three-column category / subcategory / document
// selection state and decides what each column and the content pane show.
package sidebar

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/portfolio/internal/db"
)

// Source supplies the data the navigator browses.
type Source interface {
	// ListCategories returns categories in display order, each with its
	// subcategories embedded in display order.
	ListCategories(ctx context.Context) ([]db.Category, error)
	// ListContentBySubcategory returns the subcategory's items, newest first.
	ListContentBySubcategory(ctx context.Context, subcategoryID string) ([]db.Content, error)
}

// Column names one of the three sidebar columns.
type Column string

const (
	ColumnCategories    Column = "categories"
	ColumnSubcategories Column = "subcategories"
	ColumnDocuments     Column = "documents"
)

// PaneKind tells the view what the main content pane should show.
type PaneKind int

const (
	PaneEmpty PaneKind = iota
	PaneNoDocuments
	PaneDocument
	PaneUnavailable
)

// Pane is the main content pane state.
type Pane struct {
	Kind            PaneKind
	Content         *db.Content
	CategoryName    string
	SubcategoryName string
}

// View receives column and content pane renders.
type View interface {
	RenderColumn(column Column, items []Item)
	RenderContent(pane Pane)
}

// Phase is the coarse navigator state.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoaded
	PhaseSelected
)

func (p Phase) String() string {
	switch p {
	case PhaseLoaded:
		return "loaded"
	case PhaseSelected:
		return "selected"
	default:
		return "empty"
	}
}

// Selection is the chosen id in each column; empty means nothing chosen.
type Selection struct {
	CategoryID    string
	SubcategoryID string
	DocumentID    string
}

// Navigator is the selection state machine for one visitor's view.
//
// Views are rendered while holding the navigator lock so renders from
// concurrent requests never interleave. The lock is released while content is
// fetched; a fetch result is applied only if no newer subcategory selection
// happened in the meantime.
type Navigator struct {
	source Source
	view   View
	logger zerolog.Logger

	mu            sync.Mutex
	loaded        bool
	loadFailed    bool
	categories    []db.Category
	subcategories []db.Subcategory
	documents     []db.Content
	selected      Selection
	generation    uint64
	fetchFailed   bool
}

// New returns a navigator in the Empty phase.
func New(source Source, view View, logger zerolog.Logger) *Navigator {
	return &Navigator{
		source: source,
		view:   view,
		logger: logger.With().Str("component", "sidebar").Logger(),
	}
}

// Load fetches the category tree and renders the category column. Selection
// is reset. A failed fetch leaves an empty column and an unavailable pane.
func (n *Navigator) Load(ctx context.Context) {
	categories, err := n.source.ListCategories(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()

	n.loaded = true
	n.loadFailed = err != nil
	n.selected = Selection{}
	n.subcategories = nil
	n.documents = nil
	n.generation++

	if err != nil {
		n.logger.Error().Err(err).Msg("load categories")
		n.categories = nil
		n.renderColumnsLocked()
		n.view.RenderContent(Pane{Kind: PaneUnavailable})
		return
	}
	n.categories = categories
	n.renderColumnsLocked()
}

// AutoSelectFirstContent selects the first category and lets the cascade pick
// the first subcategory and document. It loads the tree first if needed.
func (n *Navigator) AutoSelectFirstContent(ctx context.Context) {
	n.mu.Lock()
	loaded := n.loaded
	n.mu.Unlock()
	if !loaded {
		n.Load(ctx)
	}

	n.mu.Lock()
	if len(n.categories) == 0 {
		if !n.loadFailed {
			n.view.RenderContent(Pane{Kind: PaneEmpty})
		}
		n.mu.Unlock()
		return
	}
	first := n.categories[0].ID
	n.mu.Unlock()

	n.SelectCategory(ctx, first)
}

// SelectCategory selects a category from the loaded tree. Re-selecting the
// current category, or an id that is not loaded, does nothing.
func (n *Navigator) SelectCategory(ctx context.Context, id string) {
	n.mu.Lock()
	if id == "" || id == n.selected.CategoryID {
		n.mu.Unlock()
		return
	}
	category, ok := n.findCategoryLocked(id)
	if !ok {
		n.mu.Unlock()
		n.logger.Debug().Str("category_id", id).Msg("ignoring unknown category")
		return
	}

	n.selected = Selection{CategoryID: id}
	n.subcategories = category.Subcategories
	n.documents = nil
	n.fetchFailed = false
	n.generation++
	n.renderColumnsLocked()

	if len(n.subcategories) == 0 {
		n.view.RenderContent(Pane{Kind: PaneEmpty, CategoryName: category.Name})
		n.mu.Unlock()
		return
	}
	first := n.subcategories[0].ID
	n.mu.Unlock()

	n.SelectSubcategory(ctx, first)
}

// SelectSubcategory selects a subcategory of the current category and fetches
// its documents. Re-selecting the current subcategory does nothing unless its
// last fetch failed; an id outside the current category is ignored.
func (n *Navigator) SelectSubcategory(ctx context.Context, id string) {
	n.mu.Lock()
	current := id == n.selected.SubcategoryID && !n.fetchFailed
	if id == "" || current || !n.hasSubcategoryLocked(id) {
		n.mu.Unlock()
		return
	}
	n.selected.SubcategoryID = id
	n.selected.DocumentID = ""
	n.documents = nil
	n.fetchFailed = false
	n.generation++
	generation := n.generation
	n.view.RenderColumn(ColumnSubcategories, n.subcategoryItemsLocked())
	n.mu.Unlock()

	documents, err := n.source.ListContentBySubcategory(ctx, id)

	n.mu.Lock()
	if generation != n.generation {
		n.mu.Unlock()
		n.logger.Debug().Str("subcategory_id", id).Msg("discarding superseded content fetch")
		return
	}
	if err != nil {
		n.logger.Error().Err(err).Str("subcategory_id", id).Msg("load subcategory content")
		n.fetchFailed = true
		n.view.RenderColumn(ColumnDocuments, nil)
		n.view.RenderContent(n.paneLocked(PaneUnavailable, nil))
		n.mu.Unlock()
		return
	}
	n.documents = documents
	n.view.RenderColumn(ColumnDocuments, n.documentItemsLocked())
	if len(documents) == 0 {
		n.view.RenderContent(n.paneLocked(PaneNoDocuments, nil))
		n.mu.Unlock()
		return
	}
	first := documents[0].ID
	n.mu.Unlock()

	n.SelectDocument(first)
}

// SelectDocument shows a document from the current subcategory. Re-selecting
// the current document, or an id outside the loaded list, does nothing.
func (n *Navigator) SelectDocument(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if id == "" || id == n.selected.DocumentID {
		return
	}
	var doc *db.Content
	for i := range n.documents {
		if n.documents[i].ID == id {
			item := n.documents[i]
			doc = &item
			break
		}
	}
	if doc == nil {
		return
	}
	n.selected.DocumentID = id
	n.view.RenderColumn(ColumnDocuments, n.documentItemsLocked())
	n.view.RenderContent(n.paneLocked(PaneDocument, doc))
}

// Snapshot returns the current selection.
func (n *Navigator) Snapshot() Selection {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

// Phase reports the coarse navigator state.
func (n *Navigator) Phase() Phase {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case !n.loaded || len(n.categories) == 0:
		return PhaseEmpty
	case n.selected.DocumentID != "":
		return PhaseSelected
	default:
		return PhaseLoaded
	}
}

func (n *Navigator) renderColumnsLocked() {
	n.view.RenderColumn(ColumnCategories, n.categoryItemsLocked())
	n.view.RenderColumn(ColumnSubcategories, n.subcategoryItemsLocked())
	n.view.RenderColumn(ColumnDocuments, n.documentItemsLocked())
}

func (n *Navigator) categoryItemsLocked() []Item {
	items := make([]Item, 0, len(n.categories))
	for _, c := range n.categories {
		items = append(items, Item{ID: c.ID, Title: c.Name})
	}
	return Center(items, n.selected.CategoryID)
}

func (n *Navigator) subcategoryItemsLocked() []Item {
	items := make([]Item, 0, len(n.subcategories))
	for _, s := range n.subcategories {
		items = append(items, Item{ID: s.ID, Title: s.Name})
	}
	return Center(items, n.selected.SubcategoryID)
}

func (n *Navigator) documentItemsLocked() []Item {
	categoryName, subcategoryName := n.namesLocked()
	items := make([]Item, 0, len(n.documents))
	for _, d := range n.documents {
		items = append(items, Item{
			ID:       d.ID,
			Title:    d.DisplaySidebarTitle(),
			Subtitle: documentSubtitle(d, categoryName, subcategoryName),
			Type:     d.Type,
			Date:     d.PublicationDate,
		})
	}
	return Center(items, n.selected.DocumentID)
}

func (n *Navigator) paneLocked(kind PaneKind, content *db.Content) Pane {
	categoryName, subcategoryName := n.namesLocked()
	return Pane{
		Kind:            kind,
		Content:         content,
		CategoryName:    categoryName,
		SubcategoryName: subcategoryName,
	}
}

func (n *Navigator) namesLocked() (string, string) {
	var categoryName, subcategoryName string
	if c, ok := n.findCategoryLocked(n.selected.CategoryID); ok {
		categoryName = c.Name
	}
	for _, s := range n.subcategories {
		if s.ID == n.selected.SubcategoryID {
			subcategoryName = s.Name
			break
		}
	}
	return categoryName, subcategoryName
}

func (n *Navigator) findCategoryLocked(id string) (db.Category, bool) {
	for _, c := range n.categories {
		if c.ID == id {
			return c, true
		}
	}
	return db.Category{}, false
}

func (n *Navigator) hasSubcategoryLocked(id string) bool {
	for _, s := range n.subcategories {
		if s.ID == id {
			return true
		}
	}
	return false
}

// documentSubtitle prefers the navigation subtitle and otherwise describes
// where the item lives, e.g. "Writing → Essays • ARTICLE • 2024-03-01".
func documentSubtitle(c db.Content, categoryName, subcategoryName string) string {
	if c.SidebarSubtitle != "" {
		return c.SidebarSubtitle
	}
	parts := make([]string, 0, 3)
	if categoryName != "" && subcategoryName != "" {
		parts = append(parts, fmt.Sprintf("%s → %s", categoryName, subcategoryName))
	}
	if c.Type != "" {
		parts = append(parts, strings.ToUpper(string(c.Type)))
	}
	if c.PublicationDate != "" {
		parts = append(parts, c.PublicationDate)
	}
	return strings.Join(parts, " • ")
}
