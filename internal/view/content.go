package view

import (
	"fmt"
	htmlstd "html"
	"html/template"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/document"
	"github.com/portfolio/internal/sidebar"
)

// Pane states as exposed to templates.
const (
	PaneStateEmpty       = "empty"
	PaneStateNoDocuments = "no-documents"
	PaneStateDocument    = "document"
	PaneStateUnavailable = "unavailable"
)

// ContentView is the template model of the main content pane.
type ContentView struct {
	State       string
	Message     string
	ID          string
	Title       string
	Subtitle    string
	Location    string
	Type        db.ContentType
	TypeLabel   string
	TypeIcon    template.HTML
	Date        string
	Body        template.HTML
	Author      string
	Publication string
	SourceLink  string
	Copyright   string
	DownloadURL string
}

// BuildContentView turns a navigator pane into its template model.
func BuildContentView(pane sidebar.Pane, renderer *document.Renderer) ContentView {
	switch pane.Kind {
	case sidebar.PaneDocument:
		if pane.Content == nil {
			return ContentView{State: PaneStateUnavailable, Message: "This item could not be loaded."}
		}
		view := ContentItemView(*pane.Content, renderer)
		view.Location = joinLocation(pane.CategoryName, pane.SubcategoryName)
		return view
	case sidebar.PaneNoDocuments:
		return ContentView{
			State:    PaneStateNoDocuments,
			Location: joinLocation(pane.CategoryName, pane.SubcategoryName),
			Message:  "There are no documents in this subcategory yet.",
		}
	case sidebar.PaneUnavailable:
		return ContentView{State: PaneStateUnavailable, Message: "Content is unavailable right now. Please try again later."}
	default:
		return ContentView{State: PaneStateEmpty, Message: "Select an item from the sidebar."}
	}
}

// ContentItemView builds the pane model for a single content item.
func ContentItemView(c db.Content, renderer *document.Renderer) ContentView {
	return ContentView{
		State:       PaneStateDocument,
		ID:          c.ID,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Type:        c.Type,
		TypeLabel:   ContentTypeLabel(c.Type),
		TypeIcon:    template.HTML(ContentTypeIconSVG(c.Type)),
		Date:        displayDate(c),
		Body:        ContentBody(c, renderer),
		Author:      c.AuthorName,
		Publication: c.PublicationName,
		SourceLink:  linkOrEmpty(c.SourceLink),
		Copyright:   c.CopyrightNotice,
		DownloadURL: linkOrEmpty(c.DownloadURL()),
	}
}

// ContentBody renders the item body according to its type.
func ContentBody(c db.Content, renderer *document.Renderer) template.HTML {
	switch c.Type {
	case db.ContentTypeArticle:
		if renderer == nil {
			return template.HTML(document.Render(c.Body))
		}
		return template.HTML(renderer.Render(c.Body))
	case db.ContentTypeImage:
		src, ok := safeMediaURL(c.Body)
		if !ok {
			return unavailableMedia()
		}
		return template.HTML(fmt.Sprintf(
			`<div class="content-media content-image"><img src="%s" alt="%s" loading="lazy"></div>`,
			htmlstd.EscapeString(src), htmlstd.EscapeString(c.Title),
		))
	case db.ContentTypeVideo:
		video, ok := ResolveVideo(c.Body)
		if !ok {
			return unavailableMedia()
		}
		return VideoHTML(video, c.Title)
	case db.ContentTypeAudio:
		src, ok := safeMediaURL(c.AudioURL)
		if !ok {
			return unavailableMedia()
		}
		return template.HTML(fmt.Sprintf(
			`<div class="content-media content-audio"><audio controls preload="metadata" src="%s">Your browser does not support the audio element.</audio></div>`,
			htmlstd.EscapeString(src),
		))
	default:
		return unavailableMedia()
	}
}

func unavailableMedia() template.HTML {
	return template.HTML(document.Unavailable)
}

func joinLocation(category, subcategory string) string {
	switch {
	case category != "" && subcategory != "":
		return category + " → " + subcategory
	case category != "":
		return category
	default:
		return subcategory
	}
}

// displayDate prefers the publication date and falls back to the creation
// date, formatted like "March 1, 2024".
func displayDate(c db.Content) string {
	if c.PublicationDate != "" {
		if t, err := time.Parse("2006-01-02", c.PublicationDate); err == nil {
			return t.Format("January 2, 2006")
		}
		return c.PublicationDate
	}
	if c.CreatedAt.IsZero() {
		return ""
	}
	return c.CreatedAt.Format("January 2, 2006")
}

func linkOrEmpty(raw string) string {
	if src, ok := safeMediaURL(raw); ok {
		return src
	}
	return ""
}

// MetaLine describes the item the way the sidebar does, e.g.
// "Writing → Essays • ARTICLE • March 1, 2024".
func (v ContentView) MetaLine() string {
	parts := make([]string, 0, 3)
	if v.Location != "" {
		parts = append(parts, v.Location)
	}
	if v.Type != "" {
		parts = append(parts, strings.ToUpper(string(v.Type)))
	}
	if v.Date != "" {
		parts = append(parts, v.Date)
	}
	return strings.Join(parts, " • ")
}
