package view

import (
	"strings"
	"testing"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/document"
	"github.com/portfolio/internal/sidebar"
)

func TestBuildContentViewPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pane      sidebar.Pane
		wantState string
		wantMsg   string
		wantLoc   string
	}{
		{name: "empty", pane: sidebar.Pane{Kind: sidebar.PaneEmpty}, wantState: PaneStateEmpty, wantMsg: "Select an item"},
		{
			name:      "no documents",
			pane:      sidebar.Pane{Kind: sidebar.PaneNoDocuments, CategoryName: "Writing", SubcategoryName: "Essays"},
			wantState: PaneStateNoDocuments,
			wantMsg:   "no documents",
			wantLoc:   "Writing → Essays",
		},
		{name: "unavailable", pane: sidebar.Pane{Kind: sidebar.PaneUnavailable}, wantState: PaneStateUnavailable, wantMsg: "unavailable"},
		{name: "document without content", pane: sidebar.Pane{Kind: sidebar.PaneDocument}, wantState: PaneStateUnavailable, wantMsg: "could not be loaded"},
	}

	for _, tt := range tests {
		view := BuildContentView(tt.pane, nil)
		if view.State != tt.wantState {
			t.Fatalf("%s: expected state %q, got %q", tt.name, tt.wantState, view.State)
		}
		if !strings.Contains(view.Message, tt.wantMsg) {
			t.Fatalf("%s: expected message containing %q, got %q", tt.name, tt.wantMsg, view.Message)
		}
		if view.Location != tt.wantLoc {
			t.Fatalf("%s: expected location %q, got %q", tt.name, tt.wantLoc, view.Location)
		}
	}
}

func TestBuildContentViewArticle(t *testing.T) {
	t.Parallel()

	content := db.Content{
		Type:            db.ContentTypeArticle,
		Title:           "On Deadlines",
		Body:            `{"blocks":[{"type":"header","data":{"text":"Hi","level":1}}]}`,
		PublicationDate: "2024-03-01",
		AuthorName:      "A. Writer",
		SourceLink:      "https://news.example.com/deadlines",
	}
	content.ID = "c1"

	view := BuildContentView(sidebar.Pane{
		Kind:            sidebar.PaneDocument,
		Content:         &content,
		CategoryName:    "Writing",
		SubcategoryName: "Essays",
	}, document.NewRenderer(nil))

	if view.State != PaneStateDocument {
		t.Fatalf("expected document state, got %q", view.State)
	}
	if string(view.Body) != "<h1>Hi</h1>" {
		t.Fatalf("unexpected body %q", view.Body)
	}
	if got := view.MetaLine(); got != "Writing → Essays • ARTICLE • March 1, 2024" {
		t.Fatalf("unexpected meta line %q", got)
	}
	if view.TypeLabel != "Article" || view.SourceLink != "https://news.example.com/deadlines" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.DownloadURL != "" {
		t.Fatalf("expected no download link, got %q", view.DownloadURL)
	}
}

func TestContentBodyByType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content db.Content
		want    string
	}{
		{
			name:    "image",
			content: db.Content{Type: db.ContentTypeImage, Title: `Cats & "dogs"`, Body: "/static/uploads/cat.png"},
			want:    `<img src="/static/uploads/cat.png" alt="Cats &amp; &#34;dogs&#34;" loading="lazy">`,
		},
		{
			name:    "image with unsafe url",
			content: db.Content{Type: db.ContentTypeImage, Body: "javascript:alert(1)"},
			want:    document.Unavailable,
		},
		{
			name:    "video",
			content: db.Content{Type: db.ContentTypeVideo, Body: "https://youtu.be/abc"},
			want:    `src="https://www.youtube.com/embed/abc?`,
		},
		{
			name:    "audio",
			content: db.Content{Type: db.ContentTypeAudio, AudioURL: "https://cdn.example.com/ep1.mp3"},
			want:    `<audio controls preload="metadata" src="https://cdn.example.com/ep1.mp3">`,
		},
		{
			name:    "audio without url",
			content: db.Content{Type: db.ContentTypeAudio, Body: "https://cdn.example.com/ep1.mp3"},
			want:    document.Unavailable,
		},
		{
			name:    "unknown type",
			content: db.Content{Type: "podcast"},
			want:    document.Unavailable,
		},
	}

	for _, tt := range tests {
		got := string(ContentBody(tt.content, nil))
		if !strings.Contains(got, tt.want) {
			t.Fatalf("%s: expected %q in %q", tt.name, tt.want, got)
		}
	}
}

func TestContentItemViewDownload(t *testing.T) {
	t.Parallel()

	content := db.Content{
		Type:            db.ContentTypeImage,
		Body:            "https://cdn.example.com/photo.jpg",
		DownloadEnabled: true,
	}
	content.CreatedAt = time.Date(2023, time.July, 4, 10, 0, 0, 0, time.UTC)

	view := ContentItemView(content, nil)
	if view.DownloadURL != "https://cdn.example.com/photo.jpg" {
		t.Fatalf("expected body download url, got %q", view.DownloadURL)
	}
	if view.Date != "July 4, 2023" {
		t.Fatalf("expected created date fallback, got %q", view.Date)
	}
}
