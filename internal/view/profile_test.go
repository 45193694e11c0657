package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio/internal/db"
)

func TestBuildProfileViewHonoursVisibility(t *testing.T) {
	t.Parallel()

	profile := db.Profile{
		FullName:     "Jane van Doe",
		JobTitle1:    "Reporter",
		JobTitle3:    "Editor",
		Email:        "jane@example.com",
		Phone:        "+1 555 0100",
		LinkedIn:     "https://www.linkedin.com/in/jane",
		ShowEmail:    true,
		ShowPhone:    false,
		ShowLinkedIn: true,
		LongBio:      "Covers *science*.",
	}

	view := BuildProfileView(profile)

	if view.Initials != "JV" {
		t.Fatalf("expected initials JV, got %q", view.Initials)
	}
	if diff := cmp.Diff([]string{"Reporter", "Editor"}, view.JobTitles); diff != "" {
		t.Fatalf("job titles mismatch (-want +got):\n%s", diff)
	}
	kinds := make([]string, 0, len(view.Contacts))
	for _, contact := range view.Contacts {
		kinds = append(kinds, contact.Kind)
	}
	if diff := cmp.Diff([]string{"email", "linkedin"}, kinds); diff != "" {
		t.Fatalf("contacts mismatch (-want +got):\n%s", diff)
	}
	if view.Contacts[0].Href != "mailto:jane@example.com" {
		t.Fatalf("unexpected email href %q", view.Contacts[0].Href)
	}
	if !strings.Contains(string(view.LongBio), "<em>science</em>") {
		t.Fatalf("expected rendered bio, got %q", view.LongBio)
	}
}

func TestProfileCardTemplate(t *testing.T) {
	t.Parallel()

	view := BuildProfileView(db.Profile{FullName: "Sam", Phone: "555 0100", ShowPhone: true})

	var buf bytes.Buffer
	if err := Templates().ExecuteTemplate(&buf, "profile_card", view); err != nil {
		t.Fatalf("render profile card: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `href="tel:5550100"`) {
		t.Fatalf("expected phone link, got:\n%s", html)
	}
	if !strings.Contains(html, `<span class="profile-initials">S</span>`) {
		t.Fatalf("expected initials fallback, got:\n%s", html)
	}
}

func TestContactIconFallback(t *testing.T) {
	t.Parallel()

	if ContactIconSVG(" EMAIL ") != contactIconLookup["email"] {
		t.Fatalf("expected case-insensitive lookup")
	}
	if ContactIconSVG("fax") != defaultContactIcon {
		t.Fatalf("expected default icon for unknown kind")
	}
}

func TestContentTypeIcons(t *testing.T) {
	t.Parallel()

	options := ContentTypeOptions()
	if len(options) != len(db.ContentTypes) {
		t.Fatalf("expected %d options, got %d", len(db.ContentTypes), len(options))
	}
	for i, option := range options {
		if option.Key != db.ContentTypes[i] {
			t.Fatalf("option %d: expected %q, got %q", i, db.ContentTypes[i], option.Key)
		}
		if ContentTypeIconSVG(option.Key) == defaultContentTypeIcon {
			t.Fatalf("expected a dedicated icon for %q", option.Key)
		}
	}
	if ContentTypeLabel("podcast") != "File" || ContentTypeIconSVG("podcast") != defaultContentTypeIcon {
		t.Fatalf("expected fallback label and icon")
	}
}

func TestBuildDownloadLinks(t *testing.T) {
	t.Parallel()

	links := BuildDownloadLinks([]db.DownloadableFile{
		{FileType: db.FileTypeResumeFull, FileURL: "/static/uploads/resume.pdf"},
		{FileType: db.FileTypePortfolio, FileURL: "javascript:alert(1)"},
		{FileType: "other", FileURL: "https://cdn.example.com/x.pdf", FileName: "x.pdf"},
	})

	want := []DownloadLink{
		{URL: "/static/uploads/resume.pdf", Label: "Full resume"},
		{URL: "https://cdn.example.com/x.pdf", Label: "x.pdf"},
	}
	if diff := cmp.Diff(want, links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}
