package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio/internal/db"
)

func TestDownloadSaveUpserts(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewDownloadService(gdb)
	ctx := context.Background()

	first, err := svc.Save(ctx, DownloadInput{FileType: db.FileTypeResumeFull, FileURL: "https://cdn.example.com/files/resume-2024.pdf"})
	if err != nil {
		t.Fatalf("save download: %v", err)
	}
	if first.FileName != "resume-2024.pdf" {
		t.Fatalf("expected file name from url, got %q", first.FileName)
	}

	second, err := svc.Save(ctx, DownloadInput{FileType: "RESUME_FULL", FileURL: "https://cdn.example.com/files/", FileName: ""})
	if err != nil {
		t.Fatalf("save download: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert to keep id %s, got %s", first.ID, second.ID)
	}
	if second.FileName != "download.pdf" {
		t.Fatalf("expected default file name, got %q", second.FileName)
	}

	var count int64
	gdb.Model(&db.DownloadableFile{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row per type, got %d", count)
	}
}

func TestDownloadListOrderAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewDownloadService(gdb)
	ctx := context.Background()

	for _, fileType := range []string{db.FileTypePortfolio, db.FileTypeResumeFull, db.FileTypeResumeCondensed} {
		if _, err := svc.Save(ctx, DownloadInput{FileType: fileType, FileURL: "https://cdn.example.com/" + fileType + ".pdf", FileName: fileType + ".pdf"}); err != nil {
			t.Fatalf("save %s: %v", fileType, err)
		}
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list downloads: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.FileType)
	}
	if diff := cmp.Diff(db.DownloadFileTypes, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if err := svc.DeleteByType(ctx, db.FileTypePortfolio); err != nil {
		t.Fatalf("delete download: %v", err)
	}
	if _, err := svc.GetByType(ctx, db.FileTypePortfolio); !errors.Is(err, ErrDownloadNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteByType(ctx, db.FileTypePortfolio); !errors.Is(err, ErrDownloadNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDownloadValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewDownloadService(gdb)

	cases := []DownloadInput{
		{FileType: "cover_letter", FileURL: "https://cdn.example.com/a.pdf"},
		{FileType: db.FileTypePortfolio},
		{FileType: db.FileTypePortfolio, FileURL: "not a url"},
	}
	for _, input := range cases {
		if _, err := svc.Save(context.Background(), input); !errors.Is(err, ErrDownloadInvalidInput) {
			t.Fatalf("input %+v: expected invalid input, got %v", input, err)
		}
	}
}
