package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio/internal/db"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func entryTitles(items []db.ResumeEntry) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}

func TestResumeEntriesTimelineOrder(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	jobs, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Jobs", Icon: "💼"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	school, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Education"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	if school.SortOrder != jobs.SortOrder+1 {
		t.Fatalf("expected appended sort order, got %d after %d", school.SortOrder, jobs.SortOrder)
	}

	end := date(2019, time.June)
	inputs := []ResumeEntryInput{
		{EntryTypeID: school.ID, Title: "University", StartDate: date(2012, time.September), EndDate: &end},
		{EntryTypeID: jobs.ID, Title: "Editor", StartDate: date(2021, time.March), Featured: true, MediaURLs: []string{" https://cdn.example.com/a.jpg ", ""}},
		{EntryTypeID: jobs.ID, Title: "Reporter", StartDate: date(2019, time.July)},
	}
	for _, input := range inputs {
		if _, err := svc.CreateEntry(ctx, input); err != nil {
			t.Fatalf("create entry %q: %v", input.Title, err)
		}
	}

	all, err := svc.ListEntries(ctx)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if diff := cmp.Diff([]string{"Editor", "Reporter", "University"}, entryTitles(all)); diff != "" {
		t.Fatalf("timeline order mismatch (-want +got):\n%s", diff)
	}
	if all[0].EntryType == nil || all[0].EntryType.Name != "Jobs" {
		t.Fatalf("expected entry type to be preloaded, got %+v", all[0].EntryType)
	}
	if diff := cmp.Diff([]string{"https://cdn.example.com/a.jpg"}, all[0].MediaURLs); diff != "" {
		t.Fatalf("media urls mismatch (-want +got):\n%s", diff)
	}
	if !all[1].Ongoing() || all[2].Ongoing() {
		t.Fatalf("unexpected ongoing flags")
	}

	byType, err := svc.ListEntriesByType(ctx, jobs.ID)
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if diff := cmp.Diff([]string{"Editor", "Reporter"}, entryTitles(byType)); diff != "" {
		t.Fatalf("by type mismatch (-want +got):\n%s", diff)
	}

	featured, err := svc.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if diff := cmp.Diff([]string{"Editor"}, entryTitles(featured)); diff != "" {
		t.Fatalf("featured mismatch (-want +got):\n%s", diff)
	}
}

func TestResumeEntryValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	jobs, _ := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Jobs"})
	early := date(2010, time.January)

	cases := []struct {
		name  string
		input ResumeEntryInput
		want  error
	}{
		{name: "missing title", input: ResumeEntryInput{EntryTypeID: jobs.ID, StartDate: date(2020, time.January)}, want: ErrResumeEntryInvalidInput},
		{name: "missing start", input: ResumeEntryInput{EntryTypeID: jobs.ID, Title: "x"}, want: ErrResumeEntryInvalidInput},
		{name: "end before start", input: ResumeEntryInput{EntryTypeID: jobs.ID, Title: "x", StartDate: date(2020, time.January), EndDate: &early}, want: ErrResumeEntryInvalidInput},
		{name: "unknown type", input: ResumeEntryInput{EntryTypeID: "missing", Title: "x", StartDate: date(2020, time.January)}, want: ErrResumeTypeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateEntry(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestResumeUpdateAndDelete(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	jobs, _ := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Jobs"})
	entry, err := svc.CreateEntry(ctx, ResumeEntryInput{EntryTypeID: jobs.ID, Title: "Intern", StartDate: date(2018, time.May)})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	end := date(2018, time.August)
	updated, err := svc.UpdateEntry(ctx, entry.ID, ResumeEntryInput{EntryTypeID: jobs.ID, Title: "Summer intern", StartDate: date(2018, time.May), EndDate: &end})
	if err != nil {
		t.Fatalf("update entry: %v", err)
	}
	if updated.Title != "Summer intern" || updated.Ongoing() {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	renamed, err := svc.UpdateEntryType(ctx, jobs.ID, ResumeEntryTypeInput{Name: "Work", Icon: "W"})
	if err != nil {
		t.Fatalf("update entry type: %v", err)
	}
	if renamed.Name != "Work" {
		t.Fatalf("expected rename, got %+v", renamed)
	}

	if err := svc.DeleteEntryType(ctx, jobs.ID); err != nil {
		t.Fatalf("delete entry type: %v", err)
	}
	if _, err := svc.GetEntry(ctx, entry.ID); !errors.Is(err, ErrResumeEntryNotFound) {
		t.Fatalf("expected entries of deleted type to be removed, got %v", err)
	}
	if err := svc.DeleteEntry(ctx, entry.ID); !errors.Is(err, ErrResumeEntryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.GetEntryType(ctx, jobs.ID); !errors.Is(err, ErrResumeTypeNotFound) {
		t.Fatalf("expected type not found, got %v", err)
	}
}

func TestResumeEntryTypeNamesAreUnique(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	jobs, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Jobs"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	if _, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: " jobs "}); !errors.Is(err, ErrResumeEntryTypeNameTaken) {
		t.Fatalf("expected ErrResumeEntryTypeNameTaken, got %v", err)
	}

	school, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Education"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	if _, err := svc.UpdateEntryType(ctx, school.ID, ResumeEntryTypeInput{Name: "JOBS"}); !errors.Is(err, ErrResumeEntryTypeNameTaken) {
		t.Fatalf("expected rename onto an existing name to fail, got %v", err)
	}
	if _, err := svc.UpdateEntryType(ctx, jobs.ID, ResumeEntryTypeInput{Name: "jobs", Icon: "💼"}); err != nil {
		t.Fatalf("expected renaming a type to its own name to succeed, got %v", err)
	}

	types, err := svc.ListEntryTypes(ctx)
	if err != nil {
		t.Fatalf("list entry types: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 entry types, got %d", len(types))
	}
}

func TestEnsureDefaultEntryTypesSkipsExistingNames(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	if _, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "education"}); err != nil {
		t.Fatalf("create entry type: %v", err)
	}

	created, err := svc.EnsureDefaultEntryTypes(ctx)
	if err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	names := make([]string, 0, len(created))
	for _, item := range created {
		names = append(names, item.Name)
	}
	if diff := cmp.Diff([]string{"Jobs", "Projects", "Awards", "Publications"}, names); diff != "" {
		t.Fatalf("created defaults mismatch (-want +got):\n%s", diff)
	}

	again, err := svc.EnsureDefaultEntryTypes(ctx)
	if err != nil {
		t.Fatalf("ensure defaults again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected no new defaults, got %d", len(again))
	}

	types, err := svc.ListEntryTypes(ctx)
	if err != nil {
		t.Fatalf("list entry types: %v", err)
	}
	if len(types) != 5 {
		t.Fatalf("expected 5 entry types, got %d", len(types))
	}
}

func TestCountEntriesByType(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewResumeService(gdb)
	ctx := context.Background()

	jobs, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Jobs"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	awards, err := svc.CreateEntryType(ctx, ResumeEntryTypeInput{Name: "Awards"})
	if err != nil {
		t.Fatalf("create entry type: %v", err)
	}
	for _, title := range []string{"Reporter", "Editor"} {
		if _, err := svc.CreateEntry(ctx, ResumeEntryInput{EntryTypeID: jobs.ID, Title: title, StartDate: date(2020, time.January)}); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	if count, err := svc.CountEntriesByType(ctx, jobs.ID); err != nil || count != 2 {
		t.Fatalf("expected 2 job entries, got %d (%v)", count, err)
	}
	if count, err := svc.CountEntriesByType(ctx, awards.ID); err != nil || count != 0 {
		t.Fatalf("expected 0 award entries, got %d (%v)", count, err)
	}
	if _, err := svc.CountEntriesByType(ctx, "missing"); !errors.Is(err, ErrResumeTypeNotFound) {
		t.Fatalf("expected ErrResumeTypeNotFound, got %v", err)
	}
}
