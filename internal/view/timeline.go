package view

import (
	"fmt"
	"html/template"
	"time"

	"github.com/portfolio/internal/db"
)

const defaultEntryIcon = "📋"

// TimelineEntry is one card on the resume timeline.
type TimelineEntry struct {
	ID          string
	Title       string
	Subtitle    string
	TypeName    string
	TypeIcon    string
	DateRange   string
	Duration    string
	Description template.HTML
	MediaURLs   []string
	MediaLabel  string
	Featured    bool
}

// Timeline is the resume page model. Years run from the latest to the
// earliest year covered by any entry.
type Timeline struct {
	Years   []int
	Entries []TimelineEntry
}

// BuildTimeline lays out entries newest first. Ongoing entries extend to now.
func BuildTimeline(entries []db.ResumeEntry, now time.Time) Timeline {
	timeline := Timeline{Years: yearRange(entries, now)}
	for _, entry := range sortedByStart(entries) {
		typeName, typeIcon := "Unknown Type", defaultEntryIcon
		if entry.EntryType != nil {
			typeName = entry.EntryType.Name
			if entry.EntryType.Icon != "" {
				typeIcon = entry.EntryType.Icon
			}
		}
		timeline.Entries = append(timeline.Entries, TimelineEntry{
			ID:          entry.ID,
			Title:       entry.Title,
			Subtitle:    entry.Subtitle,
			TypeName:    typeName,
			TypeIcon:    typeIcon,
			DateRange:   FormatDateRange(entry.StartDate, entry.EndDate),
			Duration:    FormatDuration(entry.StartDate, entry.EndDate, now),
			Description: Markdown(entry.Description),
			MediaURLs:   entry.MediaURLs,
			MediaLabel:  plural(len(entry.MediaURLs), "attachment", "attachments"),
			Featured:    entry.Featured,
		})
	}
	return timeline
}

func sortedByStart(entries []db.ResumeEntry) []db.ResumeEntry {
	sorted := make([]db.ResumeEntry, len(entries))
	copy(sorted, entries)
	// insertion sort keeps equal start dates in their stored order
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].StartDate.After(sorted[j-1].StartDate); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

func yearRange(entries []db.ResumeEntry, now time.Time) []int {
	if len(entries) == 0 {
		return []int{now.Year()}
	}
	earliest, latest := entries[0].StartDate, entries[0].StartDate
	for _, entry := range entries {
		end := now
		if entry.EndDate != nil {
			end = *entry.EndDate
		}
		if entry.StartDate.Before(earliest) {
			earliest = entry.StartDate
		}
		if end.After(latest) {
			latest = end
		}
	}
	years := make([]int, 0, latest.Year()-earliest.Year()+1)
	for year := latest.Year(); year >= earliest.Year(); year-- {
		years = append(years, year)
	}
	return years
}

// FormatDateRange renders "Jan 2020 — Mar 2022", or "Jan 2020 — Present"
// for an ongoing entry.
func FormatDateRange(start time.Time, end *time.Time) string {
	to := "Present"
	if end != nil {
		to = end.Format("Jan 2006")
	}
	return start.Format("Jan 2006") + " — " + to
}

// FormatDuration counts whole calendar months between start and end (or now)
// and renders them as "7 months", "2 years" or "2 years, 3 months".
func FormatDuration(start time.Time, end *time.Time, now time.Time) string {
	to := now
	if end != nil {
		to = *end
	}
	months := (to.Year()-start.Year())*12 + int(to.Month()) - int(start.Month())
	if months < 0 {
		months = 0
	}
	if months < 12 {
		return plural(months, "month", "months")
	}
	years, rest := months/12, months%12
	if rest == 0 {
		return plural(years, "year", "years")
	}
	return plural(years, "year", "years") + ", " + plural(rest, "month", "months")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
