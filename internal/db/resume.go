package db

import "time"

// ResumeEntryType groups timeline entries, e.g. "Jobs" or "Education".
type ResumeEntryType struct {
	Model
	Name      string `gorm:"size:80;not null" json:"name"`
	Icon      string `gorm:"size:16" json:"icon"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// ResumeEntry is one span on the resume timeline. A nil EndDate means the
// entry is ongoing.
type ResumeEntry struct {
	Model
	EntryTypeID string           `gorm:"type:varchar(36);not null;index" json:"entry_type_id"`
	EntryType   *ResumeEntryType `gorm:"foreignKey:EntryTypeID" json:"entry_type,omitempty"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Subtitle    string           `gorm:"size:255" json:"subtitle"`
	StartDate   time.Time        `gorm:"not null;index" json:"date_start"`
	EndDate     *time.Time       `json:"date_end"`
	Description string           `gorm:"type:text" json:"description"`
	MediaURLs   []string         `gorm:"type:text;serializer:json" json:"media_urls"`
	SortOrder   int              `gorm:"default:0" json:"sort_order"`
	Featured    bool             `gorm:"default:false;index" json:"is_featured"`
}

// Ongoing reports whether the entry has no end date.
func (e ResumeEntry) Ongoing() bool {
	return e.EndDate == nil
}
