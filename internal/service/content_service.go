package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
)

var (
	ErrContentNotFound     = errors.New("content not found")
	ErrContentInvalidInput = errors.New("invalid content input")
)

const orderByNewest = "created_at desc"

// ContentService manages publishable content items.
type ContentService struct {
	db *gorm.DB
}

// NewContentService creates a ContentService.
func NewContentService(gdb *gorm.DB) *ContentService {
	return &ContentService{db: gdb}
}

// ContentInput holds the editable content fields.
type ContentInput struct {
	SubcategoryID       string
	Type                db.ContentType
	Title               string
	Subtitle            string
	SidebarTitle        string
	SidebarSubtitle     string
	Body                string
	AudioURL            string
	AuthorName          string
	PublicationName     string
	PublicationDate     string
	SourceLink          string
	CopyrightNotice     string
	DownloadEnabled     bool
	ExternalDownloadURL string
}

func (in ContentInput) normalize() ContentInput {
	in.SubcategoryID = strings.TrimSpace(in.SubcategoryID)
	in.Type = db.ContentType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.SidebarTitle = strings.TrimSpace(in.SidebarTitle)
	in.SidebarSubtitle = strings.TrimSpace(in.SidebarSubtitle)
	in.AudioURL = strings.TrimSpace(in.AudioURL)
	in.AuthorName = strings.TrimSpace(in.AuthorName)
	in.PublicationName = strings.TrimSpace(in.PublicationName)
	in.PublicationDate = strings.TrimSpace(in.PublicationDate)
	in.SourceLink = strings.TrimSpace(in.SourceLink)
	in.CopyrightNotice = strings.TrimSpace(in.CopyrightNotice)
	in.ExternalDownloadURL = strings.TrimSpace(in.ExternalDownloadURL)
	if in.Type != db.ContentTypeArticle {
		in.Body = strings.TrimSpace(in.Body)
	}
	return in
}

// Validate checks the content fields. Image and video items need a media URL
// in Body; audio items need AudioURL.
func (in ContentInput) Validate() error {
	types := make([]any, 0, len(db.ContentTypes))
	for _, t := range db.ContentTypes {
		types = append(types, t)
	}
	needsMedia := in.Type == db.ContentTypeImage || in.Type == db.ContentTypeVideo
	return validation.ValidateStruct(&in,
		validation.Field(&in.SubcategoryID, validation.Required.Error("subcategory is required")),
		validation.Field(&in.Type, validation.Required.Error("type is required"), validation.In(types...).Error("type must be article, image, video or audio")),
		validation.Field(&in.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 255)),
		validation.Field(&in.Body, validation.When(needsMedia, validation.Required.Error("media url is required"))),
		validation.Field(&in.AudioURL, validation.When(in.Type == db.ContentTypeAudio, validation.Required.Error("audio url is required"))),
		validation.Field(&in.PublicationDate, validation.Date("2006-01-02").Error("publication date must be YYYY-MM-DD")),
		validation.Field(&in.SourceLink, is.URL),
	)
}

func (in ContentInput) apply(item *db.Content) {
	item.SubcategoryID = in.SubcategoryID
	item.Type = in.Type
	item.Title = in.Title
	item.Subtitle = in.Subtitle
	item.SidebarTitle = in.SidebarTitle
	item.SidebarSubtitle = in.SidebarSubtitle
	item.Body = in.Body
	item.AudioURL = in.AudioURL
	item.AuthorName = in.AuthorName
	item.PublicationName = in.PublicationName
	item.PublicationDate = in.PublicationDate
	item.SourceLink = in.SourceLink
	item.CopyrightNotice = in.CopyrightNotice
	item.DownloadEnabled = in.DownloadEnabled
	item.ExternalDownloadURL = in.ExternalDownloadURL
}

// DownloadStats counts download-enabled content per type.
type DownloadStats struct {
	Total  int64
	ByType map[db.ContentType]int64
}

// ListAll returns every content item, newest first.
func (s *ContentService) ListAll(ctx context.Context) ([]db.Content, error) {
	var items []db.Content
	if err := s.db.WithContext(ctx).Order(orderByNewest).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// ListBySubcategory returns a subcategory's content, newest first.
func (s *ContentService) ListBySubcategory(ctx context.Context, subcategoryID string) ([]db.Content, error) {
	var items []db.Content
	if err := s.db.WithContext(ctx).
		Where("subcategory_id = ?", subcategoryID).
		Order(orderByNewest).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list subcategory content: %w", err)
	}
	return items, nil
}

// Get fetches a content item by id.
func (s *ContentService) Get(ctx context.Context, id string) (*db.Content, error) {
	var item db.Content
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrContentNotFound, "get content")
	}
	return &item, nil
}

// Create inserts a content item into an existing subcategory.
func (s *ContentService) Create(ctx context.Context, input ContentInput) (*db.Content, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrContentInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	if err := ensureSubcategory(tx, input.SubcategoryID); err != nil {
		return nil, err
	}

	var item db.Content
	input.apply(&item)
	if err := tx.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return &item, nil
}

// Update replaces the editable fields of a content item.
func (s *ContentService) Update(ctx context.Context, id string, input ContentInput) (*db.Content, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrContentInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var item db.Content
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrContentNotFound, "find content")
	}
	if input.SubcategoryID != item.SubcategoryID {
		if err := ensureSubcategory(tx, input.SubcategoryID); err != nil {
			return nil, err
		}
	}

	input.apply(&item)
	if err := tx.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return &item, nil
}

// Delete removes a content item and its collection assignments.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Content{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("find content: %w", err)
		}
		if count == 0 {
			return ErrContentNotFound
		}
		return deleteContentRows(tx, []string{id})
	})
}

// CountDownloadable reports how many items offer a download, per type.
func (s *ContentService) CountDownloadable(ctx context.Context) (DownloadStats, error) {
	stats := DownloadStats{ByType: make(map[db.ContentType]int64, len(db.ContentTypes))}

	var rows []struct {
		Type  db.ContentType
		Count int64
	}
	if err := s.db.WithContext(ctx).Model(&db.Content{}).
		Select("type, COUNT(*) AS count").
		Where("download_enabled = ?", true).
		Group("type").
		Scan(&rows).Error; err != nil {
		return stats, fmt.Errorf("count downloadable content: %w", err)
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
		stats.Total += row.Count
	}
	return stats, nil
}

func ensureSubcategory(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&db.Subcategory{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("find subcategory: %w", err)
	}
	if count == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}
