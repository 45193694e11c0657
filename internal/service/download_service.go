package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
)

var (
	ErrDownloadNotFound     = errors.New("downloadable file not found")
	ErrDownloadInvalidInput = errors.New("invalid downloadable file input")
)

const defaultDownloadName = "download.pdf"

// DownloadService manages the resume and portfolio downloads.
type DownloadService struct {
	db *gorm.DB
}

// NewDownloadService creates a DownloadService.
func NewDownloadService(gdb *gorm.DB) *DownloadService {
	return &DownloadService{db: gdb}
}

// DownloadInput describes a file to offer. An empty FileName is derived from
// the URL path.
type DownloadInput struct {
	FileType string
	FileURL  string
	FileName string
}

func (in DownloadInput) normalize() DownloadInput {
	in.FileType = strings.ToLower(strings.TrimSpace(in.FileType))
	in.FileURL = strings.TrimSpace(in.FileURL)
	in.FileName = strings.TrimSpace(in.FileName)
	if in.FileName == "" {
		in.FileName = fileNameFromURL(in.FileURL)
	}
	return in
}

// Validate checks the download fields.
func (in DownloadInput) Validate() error {
	types := make([]any, 0, len(db.DownloadFileTypes))
	for _, t := range db.DownloadFileTypes {
		types = append(types, t)
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.FileType, validation.Required.Error("file type is required"), validation.In(types...).Error("unknown file type")),
		validation.Field(&in.FileURL, validation.Required.Error("file url is required"), is.URL),
		validation.Field(&in.FileName, validation.RuneLength(1, 255)),
	)
}

// List returns every configured download in file type order.
func (s *DownloadService) List(ctx context.Context) ([]db.DownloadableFile, error) {
	var items []db.DownloadableFile
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	rank := make(map[string]int, len(db.DownloadFileTypes))
	for i, t := range db.DownloadFileTypes {
		rank[t] = i
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank[items[i].FileType] < rank[items[j].FileType]
	})
	return items, nil
}

// GetByType fetches the download of one file type.
func (s *DownloadService) GetByType(ctx context.Context, fileType string) (*db.DownloadableFile, error) {
	var item db.DownloadableFile
	if err := s.db.WithContext(ctx).Where("file_type = ?", strings.ToLower(strings.TrimSpace(fileType))).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrDownloadNotFound, "get download")
	}
	return &item, nil
}

// Save creates the download for input.FileType or replaces the existing one.
func (s *DownloadService) Save(ctx context.Context, input DownloadInput) (*db.DownloadableFile, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrDownloadInvalidInput, err)
	}

	var item db.DownloadableFile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("file_type = ?", input.FileType).First(&item).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find download: %w", err)
		}
		item.FileType = input.FileType
		item.FileURL = input.FileURL
		item.FileName = input.FileName
		if item.ID == "" {
			return tx.Create(&item).Error
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save download: %w", err)
	}
	return &item, nil
}

// DeleteByType removes the download of one file type.
func (s *DownloadService) DeleteByType(ctx context.Context, fileType string) error {
	result := s.db.WithContext(ctx).
		Where("file_type = ?", strings.ToLower(strings.TrimSpace(fileType))).
		Delete(&db.DownloadableFile{})
	if result.Error != nil {
		return fmt.Errorf("delete download: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDownloadNotFound
	}
	return nil
}

func fileNameFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Path == "" || strings.HasSuffix(parsed.Path, "/") {
		return defaultDownloadName
	}
	return path.Base(parsed.Path)
}
