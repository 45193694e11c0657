package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portfolio/internal/db"
)

var (
	ErrResumeTypeNotFound     = errors.New("resume entry type not found")
	ErrResumeTypeInvalidInput = errors.New("invalid resume entry type input")
	// ErrResumeEntryTypeNameTaken ignores case and surrounding spaces.
	ErrResumeEntryTypeNameTaken = errors.New("resume entry type name already exists")
	ErrResumeEntryNotFound      = errors.New("resume entry not found")
	ErrResumeEntryInvalidInput  = errors.New("invalid resume entry input")
)

const orderByTimeline = "start_date desc, sort_order asc, created_at asc"

// DefaultEntryTypes are the starter entry types offered on an empty resume.
var DefaultEntryTypes = []ResumeEntryTypeInput{
	{Name: "Jobs", Icon: "💼"},
	{Name: "Education", Icon: "🎓"},
	{Name: "Projects", Icon: "🚀"},
	{Name: "Awards", Icon: "🏆"},
	{Name: "Publications", Icon: "📚"},
}

// ResumeService manages resume entry types and timeline entries.
type ResumeService struct {
	db *gorm.DB
}

// NewResumeService creates a ResumeService.
func NewResumeService(gdb *gorm.DB) *ResumeService {
	return &ResumeService{db: gdb}
}

// ResumeEntryTypeInput holds the editable entry type fields.
type ResumeEntryTypeInput struct {
	Name      string
	Icon      string
	SortOrder *int
}

func (in ResumeEntryTypeInput) normalize() ResumeEntryTypeInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	return in
}

// Validate checks the entry type fields.
func (in ResumeEntryTypeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 80)),
		validation.Field(&in.Icon, validation.RuneLength(0, 16)),
	)
}

// ResumeEntryInput holds the editable entry fields. A nil EndDate marks the
// entry as ongoing.
type ResumeEntryInput struct {
	EntryTypeID string
	Title       string
	Subtitle    string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
	MediaURLs   []string
	SortOrder   int
	Featured    bool
}

func (in ResumeEntryInput) normalize() ResumeEntryInput {
	in.EntryTypeID = strings.TrimSpace(in.EntryTypeID)
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.Description = strings.TrimSpace(in.Description)
	in.MediaURLs = trimAll(in.MediaURLs)
	return in
}

// Validate checks the entry fields.
func (in ResumeEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.EntryTypeID, validation.Required.Error("entry type is required")),
		validation.Field(&in.Title, validation.Required.Error("title is required"), validation.RuneLength(1, 255)),
		validation.Field(&in.StartDate, validation.Required.Error("start date is required")),
		validation.Field(&in.EndDate, validation.By(func(value any) error {
			end, _ := value.(*time.Time)
			if end != nil && end.Before(in.StartDate) {
				return errors.New("end date must not be before start date")
			}
			return nil
		})),
	)
}

func (in ResumeEntryInput) apply(entry *db.ResumeEntry) {
	entry.EntryTypeID = in.EntryTypeID
	entry.Title = in.Title
	entry.Subtitle = in.Subtitle
	entry.StartDate = in.StartDate
	entry.EndDate = in.EndDate
	entry.Description = in.Description
	entry.MediaURLs = in.MediaURLs
	entry.SortOrder = in.SortOrder
	entry.Featured = in.Featured
}

// ListEntryTypes returns entry types in display order.
func (s *ResumeService) ListEntryTypes(ctx context.Context) ([]db.ResumeEntryType, error) {
	var items []db.ResumeEntryType
	if err := s.db.WithContext(ctx).Order(orderBySortThenCreated).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list resume entry types: %w", err)
	}
	return items, nil
}

// GetEntryType fetches an entry type by id.
func (s *ResumeService) GetEntryType(ctx context.Context, id string) (*db.ResumeEntryType, error) {
	var item db.ResumeEntryType
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrResumeTypeNotFound, "get resume entry type")
	}
	return &item, nil
}

// CreateEntryType inserts an entry type.
func (s *ResumeService) CreateEntryType(ctx context.Context, input ResumeEntryTypeInput) (*db.ResumeEntryType, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrResumeTypeInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	if err := ensureEntryTypeNameFree(tx, input.Name, ""); err != nil {
		return nil, err
	}
	sortOrder, err := resolveSort(input.SortOrder, tx.Model(&db.ResumeEntryType{}))
	if err != nil {
		return nil, fmt.Errorf("resolve resume entry type sort: %w", err)
	}

	item := db.ResumeEntryType{Name: input.Name, Icon: input.Icon, SortOrder: sortOrder}
	if err := tx.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create resume entry type: %w", err)
	}
	return &item, nil
}

// UpdateEntryType edits an entry type.
func (s *ResumeService) UpdateEntryType(ctx context.Context, id string, input ResumeEntryTypeInput) (*db.ResumeEntryType, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrResumeTypeInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var item db.ResumeEntryType
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrResumeTypeNotFound, "find resume entry type")
	}
	if err := ensureEntryTypeNameFree(tx, input.Name, item.ID); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Icon = input.Icon
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if err := tx.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update resume entry type: %w", err)
	}
	return &item, nil
}

// DeleteEntryType removes an entry type and every entry of that type.
func (s *ResumeService) DeleteEntryType(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item db.ResumeEntryType
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return notFoundOr(err, ErrResumeTypeNotFound, "find resume entry type")
		}
		if err := tx.Where("entry_type_id = ?", id).Delete(&db.ResumeEntry{}).Error; err != nil {
			return fmt.Errorf("delete resume entries: %w", err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete resume entry type: %w", err)
		}
		return nil
	})
}

// EnsureDefaultEntryTypes creates the DefaultEntryTypes whose names are not
// taken yet and returns the ones it created.
func (s *ResumeService) EnsureDefaultEntryTypes(ctx context.Context) ([]db.ResumeEntryType, error) {
	created := make([]db.ResumeEntryType, 0, len(DefaultEntryTypes))
	for _, input := range DefaultEntryTypes {
		item, err := s.CreateEntryType(ctx, input)
		if errors.Is(err, ErrResumeEntryTypeNameTaken) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create default entry type %q: %w", input.Name, err)
		}
		created = append(created, *item)
	}
	return created, nil
}

// CountEntriesByType reports how many entries use the entry type.
func (s *ResumeService) CountEntriesByType(ctx context.Context, entryTypeID string) (int64, error) {
	tx := s.db.WithContext(ctx)
	if err := s.ensureEntryType(tx, entryTypeID); err != nil {
		return 0, err
	}
	var count int64
	if err := tx.Model(&db.ResumeEntry{}).Where("entry_type_id = ?", entryTypeID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count resume entries: %w", err)
	}
	return count, nil
}

// ListEntries returns every entry, most recent start first, with its type.
func (s *ResumeService) ListEntries(ctx context.Context) ([]db.ResumeEntry, error) {
	return s.listEntries(ctx, nil)
}

// ListEntriesByType returns the entries of one type.
func (s *ResumeService) ListEntriesByType(ctx context.Context, entryTypeID string) ([]db.ResumeEntry, error) {
	return s.listEntries(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("entry_type_id = ?", entryTypeID)
	})
}

// ListFeatured returns entries flagged for the profile highlights.
func (s *ResumeService) ListFeatured(ctx context.Context) ([]db.ResumeEntry, error) {
	return s.listEntries(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("featured = ?", true)
	})
}

func (s *ResumeService) listEntries(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]db.ResumeEntry, error) {
	query := s.db.WithContext(ctx).Preload("EntryType")
	if scope != nil {
		query = scope(query)
	}
	var items []db.ResumeEntry
	if err := query.Order(orderByTimeline).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list resume entries: %w", err)
	}
	return items, nil
}

// GetEntry fetches an entry by id with its type.
func (s *ResumeService) GetEntry(ctx context.Context, id string) (*db.ResumeEntry, error) {
	var item db.ResumeEntry
	if err := s.db.WithContext(ctx).Preload("EntryType").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrResumeEntryNotFound, "get resume entry")
	}
	return &item, nil
}

// CreateEntry inserts a timeline entry.
func (s *ResumeService) CreateEntry(ctx context.Context, input ResumeEntryInput) (*db.ResumeEntry, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrResumeEntryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	if err := s.ensureEntryType(tx, input.EntryTypeID); err != nil {
		return nil, err
	}

	var item db.ResumeEntry
	input.apply(&item)
	if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create resume entry: %w", err)
	}
	return &item, nil
}

// UpdateEntry replaces the editable fields of an entry.
func (s *ResumeService) UpdateEntry(ctx context.Context, id string, input ResumeEntryInput) (*db.ResumeEntry, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrResumeEntryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var item db.ResumeEntry
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrResumeEntryNotFound, "find resume entry")
	}
	if input.EntryTypeID != item.EntryTypeID {
		if err := s.ensureEntryType(tx, input.EntryTypeID); err != nil {
			return nil, err
		}
	}

	input.apply(&item)
	if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update resume entry: %w", err)
	}
	return &item, nil
}

// DeleteEntry removes an entry.
func (s *ResumeService) DeleteEntry(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&db.ResumeEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete resume entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResumeEntryNotFound
	}
	return nil
}

func (s *ResumeService) ensureEntryType(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&db.ResumeEntryType{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("find resume entry type: %w", err)
	}
	if count == 0 {
		return ErrResumeTypeNotFound
	}
	return nil
}

func ensureEntryTypeNameFree(tx *gorm.DB, name, exceptID string) error {
	query := tx.Model(&db.ResumeEntryType{}).Where("LOWER(TRIM(name)) = ?", strings.ToLower(strings.TrimSpace(name)))
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check resume entry type name: %w", err)
	}
	if count > 0 {
		return ErrResumeEntryTypeNameTaken
	}
	return nil
}
