package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/slug"
)

var (
	ErrCollectionNotFound        = errors.New("collection not found")
	ErrCollectionInvalidInput    = errors.New("invalid collection input")
	ErrCollectionSlugTaken       = errors.New("collection slug is already in use")
	ErrCollectionContentExists   = errors.New("content is already in the collection")
	ErrCollectionContentNotFound = errors.New("content is not in the collection")
)

// CollectionService manages collections and their ordered content.
type CollectionService struct {
	db *gorm.DB
}

// NewCollectionService creates a CollectionService.
func NewCollectionService(gdb *gorm.DB) *CollectionService {
	return &CollectionService{db: gdb}
}

// CollectionInput holds the editable collection fields. An empty Slug is
// derived from Name.
type CollectionInput struct {
	Name        string
	Slug        string
	Description string
	SortOrder   *int
}

func (in CollectionInput) normalize() CollectionInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	source := strings.TrimSpace(in.Slug)
	if source == "" {
		source = in.Name
	}
	in.Slug = slug.Generate(source)
	return in
}

// Validate checks the collection fields after normalization.
func (in CollectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 120)),
		validation.Field(&in.Slug, validation.Required.Error("slug must contain letters or digits"), validation.RuneLength(1, 160)),
	)
}

// List returns all collections in display order.
func (s *CollectionService) List(ctx context.Context) ([]db.Collection, error) {
	var items []db.Collection
	if err := s.db.WithContext(ctx).Order(orderBySortThenCreated).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return items, nil
}

// Get fetches a collection by id.
func (s *CollectionService) Get(ctx context.Context, id string) (*db.Collection, error) {
	var item db.Collection
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrCollectionNotFound, "get collection")
	}
	return &item, nil
}

// GetBySlug fetches a collection by its URL slug.
func (s *CollectionService) GetBySlug(ctx context.Context, value string) (*db.Collection, error) {
	var item db.Collection
	if err := s.db.WithContext(ctx).Where("slug = ?", strings.ToLower(strings.TrimSpace(value))).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrCollectionNotFound, "get collection by slug")
	}
	return &item, nil
}

// Create inserts a collection. The slug must be unique.
func (s *CollectionService) Create(ctx context.Context, input CollectionInput) (*db.Collection, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrCollectionInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	if err := s.ensureSlugFree(tx, input.Slug, ""); err != nil {
		return nil, err
	}
	sortOrder, err := resolveSort(input.SortOrder, tx.Model(&db.Collection{}))
	if err != nil {
		return nil, fmt.Errorf("resolve collection sort: %w", err)
	}

	item := db.Collection{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		SortOrder:   sortOrder,
	}
	if err := tx.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &item, nil
}

// Update edits a collection.
func (s *CollectionService) Update(ctx context.Context, id string, input CollectionInput) (*db.Collection, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrCollectionInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var item db.Collection
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrCollectionNotFound, "find collection")
	}
	if err := s.ensureSlugFree(tx, input.Slug, item.ID); err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Slug = input.Slug
	item.Description = input.Description
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if err := tx.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}
	return &item, nil
}

// Delete removes a collection and its assignments. Content is kept.
func (s *CollectionService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item db.Collection
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return notFoundOr(err, ErrCollectionNotFound, "find collection")
		}
		if err := tx.Where("collection_id = ?", id).Delete(&db.ContentCollection{}).Error; err != nil {
			return fmt.Errorf("delete collection assignments: %w", err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("delete collection: %w", err)
		}
		return nil
	})
}

// ListContent returns a collection's content in assignment order.
func (s *CollectionService) ListContent(ctx context.Context, collectionID string) ([]db.Content, error) {
	var items []db.Content
	if err := s.db.WithContext(ctx).
		Joins("JOIN content_collections ON content_collections.content_id = contents.id").
		Where("content_collections.collection_id = ?", collectionID).
		Order("content_collections.sort_order asc, content_collections.id asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list collection content: %w", err)
	}
	return items, nil
}

// CollectionsForContent returns the collections a content item belongs to.
func (s *CollectionService) CollectionsForContent(ctx context.Context, contentID string) ([]db.Collection, error) {
	var items []db.Collection
	if err := s.db.WithContext(ctx).
		Joins("JOIN content_collections ON content_collections.collection_id = collections.id").
		Where("content_collections.content_id = ?", contentID).
		Order("collections.sort_order asc, collections.created_at asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list content collections: %w", err)
	}
	return items, nil
}

// AddContent assigns content to a collection. A nil sortOrder appends it.
func (s *CollectionService) AddContent(ctx context.Context, collectionID, contentID string, sortOrder *int) (*db.ContentCollection, error) {
	tx := s.db.WithContext(ctx)

	var count int64
	if err := tx.Model(&db.Collection{}).Where("id = ?", collectionID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find collection: %w", err)
	}
	if count == 0 {
		return nil, ErrCollectionNotFound
	}
	if err := tx.Model(&db.Content{}).Where("id = ?", contentID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}
	if count == 0 {
		return nil, ErrContentNotFound
	}
	if err := tx.Model(&db.ContentCollection{}).
		Where("collection_id = ? AND content_id = ?", collectionID, contentID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("find collection assignment: %w", err)
	}
	if count > 0 {
		return nil, ErrCollectionContentExists
	}

	order, err := resolveSort(sortOrder, tx.Model(&db.ContentCollection{}).Where("collection_id = ?", collectionID))
	if err != nil {
		return nil, fmt.Errorf("resolve collection content sort: %w", err)
	}

	link := db.ContentCollection{CollectionID: collectionID, ContentID: contentID, SortOrder: order}
	if err := tx.Omit("Content", "Collection").Create(&link).Error; err != nil {
		return nil, fmt.Errorf("add collection content: %w", err)
	}
	return &link, nil
}

// RemoveContent removes content from a collection.
func (s *CollectionService) RemoveContent(ctx context.Context, collectionID, contentID string) error {
	result := s.db.WithContext(ctx).
		Where("collection_id = ? AND content_id = ?", collectionID, contentID).
		Delete(&db.ContentCollection{})
	if result.Error != nil {
		return fmt.Errorf("remove collection content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCollectionContentNotFound
	}
	return nil
}

// ReorderContent sets the order of content inside a collection to match
// contentIDs.
func (s *CollectionService) ReorderContent(ctx context.Context, collectionID string, contentIDs []string) error {
	if len(contentIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, contentID := range contentIDs {
			if err := tx.Model(&db.ContentCollection{}).
				Where("collection_id = ? AND content_id = ?", collectionID, contentID).
				Update("sort_order", index).Error; err != nil {
				return fmt.Errorf("reorder collection content: %w", err)
			}
		}
		return nil
	})
}

func (s *CollectionService) ensureSlugFree(tx *gorm.DB, value, exceptID string) error {
	query := tx.Model(&db.Collection{}).Where("slug = ?", value)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check collection slug: %w", err)
	}
	if count > 0 {
		return ErrCollectionSlugTaken
	}
	return nil
}
