package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
)

var (
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategoryInvalidInput    = errors.New("invalid category input")
	ErrSubcategoryNotFound     = errors.New("subcategory not found")
	ErrSubcategoryInvalidInput = errors.New("invalid subcategory input")
)

// CategoryService manages the category / subcategory tree.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// CategoryInput holds the editable category fields. A nil SortOrder appends
// the category at the end.
type CategoryInput struct {
	Name      string
	SortOrder *int
}

func (in CategoryInput) normalize() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate checks the category fields.
func (in CategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 120)),
	)
}

// SubcategoryInput holds the editable subcategory fields.
type SubcategoryInput struct {
	CategoryID string
	Name       string
	SortOrder  *int
}

func (in SubcategoryInput) normalize() SubcategoryInput {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Name = strings.TrimSpace(in.Name)
	return in
}

// Validate checks the subcategory fields.
func (in SubcategoryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CategoryID, validation.Required.Error("category is required")),
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.RuneLength(1, 120)),
	)
}

func preloadOrderedSubcategories(tx *gorm.DB) *gorm.DB {
	return tx.Order(orderBySortThenCreated)
}

// ListCategories returns every category in display order with its
// subcategories embedded in display order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.WithContext(ctx).
		Preload("Subcategories", preloadOrderedSubcategories).
		Order(orderBySortThenCreated).
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a category with its subcategories.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*db.Category, error) {
	var category db.Category
	if err := s.db.WithContext(ctx).
		Preload("Subcategories", preloadOrderedSubcategories).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		return nil, notFoundOr(err, ErrCategoryNotFound, "get category")
	}
	return &category, nil
}

// CreateCategory inserts a category.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*db.Category, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrCategoryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	sortOrder, err := resolveSort(input.SortOrder, tx.Model(&db.Category{}))
	if err != nil {
		return nil, fmt.Errorf("resolve category sort: %w", err)
	}

	category := db.Category{Name: input.Name, SortOrder: sortOrder}
	if err := tx.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory renames or reorders a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*db.Category, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrCategoryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var category db.Category
	if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFoundOr(err, ErrCategoryNotFound, "find category")
	}

	category.Name = input.Name
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if err := tx.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes a category together with its subcategories, their
// content and any collection assignments of that content.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category db.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return notFoundOr(err, ErrCategoryNotFound, "find category")
		}

		var subcategoryIDs []string
		if err := tx.Model(&db.Subcategory{}).Where("category_id = ?", id).Pluck("id", &subcategoryIDs).Error; err != nil {
			return fmt.Errorf("list subcategories: %w", err)
		}
		if err := deleteSubcategoryTree(tx, subcategoryIDs); err != nil {
			return err
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

// ReorderCategories sets the display order to match ids.
func (s *CategoryService) ReorderCategories(ctx context.Context, ids []string) error {
	if err := reorder(ctx, s.db, &db.Category{}, ids, nil); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

// ListSubcategories returns a category's subcategories in display order.
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID string) ([]db.Subcategory, error) {
	var items []db.Subcategory
	if err := s.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order(orderBySortThenCreated).
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return items, nil
}

// GetSubcategory fetches a subcategory by id.
func (s *CategoryService) GetSubcategory(ctx context.Context, id string) (*db.Subcategory, error) {
	var item db.Subcategory
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrSubcategoryNotFound, "get subcategory")
	}
	return &item, nil
}

// CreateSubcategory inserts a subcategory under an existing category.
func (s *CategoryService) CreateSubcategory(ctx context.Context, input SubcategoryInput) (*db.Subcategory, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrSubcategoryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	if err := s.ensureCategory(tx, input.CategoryID); err != nil {
		return nil, err
	}

	sortOrder, err := resolveSort(input.SortOrder, tx.Model(&db.Subcategory{}).Where("category_id = ?", input.CategoryID))
	if err != nil {
		return nil, fmt.Errorf("resolve subcategory sort: %w", err)
	}

	item := db.Subcategory{CategoryID: input.CategoryID, Name: input.Name, SortOrder: sortOrder}
	if err := tx.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return &item, nil
}

// UpdateSubcategory edits a subcategory; it may move to another category.
func (s *CategoryService) UpdateSubcategory(ctx context.Context, id string, input SubcategoryInput) (*db.Subcategory, error) {
	input = input.normalize()
	if err := input.Validate(); err != nil {
		return nil, invalidInput(ErrSubcategoryInvalidInput, err)
	}

	tx := s.db.WithContext(ctx)
	var item db.Subcategory
	if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFoundOr(err, ErrSubcategoryNotFound, "find subcategory")
	}
	if input.CategoryID != item.CategoryID {
		if err := s.ensureCategory(tx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	item.CategoryID = input.CategoryID
	item.Name = input.Name
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if err := tx.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return &item, nil
}

// DeleteSubcategory removes a subcategory and its content.
func (s *CategoryService) DeleteSubcategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item db.Subcategory
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			return notFoundOr(err, ErrSubcategoryNotFound, "find subcategory")
		}
		return deleteSubcategoryTree(tx, []string{item.ID})
	})
}

// ReorderSubcategories sets the display order inside one category.
func (s *CategoryService) ReorderSubcategories(ctx context.Context, categoryID string, ids []string) error {
	scope := func(q *gorm.DB) *gorm.DB { return q.Where("category_id = ?", categoryID) }
	if err := reorder(ctx, s.db, &db.Subcategory{}, ids, scope); err != nil {
		return fmt.Errorf("reorder subcategories: %w", err)
	}
	return nil
}

func (s *CategoryService) ensureCategory(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&db.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("find category: %w", err)
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func deleteSubcategoryTree(tx *gorm.DB, subcategoryIDs []string) error {
	if len(subcategoryIDs) == 0 {
		return nil
	}

	var contentIDs []string
	if err := tx.Model(&db.Content{}).Where("subcategory_id IN ?", subcategoryIDs).Pluck("id", &contentIDs).Error; err != nil {
		return fmt.Errorf("list subcategory content: %w", err)
	}
	if err := deleteContentRows(tx, contentIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", subcategoryIDs).Delete(&db.Subcategory{}).Error; err != nil {
		return fmt.Errorf("delete subcategories: %w", err)
	}
	return nil
}

func deleteContentRows(tx *gorm.DB, contentIDs []string) error {
	if len(contentIDs) == 0 {
		return nil
	}
	if err := tx.Where("content_id IN ?", contentIDs).Delete(&db.ContentCollection{}).Error; err != nil {
		return fmt.Errorf("delete collection assignments: %w", err)
	}
	if err := tx.Where("id IN ?", contentIDs).Delete(&db.Content{}).Error; err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
