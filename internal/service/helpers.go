package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const orderBySortThenCreated = "sort_order asc, created_at asc"

// nextSortOrder returns one past the highest sort_order matched by query, so
// new rows land at the end. An empty match yields 0.
func nextSortOrder(query *gorm.DB) (int, error) {
	var maxOrder int
	if err := query.Select("COALESCE(MAX(sort_order), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// resolveSort keeps an explicit order and otherwise appends.
func resolveSort(sortPtr *int, query *gorm.DB) (int, error) {
	if sortPtr != nil {
		return *sortPtr, nil
	}
	return nextSortOrder(query)
}

// reorder assigns sort_order 0,1,2... to ids in the given order. Rows not
// listed keep their current order.
func reorder(ctx context.Context, gdb *gorm.DB, model any, ids []string, scope func(*gorm.DB) *gorm.DB) error {
	if len(ids) == 0 {
		return nil
	}
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for index, id := range ids {
			query := tx.Model(model).Where("id = ?", id)
			if scope != nil {
				query = scope(query)
			}
			if err := query.Update("sort_order", index).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func invalidInput(sentinel error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func notFoundOr(err, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", action, err)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
