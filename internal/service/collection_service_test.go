package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/portfolio/internal/db"
)

func TestCollectionSlugGeneration(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewCollectionService(gdb)
	ctx := context.Background()

	item, err := svc.Create(ctx, CollectionInput{Name: "My Great Post!"})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if item.Slug != "my-great-post" {
		t.Fatalf("expected slug my-great-post, got %q", item.Slug)
	}

	custom, err := svc.Create(ctx, CollectionInput{Name: "Other", Slug: "  Field Notes "})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if custom.Slug != "field-notes" {
		t.Fatalf("expected normalized custom slug, got %q", custom.Slug)
	}

	if _, err := svc.Create(ctx, CollectionInput{Name: "My great post"}); !errors.Is(err, ErrCollectionSlugTaken) {
		t.Fatalf("expected slug taken, got %v", err)
	}
	if _, err := svc.Create(ctx, CollectionInput{Name: "!!!"}); !errors.Is(err, ErrCollectionInvalidInput) {
		t.Fatalf("expected invalid input for empty slug, got %v", err)
	}

	if _, err := svc.Update(ctx, custom.ID, CollectionInput{Name: "Other", Slug: "my-great-post"}); !errors.Is(err, ErrCollectionSlugTaken) {
		t.Fatalf("expected slug taken on update, got %v", err)
	}
	same, err := svc.Update(ctx, item.ID, CollectionInput{Name: "My Great Post!", Description: "updated"})
	if err != nil {
		t.Fatalf("update keeping own slug: %v", err)
	}
	if same.Description != "updated" {
		t.Fatalf("expected description update, got %+v", same)
	}

	bySlug, err := svc.GetBySlug(ctx, "MY-GREAT-POST")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != item.ID {
		t.Fatalf("expected %s, got %s", item.ID, bySlug.ID)
	}
	if _, err := svc.GetBySlug(ctx, "nope"); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCollectionContentOrdering(t *testing.T) {
	gdb := setupTestDB(t)
	sub := seedSubcategory(t, gdb)
	contents := NewContentService(gdb)
	svc := NewCollectionService(gdb)
	ctx := context.Background()

	col, err := svc.Create(ctx, CollectionInput{Name: "Highlights"})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		item, err := contents.Create(ctx, ContentInput{SubcategoryID: sub.ID, Type: db.ContentTypeArticle, Title: title})
		if err != nil {
			t.Fatalf("create content: %v", err)
		}
		if _, err := svc.AddContent(ctx, col.ID, item.ID, nil); err != nil {
			t.Fatalf("add content: %v", err)
		}
		ids = append(ids, item.ID)
	}

	items, err := svc.ListContent(ctx, col.ID)
	if err != nil {
		t.Fatalf("list content: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second", "third"}, contentTitles(items)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	if err := svc.ReorderContent(ctx, col.ID, []string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("reorder content: %v", err)
	}
	items, _ = svc.ListContent(ctx, col.ID)
	if diff := cmp.Diff([]string{"third", "first", "second"}, contentTitles(items)); diff != "" {
		t.Fatalf("order mismatch after reorder (-want +got):\n%s", diff)
	}

	if _, err := svc.AddContent(ctx, col.ID, ids[0], nil); !errors.Is(err, ErrCollectionContentExists) {
		t.Fatalf("expected duplicate assignment error, got %v", err)
	}
	if _, err := svc.AddContent(ctx, col.ID, "missing", nil); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected missing content error, got %v", err)
	}
	if _, err := svc.AddContent(ctx, "missing", ids[0], nil); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected missing collection error, got %v", err)
	}

	memberOf, err := svc.CollectionsForContent(ctx, ids[1])
	if err != nil {
		t.Fatalf("collections for content: %v", err)
	}
	if len(memberOf) != 1 || memberOf[0].ID != col.ID {
		t.Fatalf("expected membership in %s, got %+v", col.ID, memberOf)
	}

	if err := svc.RemoveContent(ctx, col.ID, ids[1]); err != nil {
		t.Fatalf("remove content: %v", err)
	}
	if err := svc.RemoveContent(ctx, col.ID, ids[1]); !errors.Is(err, ErrCollectionContentNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}

	if err := svc.Delete(ctx, col.ID); err != nil {
		t.Fatalf("delete collection: %v", err)
	}
	if _, err := contents.Get(ctx, ids[0]); err != nil {
		t.Fatalf("deleting a collection must keep content: %v", err)
	}
	var links int64
	gdb.Model(&db.ContentCollection{}).Count(&links)
	if links != 0 {
		t.Fatalf("expected assignments to be removed, got %d", links)
	}
}
