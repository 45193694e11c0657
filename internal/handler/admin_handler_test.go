package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/db"
)

func TestCategoryLifecycle(t *testing.T) {
	api, gdb := setupTestAPI(t)

	blank := callJSON(t, api.CreateCategory, http.MethodPost, map[string]any{"name": "  "}, nil)
	if blank.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank name, got %d", blank.Code)
	}

	created := callJSON(t, api.CreateCategory, http.MethodPost, map[string]any{"name": "Photography"}, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", created.Code, created.Body.String())
	}
	category := decodeBody(t, created)["category"].(map[string]any)
	id := category["id"].(string)

	sub := callJSON(t, api.CreateSubcategory, http.MethodPost, map[string]any{"category_id": id, "name": "Portraits"}, nil)
	if sub.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", sub.Code, sub.Body.String())
	}

	deleted := callJSON(t, api.DeleteCategory, http.MethodDelete, nil, gin.Params{{Key: "id", Value: id}})
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", deleted.Code)
	}
	var remaining int64
	gdb.Model(&db.Subcategory{}).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("expected subcategories to be removed, %d left", remaining)
	}

	again := callJSON(t, api.DeleteCategory, http.MethodDelete, nil, gin.Params{{Key: "id", Value: id}})
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", again.Code)
	}
}

func TestCreateSubcategoryUnknownCategory(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := callJSON(t, api.CreateSubcategory, http.MethodPost, map[string]any{"category_id": "missing", "name": "Portraits"}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestCreateContentValidation(t *testing.T) {
	api, gdb := setupTestAPI(t)
	fx := seedCatalog(t, gdb)

	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{name: "unknown type", payload: map[string]any{"subcategory_id": fx.subcategory.ID, "type": "podcast", "title": "X"}, want: http.StatusBadRequest},
		{name: "video without url", payload: map[string]any{"subcategory_id": fx.subcategory.ID, "type": "video", "title": "X"}, want: http.StatusBadRequest},
		{name: "unknown subcategory", payload: map[string]any{"subcategory_id": "missing", "type": "article", "title": "X"}, want: http.StatusNotFound},
		{name: "valid", payload: map[string]any{"subcategory_id": fx.subcategory.ID, "type": "Audio", "title": "Episode 1", "audio_url": "https://cdn.example.com/ep1.mp3"}, want: http.StatusCreated},
	}

	for _, tt := range tests {
		w := callJSON(t, api.CreateContent, http.MethodPost, tt.payload, nil)
		if w.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d: %s", tt.name, tt.want, w.Code, w.Body.String())
		}
	}
}

func TestGetContentIncludesCollections(t *testing.T) {
	api, gdb := setupTestAPI(t)
	fx := seedCatalog(t, gdb)

	created := callJSON(t, api.CreateCollection, http.MethodPost, map[string]any{"name": "Best Of"}, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", created.Code, created.Body.String())
	}
	collection := decodeBody(t, created)["collection"].(map[string]any)
	if collection["slug"] != "best-of" {
		t.Fatalf("expected derived slug, got %v", collection["slug"])
	}
	collectionID := collection["id"].(string)

	added := callJSON(t, api.AddCollectionContent, http.MethodPost, map[string]any{"content_id": fx.newer.ID}, gin.Params{{Key: "id", Value: collectionID}})
	if added.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", added.Code, added.Body.String())
	}
	duplicate := callJSON(t, api.AddCollectionContent, http.MethodPost, map[string]any{"content_id": fx.newer.ID}, gin.Params{{Key: "id", Value: collectionID}})
	if duplicate.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", duplicate.Code)
	}

	w := callJSON(t, api.GetContent, http.MethodGet, nil, gin.Params{{Key: "id", Value: fx.newer.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	collections := decodeBody(t, w)["collections"].([]any)
	if len(collections) != 1 {
		t.Fatalf("expected one collection, got %d", len(collections))
	}

	removed := callJSON(t, api.RemoveCollectionContent, http.MethodDelete, nil, gin.Params{{Key: "id", Value: collectionID}, {Key: "contentId", Value: fx.newer.ID}})
	if removed.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", removed.Code)
	}
}

func TestCreateCollectionSlugTaken(t *testing.T) {
	api, _ := setupTestAPI(t)

	first := callJSON(t, api.CreateCollection, http.MethodPost, map[string]any{"name": "Features"}, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", first.Code)
	}
	second := callJSON(t, api.CreateCollection, http.MethodPost, map[string]any{"name": "Other", "slug": "FEATURES"}, nil)
	if second.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", second.Code)
	}
}

func TestResumeEntryDates(t *testing.T) {
	api, _ := setupTestAPI(t)

	typeResp := callJSON(t, api.CreateResumeType, http.MethodPost, map[string]any{"name": "Jobs"}, nil)
	if typeResp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", typeResp.Code)
	}
	typeID := decodeBody(t, typeResp)["entry_type"].(map[string]any)["id"].(string)

	badDate := callJSON(t, api.CreateResumeEntry, http.MethodPost, map[string]any{"entry_type_id": typeID, "title": "Writer", "date_start": "last spring"}, nil)
	if badDate.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", badDate.Code)
	}

	reversed := callJSON(t, api.CreateResumeEntry, http.MethodPost, map[string]any{"entry_type_id": typeID, "title": "Writer", "date_start": "2022-05-01", "date_end": "2021-01-01"}, nil)
	if reversed.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for end before start, got %d", reversed.Code)
	}

	ongoing := callJSON(t, api.CreateResumeEntry, http.MethodPost, map[string]any{"entry_type_id": typeID, "title": "Writer", "date_start": "2022-05", "date_end": ""}, nil)
	if ongoing.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", ongoing.Code, ongoing.Body.String())
	}
	entry := decodeBody(t, ongoing)["entry"].(map[string]any)
	if entry["date_end"] != nil {
		t.Fatalf("expected ongoing entry, got end %v", entry["date_end"])
	}
}

func TestResumeTypeNamesAndDefaults(t *testing.T) {
	api, _ := setupTestAPI(t)

	created := callJSON(t, api.CreateResumeType, http.MethodPost, map[string]any{"name": "Jobs"}, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", created.Code)
	}
	typeID := decodeBody(t, created)["entry_type"].(map[string]any)["id"].(string)

	duplicate := callJSON(t, api.CreateResumeType, http.MethodPost, map[string]any{"name": "  JOBS "}, nil)
	if duplicate.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", duplicate.Code)
	}

	entry := callJSON(t, api.CreateResumeEntry, http.MethodPost, map[string]any{"entry_type_id": typeID, "title": "Writer", "date_start": "2022-05-01"}, nil)
	if entry.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", entry.Code)
	}
	count := callJSON(t, api.CountResumeTypeEntries, http.MethodGet, nil, gin.Params{{Key: "id", Value: typeID}})
	if count.Code != http.StatusOK || decodeBody(t, count)["count"] != float64(1) {
		t.Fatalf("expected one entry, got %d: %s", count.Code, count.Body.String())
	}
	missing := callJSON(t, api.CountResumeTypeEntries, http.MethodGet, nil, gin.Params{{Key: "id", Value: "missing"}})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", missing.Code)
	}

	defaults := callJSON(t, api.CreateDefaultResumeTypes, http.MethodPost, nil, nil)
	if defaults.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", defaults.Code)
	}
	if got := len(decodeBody(t, defaults)["created"].([]any)); got != 4 {
		t.Fatalf("expected 4 defaults created next to Jobs, got %d", got)
	}
}

func TestProfileAndPublicCard(t *testing.T) {
	api, _ := setupTestAPI(t)

	hide := false
	saved := callJSON(t, api.UpdateProfile, http.MethodPut, map[string]any{
		"full_name":   "Jane Doe",
		"job_title_1": "Reporter",
		"email":       "jane@example.com",
		"phone":       "555 0100",
		"show_phone":  hide,
	}, nil)
	if saved.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", saved.Code, saved.Body.String())
	}

	badEmail := callJSON(t, api.UpdateProfile, http.MethodPut, map[string]any{"email": "not-an-email"}, nil)
	if badEmail.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", badEmail.Code)
	}

	w := callJSON(t, api.GetPublicProfile, http.MethodGet, nil, nil)
	card := decodeBody(t, w)["profile"].(map[string]any)
	if card["email"] != "jane@example.com" {
		t.Fatalf("expected visible email, got %v", card["email"])
	}
	if _, ok := card["phone"]; ok {
		t.Fatalf("expected hidden phone to be omitted, got %v", card["phone"])
	}
}

func TestDownloadsUpsertByType(t *testing.T) {
	api, gdb := setupTestAPI(t)
	params := gin.Params{{Key: "type", Value: db.FileTypeResumeFull}}

	for _, fileURL := range []string{"https://cdn.example.com/cv-v1.pdf", "https://cdn.example.com/cv-v2.pdf"} {
		w := callJSON(t, api.SaveDownload, http.MethodPut, map[string]any{"file_url": fileURL}, params)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	}
	var count int64
	gdb.Model(&db.DownloadableFile{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}

	unknown := callJSON(t, api.SaveDownload, http.MethodPut, map[string]any{"file_url": "https://cdn.example.com/x.pdf"}, gin.Params{{Key: "type", Value: "brochure"}})
	if unknown.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", unknown.Code)
	}

	deleted := callJSON(t, api.DeleteDownload, http.MethodDelete, nil, params)
	if deleted.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", deleted.Code)
	}
	missing := callJSON(t, api.DeleteDownload, http.MethodDelete, nil, params)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", missing.Code)
	}
}
