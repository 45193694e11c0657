package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/view"
)

var ginOnce sync.Once

func setupTestAPI(t *testing.T) (*API, *gorm.DB) {
	t.Helper()

	ginOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	nop := zerolog.Nop()
	api := NewAPI(gdb, Options{UploadDir: t.TempDir(), UploadURL: "/static/uploads", SiteBaseURL: "https://portfolio.example.com/", Logger: &nop})
	api.now = func() time.Time { return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC) }
	return api, gdb
}

// newPublicEngine wires the public HTML routes the way the router does.
func newPublicEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("portfolio_session", cookie.NewStore([]byte("test-secret"))))
	r.SetHTMLTemplate(view.Templates())
	r.GET("/", api.ShowHome)
	r.GET("/sidebar/categories/:id", api.SelectCategory)
	r.GET("/sidebar/subcategories/:id", api.SelectSubcategory)
	r.GET("/sidebar/documents/:id", api.SelectDocument)
	r.GET("/content/:id", api.ShowContent)
	r.GET("/resume", api.ShowResume)
	r.GET("/collections/:slug", api.ShowCollection)
	return r
}

func serve(r http.Handler, method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// callJSON runs h directly against a test context carrying payload and params.
func callJSON(t *testing.T, h gin.HandlerFunc, method string, payload any, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = encoded
	}
	req := httptest.NewRequest(method, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	h(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

type catalogFixture struct {
	category    db.Category
	subcategory db.Subcategory
	older       db.Content
	newer       db.Content
}

func seedCatalog(t *testing.T, gdb *gorm.DB) catalogFixture {
	t.Helper()

	fx := catalogFixture{category: db.Category{Name: "Writing"}}
	if err := gdb.Create(&fx.category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	fx.subcategory = db.Subcategory{CategoryID: fx.category.ID, Name: "Essays"}
	if err := gdb.Create(&fx.subcategory).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	fx.older = db.Content{SubcategoryID: fx.subcategory.ID, Type: db.ContentTypeArticle, Title: "Older Piece", Body: "Old words"}
	fx.older.CreatedAt = base
	fx.newer = db.Content{SubcategoryID: fx.subcategory.ID, Type: db.ContentTypeArticle, Title: "Newer Piece", Body: "New words"}
	fx.newer.CreatedAt = base.Add(time.Hour)
	for _, item := range []*db.Content{&fx.older, &fx.newer} {
		if err := gdb.Create(item).Error; err != nil {
			t.Fatalf("seed content: %v", err)
		}
	}
	return fx
}
