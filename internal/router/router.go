package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/view"
)

const sessionName = "portfolio_session"

// SetupRouter configures the gin engine with every public and admin route.
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 365 * 24 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(view.Templates())

	uploadURL := strings.TrimRight(strings.TrimSpace(cfg.UploadURLPath), "/")
	if uploadURL == "" {
		uploadURL = "/static/uploads"
	}
	r.Static(uploadURL, cfg.UploadDir)
	if uploadURL != "/uploads" {
		r.Static("/uploads", cfg.UploadDir)
	}
	r.Static("/assets", "./web/assets")

	logger := log.Logger
	api := handler.NewAPI(gdb, handler.Options{
		UploadDir:   cfg.UploadDir,
		UploadURL:   uploadURL,
		IdleTimeout: cfg.SidebarIdleTimeout,
		SiteBaseURL: cfg.SiteBaseURL,
		Logger:      &logger,
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/", api.ShowHome)
	r.GET("/sidebar/categories/:id", api.SelectCategory)
	r.GET("/sidebar/subcategories/:id", api.SelectSubcategory)
	r.GET("/sidebar/documents/:id", api.SelectDocument)
	r.GET("/content/:id", api.ShowContent)
	r.GET("/resume", api.ShowResume)
	r.GET("/collections/:slug", api.ShowCollection)

	public := r.Group("/api")
	{
		public.GET("/categories", api.GetCategories)
		public.GET("/subcategories/:id/content", api.GetSubcategoryContent)
		public.GET("/content/:id", api.GetPublicContent)
		public.GET("/collections", api.GetPublicCollections)
		public.GET("/collections/:slug/content", api.GetCollectionContentBySlug)
		public.GET("/resume", api.GetPublicResume)
		public.GET("/profile", api.GetPublicProfile)
		public.GET("/downloads", api.GetPublicDownloads)
	}

	admin := r.Group("/admin/api")
	{
		admin.GET("/categories", api.GetCategories)
		admin.POST("/categories", api.CreateCategory)
		admin.PUT("/categories/order", api.ReorderCategories)
		admin.GET("/categories/:id", api.GetCategory)
		admin.PUT("/categories/:id", api.UpdateCategory)
		admin.DELETE("/categories/:id", api.DeleteCategory)
		admin.GET("/categories/:id/subcategories", api.GetSubcategories)
		admin.PUT("/categories/:id/subcategories/order", api.ReorderSubcategories)

		admin.POST("/subcategories", api.CreateSubcategory)
		admin.GET("/subcategories/:id", api.GetSubcategory)
		admin.PUT("/subcategories/:id", api.UpdateSubcategory)
		admin.DELETE("/subcategories/:id", api.DeleteSubcategory)

		admin.GET("/content", api.GetContentList)
		admin.POST("/content", api.CreateContent)
		admin.GET("/content/types", api.GetContentTypes)
		admin.GET("/content/:id", api.GetContent)
		admin.PUT("/content/:id", api.UpdateContent)
		admin.DELETE("/content/:id", api.DeleteContent)

		admin.GET("/collections", api.GetCollections)
		admin.POST("/collections", api.CreateCollection)
		admin.GET("/collections/:id", api.GetCollection)
		admin.PUT("/collections/:id", api.UpdateCollection)
		admin.DELETE("/collections/:id", api.DeleteCollection)
		admin.POST("/collections/:id/content", api.AddCollectionContent)
		admin.PUT("/collections/:id/content/order", api.ReorderCollectionContent)
		admin.DELETE("/collections/:id/content/:contentId", api.RemoveCollectionContent)

		admin.GET("/resume/types", api.GetResumeTypes)
		admin.POST("/resume/types", api.CreateResumeType)
		admin.POST("/resume/types/defaults", api.CreateDefaultResumeTypes)
		admin.GET("/resume/types/:id/count", api.CountResumeTypeEntries)
		admin.PUT("/resume/types/:id", api.UpdateResumeType)
		admin.DELETE("/resume/types/:id", api.DeleteResumeType)
		admin.GET("/resume/entries", api.GetResumeEntries)
		admin.POST("/resume/entries", api.CreateResumeEntry)
		admin.GET("/resume/entries/:id", api.GetResumeEntry)
		admin.PUT("/resume/entries/:id", api.UpdateResumeEntry)
		admin.DELETE("/resume/entries/:id", api.DeleteResumeEntry)

		admin.GET("/profile", api.GetProfile)
		admin.PUT("/profile", api.UpdateProfile)

		admin.GET("/downloads", api.GetDownloads)
		admin.GET("/downloads/stats", api.GetDownloadStats)
		admin.PUT("/downloads/:type", api.SaveDownload)
		admin.DELETE("/downloads/:type", api.DeleteDownload)

		admin.POST("/uploads/image", api.UploadImage)
		admin.POST("/uploads/image-url", api.UploadImageByURL)
	}

	return r
}
