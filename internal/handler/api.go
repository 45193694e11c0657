package handler

import (
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/document"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/sidebar"
	"github.com/portfolio/internal/view"
)

const defaultSiteName = "Portfolio"

// Options configures an API.
type Options struct {
	UploadDir   string
	UploadURL   string
	IdleTimeout time.Duration
	// SiteBaseURL prefixes canonical page links. Empty leaves them out.
	SiteBaseURL string
	Logger      *zerolog.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	categories  *service.CategoryService
	content     *service.ContentService
	collections *service.CollectionService
	resume      *service.ResumeService
	profiles    *service.ProfileService
	downloads   *service.DownloadService
	renderer    *document.Renderer
	templates   *template.Template
	visitors    *VisitorRegistry
	logger      zerolog.Logger
	uploadDir   string
	uploadURL   string
	siteBaseURL string
	now         func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	uploadURL := strings.TrimRight(strings.TrimSpace(opts.UploadURL), "/")
	if uploadURL == "" {
		uploadURL = "/static/uploads"
	}
	uploadDir := strings.TrimSpace(opts.UploadDir)
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	a := &API{
		categories:  service.NewCategoryService(gdb),
		content:     service.NewContentService(gdb),
		collections: service.NewCollectionService(gdb),
		resume:      service.NewResumeService(gdb),
		profiles:    service.NewProfileService(gdb),
		downloads:   service.NewDownloadService(gdb),
		renderer:    document.NewRenderer(&logger),
		templates:   view.Templates(),
		logger:      logger,
		uploadDir:   uploadDir,
		uploadURL:   uploadURL,
		siteBaseURL: strings.TrimRight(strings.TrimSpace(opts.SiteBaseURL), "/"),
		now:         time.Now,
	}
	a.visitors = NewVisitorRegistry(opts.IdleTimeout, a.newVisitor)
	return a
}

// Visitors exposes the navigator session registry.
func (a *API) Visitors() *VisitorRegistry {
	return a.visitors
}

func (a *API) newVisitor() *Visitor {
	frame := view.NewFrame(a.templates, a.renderer, a.logger)
	source := catalogSource{categories: a.categories, content: a.content}
	return &Visitor{
		Navigator: sidebar.New(source, frame, a.logger),
		Frame:     frame,
	}
}

// catalogSource feeds the sidebar navigator from the content store.
type catalogSource struct {
	categories *service.CategoryService
	content    *service.ContentService
}

func (s catalogSource) ListCategories(ctx context.Context) ([]db.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s catalogSource) ListContentBySubcategory(ctx context.Context, subcategoryID string) ([]db.Content, error) {
	return s.content.ListBySubcategory(ctx, subcategoryID)
}

// page fills the shared page fields. The site is named after the profile
// owner when one is set.
func (a *API) page(c *gin.Context, title string) view.Page {
	name := defaultSiteName
	profile, err := a.profiles.GetOrCreate(c.Request.Context())
	if err != nil {
		a.logger.Warn().Err(err).Msg("load profile for page header")
	} else if strings.TrimSpace(profile.FullName) != "" {
		name = profile.FullName
	}
	page := view.NewPage(title, name, a.now())
	if a.siteBaseURL != "" {
		page.CanonicalURL = a.siteBaseURL + c.Request.URL.Path
	}
	return page
}
