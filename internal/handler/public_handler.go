package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/sidebar"
	"github.com/portfolio/internal/view"
)

const fragmentContentType = "text/html; charset=utf-8"

// ShowHome renders the portfolio with a fresh sidebar selection on the first
// category, subcategory and document.
func (a *API) ShowHome(c *gin.Context) {
	ctx := c.Request.Context()
	visitor := a.visitors.Start(visitorID(c))

	visitor.mu.Lock()
	visitor.Navigator.AutoSelectFirstContent(ctx)
	home := visitor.Frame.Home(a.page(c, ""))
	visitor.mu.Unlock()

	profile, err := a.profiles.GetOrCreate(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("load profile for home page")
	} else {
		card := view.BuildProfileView(*profile)
		home.Profile = &card
	}
	files, err := a.downloads.List(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("load downloads for home page")
	} else {
		home.Downloads = view.BuildDownloadLinks(files)
	}

	c.HTML(http.StatusOK, "home.html", home)
}

// SelectCategory applies a category click and returns the changed fragments.
func (a *API) SelectCategory(c *gin.Context) {
	a.applySelection(c, func(ctx context.Context, nav *sidebar.Navigator, id string) {
		nav.SelectCategory(ctx, id)
	})
}

// SelectSubcategory applies a subcategory click and returns the changed fragments.
func (a *API) SelectSubcategory(c *gin.Context) {
	a.applySelection(c, func(ctx context.Context, nav *sidebar.Navigator, id string) {
		nav.SelectSubcategory(ctx, id)
	})
}

// SelectDocument applies a document click and returns the changed fragments.
func (a *API) SelectDocument(c *gin.Context) {
	a.applySelection(c, func(_ context.Context, nav *sidebar.Navigator, id string) {
		nav.SelectDocument(id)
	})
}

// applySelection runs one navigator transition for the calling visitor. A
// visitor without live state (expired or never loaded) is rebuilt first, so
// the response then carries every target.
func (a *API) applySelection(c *gin.Context, apply func(context.Context, *sidebar.Navigator, string)) {
	ctx := c.Request.Context()
	visitor, created := a.visitors.Get(visitorID(c))

	visitor.mu.Lock()
	if created {
		visitor.Navigator.AutoSelectFirstContent(ctx)
	}
	apply(ctx, visitor.Navigator, c.Param("id"))
	fragments := visitor.Frame.Flush()
	visitor.mu.Unlock()

	c.Data(http.StatusOK, fragmentContentType, view.JoinFragments(fragments))
}

// ShowContent renders the content pane for one item.
func (a *API) ShowContent(c *gin.Context) {
	ctx := c.Request.Context()
	pane := sidebar.Pane{Kind: sidebar.PaneUnavailable}
	status := http.StatusOK

	item, err := a.content.Get(ctx, c.Param("id"))
	switch {
	case errors.Is(err, service.ErrContentNotFound):
		status = http.StatusNotFound
	case err != nil:
		a.logger.Error().Err(err).Str("content_id", c.Param("id")).Msg("load content")
		status = http.StatusInternalServerError
	default:
		pane = sidebar.Pane{Kind: sidebar.PaneDocument, Content: item}
		pane.CategoryName, pane.SubcategoryName = a.locationNames(ctx, item.SubcategoryID)
	}

	c.HTML(status, "content_pane", view.PaneView{View: view.BuildContentView(pane, a.renderer)})
}

func (a *API) locationNames(ctx context.Context, subcategoryID string) (string, string) {
	subcategory, err := a.categories.GetSubcategory(ctx, subcategoryID)
	if err != nil {
		a.logger.Warn().Err(err).Str("subcategory_id", subcategoryID).Msg("resolve content location")
		return "", ""
	}
	category, err := a.categories.GetCategory(ctx, subcategory.CategoryID)
	if err != nil {
		a.logger.Warn().Err(err).Str("category_id", subcategory.CategoryID).Msg("resolve content location")
		return "", subcategory.Name
	}
	return category.Name, subcategory.Name
}

// ShowResume renders the resume timeline.
func (a *API) ShowResume(c *gin.Context) {
	entries, err := a.resume.ListEntries(c.Request.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("load resume entries")
		a.showError(c, http.StatusInternalServerError, "Resume unavailable", "The resume could not be loaded. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "resume.html", view.ResumePage{
		Page:     a.page(c, "Resume"),
		Timeline: view.BuildTimeline(entries, a.now()),
	})
}

// ShowCollection renders a collection page by slug.
func (a *API) ShowCollection(c *gin.Context) {
	ctx := c.Request.Context()
	collection, err := a.collections.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCollectionNotFound) {
			a.showError(c, http.StatusNotFound, "Collection not found", "There is no collection at this address.")
			return
		}
		a.logger.Error().Err(err).Str("slug", c.Param("slug")).Msg("load collection")
		a.showError(c, http.StatusInternalServerError, "Collection unavailable", "The collection could not be loaded. Please try again later.")
		return
	}

	items, err := a.collections.ListContent(ctx, collection.ID)
	if err != nil {
		a.logger.Error().Err(err).Str("collection_id", collection.ID).Msg("load collection content")
		a.showError(c, http.StatusInternalServerError, "Collection unavailable", "The collection could not be loaded. Please try again later.")
		return
	}

	c.HTML(http.StatusOK, "collection.html", view.CollectionPage{
		Page:       a.page(c, collection.Name),
		Collection: view.BuildCollectionView(*collection, items, a.renderer),
	})
}

func (a *API) showError(c *gin.Context, status int, title, message string) {
	c.HTML(status, "error.html", view.ErrorPage{Page: a.page(c, title), Message: message})
}
