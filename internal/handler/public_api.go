package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/db"
)

// GetCategories returns the navigation tree.
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetSubcategoryContent returns the items of one subcategory, newest first.
func (a *API) GetSubcategoryContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid subcategory id")
	if !ok {
		return
	}
	items, err := a.content.ListBySubcategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// GetPublicContent returns one item together with its rendered body.
func (a *API) GetPublicContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid content id")
	if !ok {
		return
	}
	item, err := a.content.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load content")
		return
	}
	body := ""
	if item.Type == db.ContentTypeArticle {
		body = a.renderer.Render(item.Body)
	}
	c.JSON(http.StatusOK, gin.H{"content": item, "html": body, "download_url": item.DownloadURL()})
}

// GetPublicCollections lists every collection.
func (a *API) GetPublicCollections(c *gin.Context) {
	collections, err := a.collections.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetCollectionContentBySlug returns a collection and its ordered items.
func (a *API) GetCollectionContentBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	collection, err := a.collections.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "failed to load collection")
		return
	}
	items, err := a.collections.ListContent(ctx, collection.ID)
	if err != nil {
		respondServiceError(c, err, "failed to load collection content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection, "content": items})
}

// GetPublicResume returns the entry types and the timeline entries.
func (a *API) GetPublicResume(c *gin.Context) {
	ctx := c.Request.Context()
	types, err := a.resume.ListEntryTypes(ctx)
	if err != nil {
		respondServiceError(c, err, "failed to load resume")
		return
	}
	entries, err := a.resume.ListEntries(ctx)
	if err != nil {
		respondServiceError(c, err, "failed to load resume")
		return
	}
	featured, err := a.resume.ListFeatured(ctx)
	if err != nil {
		respondServiceError(c, err, "failed to load resume")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_types": types, "entries": entries, "featured": featured})
}

// GetPublicProfile returns the business card with hidden contacts removed.
func (a *API) GetPublicProfile(c *gin.Context) {
	card, err := a.profiles.PublicCard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": card})
}

// GetPublicDownloads lists the downloadable documents.
func (a *API) GetPublicDownloads(c *gin.Context) {
	files, err := a.downloads.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load downloads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloads": files})
}
