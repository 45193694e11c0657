package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

type contentRequest struct {
	SubcategoryID       string `json:"subcategory_id"`
	Type                string `json:"type"`
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	SidebarTitle        string `json:"sidebar_title"`
	SidebarSubtitle     string `json:"sidebar_subtitle"`
	Body                string `json:"content"`
	AudioURL            string `json:"audio_url"`
	AuthorName          string `json:"author_name"`
	PublicationName     string `json:"publication_name"`
	PublicationDate     string `json:"publication_date"`
	SourceLink          string `json:"source_link"`
	CopyrightNotice     string `json:"copyright_notice"`
	DownloadEnabled     bool   `json:"download_enabled"`
	ExternalDownloadURL string `json:"external_download_url"`
}

func (r contentRequest) input() service.ContentInput {
	return service.ContentInput{
		SubcategoryID:       r.SubcategoryID,
		Type:                db.ContentType(r.Type),
		Title:               r.Title,
		Subtitle:            r.Subtitle,
		SidebarTitle:        r.SidebarTitle,
		SidebarSubtitle:     r.SidebarSubtitle,
		Body:                r.Body,
		AudioURL:            r.AudioURL,
		AuthorName:          r.AuthorName,
		PublicationName:     r.PublicationName,
		PublicationDate:     r.PublicationDate,
		SourceLink:          r.SourceLink,
		CopyrightNotice:     r.CopyrightNotice,
		DownloadEnabled:     r.DownloadEnabled,
		ExternalDownloadURL: r.ExternalDownloadURL,
	}
}

// GetContentList returns every item, newest first, optionally limited to
// one subcategory via ?subcategory_id=.
func (a *API) GetContentList(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		items []db.Content
		err   error
	)
	if subcategoryID := c.Query("subcategory_id"); subcategoryID != "" {
		items, err = a.content.ListBySubcategory(ctx, subcategoryID)
	} else {
		items, err = a.content.ListAll(ctx)
	}
	if err != nil {
		respondServiceError(c, err, "failed to load content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": items})
}

// GetContent returns one item with the collections it belongs to.
func (a *API) GetContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid content id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	item, err := a.content.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "failed to load content")
		return
	}
	collections, err := a.collections.CollectionsForContent(ctx, id)
	if err != nil {
		respondServiceError(c, err, "failed to load content collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item, "collections": collections})
}

// CreateContent adds an item to a subcategory.
func (a *API) CreateContent(c *gin.Context) {
	var req contentRequest
	if !bindJSON(c, &req, "invalid content payload") {
		return
	}
	item, err := a.content.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to create content")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "content created", "content": item})
}

// UpdateContent replaces the editable fields of an item.
func (a *API) UpdateContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid content id")
	if !ok {
		return
	}
	var req contentRequest
	if !bindJSON(c, &req, "invalid content payload") {
		return
	}
	item, err := a.content.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err, "failed to update content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content updated", "content": item})
}

// DeleteContent removes an item and its collection assignments.
func (a *API) DeleteContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid content id")
	if !ok {
		return
	}
	if err := a.content.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

// GetDownloadStats counts downloadable items per content type.
func (a *API) GetDownloadStats(c *gin.Context) {
	stats, err := a.content.CountDownloadable(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to count downloads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": stats.Total, "by_type": stats.ByType})
}

// GetContentTypes lists the content types for the editor's type picker.
func (a *API) GetContentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": view.ContentTypeOptions()})
}
