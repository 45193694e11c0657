package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
)

type collectionRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sort_order"`
}

type collectionContentRequest struct {
	ContentID string `json:"content_id"`
	SortOrder *int   `json:"sort_order"`
}

func (r collectionRequest) input() service.CollectionInput {
	return service.CollectionInput{Name: r.Name, Slug: r.Slug, Description: r.Description, SortOrder: r.SortOrder}
}

// GetCollections lists every collection.
func (a *API) GetCollections(c *gin.Context) {
	collections, err := a.collections.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load collections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

// GetCollection returns one collection with its ordered content.
func (a *API) GetCollection(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	collection, err := a.collections.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "failed to load collection")
		return
	}
	items, err := a.collections.ListContent(ctx, id)
	if err != nil {
		respondServiceError(c, err, "failed to load collection content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection, "content": items})
}

// CreateCollection adds a collection. A blank slug is derived from the name.
func (a *API) CreateCollection(c *gin.Context) {
	var req collectionRequest
	if !bindJSON(c, &req, "invalid collection payload") {
		return
	}
	collection, err := a.collections.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to create collection")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "collection created", "collection": collection})
}

// UpdateCollection edits a collection.
func (a *API) UpdateCollection(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	var req collectionRequest
	if !bindJSON(c, &req, "invalid collection payload") {
		return
	}
	collection, err := a.collections.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err, "failed to update collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "collection updated", "collection": collection})
}

// DeleteCollection removes a collection; its content stays.
func (a *API) DeleteCollection(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	if err := a.collections.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "collection deleted"})
}

// AddCollectionContent assigns an item to a collection.
func (a *API) AddCollectionContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	var req collectionContentRequest
	if !bindJSON(c, &req, "invalid collection content payload") {
		return
	}
	link, err := a.collections.AddContent(c.Request.Context(), id, req.ContentID, req.SortOrder)
	if err != nil {
		respondServiceError(c, err, "failed to add content to collection")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "content added", "collection_id": link.CollectionID, "content_id": link.ContentID, "sort_order": link.SortOrder})
}

// RemoveCollectionContent unassigns an item from a collection.
func (a *API) RemoveCollectionContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	contentID, ok := requireParam(c, "contentId", "invalid content id")
	if !ok {
		return
	}
	if err := a.collections.RemoveContent(c.Request.Context(), id, contentID); err != nil {
		respondServiceError(c, err, "failed to remove content from collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content removed"})
}

// ReorderCollectionContent stores a new item order within a collection.
func (a *API) ReorderCollectionContent(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid collection id")
	if !ok {
		return
	}
	var req reorderRequest
	if !bindJSON(c, &req, "invalid order payload") {
		return
	}
	if err := a.collections.ReorderContent(c.Request.Context(), id, req.IDs); err != nil {
		respondServiceError(c, err, "failed to reorder collection")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order saved"})
}
