package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
)

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sort_order"`
}

type subcategoryRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	SortOrder  *int   `json:"sort_order"`
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// GetCategory returns one category with its subcategories.
func (a *API) GetCategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid category id")
	if !ok {
		return
	}
	category, err := a.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory adds a category.
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "invalid category payload") {
		return
	}
	category, err := a.categories.CreateCategory(c.Request.Context(), service.CategoryInput{Name: req.Name, SortOrder: req.SortOrder})
	if err != nil {
		respondServiceError(c, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "category created", "category": category})
}

// UpdateCategory renames or moves a category.
func (a *API) UpdateCategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid category id")
	if !ok {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req, "invalid category payload") {
		return
	}
	category, err := a.categories.UpdateCategory(c.Request.Context(), id, service.CategoryInput{Name: req.Name, SortOrder: req.SortOrder})
	if err != nil {
		respondServiceError(c, err, "failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated", "category": category})
}

// DeleteCategory removes a category with its subcategories and content.
func (a *API) DeleteCategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid category id")
	if !ok {
		return
	}
	if err := a.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// ReorderCategories stores a new category order.
func (a *API) ReorderCategories(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req, "invalid order payload") {
		return
	}
	if err := a.categories.ReorderCategories(c.Request.Context(), req.IDs); err != nil {
		respondServiceError(c, err, "failed to reorder categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order saved"})
}

// GetSubcategories lists the subcategories of a category.
func (a *API) GetSubcategories(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid category id")
	if !ok {
		return
	}
	subcategories, err := a.categories.ListSubcategories(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load subcategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategories": subcategories})
}

// GetSubcategory returns one subcategory.
func (a *API) GetSubcategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid subcategory id")
	if !ok {
		return
	}
	subcategory, err := a.categories.GetSubcategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load subcategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategory": subcategory})
}

// CreateSubcategory adds a subcategory to a category.
func (a *API) CreateSubcategory(c *gin.Context) {
	var req subcategoryRequest
	if !bindJSON(c, &req, "invalid subcategory payload") {
		return
	}
	subcategory, err := a.categories.CreateSubcategory(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to create subcategory")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subcategory created", "subcategory": subcategory})
}

// UpdateSubcategory renames, reorders or moves a subcategory.
func (a *API) UpdateSubcategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid subcategory id")
	if !ok {
		return
	}
	var req subcategoryRequest
	if !bindJSON(c, &req, "invalid subcategory payload") {
		return
	}
	subcategory, err := a.categories.UpdateSubcategory(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err, "failed to update subcategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory updated", "subcategory": subcategory})
}

// DeleteSubcategory removes a subcategory and its content.
func (a *API) DeleteSubcategory(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid subcategory id")
	if !ok {
		return
	}
	if err := a.categories.DeleteSubcategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete subcategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

// ReorderSubcategories stores a new subcategory order within a category.
func (a *API) ReorderSubcategories(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid category id")
	if !ok {
		return
	}
	var req reorderRequest
	if !bindJSON(c, &req, "invalid order payload") {
		return
	}
	if err := a.categories.ReorderSubcategories(c.Request.Context(), id, req.IDs); err != nil {
		respondServiceError(c, err, "failed to reorder subcategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order saved"})
}

func (r subcategoryRequest) input() service.SubcategoryInput {
	return service.SubcategoryInput{CategoryID: r.CategoryID, Name: r.Name, SortOrder: r.SortOrder}
}
