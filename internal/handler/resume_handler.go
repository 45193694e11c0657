package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

type resumeTypeRequest struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	SortOrder *int   `json:"sort_order"`
}

type resumeEntryRequest struct {
	EntryTypeID string   `json:"entry_type_id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	StartDate   string   `json:"date_start"`
	EndDate     *string  `json:"date_end"`
	Description string   `json:"description"`
	MediaURLs   []string `json:"media_urls"`
	SortOrder   int      `json:"sort_order"`
	Featured    bool     `json:"is_featured"`
}

// input converts the request. Dates that do not parse are reported as
// invalid entry input.
func (r resumeEntryRequest) input() (service.ResumeEntryInput, bool) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return service.ResumeEntryInput{}, false
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return service.ResumeEntryInput{}, false
	}
	return service.ResumeEntryInput{
		EntryTypeID: r.EntryTypeID,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		StartDate:   start,
		EndDate:     end,
		Description: r.Description,
		MediaURLs:   r.MediaURLs,
		SortOrder:   r.SortOrder,
		Featured:    r.Featured,
	}, true
}

// GetResumeTypes lists the entry types.
func (a *API) GetResumeTypes(c *gin.Context) {
	types, err := a.resume.ListEntryTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load resume types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_types": types})
}

// CreateResumeType adds an entry type.
func (a *API) CreateResumeType(c *gin.Context) {
	var req resumeTypeRequest
	if !bindJSON(c, &req, "invalid resume type payload") {
		return
	}
	entryType, err := a.resume.CreateEntryType(c.Request.Context(), service.ResumeEntryTypeInput{Name: req.Name, Icon: req.Icon, SortOrder: req.SortOrder})
	if err != nil {
		respondServiceError(c, err, "failed to create resume type")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "resume type created", "entry_type": entryType})
}

// UpdateResumeType edits an entry type.
func (a *API) UpdateResumeType(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume type id")
	if !ok {
		return
	}
	var req resumeTypeRequest
	if !bindJSON(c, &req, "invalid resume type payload") {
		return
	}
	entryType, err := a.resume.UpdateEntryType(c.Request.Context(), id, service.ResumeEntryTypeInput{Name: req.Name, Icon: req.Icon, SortOrder: req.SortOrder})
	if err != nil {
		respondServiceError(c, err, "failed to update resume type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume type updated", "entry_type": entryType})
}

// DeleteResumeType removes an entry type and its entries.
func (a *API) DeleteResumeType(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume type id")
	if !ok {
		return
	}
	if err := a.resume.DeleteEntryType(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete resume type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume type deleted"})
}

// CreateDefaultResumeTypes adds the starter entry types that are missing.
func (a *API) CreateDefaultResumeTypes(c *gin.Context) {
	created, err := a.resume.EnsureDefaultEntryTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to create default resume types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default resume types ready", "created": created})
}

// CountResumeTypeEntries reports how many entries a delete would remove.
func (a *API) CountResumeTypeEntries(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume type id")
	if !ok {
		return
	}
	count, err := a.resume.CountEntriesByType(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to count resume entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_type_id": id, "count": count})
}

// GetResumeEntries lists entries, optionally filtered by ?entry_type_id=.
func (a *API) GetResumeEntries(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		entries []db.ResumeEntry
		err     error
	)
	if typeID := c.Query("entry_type_id"); typeID != "" {
		entries, err = a.resume.ListEntriesByType(ctx, typeID)
	} else {
		entries, err = a.resume.ListEntries(ctx)
	}
	if err != nil {
		respondServiceError(c, err, "failed to load resume entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetResumeEntry returns one entry.
func (a *API) GetResumeEntry(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume entry id")
	if !ok {
		return
	}
	entry, err := a.resume.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load resume entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// CreateResumeEntry adds a timeline entry.
func (a *API) CreateResumeEntry(c *gin.Context) {
	var req resumeEntryRequest
	if !bindJSON(c, &req, "invalid resume entry payload") {
		return
	}
	input, ok := req.input()
	if !ok {
		respondError(c, http.StatusBadRequest, "dates must look like 2006-01-02")
		return
	}
	entry, err := a.resume.CreateEntry(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "failed to create resume entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "resume entry created", "entry": entry})
}

// UpdateResumeEntry edits a timeline entry.
func (a *API) UpdateResumeEntry(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume entry id")
	if !ok {
		return
	}
	var req resumeEntryRequest
	if !bindJSON(c, &req, "invalid resume entry payload") {
		return
	}
	input, ok := req.input()
	if !ok {
		respondError(c, http.StatusBadRequest, "dates must look like 2006-01-02")
		return
	}
	entry, err := a.resume.UpdateEntry(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "failed to update resume entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume entry updated", "entry": entry})
}

// DeleteResumeEntry removes a timeline entry.
func (a *API) DeleteResumeEntry(c *gin.Context) {
	id, ok := requireParam(c, "id", "invalid resume entry id")
	if !ok {
		return
	}
	if err := a.resume.DeleteEntry(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete resume entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume entry deleted"})
}
