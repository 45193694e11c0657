package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// requireParam returns the trimmed path parameter, answering 400 when it is blank.
func requireParam(c *gin.Context, key, message string) (string, bool) {
	value := strings.TrimSpace(c.Param(key))
	if value == "" {
		respondError(c, http.StatusBadRequest, message)
		return "", false
	}
	return value, true
}

var (
	notFoundErrors = []error{
		service.ErrCategoryNotFound,
		service.ErrSubcategoryNotFound,
		service.ErrContentNotFound,
		service.ErrCollectionNotFound,
		service.ErrCollectionContentNotFound,
		service.ErrResumeTypeNotFound,
		service.ErrResumeEntryNotFound,
		service.ErrDownloadNotFound,
	}
	invalidInputErrors = []error{
		service.ErrCategoryInvalidInput,
		service.ErrSubcategoryInvalidInput,
		service.ErrContentInvalidInput,
		service.ErrCollectionInvalidInput,
		service.ErrResumeTypeInvalidInput,
		service.ErrResumeEntryInvalidInput,
		service.ErrProfileInvalidInput,
		service.ErrDownloadInvalidInput,
	}
	conflictErrors = []error{
		service.ErrCollectionSlugTaken,
		service.ErrCollectionContentExists,
		service.ErrResumeEntryTypeNameTaken,
	}
)

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondServiceError maps service errors onto HTTP statuses. Unexpected
// errors are attached to the context for the request logger and answered
// with fallback.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case matchesAny(err, notFoundErrors):
		respondError(c, http.StatusNotFound, err.Error())
	case matchesAny(err, invalidInputErrors):
		respondError(c, http.StatusBadRequest, err.Error())
	case matchesAny(err, conflictErrors):
		respondError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

// parseDate accepts a calendar date, an RFC 3339 timestamp or a year-month.
func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseOptionalDate treats a blank value as "no date".
func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
