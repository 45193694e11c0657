package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio/internal/service"
)

type downloadRequest struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

// GetDownloads lists the downloadable documents for the admin page.
func (a *API) GetDownloads(c *gin.Context) {
	files, err := a.downloads.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load downloads")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloads": files})
}

// SaveDownload sets the document for one file type, replacing any previous one.
func (a *API) SaveDownload(c *gin.Context) {
	fileType, ok := requireParam(c, "type", "invalid file type")
	if !ok {
		return
	}
	var req downloadRequest
	if !bindJSON(c, &req, "invalid download payload") {
		return
	}
	file, err := a.downloads.Save(c.Request.Context(), service.DownloadInput{FileType: fileType, FileURL: req.FileURL, FileName: req.FileName})
	if err != nil {
		respondServiceError(c, err, "failed to save download")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "download saved", "download": file})
}

// DeleteDownload clears the document for one file type.
func (a *API) DeleteDownload(c *gin.Context) {
	fileType, ok := requireParam(c, "type", "invalid file type")
	if !ok {
		return
	}
	if err := a.downloads.DeleteByType(c.Request.Context(), fileType); err != nil {
		respondServiceError(c, err, "failed to delete download")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "download deleted"})
}
