package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxImageUploadBytes = 10 << 20

var imageExtensions = map[string]string{
	"gif":  ".gif",
	"jpeg": ".jpg",
	"png":  ".png",
	"webp": ".webp",
}

type imageURLRequest struct {
	URL string `json:"url"`
}

func uploadFailed(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": 0, "error": message})
}

// UploadImage stores an image from the block editor and answers in the
// editor's uploader format.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		uploadFailed(c, http.StatusBadRequest, "no image in request")
		return
	}
	if file.Size > maxImageUploadBytes {
		uploadFailed(c, http.StatusRequestEntityTooLarge, "image is larger than 10 MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		uploadFailed(c, http.StatusBadRequest, "cannot read image")
		return
	}
	defer src.Close()

	config, format, err := image.DecodeConfig(src)
	ext, supported := imageExtensions[format]
	if err != nil || !supported {
		uploadFailed(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are accepted")
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		uploadFailed(c, http.StatusInternalServerError, "cannot read image")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.logger.Error().Err(err).Str("dir", a.uploadDir).Msg("create upload directory")
		uploadFailed(c, http.StatusInternalServerError, "cannot store image")
		return
	}

	name := fmt.Sprintf("%s-%s%s", a.now().Format("20060102"), uuid.NewString(), ext)
	if err := writeUpload(filepath.Join(a.uploadDir, name), src); err != nil {
		a.logger.Error().Err(err).Str("file", name).Msg("store uploaded image")
		uploadFailed(c, http.StatusInternalServerError, "cannot store image")
		return
	}

	a.logger.Info().Str("file", name).Str("format", format).Int64("bytes", file.Size).Msg("image uploaded")
	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"file": gin.H{
			"url":    a.uploadURL + "/" + name,
			"width":  config.Width,
			"height": config.Height,
		},
	})
}

func writeUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	return dst.Close()
}

// UploadImageByURL accepts an external image link pasted into the editor.
// The image is referenced in place, not fetched.
func (a *API) UploadImageByURL(c *gin.Context) {
	var req imageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		uploadFailed(c, http.StatusBadRequest, "invalid payload")
		return
	}
	raw := strings.TrimSpace(req.URL)
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		uploadFailed(c, http.StatusBadRequest, "image url must be http or https")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": 1, "file": gin.H{"url": raw}})
}
