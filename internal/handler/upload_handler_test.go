package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartImageRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/api/uploads/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImageStoresFile(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImageRequest(t, "image", "photo.jpeg", pngBytes(t, 4, 3))

	api.UploadImage(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != float64(1) {
		t.Fatalf("expected success 1, got %v", body["success"])
	}
	file := body["file"].(map[string]any)
	fileURL := file["url"].(string)
	if !strings.HasPrefix(fileURL, "/static/uploads/20240510-") || !strings.HasSuffix(fileURL, ".png") {
		t.Fatalf("unexpected file url %q", fileURL)
	}
	if file["width"] != float64(4) || file["height"] != float64(3) {
		t.Fatalf("unexpected dimensions %v x %v", file["width"], file["height"])
	}

	stored := filepath.Join(api.uploadDir, strings.TrimPrefix(fileURL, "/static/uploads/"))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
}

func TestUploadImageRejectsNonImages(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImageRequest(t, "image", "notes.png", []byte("definitely not an image"))

	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if decodeBody(t, w)["success"] != float64(0) {
		t.Fatalf("expected success 0")
	}
	entries, _ := os.ReadDir(api.uploadDir)
	if len(entries) != 0 {
		t.Fatalf("expected nothing stored, found %d files", len(entries))
	}
}

func TestUploadImageMissingField(t *testing.T) {
	api, _ := setupTestAPI(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImageRequest(t, "file", "photo.png", pngBytes(t, 1, 1))

	api.UploadImage(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestUploadImageByURL(t *testing.T) {
	api, _ := setupTestAPI(t)

	ok := callJSON(t, api.UploadImageByURL, http.MethodPost, map[string]any{"url": " https://images.example.com/a.jpg "}, nil)
	if ok.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", ok.Code)
	}
	if decodeBody(t, ok)["file"].(map[string]any)["url"] != "https://images.example.com/a.jpg" {
		t.Fatalf("unexpected body %s", ok.Body.String())
	}

	bad := callJSON(t, api.UploadImageByURL, http.MethodPost, map[string]any{"url": "javascript:alert(1)"}, nil)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", bad.Code)
	}
}
