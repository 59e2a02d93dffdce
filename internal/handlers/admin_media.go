package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxUploadSize is the maximum allowed media upload size (10 MB).
const maxUploadSize = 10 << 20

// allowedMediaTypes defines MIME types accepted for store and category images.
var allowedMediaTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// MediaUpload handles a multipart image upload to object storage and
// returns the public URL for use as a store or category image.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if a.media == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file is too large (max 10 MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedMediaTypes[contentType]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}
	// prefer the original extension when it agrees with the MIME type
	if origExt := strings.ToLower(filepath.Ext(header.Filename)); origExt == ext || (ext == ".jpg" && origExt == ".jpeg") {
		ext = origExt
	}

	key := fmt.Sprintf("media/%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)
	if err := a.media.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": a.media.FileURL(key),
	})
}

// MediaDelete removes an uploaded file by its public URL.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	if a.media == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	key, ok := a.media.ExtractKey(req.URL)
	if !ok {
		writeError(w, http.StatusBadRequest, "url does not belong to media storage")
		return
	}
	if err := a.media.Delete(r.Context(), key); err != nil {
		slog.Error("media delete failed", "key", key, "error", err)
		writeError(w, http.StatusBadGateway, "delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
