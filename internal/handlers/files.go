package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"

	"github.com/crucial707/asset-inventory/internal/blobcache"
	"github.com/crucial707/asset-inventory/internal/blobstore"
	"github.com/crucial707/asset-inventory/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FileHandler serves uploads and downloads through the blob cache facade.
// Store is nil when the object store is not configured; every file endpoint
// then answers 503.
type FileHandler struct {
	Store blobstore.Store
	Cache *blobcache.Cache

	// UserID and AppID form the fixed blob path prefix for uploads.
	UserID string
	AppID  string

	// CacheTTLSeconds is advertised to downstream consumers via Cache-Control.
	CacheTTLSeconds int
}

const defaultUploadContentType = "image/jpeg"

// Upload stores a multipart file under {user}/{app}/images/{uuid}{ext} and
// returns the blob path. The cache is not populated on upload.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		JSONError(w, KindUpstreamUnavailable, "blob storage not configured", http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		JSONError(w, KindValidationError, "multipart field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		JSONError(w, KindValidationError, "failed to read file", http.StatusBadRequest)
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	blobPath := fmt.Sprintf("%s/%s/images/%s%s", h.UserID, h.AppID, uuid.New().String(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	if err := h.Store.Upload(r.Context(), blobPath, data, contentType); err != nil {
		JSONError(w, KindUpstreamUnavailable, "blob upload failed", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"blob_path": blobPath})
}

// Get serves a blob, consulting the cache before the remote store. The path
// may contain slashes and percent-encoding.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	key := blobcache.Key(decoded)

	if data, contentType, ok := h.Cache.Get(key); ok {
		metrics.RecordBlobCache("hit")
		h.writeBlob(w, decoded, data, contentType, "HIT")
		return
	}

	if h.Store == nil {
		JSONError(w, KindUpstreamUnavailable, "blob storage not configured", http.StatusServiceUnavailable)
		return
	}

	data, contentType, err := h.Store.Download(r.Context(), decoded)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			JSONError(w, KindNotFound, "file not found: "+decoded, http.StatusNotFound)
			return
		}
		JSONError(w, KindUpstreamUnavailable, "blob download failed", http.StatusServiceUnavailable)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.Cache.Set(key, data, contentType)
	metrics.RecordBlobCache("miss")
	h.writeBlob(w, decoded, data, contentType, "MISS")
}

func (h *FileHandler) writeBlob(w http.ResponseWriter, decodedPath string, data []byte, contentType, cacheState string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", path.Base(decodedPath)))
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.CacheTTLSeconds))
	w.Header().Set("X-Cache", cacheState)
	w.Write(data)
}
