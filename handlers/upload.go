package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/storage"
)

// BlobStore is the slice of the storage client the upload routes use;
// satisfied by *storage.BlobStorage and by test fakes.
type BlobStore interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	List(ctx context.Context) ([]storage.ObjectInfo, error)
	Delete(ctx context.Context, url string) error
}

// UploadHandler proxies media files to blob storage and hands back public
// URLs. No content-type allow-list here; the admin UI decides what to send.
type UploadHandler struct {
	blobs BlobStore
}

func NewUploadHandler(blobs BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// Register routes under /api/upload. All three are admin-only.
func (h *UploadHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	u := rg.Group("/upload", guard)
	u.POST("", h.Upload)
	u.GET("", h.List)
	u.DELETE("", h.Delete)
}

// Upload stores one multipart file and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, validationError("No file provided."))
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	contentType := file.Header.Get("Content-Type")
	url, err := h.blobs.Upload(c.Request.Context(), file.Filename, f, file.Size, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
		"type":     contentType,
	})
}

// List returns all stored blobs.
func (h *UploadHandler) List(c *gin.Context) {
	files, err := h.blobs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

type deleteRequest struct {
	URL string `json:"url"`
}

// Delete removes the blob behind a URL. A missing or foreign URL is a 400,
// not a 404.
func (h *UploadHandler) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		var req deleteRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			url = req.URL
		}
	}
	if url == "" {
		respondError(c, validationError("No url provided."))
		return
	}
	if err := h.blobs.Delete(c.Request.Context(), url); err != nil {
		if errors.Is(err, storage.ErrInvalidURL) {
			respondError(c, validationError("Invalid url."))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
