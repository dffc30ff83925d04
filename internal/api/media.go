package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurorahq/akfeed/internal/store"
)

// Uploads are capped well below Postgres limits. Large video belongs on a
// CDN, not in the content store.
const maxMediaBytes = 10 << 20

// UploadMedia: POST /v1/admin/media/*path
//
// The request body is the raw blob and Content-Type describes it. Uploading
// to an existing path replaces the object.
func (h *Handler) UploadMedia(c *gin.Context) {
	path := mediaPath(c)
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMediaBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body: " + err.Error()})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty body"})
		return
	}
	if len(data) > maxMediaBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "media object too large"})
		return
	}
	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	obj := store.MediaObject{Path: path, ContentType: contentType, Data: data}
	if err := h.svc.Content().SaveMediaObject(c.Request.Context(), &obj); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"path": obj.Path,
		"url":  "/v1/media/" + obj.Path,
	}})
}

// GetMedia: GET /v1/media/*path
func (h *Handler) GetMedia(c *gin.Context) {
	obj, err := h.svc.Content().GetMediaObject(c.Request.Context(), mediaPath(c))
	if err != nil {
		h.storeError(c, err, "media object not found")
		return
	}
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}

// DeleteMedia: DELETE /v1/admin/media/*path
func (h *Handler) DeleteMedia(c *gin.Context) {
	if err := h.svc.Content().DeleteMediaObject(c.Request.Context(), mediaPath(c)); err != nil {
		h.storeError(c, err, "media object not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// mediaPath strips the leading slash gin keeps on wildcard params.
func mediaPath(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}
