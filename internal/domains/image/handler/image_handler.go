package handler

import (
	"fmt"
	"io"
	"net/http"

	"image-resizer-backend/internal/domains/image"
	"image-resizer-backend/internal/infrastructure/preview"
	"image-resizer-backend/internal/shared/response"
	"image-resizer-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	service     image.Service
	previews    *preview.Registry
	maxFileSize int64
}

func NewImageHandler(svc image.Service, previews *preview.Registry, maxFileSize int64) *ImageHandler {
	return &ImageHandler{
		service:     svc,
		previews:    previews,
		maxFileSize: maxFileSize,
	}
}

// Upload handles POST /images: a multipart batch under the "images"
// field. Oversized, non-image and undecodable files are skipped without
// failing the batch.
func (h *ImageHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "expected multipart form upload")
		return
	}

	parts := form.File["images"]
	if len(parts) == 0 {
		parts = form.File["image"]
	}

	var files []image.UploadFile
	var skipped []string
	for _, part := range parts {
		if part.Size > h.maxFileSize {
			skipped = append(skipped, part.Filename)
			continue
		}
		f, err := part.Open()
		if err != nil {
			skipped = append(skipped, part.Filename)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			skipped = append(skipped, part.Filename)
			continue
		}
		files = append(files, image.UploadFile{
			Filename:    part.Filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	resp, err := h.service.Ingest(c.Request.Context(), files)
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "INGEST_FAILED", err.Error())
		return
	}
	resp.Skipped = append(skipped, resp.Skipped...)

	logger.Info("Ingested upload batch", map[string]interface{}{
		"created": len(resp.Created),
		"skipped": len(resp.Skipped),
	})
	response.Success(c, http.StatusCreated, resp)
}

// List handles GET /images
func (h *ImageHandler) List(c *gin.Context) {
	images := h.service.List(c.Request.Context())
	response.SuccessWithMeta(c, http.StatusOK, images, &response.Meta{Total: len(images)})
}

// GetByID handles GET /images/:id
func (h *ImageHandler) GetByID(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "NOT_FOUND", err.Error())
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Update handles PATCH /images/:id
func (h *ImageHandler) Update(c *gin.Context) {
	var req image.UpdateImageReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid update", err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "UPDATE_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Reset handles POST /images/:id/reset
func (h *ImageHandler) Reset(c *gin.Context) {
	resp, err := h.service.ResetDimensions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "RESET_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "DELETE_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// Download handles GET /images/:id/download
func (h *ImageHandler) Download(c *gin.Context) {
	name, data, mime, err := h.service.ExportOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "EXPORT_FAILED", err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, mime, data)
}

// ExportAll handles GET /images/export
func (h *ImageHandler) ExportAll(c *gin.Context) {
	data, err := h.service.ExportAll(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "EXPORT_FAILED", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="images.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportUpload handles POST /images/export/upload
func (h *ImageHandler) ExportUpload(c *gin.Context) {
	resp, err := h.service.ExportToStorage(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, image.GetHTTPStatusCode(err), "EXPORT_FAILED", err.Error())
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Preview handles GET /previews/:token, dereferencing a live preview
// handle. Released or unknown tokens are gone for good.
func (h *ImageHandler) Preview(c *gin.Context) {
	data, mime, ok := h.previews.Resolve(c.Param("token"))
	if !ok {
		response.NotFound(c, "preview not found")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mime, data)
}
