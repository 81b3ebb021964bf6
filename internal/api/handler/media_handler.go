package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/response"
)

// MediaHandler course media upload and the storage diagnostics.
type MediaHandler struct {
	mediaSvc service.MediaService
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload stores the multipart field "file" and returns its public URL.
// POST /api/Courses/upload-media
func (h *MediaHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			response.BadRequest(c, "file exceeds the upload size limit")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			response.BadRequest(c, "No file provided")
		default:
			response.BadRequest(c, "invalid multipart form")
		}
		return
	}

	f, err := fh.Open()
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.mediaSvc.Upload(c.Request.Context(), f, fh.Size, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.handleMediaError(c, err)
		return
	}

	response.OK(c, result)
}

// CheckStorage writes a small object to the blob container.
// GET /api/Courses/test-blob
func (h *MediaHandler) CheckStorage(c *gin.Context) {
	result, err := h.mediaSvc.CheckStorage(c.Request.Context())
	if err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OK(c, result)
}

// CheckYouTube validates a YouTube link without creating a course.
// POST /api/Courses/test-youtube
func (h *MediaHandler) CheckYouTube(c *gin.Context) {
	var req dto.YouTubeCheckRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.mediaSvc.CheckYouTube(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// handleMediaError reports storage faults with a fixed message; the cause
// goes to the request log only.
func (h *MediaHandler) handleMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoFile),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrStorageUnavailable):
		handleServiceError(c, err)
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "blob storage request failed")
	}
}
