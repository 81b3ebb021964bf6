package handler

import (
	"github.com/gin-gonic/gin"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/response"
)

// ResultHandler assessment results. Every route requires authentication.
type ResultHandler struct {
	resultSvc service.ResultService
}

// NewResultHandler creates a ResultHandler.
func NewResultHandler(resultSvc service.ResultService) *ResultHandler {
	return &ResultHandler{resultSvc: resultSvc}
}

// List
// GET /api/Results
func (h *ResultHandler) List(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ResultListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.resultSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/Results/:id
func (h *ResultHandler) Get(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.resultSvc.GetByID(c.Request.Context(), id, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, res)
}

// Create records an attempt for the calling student.
// POST /api/Results
func (h *ResultHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateResultRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.resultSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "/api/Results/"+res.ResultID, res)
}

// Update
// PUT /api/Results/:id
func (h *ResultHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateResultRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.resultSvc.Update(c.Request.Context(), id, &req, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete
// DELETE /api/Results/:id
func (h *ResultHandler) Delete(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.resultSvc.Delete(c.Request.Context(), id, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}
