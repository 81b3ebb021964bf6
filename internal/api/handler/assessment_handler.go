package handler

import (
	"github.com/gin-gonic/gin"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/response"
)

// AssessmentHandler assessments of a course.
type AssessmentHandler struct {
	assessmentSvc service.AssessmentService
}

// NewAssessmentHandler creates an AssessmentHandler.
func NewAssessmentHandler(assessmentSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// List optionally filtered by ?courseId=.
// GET /api/Assessments
func (h *AssessmentHandler) List(c *gin.Context) {
	var req dto.AssessmentListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, err := h.assessmentSvc.List(c.Request.Context(), req.CourseID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// Get
// GET /api/Assessments/:id
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a, err := h.assessmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, a)
}

// Create
// POST /api/Assessments
func (h *AssessmentHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assessmentSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "/api/Assessments/"+a.AssessmentID, a)
}

// Update
// PUT /api/Assessments/:id
func (h *AssessmentHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAssessmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.assessmentSvc.Update(c.Request.Context(), id, &req, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete
// DELETE /api/Assessments/:id
func (h *AssessmentHandler) Delete(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.assessmentSvc.Delete(c.Request.Context(), id, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}
