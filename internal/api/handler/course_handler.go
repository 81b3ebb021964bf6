package handler

import (
	"github.com/gin-gonic/gin"

	"edusync/backend/internal/dto"
	"edusync/backend/internal/service"
	"edusync/backend/pkg/response"
)

// CourseHandler course catalogue.
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// List
// GET /api/Courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, courses)
}

// Get
// GET /api/Courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, course)
}

// Create
// POST /api/Courses
func (h *CourseHandler) Create(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "/api/Courses/"+course.CourseID, course)
}

// Update
// PUT /api/Courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.courseSvc.Update(c.Request.Context(), id, &req, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// Delete removes the course with its assessments and results.
// DELETE /api/Courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id, caller); err != nil {
		handleServiceError(c, err)
		return
	}
	response.NoContent(c)
}
