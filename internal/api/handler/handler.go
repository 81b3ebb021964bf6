package handler

import "edusync/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Course     *CourseHandler
	Assessment *AssessmentHandler
	Result     *ResultHandler
	Media      *MediaHandler
	Export     *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Course:     NewCourseHandler(svc.Course),
		Assessment: NewAssessmentHandler(svc.Assessment),
		Result:     NewResultHandler(svc.Result),
		Media:      NewMediaHandler(svc.Media),
		Export:     NewExportHandler(svc.Export),
	}
}
