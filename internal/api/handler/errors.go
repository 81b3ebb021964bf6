package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edusync/backend/internal/policy"
	"edusync/backend/internal/service"
	apperrors "edusync/backend/pkg/errors"
	"edusync/backend/pkg/response"
)

var notFoundMessages = []struct {
	err     error
	message string
}{
	{service.ErrUserNotFound, "User not found"},
	{service.ErrCourseNotFound, "Course not found"},
	{service.ErrAssessmentNotFound, "Assessment not found"},
	{service.ErrResultNotFound, "Result not found"},
}

// handleServiceError translates service errors into responses. Unknown
// errors are attached to the context for the request logger and answered
// with a generic 500.
func handleServiceError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, "", verr.Map())
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			response.NotFound(c, nf.message)
			return
		}
	}

	switch {
	case errors.Is(err, service.ErrEmailExists):
		response.ValidationFailed(c, "User with this email already exists", map[string]string{
			"email": "email is already registered",
		})
	case errors.Is(err, service.ErrIDMismatch):
		response.BadRequest(c, "id in path does not match id in body")
	case errors.Is(err, service.ErrUserOwnsCourses):
		response.BadRequest(c, "user still owns courses; delete or reassign them first")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, policy.ErrUnauthenticated):
		response.Unauthorized(c, "authentication required")
	case errors.Is(err, policy.ErrForbidden):
		response.Forbidden(c, "you are not allowed to perform this action")
	case errors.Is(err, service.ErrNoFile):
		response.BadRequest(c, "No file provided")
	case errors.Is(err, service.ErrFileTooLarge):
		response.BadRequest(c, "file exceeds the upload size limit")
	case errors.Is(err, service.ErrNoURL):
		response.BadRequest(c, "No URL provided")
	case errors.Is(err, service.ErrStorageUnavailable):
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "blob storage is not configured")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
