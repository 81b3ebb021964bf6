package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edusync/backend/internal/api/middleware"
	"edusync/backend/internal/policy"
	"edusync/backend/pkg/response"
	"edusync/backend/pkg/validation"
)

// MustGetIdentity returns the caller set by the JWT middleware. When it is
// missing a 401 is written and ok is false; the caller should return.
func MustGetIdentity(c *gin.Context) (policy.Identity, bool) {
	id := middleware.IdentityFrom(c)
	if !id.Authenticated() {
		response.Unauthorized(c, "authentication required")
		return policy.Identity{}, false
	}
	return id, true
}

// parseID reads a UUID path parameter and returns it in canonical lower
// case form. Malformed ids are answered with 400.
func parseID(c *gin.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return "", false
	}
	return id.String(), true
}

// bindJSON decodes the body into obj and writes a 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	return bindResult(c, c.ShouldBindJSON(obj), "invalid request body")
}

// bindQuery decodes the query string into obj and writes a 400 on failure.
func bindQuery(c *gin.Context, obj any) bool {
	return bindResult(c, c.ShouldBindQuery(obj), "invalid query parameters")
}

func bindResult(c *gin.Context, err error, fallback string) bool {
	if err == nil {
		return true
	}

	if verr := validation.FromBindError(err); verr != nil {
		response.ValidationFailed(c, "", verr.Map())
		return false
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}

	response.BadRequest(c, fallback)
	return false
}
