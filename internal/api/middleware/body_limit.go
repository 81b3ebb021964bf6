package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edusync/backend/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. overrides raises or lowers the
// cap for specific routes, keyed by gin's full path pattern.
func BodyLimit(maxBytes int64, overrides map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := maxBytes
		if n, ok := overrides[c.FullPath()]; ok {
			limit = n
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}

		c.Next()

		// Handlers that report the error without writing a response.
		if c.Writer.Written() {
			return
		}
		for _, e := range c.Errors {
			var tooLarge *http.MaxBytesError
			if errors.As(e.Err, &tooLarge) {
				response.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
		}
	}
}
