package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Query
// requests carry no payloads, so the limit is mostly a tripwire.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body exceeds maximum allowed size"))
			return
		}

		// Wrap the body with a limited reader for streaming requests
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
