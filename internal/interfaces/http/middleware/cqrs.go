package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// CQRSConfig configures the read-only edge of the query service.
type CQRSConfig struct {
	// CommandServiceURL is where rejected writes should go instead.
	CommandServiceURL string
}

// writeVerbs are the HTTP methods this service never serves.
var writeVerbs = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// ReadOnly rejects every mutating verb with 405 before it can reach a
// handler. GET, HEAD and OPTIONS pass through untouched. The response body
// names the companion command service so callers know where writes live.
func ReadOnly(cfg CQRSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !writeVerbs[c.Request.Method] {
			c.Next()
			return
		}

		c.Header("Allow", "GET, HEAD, OPTIONS")
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error": &dto.ErrorInfo{
				Code:    dto.ErrCodeMethodNotAllowed,
				Message: "This service is read-only. Send " + c.Request.Method + " requests to the command service.",
			},
			"command_service": cfg.CommandServiceURL,
		})
	}
}
