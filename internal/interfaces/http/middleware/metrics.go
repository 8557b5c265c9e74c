package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// Metrics records the request-level instruments. Nil disables collection.
	Metrics *telemetry.QueryMetrics
	// Enabled controls whether metrics collection is active.
	Enabled bool
}

// HTTPMetrics returns a Gin middleware that records per-request metrics:
//   - http_requests_total with method, route, status_code labels
//   - http_request_duration_seconds with method, route labels
//   - write_requests_rejected_total for 405 responses on mutating verbs
//   - mobile_requests_total per classified device type
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Metrics == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		route := getRoutePattern(c)
		method := c.Request.Method
		statusCode := c.Writer.Status()

		cfg.Metrics.RecordHTTPRequest(ctx, method, route, statusCode, time.Since(start))

		if statusCode == http.StatusMethodNotAllowed && writeVerbs[method] {
			cfg.Metrics.RecordWriteRejected(ctx, method, route)
		}

		if deviceType := GetDeviceType(c); deviceType != DeviceDesktop {
			cfg.Metrics.RecordMobileRequest(ctx, deviceType)
		}
	}
}

// getRoutePattern returns the route pattern (e.g., "/api/v1/inventory/balances")
// instead of the actual path to avoid high cardinality issues.
func getRoutePattern(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		// For unmatched routes, use a generic pattern
		return "unknown"
	}
	return route
}
