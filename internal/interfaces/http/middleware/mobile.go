package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// Device types derived from the User-Agent header.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// Context key for the classified device type.
const DeviceTypeKey = "device_type"

// MobileConfig configures the mobile-optimized routes.
type MobileConfig struct {
	// CacheMaxAge is sent as Cache-Control: max-age on mobile responses (seconds).
	CacheMaxAge int
	// RateLimiter throttles per device; nil disables throttling.
	RateLimiter *RateLimiter
}

// ClassifyDevice labels a User-Agent as mobile, tablet or desktop.
// The mobile token list wins, so an iPad UA counts as mobile.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android") || strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad") || strings.Contains(ua, "mobile"):
		return DeviceMobile
	case strings.Contains(ua, "tablet"):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// DeviceDetection classifies the caller's device and exposes the result both
// to handlers (context) and to the caller (response headers).
func DeviceDetection() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceType := ClassifyDevice(c.GetHeader("User-Agent"))
		c.Set(DeviceTypeKey, deviceType)
		c.Header("X-Device-Type", deviceType)
		c.Next()
	}
}

// GetDeviceType returns the classified device type from context.
func GetDeviceType(c *gin.Context) string {
	if v, exists := c.Get(DeviceTypeKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return DeviceDesktop
}

// MobileOptimization marks responses on mobile routes as cacheable and
// throttles per device. The rate limit key prefers the x-device-id header
// and falls back to the client IP for callers that don't send one.
func MobileOptimization(cfg MobileConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Mobile-Optimized", "true")
		if cfg.CacheMaxAge > 0 {
			c.Header("Cache-Control", fmt.Sprintf("max-age=%d", cfg.CacheMaxAge))
		}

		if cfg.RateLimiter != nil {
			key := mobileRateLimitKey(c)
			if !cfg.RateLimiter.Allow(key) {
				retryAfter := cfg.RateLimiter.RetryAfter(key)
				c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"success": false,
					"error": &dto.ErrorInfo{
						Code:    dto.ErrCodeRateLimited,
						Message: "Too many requests from this device. Please try again later.",
					},
					"retry_after": retryAfter,
				})
				return
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.RateLimiter.limit))
			c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", cfg.RateLimiter.Remaining(key)))
		}

		c.Next()
	}
}

// mobileRateLimitKey prefers the stable device identifier over the IP.
func mobileRateLimitKey(c *gin.Context) string {
	if deviceID := c.GetHeader("x-device-id"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + c.ClientIP()
}
