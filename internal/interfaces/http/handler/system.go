package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/infrastructure/config"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// Pinger reports whether the database connection is alive.
type Pinger interface {
	Ping() error
}

// SystemHandler serves health, info and service-description endpoints.
type SystemHandler struct {
	BaseHandler
	cfg       *config.Config
	db        Pinger
	startedAt time.Time
}

// NewSystemHandler creates a system handler. The pinger may be nil in tests.
func NewSystemHandler(cfg *config.Config, db Pinger) *SystemHandler {
	return &SystemHandler{
		cfg:       cfg,
		db:        db,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers system routes directly on the engine (they live
// outside the versioned API group).
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/api/health", h.Health)
	engine.GET("/info", h.Info)
	engine.GET("/errors", h.ErrorCatalog)
}

// RegisterAPIRoutes registers the CQRS description under the API group.
func (h *SystemHandler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/cqrs", h.CQRSInfo)
}

// Health reports service liveness and database connectivity.
// Degraded responses still return 200 so load balancers keep routing reads
// that may be served from cache.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	database := "connected"
	if h.db == nil || h.db.Ping() != nil {
		status = "degraded"
		database = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"database":       database,
		"version":        h.cfg.App.Version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// Info describes the service and its endpoint groups.
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"name":        h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"environment": h.cfg.App.Env,
		"description": "Read-only query service for the manufacturing ERP. All writes go to the command service.",
		"endpoints": gin.H{
			"inventory":  "/api/v1/inventory",
			"production": "/api/v1/production",
			"bom":        "/api/v1/bom",
			"quality":    "/api/v1/qc",
			"warehouse":  "/api/v1/warehouse",
			"masterdata": "/api/v1/products",
			"mobile":     "/api/v1/mobile",
			"cqrs":       "/api/v1/cqrs",
			"health":     "/health",
		},
	})
}

// ErrorCatalog lists every error code with its HTTP status.
func (h *SystemHandler) ErrorCatalog(c *gin.Context) {
	type entry struct {
		Code       string `json:"code"`
		HTTPStatus int    `json:"http_status"`
	}

	catalog := make([]entry, 0, len(dto.ErrorCodeHTTPStatus))
	for code, status := range dto.ErrorCodeHTTPStatus {
		catalog = append(catalog, entry{Code: code, HTTPStatus: status})
	}
	sort.Slice(catalog, func(i, j int) bool { return catalog[i].Code < catalog[j].Code })

	h.Success(c, catalog)
}

// CQRSInfo describes the query/command split for API discovery.
func (h *SystemHandler) CQRSInfo(c *gin.Context) {
	h.Success(c, gin.H{
		"pattern":         "cqrs",
		"role":            "query",
		"this_service":    "Serves all read queries (GET, HEAD, OPTIONS).",
		"command_service": h.cfg.CQRS.CommandServiceURL,
		"blocked_methods": []string{"POST", "PUT", "PATCH", "DELETE"},
	})
}
