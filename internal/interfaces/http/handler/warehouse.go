package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	warehouseapp "github.com/erp/query-service/internal/application/warehouse"
	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// WarehouseHandler serves the /api/v1/warehouse analytics endpoints.
type WarehouseHandler struct {
	BaseHandler
	service *warehouseapp.Service
}

// NewWarehouseHandler creates a warehouse handler.
func NewWarehouseHandler(service *warehouseapp.Service) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

// RegisterRoutes registers warehouse routes under the API group.
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wh := rg.Group("/warehouse")
	wh.GET("/balances/summary", h.BalanceSummary)
	wh.GET("/balances/by-zone", h.BalancesByZone)
	wh.GET("/movements/summary", h.MovementSummary)
	wh.GET("/movements/daily", h.DailyMovements)
	wh.GET("/locations", h.ListLocations)
	wh.GET("/analytics/abc", h.ABCAnalysis)
	wh.GET("/analytics/slow-moving", h.SlowMoving)
	wh.GET("/analytics/stock-alerts", h.StockAlerts)
	wh.GET("/dashboard", h.Dashboard)
}

// BalanceSummary totals stock per part across all locations.
func (h *WarehouseHandler) BalanceSummary(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	summaries, total, err := h.service.BalanceSummaryByPart(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, summaries, total, page)
}

// BalancesByZone groups stock totals by warehouse zone.
func (h *WarehouseHandler) BalancesByZone(c *gin.Context) {
	summaries, err := h.service.BalancesByZone(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// MovementSummary totals movements per type over a date window.
func (h *WarehouseHandler) MovementSummary(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summaries, err := h.service.MovementSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// DailyMovements totals in/out quantities per day.
func (h *WarehouseHandler) DailyMovements(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summaries, err := h.service.DailyMovements(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

type warehouseLocationsRequest struct {
	dto.ListRequest
	LocationType  string `form:"type"`
	WarehouseZone string `form:"zone"`
	IncludeAll    bool   `form:"include_inactive"`
}

// ListLocations returns locations with computed utilization percentages.
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	var req warehouseLocationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	locations, total, err := h.service.ListLocations(c.Request.Context(), inventory.LocationFilter{
		LocationType:  req.LocationType,
		WarehouseZone: req.WarehouseZone,
		ActiveOnly:    !req.IncludeAll,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, locations, total, page)
}

// ABCAnalysis classifies parts into A/B/C classes by stock value or movement
// frequency.
func (h *WarehouseHandler) ABCAnalysis(c *gin.Context) {
	result, err := h.service.ABCAnalysis(c.Request.Context(), c.Query("basis"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SlowMoving returns balances whose last movement is older than the given
// number of days (default 90).
func (h *WarehouseHandler) SlowMoving(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "days must be a positive integer")
			return
		}
		days = parsed
	}

	page := shared.NewPage(req.Limit, req.Offset)
	balances, total, err := h.service.SlowMoving(c.Request.Context(), days, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, balances, total, page)
}

// StockAlerts returns out-of-stock and below-reorder-point balances.
func (h *WarehouseHandler) StockAlerts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	alerts, total, err := h.service.StockAlerts(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, alerts, total, page)
}

// Dashboard returns the warehouse overview snapshot.
func (h *WarehouseHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
