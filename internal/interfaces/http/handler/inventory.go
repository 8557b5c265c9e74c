package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// InventoryHandler serves the /api/v1/inventory endpoints.
type InventoryHandler struct {
	BaseHandler
	locations    inventory.LocationRepository
	balances     inventory.BalanceRepository
	movements    inventory.MovementRepository
	reservations inventory.ReservationRepository
	cycleCounts  inventory.CycleCountRepository
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(
	locations inventory.LocationRepository,
	balances inventory.BalanceRepository,
	movements inventory.MovementRepository,
	reservations inventory.ReservationRepository,
	cycleCounts inventory.CycleCountRepository,
) *InventoryHandler {
	return &InventoryHandler{
		locations:    locations,
		balances:     balances,
		movements:    movements,
		reservations: reservations,
		cycleCounts:  cycleCounts,
	}
}

// RegisterRoutes registers inventory routes under the API group.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	inv.GET("/locations", h.ListLocations)
	inv.GET("/balances", h.ListBalances)
	inv.GET("/movements", h.ListMovements)
	inv.GET("/reservations", h.ListReservations)
	inv.GET("/cycle-counts", h.ListCycleCounts)
	inv.GET("/cycle-counts/variance-summary", h.VarianceSummary)
	inv.GET("/cycle-counts/:id/details", h.CycleCountDetails)
}

type listLocationsRequest struct {
	dto.ListRequest
	LocationType  string `form:"type"`
	WarehouseZone string `form:"zone"`
	IncludeAll    bool   `form:"include_inactive"`
}

// ListLocations returns active storage locations.
func (h *InventoryHandler) ListLocations(c *gin.Context) {
	var req listLocationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	locations, total, err := h.locations.List(c.Request.Context(), inventory.LocationFilter{
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

type listBalancesRequest struct {
	dto.ListRequest
	PartNumber string `form:"part_number"`
	LocationID int64  `form:"location_id" binding:"omitempty,min=1"`
}

// balanceView decorates a balance with its computed totals.
type balanceView struct {
	inventory.Balance
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
	BelowReorderPoint bool            `json:"below_reorder_point"`
}

// ListBalances returns stock balances with computed totals.
func (h *InventoryHandler) ListBalances(c *gin.Context) {
	var req listBalancesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	balances, total, err := h.balances.List(c.Request.Context(), inventory.BalanceFilter{
		PartNumber: req.PartNumber,
		LocationID: req.LocationID,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]balanceView, len(balances))
	for i := range balances {
		views[i] = balanceView{
			Balance:           balances[i],
			TotalQuantity:     balances[i].TotalQuantity(),
			TotalValue:        balances[i].TotalValue(),
			BelowReorderPoint: balances[i].BelowReorderPoint(),
		}
	}
	h.SuccessWithMeta(c, views, total, page)
}

type listMovementsRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	PartNumber   string `form:"part_number"`
	MovementType string `form:"movement_type" binding:"omitempty,oneof=in out transfer adjustment scrap"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ListMovements returns stock movements in a date window.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var req listMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	movements, total, err := h.movements.List(c.Request.Context(), inventory.MovementFilter{
		PartNumber:   req.PartNumber,
		MovementType: req.MovementType,
		DateFrom:     from,
		DateTo:       to,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, page)
}

type listReservationsRequest struct {
	dto.ListRequest
	PartNumber         string `form:"part_number"`
	Status             string `form:"status" binding:"omitempty,oneof=active consumed cancelled expired"`
	ExpiringWithinDays int    `form:"expiring_within_days" binding:"omitempty,min=1"`
}

// reservationView decorates a reservation with its expiring flag.
type reservationView struct {
	inventory.Reservation
	ExpiringSoon bool `json:"expiring_soon"`
}

// ListReservations returns stock reservations, flagging those about to
// expire when expiring_within_days is sent.
func (h *InventoryHandler) ListReservations(c *gin.Context) {
	var req listReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	reservations, total, err := h.reservations.List(c.Request.Context(), inventory.ReservationFilter{
		PartNumber: req.PartNumber,
		Status:     req.Status,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	window := time.Duration(req.ExpiringWithinDays) * 24 * time.Hour
	now := time.Now()
	views := make([]reservationView, len(reservations))
	for i := range reservations {
		views[i] = reservationView{
			Reservation:  reservations[i],
			ExpiringSoon: req.ExpiringWithinDays > 0 && reservations[i].ExpiresWithin(now, window),
		}
	}
	h.SuccessWithMeta(c, views, total, page)
}

type listCycleCountsRequest struct {
	dto.ListRequest
	LocationID int64  `form:"location_id" binding:"omitempty,min=1"`
	Status     string `form:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	CountType  string `form:"count_type" binding:"omitempty,oneof=full partial spot"`
}

// ListCycleCounts returns cycle counts.
func (h *InventoryHandler) ListCycleCounts(c *gin.Context) {
	var req listCycleCountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	counts, total, err := h.cycleCounts.List(c.Request.Context(), inventory.CycleCountFilter{
		LocationID: req.LocationID,
		Status:     req.Status,
		CountType:  req.CountType,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, counts, total, page)
}

// CycleCountDetails returns the counted lines of one cycle count. The
// variance_only flag hides lines that matched the system quantity.
func (h *InventoryHandler) CycleCountDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "id must be a positive integer")
		return
	}

	varianceOnly := c.Query("variance_only") == "true"

	ctx := c.Request.Context()
	count, err := h.cycleCounts.FindByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	details, err := h.cycleCounts.ListDetails(ctx, id, varianceOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"cycle_count": count,
		"details":     details,
	})
}

// VarianceSummary returns cycle count variance totals over a date window.
func (h *InventoryHandler) VarianceSummary(c *gin.Context) {
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

	summary, err := h.cycleCounts.VarianceSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
