package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/erp/query-service/internal/domain/masterdata"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// MasterDataHandler serves product, user and legacy warehouse endpoints
// directly under /api/v1.
type MasterDataHandler struct {
	BaseHandler
	products masterdata.ProductRepository
	users    masterdata.UserRepository
	legacy   masterdata.LegacyStockRepository
	wip      production.WIPRepository
}

// NewMasterDataHandler creates a master-data handler.
func NewMasterDataHandler(
	products masterdata.ProductRepository,
	users masterdata.UserRepository,
	legacy masterdata.LegacyStockRepository,
	wip production.WIPRepository,
) *MasterDataHandler {
	return &MasterDataHandler{
		products: products,
		users:    users,
		legacy:   legacy,
		wip:      wip,
	}
}

// RegisterRoutes registers master-data routes under the API group.
func (h *MasterDataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:partNumber", h.ProductByPartNumber)
	rg.GET("/deliveries", h.ListDeliveries)
	rg.GET("/returns", h.ListReturns)
	rg.GET("/stock/fg", h.ListFGStock)
	rg.GET("/stock/wip", h.ListWIPStock)
	rg.GET("/stock-takes", h.ListStockTakes)
	rg.GET("/adjustments", h.ListAdjustments)
	rg.GET("/users", h.ListUsers)
	rg.GET("/users/:id/logs", h.ListUserLogs)
}

type listProductsRequest struct {
	dto.ListRequest
	PartNumber string `form:"part_number"`
	IncludeAll bool   `form:"include_inactive"`
}

// ListProducts returns the product master.
func (h *MasterDataHandler) ListProducts(c *gin.Context) {
	var req listProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	products, total, err := h.products.List(c.Request.Context(), masterdata.ProductFilter{
		PartNumber: req.PartNumber,
		ActiveOnly: !req.IncludeAll,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, page)
}

// ProductByPartNumber returns one product.
func (h *MasterDataHandler) ProductByPartNumber(c *gin.Context) {
	product, err := h.products.FindByPartNumber(c.Request.Context(), c.Param("partNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

type listDeliveriesRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	PartNumber string `form:"part_number"`
	Customer   string `form:"customer"`
}

// ListDeliveries returns finished-goods shipments.
func (h *MasterDataHandler) ListDeliveries(c *gin.Context) {
	var req listDeliveriesRequest
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
	deliveries, total, err := h.legacy.ListDeliveries(c.Request.Context(), masterdata.DeliveryFilter{
		PartNumber: req.PartNumber,
		Customer:   req.Customer,
		DateFrom:   from,
		DateTo:     to,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, deliveries, total, page)
}

type partNumberListRequest struct {
	dto.ListRequest
	PartNumber string `form:"part_number"`
}

// ListReturns returns customer returns.
func (h *MasterDataHandler) ListReturns(c *gin.Context) {
	var req partNumberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	returns, total, err := h.legacy.ListReturns(c.Request.Context(), req.PartNumber, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, returns, total, page)
}

// ListFGStock returns finished-goods stock from the legacy table.
func (h *MasterDataHandler) ListFGStock(c *gin.Context) {
	var req partNumberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	stock, total, err := h.legacy.ListFGStock(c.Request.Context(), req.PartNumber, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, stock, total, page)
}

type listWIPStockRequest struct {
	dto.ListRequest
	PartNumber     string `form:"part_number"`
	CurrentStation string `form:"station"`
}

// ListWIPStock returns work-in-progress stock.
func (h *MasterDataHandler) ListWIPStock(c *gin.Context) {
	var req listWIPStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	stock, total, err := h.wip.List(c.Request.Context(), production.WIPFilter{
		PartNumber:     req.PartNumber,
		CurrentStation: req.CurrentStation,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, stock, total, page)
}

type listStockTakesRequest struct {
	dto.ListRequest
	StockType       string `form:"stock_type" binding:"omitempty,oneof=fg wip"`
	PartNumber      string `form:"part_number"`
	WithDiscrepancy bool   `form:"with_discrepancy"`
}

// ListStockTakes returns stock take history.
func (h *MasterDataHandler) ListStockTakes(c *gin.Context) {
	var req listStockTakesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	takes, total, err := h.legacy.ListStockTakes(c.Request.Context(), masterdata.StockTakeFilter{
		StockType:       req.StockType,
		PartNumber:      req.PartNumber,
		WithDiscrepancy: req.WithDiscrepancy,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, takes, total, page)
}

// ListAdjustments returns manual stock adjustments.
func (h *MasterDataHandler) ListAdjustments(c *gin.Context) {
	var req partNumberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	adjustments, total, err := h.legacy.ListAdjustments(c.Request.Context(), req.PartNumber, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, adjustments, total, page)
}

type listUsersRequest struct {
	dto.ListRequest
	Role  string `form:"role" binding:"omitempty,oneof=production quality warehouse"`
	Email string `form:"email"`
}

// ListUsers returns operator accounts. Password hashes never leave the
// repository layer.
func (h *MasterDataHandler) ListUsers(c *gin.Context) {
	var req listUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	users, total, err := h.users.List(c.Request.Context(), masterdata.UserFilter{
		Role:  req.Role,
		Email: req.Email,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, page)
}

// ListUserLogs returns a user's login audit trail.
func (h *MasterDataHandler) ListUserLogs(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		h.BadRequest(c, "id must be a positive integer")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.FindByID(ctx, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	logs, total, err := h.users.ListLogs(ctx, userID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, page)
}
