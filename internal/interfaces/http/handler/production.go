package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	productionapp "github.com/erp/query-service/internal/application/production"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// ProductionHandler serves the /api/v1/production endpoints.
type ProductionHandler struct {
	BaseHandler
	service *productionapp.Service
}

// NewProductionHandler creates a production handler.
func NewProductionHandler(service *productionapp.Service) *ProductionHandler {
	return &ProductionHandler{service: service}
}

// RegisterRoutes registers production routes under the API group.
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prod := rg.Group("/production")
	prod.GET("/orders", h.ListOrders)
	prod.GET("/orders/status-summary", h.StatusSummary)
	prod.GET("/orders/:jobOrder", h.OrderDetail)
	prod.GET("/outputs", h.ListOutputs)
	prod.GET("/outputs/daily-summary", h.DailySummary)
	prod.GET("/machines", h.ListMachines)
	prod.GET("/machines/utilization", h.MachineUtilization)
	prod.GET("/wip", h.ListWIP)
	prod.GET("/dashboard", h.Dashboard)
	prod.GET("/search", h.Search)
}

type listOrdersRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	Status     string `form:"status" binding:"omitempty,oneof=running rework pending cancelled"`
	PartNumber string `form:"part_number"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ListOrders returns production orders with completion percentages.
func (h *ProductionHandler) ListOrders(c *gin.Context) {
	var req listOrdersRequest
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
	orders, total, err := h.service.ListOrders(c.Request.Context(), production.OrderFilter{
		Status:     req.Status,
		PartNumber: req.PartNumber,
		DateFrom:   from,
		DateTo:     to,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page)
}

// OrderDetail returns one order with its output history.
func (h *ProductionHandler) OrderDetail(c *gin.Context) {
	jobOrder := c.Param("jobOrder")

	detail, err := h.service.OrderByJobOrder(c.Request.Context(), jobOrder)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// StatusSummary counts orders per status.
func (h *ProductionHandler) StatusSummary(c *gin.Context) {
	summary, err := h.service.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

type listOutputsRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	ProductionOrderID int64  `form:"production_order_id" binding:"omitempty,min=1"`
	MachineID         string `form:"machine_id"`
	Shift             string `form:"shift" binding:"omitempty,oneof=1 2 3"`
	PartNumber        string `form:"part_number"`
}

// ListOutputs returns machine output records with yield rates.
func (h *ProductionHandler) ListOutputs(c *gin.Context) {
	var req listOutputsRequest
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
	outputs, total, err := h.service.ListOutputs(c.Request.Context(), production.OutputFilter{
		ProductionOrderID: req.ProductionOrderID,
		MachineID:         req.MachineID,
		Shift:             req.Shift,
		PartNumber:        req.PartNumber,
		DateFrom:          from,
		DateTo:            to,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, outputs, total, page)
}

// DailySummary aggregates output per production day.
func (h *ProductionHandler) DailySummary(c *gin.Context) {
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

	summaries, err := h.service.DailyOutputSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

type listMachinesRequest struct {
	dto.ListRequest
	Status     string `form:"status"`
	ActiveOnly bool   `form:"active_only"`
}

// ListMachines returns machines.
func (h *ProductionHandler) ListMachines(c *gin.Context) {
	var req listMachinesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	machines, total, err := h.service.ListMachines(c.Request.Context(), production.MachineFilter{
		Status:     req.Status,
		ActiveOnly: req.ActiveOnly,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, machines, total, page)
}

// MachineUtilization relates per-machine output to capacity over a window.
func (h *ProductionHandler) MachineUtilization(c *gin.Context) {
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

	report, err := h.service.MachineUtilizationReport(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

type listWIPRequest struct {
	dto.ListRequest
	PartNumber     string `form:"part_number"`
	CurrentStation string `form:"station"`
}

// ListWIP returns work-in-progress stock.
func (h *ProductionHandler) ListWIP(c *gin.Context) {
	var req listWIPRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	stock, total, err := h.service.ListWIP(c.Request.Context(), production.WIPFilter{
		PartNumber:     req.PartNumber,
		CurrentStation: req.CurrentStation,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, stock, total, page)
}

// Dashboard returns the production overview snapshot.
func (h *ProductionHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Search matches orders by job order, part number or machine name.
func (h *ProductionHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		h.BadRequest(c, "q is required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	orders, total, err := h.service.Search(c.Request.Context(), query, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page)
}
