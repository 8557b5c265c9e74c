package handler

import (
	"github.com/gin-gonic/gin"

	mobileapp "github.com/erp/query-service/internal/application/mobile"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// MobileHandler serves the /api/v1/mobile endpoints. Responses are trimmed
// for shop-floor devices; the mobile middleware adds cache and rate-limit
// headers.
type MobileHandler struct {
	BaseHandler
	service *mobileapp.Service
}

// NewMobileHandler creates a mobile handler.
func NewMobileHandler(service *mobileapp.Service) *MobileHandler {
	return &MobileHandler{service: service}
}

// RegisterRoutes registers mobile routes under the given group.
func (h *MobileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/app-config", h.AppConfig)
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/low-stock", h.LowStock)
	rg.GET("/pending-inspections", h.PendingInspections)
	rg.GET("/warehouse-tasks", h.WarehouseTasks)
}

// AppConfig returns the minimum app version, feature toggles and endpoint
// index the mobile client boots from.
func (h *MobileHandler) AppConfig(c *gin.Context) {
	h.Success(c, h.service.AppConfig())
}

// Dashboard returns the compact shop-floor snapshot.
func (h *MobileHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// LowStock returns balances below their reorder point.
func (h *MobileHandler) LowStock(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	balances, total, err := h.service.LowStock(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, balances, total, page)
}

// PendingInspections returns inspection results awaiting completion.
func (h *MobileHandler) PendingInspections(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	results, total, err := h.service.PendingInspections(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, page)
}

// WarehouseTasks returns open cycle counts and active reservations as a
// single task list.
func (h *MobileHandler) WarehouseTasks(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	tasks, err := h.service.WarehouseTasks(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tasks)
}
