package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	qualityapp "github.com/erp/query-service/internal/application/quality"
	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// QualityHandler serves the /api/v1/qc endpoints.
type QualityHandler struct {
	BaseHandler
	service *qualityapp.Service
}

// NewQualityHandler creates a quality handler.
func NewQualityHandler(service *qualityapp.Service) *QualityHandler {
	return &QualityHandler{service: service}
}

// RegisterRoutes registers quality routes under the API group.
func (h *QualityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	qc := rg.Group("/qc")
	qc.GET("/oqc", h.ListOQC)
	qc.GET("/oqc/:id", h.OQCByID)
	qc.GET("/inspection-plans", h.ListInspectionPlans)
	qc.GET("/inspection-results", h.ListInspectionResults)
	qc.GET("/ncr", h.ListNCRs)
	qc.GET("/transfers", h.ListTransfers)
	qc.GET("/dashboard", h.Dashboard)
}

type listOQCRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	PartNumber string `form:"part_number"`
	LotNumber  string `form:"lot_number"`
}

// ListOQC returns outgoing QC records with pass rates.
func (h *QualityHandler) ListOQC(c *gin.Context) {
	var req listOQCRequest
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
	records, total, err := h.service.ListOQC(c.Request.Context(), quality.OQCFilter{
		PartNumber: req.PartNumber,
		LotNumber:  req.LotNumber,
		DateFrom:   from,
		DateTo:     to,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, page)
}

// OQCByID returns one outgoing QC record.
func (h *QualityHandler) OQCByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.BadRequest(c, "id must be a positive integer")
		return
	}

	record, err := h.service.OQCByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

type listPlansRequest struct {
	dto.ListRequest
	PartNumber     string `form:"part_number"`
	InspectionType string `form:"inspection_type"`
	ActiveOnly     bool   `form:"active_only"`
}

// ListInspectionPlans returns inspection plans.
func (h *QualityHandler) ListInspectionPlans(c *gin.Context) {
	var req listPlansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	plans, total, err := h.service.ListInspectionPlans(c.Request.Context(), quality.PlanFilter{
		PartNumber:     req.PartNumber,
		InspectionType: req.InspectionType,
		ActiveOnly:     req.ActiveOnly,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, page)
}

type listResultsRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	QCPlanID      int64  `form:"plan_id" binding:"omitempty,min=1"`
	PartNumber    string `form:"part_number"`
	Status        string `form:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	OverallResult string `form:"result" binding:"omitempty,oneof=pass fail conditional"`
}

// ListInspectionResults returns inspection results.
func (h *QualityHandler) ListInspectionResults(c *gin.Context) {
	var req listResultsRequest
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
	results, total, err := h.service.ListInspectionResults(c.Request.Context(), quality.ResultFilter{
		QCPlanID:      req.QCPlanID,
		PartNumber:    req.PartNumber,
		Status:        req.Status,
		OverallResult: req.OverallResult,
		DateFrom:      from,
		DateTo:        to,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, results, total, page)
}

type listNCRsRequest struct {
	dto.ListRequest
	Status     string `form:"status" binding:"omitempty,oneof=open investigating action_required closed cancelled"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	PartNumber string `form:"part_number"`
}

// ListNCRs returns non-conformance reports with overdue flags.
func (h *QualityHandler) ListNCRs(c *gin.Context) {
	var req listNCRsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	page := shared.NewPage(req.Limit, req.Offset)
	ncrs, total, err := h.service.ListNCRs(c.Request.Context(), quality.NCRFilter{
		Status:     req.Status,
		Priority:   req.Priority,
		PartNumber: req.PartNumber,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, ncrs, total, page)
}

type listTransfersRequest struct {
	dto.ListRequest
	dto.DateRangeRequest
	PartNumber string `form:"part_number"`
}

// ListTransfers returns production-to-QC transfer records.
func (h *QualityHandler) ListTransfers(c *gin.Context) {
	var req listTransfersRequest
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
	transfers, total, err := h.service.ListTransfers(c.Request.Context(), quality.TransferFilter{
		PartNumber: req.PartNumber,
		DateFrom:   from,
		DateTo:     to,
	}, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transfers, total, page)
}

// Dashboard returns the quality overview snapshot.
func (h *QualityHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}
