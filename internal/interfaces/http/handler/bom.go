package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	bomapp "github.com/erp/query-service/internal/application/bom"
)

// BOMHandler serves the /api/v1/bom endpoints.
type BOMHandler struct {
	BaseHandler
	service *bomapp.Service
}

// NewBOMHandler creates a BOM handler.
func NewBOMHandler(service *bomapp.Service) *BOMHandler {
	return &BOMHandler{service: service}
}

// RegisterRoutes registers BOM routes under the API group.
func (h *BOMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bom := rg.Group("/bom")
	bom.GET("/:parentPart", h.Lines)
	bom.GET("/:parentPart/requirements", h.Requirements)
}

// Lines returns the active BOM lines of a parent part ordered by operation
// sequence. Unknown parents return 404.
func (h *BOMHandler) Lines(c *gin.Context) {
	lines, err := h.service.Lines(c.Request.Context(), c.Param("parentPart"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// Requirements explodes the BOM for a requested quantity and compares each
// component against available stock.
func (h *BOMHandler) Requirements(c *gin.Context) {
	rawQuantity := c.Query("quantity")
	if rawQuantity == "" {
		h.BadRequest(c, "quantity is required")
		return
	}

	quantity, err := decimal.NewFromString(rawQuantity)
	if err != nil {
		h.BadRequest(c, "quantity must be a number")
		return
	}

	result, err := h.service.Requirements(c.Request.Context(), c.Param("parentPart"), quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
