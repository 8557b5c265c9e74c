package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bomapp "github.com/erp/query-service/internal/application/bom"
	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
)

type stubBOMRepo struct {
	lines map[string][]production.BOMLine
}

func (r *stubBOMRepo) ListActiveByParent(_ context.Context, parent string) ([]production.BOMLine, error) {
	return r.lines[parent], nil
}

type stubBOMBalanceRepo struct {
	available map[string]decimal.Decimal
}

func (r *stubBOMBalanceRepo) List(_ context.Context, _ inventory.BalanceFilter, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBOMBalanceRepo) TotalAvailableByPart(_ context.Context, partNumber string) (decimal.Decimal, error) {
	return r.available[partNumber], nil
}

func (r *stubBOMBalanceRepo) SummaryByPart(_ context.Context, _ shared.Page) ([]inventory.PartSummary, int64, error) {
	return nil, 0, nil
}

func (r *stubBOMBalanceRepo) SummaryByZone(_ context.Context) ([]inventory.ZoneSummary, error) {
	return nil, nil
}

func (r *stubBOMBalanceRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubBOMBalanceRepo) ListBelowReorderPoint(_ context.Context, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBOMBalanceRepo) ListStockAlerts(_ context.Context, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBOMBalanceRepo) ListSlowMoving(_ context.Context, _ time.Time, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func newBOMHandlerRouter() (*BOMHandler, *stubBOMRepo) {
	repo := &stubBOMRepo{lines: map[string][]production.BOMLine{
		"FG-100": {
			{ParentPartNumber: "FG-100", ChildPartNumber: "RM-001", QuantityRequired: dec("2"), ScrapFactor: dec("0.1")},
		},
	}}
	balances := &stubBOMBalanceRepo{available: map[string]decimal.Decimal{"RM-001": dec("100")}}
	return NewBOMHandler(bomapp.NewService(repo, balances)), repo
}

func TestBOMLinesReturnsComponents(t *testing.T) {
	h, _ := newBOMHandlerRouter()
	engine := newTestRouter(h)

	w, body := doGet(t, engine, "/api/v1/bom/FG-100")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.Success)

	var lines []production.BOMLine
	require.NoError(t, json.Unmarshal(body.Data, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, "RM-001", lines[0].ChildPartNumber)
}

func TestBOMLinesUnknownParentReturns404(t *testing.T) {
	h, _ := newBOMHandlerRouter()
	engine := newTestRouter(h)

	w, body := doGet(t, engine, "/api/v1/bom/NOPE")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "ERR_NOT_FOUND", body.Error.Code)
}

func TestBOMRequirementsRequiresQuantity(t *testing.T) {
	h, _ := newBOMHandlerRouter()
	engine := newTestRouter(h)

	w, body := doGet(t, engine, "/api/v1/bom/FG-100/requirements")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Error.Message, "quantity is required")

	w, body = doGet(t, engine, "/api/v1/bom/FG-100/requirements?quantity=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Error.Message, "must be a number")
}

func TestBOMRequirementsRejectsNonPositiveQuantity(t *testing.T) {
	h, _ := newBOMHandlerRouter()
	engine := newTestRouter(h)

	w, body := doGet(t, engine, "/api/v1/bom/FG-100/requirements?quantity=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_INVALID_INPUT", body.Error.Code)
}

func TestBOMRequirementsExplodesWithScrap(t *testing.T) {
	h, _ := newBOMHandlerRouter()
	engine := newTestRouter(h)

	w, body := doGet(t, engine, "/api/v1/bom/FG-100/requirements?quantity=10")
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		CanProduce   bool `json:"can_produce"`
		Requirements []struct {
			ChildPartNumber  string          `json:"child_part_number"`
			RequiredQuantity decimal.Decimal `json:"required_quantity"`
		} `json:"requirements"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.Len(t, result.Requirements, 1)
	// 10 * 2 * 1.1 = 22 against 100 available
	assert.True(t, result.Requirements[0].RequiredQuantity.Equal(dec("22")))
	assert.True(t, result.CanProduce)
}
