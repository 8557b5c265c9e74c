package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productionapp "github.com/erp/query-service/internal/application/production"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
)

type stubOrderRepo struct {
	orders     []production.Order
	byJobOrder map[string]*production.Order
	query      string
}

func (r *stubOrderRepo) List(_ context.Context, _ production.OrderFilter, _ shared.Page) ([]production.Order, int64, error) {
	return r.orders, int64(len(r.orders)), nil
}

func (r *stubOrderRepo) FindByJobOrder(_ context.Context, jobOrder string) (*production.Order, error) {
	if order, ok := r.byJobOrder[jobOrder]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) CountByStatus(_ context.Context) ([]production.StatusCount, error) {
	return nil, nil
}

func (r *stubOrderRepo) Search(_ context.Context, query string, _ shared.Page) ([]production.Order, int64, error) {
	r.query = query
	return r.orders, int64(len(r.orders)), nil
}

type stubOutputRepo struct {
	goodByJob map[string]decimal.Decimal
}

func (r *stubOutputRepo) List(_ context.Context, _ production.OutputFilter, _ shared.Page) ([]production.Output, int64, error) {
	return nil, 0, nil
}

func (r *stubOutputRepo) ListByJobOrder(_ context.Context, _ string) ([]production.Output, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalGoodByJobOrder(_ context.Context, jobOrder string) (decimal.Decimal, error) {
	return r.goodByJob[jobOrder], nil
}

func (r *stubOutputRepo) DailySummary(_ context.Context, _, _ *time.Time) ([]production.DailyOutputSummary, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalsByMachine(_ context.Context, _, _ *time.Time) ([]production.MachineOutputTotal, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalsForDate(_ context.Context, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

type stubMachineRepo struct{}

func (r *stubMachineRepo) List(_ context.Context, _ production.MachineFilter, _ shared.Page) ([]production.Machine, int64, error) {
	return nil, 0, nil
}

func (r *stubMachineRepo) FindByMachineID(_ context.Context, _ string) (*production.Machine, error) {
	return nil, shared.ErrNotFound
}

type stubWIPRepo struct{}

func (r *stubWIPRepo) List(_ context.Context, _ production.WIPFilter, _ shared.Page) ([]production.WIPStock, int64, error) {
	return nil, 0, nil
}

func (r *stubWIPRepo) Count(_ context.Context) (int64, error) {
	return 0, nil
}

func newProductionRouter() (*gin.Engine, *stubOrderRepo) {
	orders := &stubOrderRepo{
		orders: []production.Order{
			{JobOrder: "JO-001", PartNumber: "P-100", PlanQuantity: dec("200"), Status: production.OrderRunning},
		},
		byJobOrder: map[string]*production.Order{
			"JO-001": {JobOrder: "JO-001", PartNumber: "P-100", PlanQuantity: dec("200")},
		},
	}
	outputs := &stubOutputRepo{goodByJob: map[string]decimal.Decimal{"JO-001": dec("50")}}
	svc := productionapp.NewService(orders, outputs, &stubMachineRepo{}, &stubWIPRepo{})
	return newTestRouter(NewProductionHandler(svc)), orders
}

func TestListOrdersReturnsCompletion(t *testing.T) {
	engine, _ := newProductionRouter()

	w, body := doGet(t, engine, "/api/v1/production/orders")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, body.Meta)
	assert.Equal(t, int64(1), body.Meta.Total)

	var views []struct {
		JobOrder             string          `json:"job_order"`
		CompletionPercentage decimal.Decimal `json:"completion_percentage"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &views))
	require.Len(t, views, 1)
	assert.True(t, views[0].CompletionPercentage.Equal(dec("25")))
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	engine, _ := newProductionRouter()

	w, body := doGet(t, engine, "/api/v1/production/orders?status=paused")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", body.Error.Code)
}

func TestListOrdersRejectsInvertedDateWindow(t *testing.T) {
	engine, _ := newProductionRouter()

	w, _ := doGet(t, engine,
		"/api/v1/production/orders?date_from=2026-03-01&date_to=2026-02-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderDetailReturnsOutputs(t *testing.T) {
	engine, _ := newProductionRouter()

	w, body := doGet(t, engine, "/api/v1/production/orders/JO-001")
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		JobOrder     string          `json:"job_order"`
		ProducedGood decimal.Decimal `json:"produced_good"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &detail))
	assert.Equal(t, "JO-001", detail.JobOrder)
	assert.True(t, detail.ProducedGood.Equal(dec("50")))
}

func TestOrderDetailUnknownJobOrderReturns404(t *testing.T) {
	engine, _ := newProductionRouter()

	w, body := doGet(t, engine, "/api/v1/production/orders/JO-999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", body.Error.Code)
}

func TestListOutputsRejectsUnknownShift(t *testing.T) {
	engine, _ := newProductionRouter()

	w, _ := doGet(t, engine, "/api/v1/production/outputs?shift=4")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	engine, _ := newProductionRouter()

	w, body := doGet(t, engine, "/api/v1/production/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Error.Message, "q is required")

	// whitespace-only counts as missing
	w, _ = doGet(t, engine, "/api/v1/production/search?q=%20%20")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchTrimsQuery(t *testing.T) {
	engine, orders := newProductionRouter()

	w, _ := doGet(t, engine, "/api/v1/production/search?q=%20JO-001%20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JO-001", orders.query)
}
