package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
)

type stubOrderRepo struct {
	orders     []production.Order
	byJobOrder map[string]*production.Order
	byStatus   []production.StatusCount
	err        error
}

func (r *stubOrderRepo) List(_ context.Context, _ production.OrderFilter, _ shared.Page) ([]production.Order, int64, error) {
	return r.orders, int64(len(r.orders)), r.err
}

func (r *stubOrderRepo) FindByJobOrder(_ context.Context, jobOrder string) (*production.Order, error) {
	if order, ok := r.byJobOrder[jobOrder]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) CountByStatus(_ context.Context) ([]production.StatusCount, error) {
	return r.byStatus, r.err
}

func (r *stubOrderRepo) Search(_ context.Context, _ string, _ shared.Page) ([]production.Order, int64, error) {
	return r.orders, int64(len(r.orders)), r.err
}

type stubOutputRepo struct {
	outputs      []production.Output
	goodByJob    map[string]decimal.Decimal
	totals       []production.MachineOutputTotal
	todayGood    decimal.Decimal
	todayNG      decimal.Decimal
	totalsCalled int
	err          error
}

func (r *stubOutputRepo) List(_ context.Context, _ production.OutputFilter, _ shared.Page) ([]production.Output, int64, error) {
	return r.outputs, int64(len(r.outputs)), r.err
}

func (r *stubOutputRepo) ListByJobOrder(_ context.Context, _ string) ([]production.Output, error) {
	return r.outputs, r.err
}

func (r *stubOutputRepo) TotalGoodByJobOrder(_ context.Context, jobOrder string) (decimal.Decimal, error) {
	return r.goodByJob[jobOrder], r.err
}

func (r *stubOutputRepo) DailySummary(_ context.Context, _, _ *time.Time) ([]production.DailyOutputSummary, error) {
	return nil, r.err
}

func (r *stubOutputRepo) TotalsByMachine(_ context.Context, _, _ *time.Time) ([]production.MachineOutputTotal, error) {
	return r.totals, r.err
}

func (r *stubOutputRepo) TotalsForDate(_ context.Context, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.totalsCalled++
	return r.todayGood, r.todayNG, r.err
}

type stubMachineRepo struct {
	machines []production.Machine
}

func (r *stubMachineRepo) List(_ context.Context, _ production.MachineFilter, _ shared.Page) ([]production.Machine, int64, error) {
	return r.machines, int64(len(r.machines)), nil
}

func (r *stubMachineRepo) FindByMachineID(_ context.Context, machineID string) (*production.Machine, error) {
	for i := range r.machines {
		if r.machines[i].MachineCode == machineID {
			return &r.machines[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

type stubWIPRepo struct {
	count int64
}

func (r *stubWIPRepo) List(_ context.Context, _ production.WIPFilter, _ shared.Page) ([]production.WIPStock, int64, error) {
	return nil, 0, nil
}

func (r *stubWIPRepo) Count(_ context.Context) (int64, error) {
	return r.count, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestListOrdersComputesCompletion(t *testing.T) {
	orders := &stubOrderRepo{orders: []production.Order{
		{JobOrder: "JO-001", PartNumber: "P-100", PlanQuantity: dec("200"), Status: production.OrderRunning},
		{JobOrder: "JO-002", PartNumber: "P-200", PlanQuantity: dec("0"), Status: production.OrderPending},
	}}
	outputs := &stubOutputRepo{goodByJob: map[string]decimal.Decimal{
		"JO-001": dec("50"),
	}}
	svc := NewService(orders, outputs, &stubMachineRepo{}, &stubWIPRepo{})

	views, total, err := svc.ListOrders(context.Background(), production.OrderFilter{}, shared.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.True(t, views[0].CompletionPercentage.Equal(dec("25")))
	// zero plan quantity must not divide by zero
	assert.True(t, views[1].CompletionPercentage.IsZero())
}

func TestOrderByJobOrderSumsOutputs(t *testing.T) {
	order := &production.Order{JobOrder: "JO-001", PlanQuantity: dec("100")}
	orders := &stubOrderRepo{byJobOrder: map[string]*production.Order{"JO-001": order}}
	outputs := &stubOutputRepo{outputs: []production.Output{
		{QuantityGood: dec("30"), QuantityNG: dec("2")},
		{QuantityGood: dec("20"), QuantityNG: dec("1")},
	}}
	svc := NewService(orders, outputs, &stubMachineRepo{}, &stubWIPRepo{})

	detail, err := svc.OrderByJobOrder(context.Background(), "JO-001")
	require.NoError(t, err)
	assert.True(t, detail.ProducedGood.Equal(dec("50")))
	assert.True(t, detail.CompletionPercentage.Equal(dec("50")))
	assert.Len(t, detail.Outputs, 2)
}

func TestOrderByJobOrderUnknownReturnsNotFound(t *testing.T) {
	orders := &stubOrderRepo{byJobOrder: map[string]*production.Order{}}
	svc := NewService(orders, &stubOutputRepo{}, &stubMachineRepo{}, &stubWIPRepo{})

	_, err := svc.OrderByJobOrder(context.Background(), "missing")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestListOutputsComputesYield(t *testing.T) {
	outputs := &stubOutputRepo{outputs: []production.Output{
		{MachineID: "MC-01", QuantityGood: dec("90"), QuantityNG: dec("10")},
		{MachineID: "MC-02", QuantityGood: dec("0"), QuantityNG: dec("0")},
	}}
	svc := NewService(&stubOrderRepo{}, outputs, &stubMachineRepo{}, &stubWIPRepo{})

	views, _, err := svc.ListOutputs(context.Background(), production.OutputFilter{}, shared.NewPage(0, 0))
	require.NoError(t, err)
	assert.True(t, views[0].YieldRate.Equal(dec("90")))
	assert.True(t, views[1].YieldRate.IsZero())
}

func TestMachineUtilizationReport(t *testing.T) {
	capacity := dec("10")
	machines := &stubMachineRepo{machines: []production.Machine{
		{MachineCode: "MC-01", MachineName: "Press 1", Status: "active", CapacityPerHour: &capacity},
		{MachineCode: "MC-02", MachineName: "Press 2", Status: "active"},
	}}
	outputs := &stubOutputRepo{totals: []production.MachineOutputTotal{
		{MachineID: "MC-01", QuantityGood: dec("100"), QuantityNG: dec("20")},
	}}
	svc := NewService(&stubOrderRepo{}, outputs, machines, &stubWIPRepo{})

	from := time.Now().Add(-10 * time.Hour)
	to := time.Now()
	report, err := svc.MachineUtilizationReport(context.Background(), &from, &to)
	require.NoError(t, err)
	require.Len(t, report, 2)

	// 120 produced over 10h against 10/h capacity = 120%
	assert.InDelta(t, 120.0, report[0].UtilizationPercent.InexactFloat64(), 0.01)
	assert.InDelta(t, 83.33, report[0].YieldPercent.InexactFloat64(), 0.01)

	// machine without capacity or output reports zero across the board
	assert.True(t, report[1].QuantityGood.IsZero())
	assert.True(t, report[1].UtilizationPercent.IsZero())
}

func TestDashboardComputesTodayYield(t *testing.T) {
	orders := &stubOrderRepo{byStatus: []production.StatusCount{{Status: "running", Count: 3}}}
	outputs := &stubOutputRepo{todayGood: dec("80"), todayNG: dec("20")}
	svc := NewService(orders, outputs, &stubMachineRepo{}, &stubWIPRepo{count: 7})

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), dashboard.WIPCount)
	assert.True(t, dashboard.TodayYield.Equal(dec("80")))
	assert.Equal(t, "running", dashboard.OrdersByStatus[0].Status)
}

func TestDashboardServedFromCache(t *testing.T) {
	orders := &stubOrderRepo{byStatus: []production.StatusCount{{Status: "running", Count: 1}}}
	outputs := &stubOutputRepo{todayGood: dec("10"), todayNG: dec("0")}
	svc := NewService(orders, outputs, &stubMachineRepo{}, &stubWIPRepo{},
		WithCache(cache.NewInMemoryQueryCache(), time.Minute))

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outputs.totalsCalled)
}
