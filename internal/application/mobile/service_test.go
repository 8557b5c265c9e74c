package mobile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/config"
)

type stubOrderRepo struct {
	byStatus []production.StatusCount
}

func (r *stubOrderRepo) List(_ context.Context, _ production.OrderFilter, _ shared.Page) ([]production.Order, int64, error) {
	return nil, 0, nil
}

func (r *stubOrderRepo) FindByJobOrder(_ context.Context, _ string) (*production.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) CountByStatus(_ context.Context) ([]production.StatusCount, error) {
	return r.byStatus, nil
}

func (r *stubOrderRepo) Search(_ context.Context, _ string, _ shared.Page) ([]production.Order, int64, error) {
	return nil, 0, nil
}

type stubOutputRepo struct {
	todayGood    decimal.Decimal
	todayNG      decimal.Decimal
	totalsCalled int
}

func (r *stubOutputRepo) List(_ context.Context, _ production.OutputFilter, _ shared.Page) ([]production.Output, int64, error) {
	return nil, 0, nil
}

func (r *stubOutputRepo) ListByJobOrder(_ context.Context, _ string) ([]production.Output, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalGoodByJobOrder(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubOutputRepo) DailySummary(_ context.Context, _, _ *time.Time) ([]production.DailyOutputSummary, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalsByMachine(_ context.Context, _, _ *time.Time) ([]production.MachineOutputTotal, error) {
	return nil, nil
}

func (r *stubOutputRepo) TotalsForDate(_ context.Context, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.totalsCalled++
	return r.todayGood, r.todayNG, nil
}

type stubBalanceRepo struct {
	lowStock     int64
	lowStockPage shared.Page
}

func (r *stubBalanceRepo) List(_ context.Context, _ inventory.BalanceFilter, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) TotalAvailableByPart(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubBalanceRepo) SummaryByPart(_ context.Context, _ shared.Page) ([]inventory.PartSummary, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) SummaryByZone(_ context.Context) ([]inventory.ZoneSummary, error) {
	return nil, nil
}

func (r *stubBalanceRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubBalanceRepo) ListBelowReorderPoint(_ context.Context, page shared.Page) ([]inventory.Balance, int64, error) {
	r.lowStockPage = page
	return nil, r.lowStock, nil
}

func (r *stubBalanceRepo) ListStockAlerts(_ context.Context, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

func (r *stubBalanceRepo) ListSlowMoving(_ context.Context, _ time.Time, _ shared.Page) ([]inventory.Balance, int64, error) {
	return nil, 0, nil
}

type stubCycleCountRepo struct {
	counts []inventory.CycleCount
	filter inventory.CycleCountFilter
}

func (r *stubCycleCountRepo) List(_ context.Context, filter inventory.CycleCountFilter, _ shared.Page) ([]inventory.CycleCount, int64, error) {
	r.filter = filter
	return r.counts, int64(len(r.counts)), nil
}

func (r *stubCycleCountRepo) FindByID(_ context.Context, _ int64) (*inventory.CycleCount, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCycleCountRepo) ListDetails(_ context.Context, _ int64, _ bool) ([]inventory.CycleCountDetail, error) {
	return nil, nil
}

func (r *stubCycleCountRepo) VarianceSummary(_ context.Context, _, _ *time.Time) (*inventory.VarianceSummary, error) {
	return nil, nil
}

func (r *stubCycleCountRepo) CountOpen(_ context.Context) (int64, error) {
	return int64(len(r.counts)), nil
}

type stubReservationRepo struct {
	reservations []inventory.Reservation
	filter       inventory.ReservationFilter
}

func (r *stubReservationRepo) List(_ context.Context, filter inventory.ReservationFilter, _ shared.Page) ([]inventory.Reservation, int64, error) {
	r.filter = filter
	return r.reservations, int64(len(r.reservations)), nil
}

func (r *stubReservationRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(r.reservations)), nil
}

type stubInspectionRepo struct {
	pending      int64
	pendingPage  shared.Page
	statusesSeen []string
}

func (r *stubInspectionRepo) ListPlans(_ context.Context, _ quality.PlanFilter, _ shared.Page) ([]quality.InspectionPlan, int64, error) {
	return nil, 0, nil
}

func (r *stubInspectionRepo) ListResults(_ context.Context, _ quality.ResultFilter, _ shared.Page) ([]quality.InspectionResult, int64, error) {
	return nil, 0, nil
}

func (r *stubInspectionRepo) ResultTotals(_ context.Context) (*quality.InspectionTotals, error) {
	return &quality.InspectionTotals{}, nil
}

func (r *stubInspectionRepo) CountResultsByStatus(_ context.Context, statuses []string) (int64, error) {
	r.statusesSeen = statuses
	return r.pending, nil
}

func (r *stubInspectionRepo) ListPendingResults(_ context.Context, page shared.Page) ([]quality.InspectionResult, int64, error) {
	r.pendingPage = page
	return nil, r.pending, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type testRepos struct {
	orders       *stubOrderRepo
	outputs      *stubOutputRepo
	balances     *stubBalanceRepo
	cycleCounts  *stubCycleCountRepo
	reservations *stubReservationRepo
	inspections  *stubInspectionRepo
}

func newTestService(cfg config.MobileConfig, opts ...Option) (*Service, *testRepos) {
	repos := &testRepos{
		orders:       &stubOrderRepo{},
		outputs:      &stubOutputRepo{},
		balances:     &stubBalanceRepo{},
		cycleCounts:  &stubCycleCountRepo{},
		reservations: &stubReservationRepo{},
		inspections:  &stubInspectionRepo{},
	}
	svc := NewService(cfg,
		repos.orders, repos.outputs, repos.balances,
		repos.cycleCounts, repos.reservations, repos.inspections,
		opts...)
	return svc, repos
}

func TestAppConfigPayload(t *testing.T) {
	svc, _ := newTestService(config.MobileConfig{MinAppVersion: "2.1.0", CacheMaxAge: 300})

	cfg := svc.AppConfig()
	assert.Equal(t, "2.1.0", cfg.MinAppVersion)
	assert.Equal(t, 300, cfg.CacheMaxAge)
	assert.Equal(t, "/api/v1/mobile", cfg.MobileBase)
	assert.True(t, cfg.Features["dashboard"])
	assert.False(t, cfg.Features["offline_mode"])
	assert.Equal(t, "/api/v1/mobile/low-stock", cfg.Endpoints["low_stock"])
}

func TestDashboardAggregates(t *testing.T) {
	svc, repos := newTestService(config.MobileConfig{})
	repos.orders.byStatus = []production.StatusCount{
		{Status: production.OrderRunning, Count: 5},
		{Status: production.OrderPending, Count: 9},
	}
	repos.outputs.todayGood = dec("80")
	repos.outputs.todayNG = dec("20")
	repos.balances.lowStock = 3
	repos.inspections.pending = 4

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), dashboard.RunningOrders)
	assert.True(t, dashboard.TodayYield.Equal(dec("80")))
	assert.Equal(t, int64(3), dashboard.LowStockCount)
	assert.Equal(t, int64(4), dashboard.PendingInspections)
	// only open result states count toward the pending badge
	assert.Equal(t,
		[]string{quality.InspectionPending, quality.InspectionInProgress},
		repos.inspections.statusesSeen)
}

func TestDashboardServedFromCache(t *testing.T) {
	svc, repos := newTestService(config.MobileConfig{},
		WithCache(cache.NewInMemoryQueryCache(), time.Minute))

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repos.outputs.totalsCalled)
}

func TestLowStockTrimsPageLimit(t *testing.T) {
	svc, repos := newTestService(config.MobileConfig{})

	_, _, err := svc.LowStock(context.Background(), shared.Page{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxMobilePageLimit, repos.balances.lowStockPage.Limit)

	_, _, err = svc.LowStock(context.Background(), shared.Page{Limit: 0, Offset: -10})
	require.NoError(t, err)
	assert.Equal(t, MaxMobilePageLimit, repos.balances.lowStockPage.Limit)
	assert.Equal(t, 0, repos.balances.lowStockPage.Offset)
}

func TestPendingInspectionsTrimsPageLimit(t *testing.T) {
	svc, repos := newTestService(config.MobileConfig{})

	_, _, err := svc.PendingInspections(context.Background(), shared.Page{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, repos.inspections.pendingPage.Limit)
}

func TestWarehouseTasksCombinesCountsAndReservations(t *testing.T) {
	svc, repos := newTestService(config.MobileConfig{})

	countDate := time.Now().AddDate(0, 0, 1)
	repos.cycleCounts.counts = []inventory.CycleCount{
		{CountNumber: "CC-001", LocationID: 3, CountDate: countDate, Status: inventory.CountPending},
	}
	expiry := time.Now().AddDate(0, 0, 2)
	repos.reservations.reservations = []inventory.Reservation{
		{
			ReservationNumber: "RSV-001",
			PartNumber:        "P-100",
			LocationID:        7,
			ReservedQuantity:  dec("25"),
			ExpiryDate:        &expiry,
			Status:            inventory.ReservationActive,
		},
	}

	tasks, err := svc.WarehouseTasks(context.Background(), shared.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, TaskCycleCount, tasks[0].TaskType)
	assert.Equal(t, "CC-001", tasks[0].Reference)
	assert.Equal(t, int64(3), tasks[0].LocationID)
	require.NotNil(t, tasks[0].DueDate)
	assert.True(t, tasks[0].DueDate.Equal(countDate))

	assert.Equal(t, TaskReservation, tasks[1].TaskType)
	assert.Equal(t, "P-100", tasks[1].PartNumber)
	require.NotNil(t, tasks[1].Quantity)
	assert.True(t, tasks[1].Quantity.Equal(dec("25")))

	// the queries only ask for open work
	assert.Equal(t, inventory.CountPending, repos.cycleCounts.filter.Status)
	assert.Equal(t, inventory.ReservationActive, repos.reservations.filter.Status)
}
