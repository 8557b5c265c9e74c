// Package production answers the production-floor queries: order progress,
// machine output, machine utilization and the production dashboard.
package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

const dashboardCacheKey = "production:dashboard"

// OrderView is a production order enriched with output progress.
type OrderView struct {
	production.Order
	ProducedGood         decimal.Decimal `json:"produced_good"`
	CompletionPercentage decimal.Decimal `json:"completion_percentage"`
}

// OrderDetail is one order with its output history.
type OrderDetail struct {
	OrderView
	Outputs []production.Output `json:"outputs"`
}

// OutputView is an output record with its computed yield.
type OutputView struct {
	production.Output
	YieldRate decimal.Decimal `json:"yield_rate"`
}

// MachineUtilization relates a machine's actual output to its capacity over
// a window.
type MachineUtilization struct {
	MachineCode        string          `json:"machine_code"`
	MachineName        string          `json:"machine_name"`
	Status             string          `json:"status"`
	QuantityGood       decimal.Decimal `json:"quantity_good"`
	QuantityNG         decimal.Decimal `json:"quantity_ng"`
	YieldPercent       decimal.Decimal `json:"yield_percent"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}

// Dashboard is the production overview snapshot.
type Dashboard struct {
	OrdersByStatus []production.StatusCount `json:"orders_by_status"`
	TodayGood      decimal.Decimal          `json:"today_good"`
	TodayNG        decimal.Decimal          `json:"today_ng"`
	TodayYield     decimal.Decimal          `json:"today_yield"`
	WIPCount       int64                    `json:"wip_count"`
	GeneratedAt    time.Time                `json:"generated_at"`
}

// Service executes production queries against the read model.
type Service struct {
	orders   production.OrderRepository
	outputs  production.OutputRepository
	machines production.MachineRepository
	wip      production.WIPRepository
	cache    cache.QueryCache
	cacheTTL time.Duration
	metrics  *telemetry.QueryMetrics
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables read-through caching for the dashboard.
func WithCache(c cache.QueryCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics records cache hit/miss counters.
func WithMetrics(m *telemetry.QueryMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a production query service.
func NewService(
	orders production.OrderRepository,
	outputs production.OutputRepository,
	machines production.MachineRepository,
	wip production.WIPRepository,
	opts ...Option,
) *Service {
	s := &Service{
		orders:   orders,
		outputs:  outputs,
		machines: machines,
		wip:      wip,
		cacheTTL: time.Minute,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOrders returns orders with their completion percentage.
func (s *Service) ListOrders(ctx context.Context, filter production.OrderFilter, page shared.Page) ([]OrderView, int64, error) {
	orders, total, err := s.orders.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.enrichOrders(ctx, orders)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// OrderByJobOrder returns one order with its outputs and progress.
// Returns shared.ErrNotFound for unknown job orders.
func (s *Service) OrderByJobOrder(ctx context.Context, jobOrder string) (*OrderDetail, error) {
	order, err := s.orders.FindByJobOrder(ctx, jobOrder)
	if err != nil {
		return nil, err
	}

	outputs, err := s.outputs.ListByJobOrder(ctx, jobOrder)
	if err != nil {
		return nil, err
	}

	produced := decimal.Zero
	for i := range outputs {
		produced = produced.Add(outputs[i].QuantityGood)
	}

	return &OrderDetail{
		OrderView: OrderView{
			Order:                *order,
			ProducedGood:         produced,
			CompletionPercentage: order.CompletionPercent(produced),
		},
		Outputs: outputs,
	}, nil
}

// StatusSummary counts orders per status.
func (s *Service) StatusSummary(ctx context.Context) ([]production.StatusCount, error) {
	return s.orders.CountByStatus(ctx)
}

// Search matches orders by job order, part number or machine name.
func (s *Service) Search(ctx context.Context, query string, page shared.Page) ([]OrderView, int64, error) {
	orders, total, err := s.orders.Search(ctx, query, page)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.enrichOrders(ctx, orders)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListOutputs returns output records with their yield rate.
func (s *Service) ListOutputs(ctx context.Context, filter production.OutputFilter, page shared.Page) ([]OutputView, int64, error) {
	outputs, total, err := s.outputs.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	views := make([]OutputView, len(outputs))
	for i := range outputs {
		views[i] = OutputView{Output: outputs[i], YieldRate: outputs[i].YieldPercent()}
	}
	return views, total, nil
}

// DailyOutputSummary aggregates good/NG output per production day.
func (s *Service) DailyOutputSummary(ctx context.Context, from, to *time.Time) ([]production.DailyOutputSummary, error) {
	return s.outputs.DailySummary(ctx, from, to)
}

// ListMachines returns machines matching the filter.
func (s *Service) ListMachines(ctx context.Context, filter production.MachineFilter, page shared.Page) ([]production.Machine, int64, error) {
	return s.machines.List(ctx, filter, page)
}

// MachineUtilizationReport relates per-machine output over a window to each
// machine's theoretical capacity. A nil window defaults to the last 24 hours.
func (s *Service) MachineUtilizationReport(ctx context.Context, from, to *time.Time) ([]MachineUtilization, error) {
	now := time.Now()
	windowEnd := now
	if to != nil {
		windowEnd = *to
	}
	windowStart := windowEnd.Add(-24 * time.Hour)
	if from != nil {
		windowStart = *from
	}

	windowHours := decimal.NewFromFloat(windowEnd.Sub(windowStart).Hours())
	if windowHours.IsNegative() {
		windowHours = decimal.Zero
	}

	machines, _, err := s.machines.List(ctx, production.MachineFilter{}, shared.Page{Limit: shared.MaxPageLimit})
	if err != nil {
		return nil, err
	}

	totals, err := s.outputs.TotalsByMachine(ctx, &windowStart, &windowEnd)
	if err != nil {
		return nil, err
	}
	byMachine := make(map[string]production.MachineOutputTotal, len(totals))
	for _, t := range totals {
		byMachine[t.MachineID] = t
	}

	report := make([]MachineUtilization, 0, len(machines))
	for i := range machines {
		m := &machines[i]
		t := byMachine[m.MachineCode]
		report = append(report, MachineUtilization{
			MachineCode:        m.MachineCode,
			MachineName:        m.MachineName,
			Status:             m.Status,
			QuantityGood:       t.QuantityGood,
			QuantityNG:         t.QuantityNG,
			YieldPercent:       production.YieldPercent(t.QuantityGood, t.QuantityNG),
			UtilizationPercent: m.UtilizationPercent(t.QuantityGood.Add(t.QuantityNG), windowHours),
		})
	}
	return report, nil
}

// ListWIP returns work-in-progress stock.
func (s *Service) ListWIP(ctx context.Context, filter production.WIPFilter, page shared.Page) ([]production.WIPStock, int64, error) {
	return s.wip.List(ctx, filter, page)
}

// Dashboard assembles the production overview, served from cache when fresh.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, hit, err := cache.GetOrCompute(ctx, s.cache, dashboardCacheKey, s.cacheTTL, s.buildDashboard)
	if err != nil {
		return nil, err
	}
	s.recordCacheResult(ctx, hit)
	return dashboard, nil
}

func (s *Service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "build_dashboard")
	defer span.End()

	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	good, ng, err := s.outputs.TotalsForDate(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	wipCount, err := s.wip.Count(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &Dashboard{
		OrdersByStatus: byStatus,
		TodayGood:      good,
		TodayNG:        ng,
		TodayYield:     production.YieldPercent(good, ng),
		WIPCount:       wipCount,
		GeneratedAt:    time.Now(),
	}, nil
}

func (s *Service) enrichOrders(ctx context.Context, orders []production.Order) ([]OrderView, error) {
	views := make([]OrderView, len(orders))
	for i := range orders {
		produced, err := s.outputs.TotalGoodByJobOrder(ctx, orders[i].JobOrder)
		if err != nil {
			return nil, err
		}
		views[i] = OrderView{
			Order:                orders[i],
			ProducedGood:         produced,
			CompletionPercentage: orders[i].CompletionPercent(produced),
		}
	}
	return views, nil
}

func (s *Service) recordCacheResult(ctx context.Context, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit(ctx)
	} else {
		s.metrics.RecordCacheMiss(ctx)
	}
}
