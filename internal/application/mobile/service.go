// Package mobile assembles the trimmed-down payloads served to the shop-floor
// mobile app: app config, a compact dashboard, low stock, pending inspections
// and warehouse tasks.
package mobile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/production"
	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/config"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

const dashboardCacheKey = "mobile:dashboard"

// MaxMobilePageLimit trims list payloads on mobile routes.
const MaxMobilePageLimit = 50

// Warehouse task types.
const (
	TaskCycleCount  = "cycle_count"
	TaskReservation = "reservation"
)

// AppConfig is the bootstrap payload the mobile app fetches before login.
type AppConfig struct {
	MinAppVersion string            `json:"min_app_version"`
	APIBasePath   string            `json:"api_base_path"`
	MobileBase    string            `json:"mobile_base_path"`
	Features      map[string]bool   `json:"features"`
	CacheMaxAge   int               `json:"cache_max_age"`
	Endpoints     map[string]string `json:"endpoints"`
}

// Dashboard is the compact shop-floor snapshot.
type Dashboard struct {
	RunningOrders      int64           `json:"running_orders"`
	TodayGood          decimal.Decimal `json:"today_good"`
	TodayNG            decimal.Decimal `json:"today_ng"`
	TodayYield         decimal.Decimal `json:"today_yield"`
	LowStockCount      int64           `json:"low_stock_count"`
	PendingInspections int64           `json:"pending_inspections"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// WarehouseTask is one open item a warehouse operator should act on.
type WarehouseTask struct {
	TaskType   string           `json:"task_type"`
	Reference  string           `json:"reference"`
	PartNumber string           `json:"part_number,omitempty"`
	LocationID int64            `json:"location_id"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	Status     string           `json:"status"`
}

// Service assembles mobile payloads from the domain repositories.
type Service struct {
	cfg          config.MobileConfig
	orders       production.OrderRepository
	outputs      production.OutputRepository
	balances     inventory.BalanceRepository
	cycleCounts  inventory.CycleCountRepository
	reservations inventory.ReservationRepository
	inspections  quality.InspectionRepository
	cache        cache.QueryCache
	cacheTTL     time.Duration
	metrics      *telemetry.QueryMetrics
	logger       *zap.Logger
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

// NewService creates a mobile query service.
func NewService(
	cfg config.MobileConfig,
	orders production.OrderRepository,
	outputs production.OutputRepository,
	balances inventory.BalanceRepository,
	cycleCounts inventory.CycleCountRepository,
	reservations inventory.ReservationRepository,
	inspections quality.InspectionRepository,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:          cfg,
		orders:       orders,
		outputs:      outputs,
		balances:     balances,
		cycleCounts:  cycleCounts,
		reservations: reservations,
		inspections:  inspections,
		cacheTTL:     time.Minute,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppConfig returns the static bootstrap payload.
func (s *Service) AppConfig() *AppConfig {
	return &AppConfig{
		MinAppVersion: s.cfg.MinAppVersion,
		APIBasePath:   "/api/v1",
		MobileBase:    "/api/v1/mobile",
		CacheMaxAge:   s.cfg.CacheMaxAge,
		Features: map[string]bool{
			"dashboard":           true,
			"low_stock":           true,
			"pending_inspections": true,
			"warehouse_tasks":     true,
			"offline_mode":        false,
		},
		Endpoints: map[string]string{
			"dashboard":           "/api/v1/mobile/dashboard",
			"low_stock":           "/api/v1/mobile/low-stock",
			"pending_inspections": "/api/v1/mobile/pending-inspections",
			"warehouse_tasks":     "/api/v1/mobile/warehouse-tasks",
		},
	}
}

// Dashboard assembles the compact snapshot, served from cache when fresh.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, hit, err := cache.GetOrCompute(ctx, s.cache, dashboardCacheKey, s.cacheTTL, s.buildDashboard)
	if err != nil {
		return nil, err
	}
	s.recordCacheResult(ctx, hit)
	return dashboard, nil
}

func (s *Service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "mobile", "build_dashboard")
	defer span.End()

	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	var running int64
	for _, c := range byStatus {
		if c.Status == production.OrderRunning {
			running = c.Count
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	good, ng, err := s.outputs.TotalsForDate(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	_, lowStock, err := s.balances.ListBelowReorderPoint(ctx, shared.Page{Limit: 1})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	pending, err := s.inspections.CountResultsByStatus(ctx,
		[]string{quality.InspectionPending, quality.InspectionInProgress})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &Dashboard{
		RunningOrders:      running,
		TodayGood:          good,
		TodayNG:            ng,
		TodayYield:         production.YieldPercent(good, ng),
		LowStockCount:      lowStock,
		PendingInspections: pending,
		GeneratedAt:        time.Now(),
	}, nil
}

// LowStock lists balances at or below their reorder point, trimmed for
// mobile payload sizes.
func (s *Service) LowStock(ctx context.Context, page shared.Page) ([]inventory.Balance, int64, error) {
	return s.balances.ListBelowReorderPoint(ctx, trimPage(page))
}

// PendingInspections lists inspection results still awaiting completion.
func (s *Service) PendingInspections(ctx context.Context, page shared.Page) ([]quality.InspectionResult, int64, error) {
	return s.inspections.ListPendingResults(ctx, trimPage(page))
}

// WarehouseTasks combines open cycle counts and active reservations into a
// single task list for warehouse operators.
func (s *Service) WarehouseTasks(ctx context.Context, page shared.Page) ([]WarehouseTask, error) {
	page = trimPage(page)

	counts, _, err := s.cycleCounts.List(ctx,
		inventory.CycleCountFilter{Status: inventory.CountPending}, page)
	if err != nil {
		return nil, err
	}

	reservations, _, err := s.reservations.List(ctx,
		inventory.ReservationFilter{Status: inventory.ReservationActive}, page)
	if err != nil {
		return nil, err
	}

	tasks := make([]WarehouseTask, 0, len(counts)+len(reservations))
	for i := range counts {
		c := &counts[i]
		due := c.CountDate
		tasks = append(tasks, WarehouseTask{
			TaskType:   TaskCycleCount,
			Reference:  c.CountNumber,
			LocationID: c.LocationID,
			DueDate:    &due,
			Status:     c.Status,
		})
	}
	for i := range reservations {
		r := &reservations[i]
		qty := r.ReservedQuantity
		tasks = append(tasks, WarehouseTask{
			TaskType:   TaskReservation,
			Reference:  r.ReservationNumber,
			PartNumber: r.PartNumber,
			LocationID: r.LocationID,
			Quantity:   &qty,
			DueDate:    r.ExpiryDate,
			Status:     r.Status,
		})
	}
	return tasks, nil
}

// trimPage caps the limit on mobile routes regardless of what the caller
// asked for.
func trimPage(page shared.Page) shared.Page {
	if page.Limit <= 0 || page.Limit > MaxMobilePageLimit {
		page.Limit = MaxMobilePageLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
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
