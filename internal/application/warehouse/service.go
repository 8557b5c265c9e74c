// Package warehouse answers the warehouse analytics queries: stock summaries,
// ABC classification, slow-moving detection, stock alerts and the warehouse
// dashboard.
package warehouse

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/query-service/internal/domain/inventory"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

const dashboardCacheKey = "warehouse:dashboard"

// ABC bases.
const (
	ABCBasisValue    = "value"
	ABCBasisMovement = "movement"
)

// DefaultSlowMovingDays is the cutoff when the caller does not send one.
const DefaultSlowMovingDays = 90

// Stock alert types.
const (
	AlertOutOfStock        = "out_of_stock"
	AlertBelowReorderPoint = "below_reorder_point"
)

// ErrInvalidABCBasis rejects unknown classification bases.
var ErrInvalidABCBasis = shared.NewDomainError("INVALID_INPUT", "basis must be 'value' or 'movement'")

// LocationView is a location enriched with its utilization percentage.
type LocationView struct {
	inventory.Location
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}

// ABCItem is one part in an ABC classification.
type ABCItem struct {
	PartNumber      string          `json:"part_number"`
	Metric          decimal.Decimal `json:"metric"`
	CumulativeShare decimal.Decimal `json:"cumulative_share"`
	Class           string          `json:"class"`
}

// ABCResult is a full ABC classification.
type ABCResult struct {
	Basis       string          `json:"basis"`
	TotalMetric decimal.Decimal `json:"total_metric"`
	ClassACount int             `json:"class_a_count"`
	ClassBCount int             `json:"class_b_count"`
	ClassCCount int             `json:"class_c_count"`
	Items       []ABCItem       `json:"items"`
}

// StockAlert is one balance in an alarming state.
type StockAlert struct {
	inventory.Balance
	AlertType string `json:"alert_type"`
}

// Dashboard is the warehouse overview snapshot.
type Dashboard struct {
	ActiveLocations    int64           `json:"active_locations"`
	TotalStockValue    decimal.Decimal `json:"total_stock_value"`
	ActiveReservations int64           `json:"active_reservations"`
	OpenCycleCounts    int64           `json:"open_cycle_counts"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// Service executes warehouse analytics against the read model.
type Service struct {
	locations    inventory.LocationRepository
	balances     inventory.BalanceRepository
	movements    inventory.MovementRepository
	reservations inventory.ReservationRepository
	cycleCounts  inventory.CycleCountRepository
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

// NewService creates a warehouse query service.
func NewService(
	locations inventory.LocationRepository,
	balances inventory.BalanceRepository,
	movements inventory.MovementRepository,
	reservations inventory.ReservationRepository,
	cycleCounts inventory.CycleCountRepository,
	opts ...Option,
) *Service {
	s := &Service{
		locations:    locations,
		balances:     balances,
		movements:    movements,
		reservations: reservations,
		cycleCounts:  cycleCounts,
		cacheTTL:     time.Minute,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BalanceSummaryByPart totals balances per part across locations.
func (s *Service) BalanceSummaryByPart(ctx context.Context, page shared.Page) ([]inventory.PartSummary, int64, error) {
	return s.balances.SummaryByPart(ctx, page)
}

// BalancesByZone totals balances per warehouse zone.
func (s *Service) BalancesByZone(ctx context.Context) ([]inventory.ZoneSummary, error) {
	return s.balances.SummaryByZone(ctx)
}

// MovementSummary totals movements per type over a window.
func (s *Service) MovementSummary(ctx context.Context, from, to *time.Time) ([]inventory.MovementTypeSummary, error) {
	return s.movements.SummaryByType(ctx, from, to)
}

// DailyMovements totals in/out quantities per day.
func (s *Service) DailyMovements(ctx context.Context, from, to *time.Time) ([]inventory.DailyMovementSummary, error) {
	return s.movements.DailySummary(ctx, from, to)
}

// ListLocations returns locations with their utilization percentage.
func (s *Service) ListLocations(ctx context.Context, filter inventory.LocationFilter, page shared.Page) ([]LocationView, int64, error) {
	locations, total, err := s.locations.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	views := make([]LocationView, len(locations))
	for i := range locations {
		views[i] = LocationView{
			Location:           locations[i],
			UtilizationPercent: locations[i].UtilizationPercent(),
		}
	}
	return views, total, nil
}

// ABCAnalysis classifies parts by cumulative share of stock value or
// movement count: A covers the top 80%, B the next 15%, C the rest.
func (s *Service) ABCAnalysis(ctx context.Context, basis string) (*ABCResult, error) {
	var items []ABCItem

	switch basis {
	case "", ABCBasisValue:
		basis = ABCBasisValue
		summaries, _, err := s.balances.SummaryByPart(ctx, shared.Page{Limit: shared.MaxPageLimit})
		if err != nil {
			return nil, err
		}
		items = make([]ABCItem, 0, len(summaries))
		for _, sum := range summaries {
			items = append(items, ABCItem{PartNumber: sum.PartNumber, Metric: sum.TotalValue})
		}
	case ABCBasisMovement:
		counts, err := s.movements.CountByPart(ctx, nil, nil)
		if err != nil {
			return nil, err
		}
		items = make([]ABCItem, 0, len(counts))
		for _, c := range counts {
			items = append(items, ABCItem{PartNumber: c.PartNumber, Metric: decimal.NewFromInt(c.MovementCount)})
		}
	default:
		return nil, ErrInvalidABCBasis
	}

	return classifyABC(basis, items), nil
}

// classifyABC sorts items by metric descending and assigns classes by
// cumulative share. An empty or zero-valued population is all class C.
func classifyABC(basis string, items []ABCItem) *ABCResult {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Metric.GreaterThan(items[j].Metric)
	})

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Metric)
	}

	result := &ABCResult{Basis: basis, TotalMetric: total, Items: items}

	classA := decimal.NewFromInt(80)
	classB := decimal.NewFromInt(95)
	hundred := decimal.NewFromInt(100)

	cumulative := decimal.Zero
	for i := range result.Items {
		share := decimal.Zero
		if !total.IsZero() {
			cumulative = cumulative.Add(result.Items[i].Metric)
			share = cumulative.Div(total).Mul(hundred)
		}
		result.Items[i].CumulativeShare = share

		switch {
		case total.IsZero():
			result.Items[i].Class = "C"
			result.ClassCCount++
		case share.LessThanOrEqual(classA):
			result.Items[i].Class = "A"
			result.ClassACount++
		case share.LessThanOrEqual(classB):
			result.Items[i].Class = "B"
			result.ClassBCount++
		default:
			result.Items[i].Class = "C"
			result.ClassCCount++
		}
	}
	return result
}

// SlowMoving lists balances with stock on hand whose last movement is older
// than the cutoff. Non-positive day counts fall back to the default.
func (s *Service) SlowMoving(ctx context.Context, days int, page shared.Page) ([]inventory.Balance, int64, error) {
	if days <= 0 {
		days = DefaultSlowMovingDays
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.balances.ListSlowMoving(ctx, since, page)
}

// StockAlerts lists balances that are out of stock or below their reorder
// point, labelled by alert type.
func (s *Service) StockAlerts(ctx context.Context, page shared.Page) ([]StockAlert, int64, error) {
	balances, total, err := s.balances.ListStockAlerts(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	alerts := make([]StockAlert, len(balances))
	for i := range balances {
		alertType := AlertBelowReorderPoint
		if !balances[i].AvailableQuantity.IsPositive() {
			alertType = AlertOutOfStock
		}
		alerts[i] = StockAlert{Balance: balances[i], AlertType: alertType}
	}
	return alerts, total, nil
}

// Dashboard assembles the warehouse overview, served from cache when fresh.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, hit, err := cache.GetOrCompute(ctx, s.cache, dashboardCacheKey, s.cacheTTL, s.buildDashboard)
	if err != nil {
		return nil, err
	}
	s.recordCacheResult(ctx, hit)
	return dashboard, nil
}

func (s *Service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "warehouse", "build_dashboard")
	defer span.End()

	locationCount, err := s.locations.Count(ctx, true)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	stockValue, err := s.balances.TotalStockValue(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	activeReservations, err := s.reservations.CountActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	openCounts, err := s.cycleCounts.CountOpen(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &Dashboard{
		ActiveLocations:    locationCount,
		TotalStockValue:    stockValue,
		ActiveReservations: activeReservations,
		OpenCycleCounts:    openCounts,
		GeneratedAt:        time.Now(),
	}, nil
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
