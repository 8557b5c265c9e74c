// Package quality answers quality-control queries: outgoing QC, inspections,
// non-conformance reports and the QC dashboard.
package quality

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/query-service/internal/domain/quality"
	"github.com/erp/query-service/internal/domain/shared"
	"github.com/erp/query-service/internal/infrastructure/cache"
	"github.com/erp/query-service/internal/infrastructure/telemetry"
)

const dashboardCacheKey = "quality:dashboard"

// OQCView is an outgoing QC record with its computed pass rate.
type OQCView struct {
	quality.OQCRecord
	PassRate decimal.Decimal `json:"pass_rate"`
}

// NCRView is a non-conformance report with its overdue flag.
type NCRView struct {
	quality.NCR
	Overdue bool `json:"overdue"`
}

// Dashboard is the quality overview snapshot.
type Dashboard struct {
	InspectionPassRate decimal.Decimal          `json:"inspection_pass_rate"`
	InspectionTotals   quality.InspectionTotals `json:"inspection_totals"`
	NCRByStatus        []quality.NCRStatusCount `json:"ncr_by_status"`
	NCROpen            int64                    `json:"ncr_open"`
	NCRClosed          int64                    `json:"ncr_closed"`
	NCRClosureRate     decimal.Decimal          `json:"ncr_closure_rate"`
	OQCTotals          quality.OQCTotals        `json:"oqc_totals"`
	OQCPassRate        decimal.Decimal          `json:"oqc_pass_rate"`
	GeneratedAt        time.Time                `json:"generated_at"`
}

// Service executes quality queries against the read model.
type Service struct {
	oqc         quality.OQCRepository
	inspections quality.InspectionRepository
	ncrs        quality.NCRRepository
	transfers   quality.TransferRepository
	cache       cache.QueryCache
	cacheTTL    time.Duration
	metrics     *telemetry.QueryMetrics
	logger      *zap.Logger
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

// NewService creates a quality query service.
func NewService(
	oqc quality.OQCRepository,
	inspections quality.InspectionRepository,
	ncrs quality.NCRRepository,
	transfers quality.TransferRepository,
	opts ...Option,
) *Service {
	s := &Service{
		oqc:         oqc,
		inspections: inspections,
		ncrs:        ncrs,
		transfers:   transfers,
		cacheTTL:    time.Minute,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOQC returns outgoing QC records with pass rates.
func (s *Service) ListOQC(ctx context.Context, filter quality.OQCFilter, page shared.Page) ([]OQCView, int64, error) {
	records, total, err := s.oqc.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	views := make([]OQCView, len(records))
	for i := range records {
		views[i] = OQCView{OQCRecord: records[i], PassRate: records[i].PassRatePercent()}
	}
	return views, total, nil
}

// OQCByID returns one outgoing QC record with its pass rate.
// Returns shared.ErrNotFound for unknown IDs.
func (s *Service) OQCByID(ctx context.Context, id int64) (*OQCView, error) {
	record, err := s.oqc.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OQCView{OQCRecord: *record, PassRate: record.PassRatePercent()}, nil
}

// ListInspectionPlans returns inspection plans matching the filter.
func (s *Service) ListInspectionPlans(ctx context.Context, filter quality.PlanFilter, page shared.Page) ([]quality.InspectionPlan, int64, error) {
	return s.inspections.ListPlans(ctx, filter, page)
}

// ListInspectionResults returns inspection results matching the filter.
func (s *Service) ListInspectionResults(ctx context.Context, filter quality.ResultFilter, page shared.Page) ([]quality.InspectionResult, int64, error) {
	return s.inspections.ListResults(ctx, filter, page)
}

// ListNCRs returns non-conformance reports with their overdue flags.
func (s *Service) ListNCRs(ctx context.Context, filter quality.NCRFilter, page shared.Page) ([]NCRView, int64, error) {
	ncrs, total, err := s.ncrs.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]NCRView, len(ncrs))
	for i := range ncrs {
		views[i] = NCRView{NCR: ncrs[i], Overdue: ncrs[i].IsOverdue(now)}
	}
	return views, total, nil
}

// ListTransfers returns QC transfer records.
func (s *Service) ListTransfers(ctx context.Context, filter quality.TransferFilter, page shared.Page) ([]quality.TransferQC, int64, error) {
	return s.transfers.List(ctx, filter, page)
}

// Dashboard assembles the quality overview, served from cache when fresh.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	dashboard, hit, err := cache.GetOrCompute(ctx, s.cache, dashboardCacheKey, s.cacheTTL, s.buildDashboard)
	if err != nil {
		return nil, err
	}
	s.recordCacheResult(ctx, hit)
	return dashboard, nil
}

func (s *Service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quality", "build_dashboard")
	defer span.End()

	inspTotals, err := s.inspections.ResultTotals(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ncrCounts, err := s.ncrs.CountByStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	oqcTotals, err := s.oqc.Totals(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var ncrOpen, ncrClosed, ncrTotal int64
	for _, c := range ncrCounts {
		ncrTotal += c.Count
		switch c.Status {
		case quality.NCRClosed:
			ncrClosed += c.Count
		case quality.NCROpen, quality.NCRInvestigating, quality.NCRActionRequired:
			ncrOpen += c.Count
		}
	}

	return &Dashboard{
		InspectionPassRate: ratePercent(inspTotals.QuantityPassed, inspTotals.QuantityInspected),
		InspectionTotals:   *inspTotals,
		NCRByStatus:        ncrCounts,
		NCROpen:            ncrOpen,
		NCRClosed:          ncrClosed,
		NCRClosureRate:     ratePercent(decimal.NewFromInt(ncrClosed), decimal.NewFromInt(ncrTotal)),
		OQCTotals:          *oqcTotals,
		OQCPassRate:        ratePercent(oqcTotals.QuantityGood, oqcTotals.QuantityGood.Add(oqcTotals.QuantityNG)),
		GeneratedAt:        time.Now(),
	}, nil
}

// ratePercent is numerator/denominator as a percentage with a zero guard.
func ratePercent(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(decimal.NewFromInt(100))
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
