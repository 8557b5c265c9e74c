package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/query-service/internal/domain/shared"
)

// PartSummary aggregates balances of one part across locations.
type PartSummary struct {
	PartNumber        string          `json:"part_number"`
	LocationCount     int64           `json:"location_count"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// ZoneSummary aggregates balances per warehouse zone.
type ZoneSummary struct {
	WarehouseZone     string          `json:"warehouse_zone"`
	PartCount         int64           `json:"part_count"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// MovementTypeSummary aggregates movements per type over a window.
type MovementTypeSummary struct {
	MovementType  string          `json:"movement_type"`
	MovementCount int64           `json:"movement_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// DailyMovementSummary aggregates in/out quantities per day.
type DailyMovementSummary struct {
	MovementDate time.Time       `json:"movement_date"`
	InQuantity   decimal.Decimal `json:"in_quantity"`
	OutQuantity  decimal.Decimal `json:"out_quantity"`
}

// PartMovementCount counts movements per part, used for ABC by movement.
type PartMovementCount struct {
	PartNumber    string `json:"part_number"`
	MovementCount int64  `json:"movement_count"`
}

// VarianceSummary aggregates cycle count variances.
type VarianceSummary struct {
	CountsCompleted   int64           `json:"counts_completed"`
	LinesCounted      int64           `json:"lines_counted"`
	LinesWithVariance int64           `json:"lines_with_variance"`
	AbsVarianceValue  decimal.Decimal `json:"abs_variance_value"`
	NetVarianceValue  decimal.Decimal `json:"net_variance_value"`
}

// LocationRepository reads storage locations.
type LocationRepository interface {
	List(ctx context.Context, filter LocationFilter, page shared.Page) ([]Location, int64, error)
	FindByID(ctx context.Context, id int64) (*Location, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// BalanceRepository reads stock balances.
type BalanceRepository interface {
	List(ctx context.Context, filter BalanceFilter, page shared.Page) ([]Balance, int64, error)
	TotalAvailableByPart(ctx context.Context, partNumber string) (decimal.Decimal, error)
	SummaryByPart(ctx context.Context, page shared.Page) ([]PartSummary, int64, error)
	SummaryByZone(ctx context.Context) ([]ZoneSummary, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	ListBelowReorderPoint(ctx context.Context, page shared.Page) ([]Balance, int64, error)
	ListStockAlerts(ctx context.Context, page shared.Page) ([]Balance, int64, error)
	ListSlowMoving(ctx context.Context, since time.Time, page shared.Page) ([]Balance, int64, error)
}

// MovementRepository reads stock movements.
type MovementRepository interface {
	List(ctx context.Context, filter MovementFilter, page shared.Page) ([]Movement, int64, error)
	SummaryByType(ctx context.Context, from, to *time.Time) ([]MovementTypeSummary, error)
	DailySummary(ctx context.Context, from, to *time.Time) ([]DailyMovementSummary, error)
	CountByPart(ctx context.Context, from, to *time.Time) ([]PartMovementCount, error)
}

// ReservationRepository reads stock reservations.
type ReservationRepository interface {
	List(ctx context.Context, filter ReservationFilter, page shared.Page) ([]Reservation, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// CycleCountRepository reads cycle counts and their detail lines.
type CycleCountRepository interface {
	List(ctx context.Context, filter CycleCountFilter, page shared.Page) ([]CycleCount, int64, error)
	FindByID(ctx context.Context, id int64) (*CycleCount, error)
	ListDetails(ctx context.Context, countID int64, varianceOnly bool) ([]CycleCountDetail, error)
	VarianceSummary(ctx context.Context, from, to *time.Time) (*VarianceSummary, error)
	CountOpen(ctx context.Context) (int64, error)
}
