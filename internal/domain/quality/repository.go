package quality

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erp/query-service/internal/domain/shared"
)

// OQCTotals aggregates outgoing QC quantities.
type OQCTotals struct {
	RecordCount  int64           `json:"record_count"`
	QuantityGood decimal.Decimal `json:"quantity_good"`
	QuantityNG   decimal.Decimal `json:"quantity_ng"`
}

// InspectionTotals aggregates inspection result quantities.
type InspectionTotals struct {
	ResultCount       int64           `json:"result_count"`
	QuantityInspected decimal.Decimal `json:"quantity_inspected"`
	QuantityPassed    decimal.Decimal `json:"quantity_passed"`
	QuantityFailed    decimal.Decimal `json:"quantity_failed"`
}

// NCRStatusCount is the number of NCRs per status.
type NCRStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// OQCRepository reads outgoing QC records.
type OQCRepository interface {
	List(ctx context.Context, filter OQCFilter, page shared.Page) ([]OQCRecord, int64, error)
	FindByID(ctx context.Context, id int64) (*OQCRecord, error)
	Totals(ctx context.Context) (*OQCTotals, error)
}

// InspectionRepository reads inspection plans and results.
type InspectionRepository interface {
	ListPlans(ctx context.Context, filter PlanFilter, page shared.Page) ([]InspectionPlan, int64, error)
	ListResults(ctx context.Context, filter ResultFilter, page shared.Page) ([]InspectionResult, int64, error)
	ResultTotals(ctx context.Context) (*InspectionTotals, error)
	CountResultsByStatus(ctx context.Context, statuses []string) (int64, error)
	ListPendingResults(ctx context.Context, page shared.Page) ([]InspectionResult, int64, error)
}

// NCRRepository reads non-conformance reports.
type NCRRepository interface {
	List(ctx context.Context, filter NCRFilter, page shared.Page) ([]NCR, int64, error)
	CountByStatus(ctx context.Context) ([]NCRStatusCount, error)
}

// TransferRepository reads QC transfers.
type TransferRepository interface {
	List(ctx context.Context, filter TransferFilter, page shared.Page) ([]TransferQC, int64, error)
}
