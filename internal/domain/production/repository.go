package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/query-service/internal/domain/shared"
)

// OrderRepository reads production orders.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter, page shared.Page) ([]Order, int64, error)
	FindByJobOrder(ctx context.Context, jobOrder string) (*Order, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	Search(ctx context.Context, query string, page shared.Page) ([]Order, int64, error)
}

// OutputRepository reads machine output records.
type OutputRepository interface {
	List(ctx context.Context, filter OutputFilter, page shared.Page) ([]Output, int64, error)
	ListByJobOrder(ctx context.Context, jobOrder string) ([]Output, error)
	TotalGoodByJobOrder(ctx context.Context, jobOrder string) (decimal.Decimal, error)
	DailySummary(ctx context.Context, from, to *time.Time) ([]DailyOutputSummary, error)
	TotalsByMachine(ctx context.Context, from, to *time.Time) ([]MachineOutputTotal, error)
	TotalsForDate(ctx context.Context, date time.Time) (good, ng decimal.Decimal, err error)
}

// MachineRepository reads machines.
type MachineRepository interface {
	List(ctx context.Context, filter MachineFilter, page shared.Page) ([]Machine, int64, error)
	FindByMachineID(ctx context.Context, machineID string) (*Machine, error)
}

// BOMRepository reads bills of material.
type BOMRepository interface {
	ListActiveByParent(ctx context.Context, parentPartNumber string) ([]BOMLine, error)
}

// WIPRepository reads work-in-progress stock.
type WIPRepository interface {
	List(ctx context.Context, filter WIPFilter, page shared.Page) ([]WIPStock, int64, error)
	Count(ctx context.Context) (int64, error)
}
