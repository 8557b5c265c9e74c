package masterdata

import (
	"context"

	"github.com/erp/query-service/internal/domain/shared"
)

// ProductRepository reads the product master.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter, page shared.Page) ([]Product, int64, error)
	FindByPartNumber(ctx context.Context, partNumber string) (*Product, error)
}

// UserRepository reads operator accounts and their audit trail.
type UserRepository interface {
	List(ctx context.Context, filter UserFilter, page shared.Page) ([]User, int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ListLogs(ctx context.Context, userID int64, page shared.Page) ([]UserLog, int64, error)
}

// LegacyStockRepository reads the legacy warehouse tables.
type LegacyStockRepository interface {
	ListDeliveries(ctx context.Context, filter DeliveryFilter, page shared.Page) ([]Delivery, int64, error)
	ListReturns(ctx context.Context, partNumber string, page shared.Page) ([]CustomerReturn, int64, error)
	ListFGStock(ctx context.Context, partNumber string, page shared.Page) ([]FGStock, int64, error)
	ListStockTakes(ctx context.Context, filter StockTakeFilter, page shared.Page) ([]StockTake, int64, error)
	ListAdjustments(ctx context.Context, partNumber string, page shared.Page) ([]StockAdjustment, int64, error)
}
