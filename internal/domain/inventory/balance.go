package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the on-hand stock of one part at one location.
type Balance struct {
	ID                 int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber         string           `gorm:"size:100;not null;index" json:"part_number"`
	LocationID         int64            `gorm:"not null;index" json:"location_id"`
	AvailableQuantity  decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0" json:"available_quantity"`
	ReservedQuantity   decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0" json:"reserved_quantity"`
	QuarantineQuantity decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0" json:"quarantine_quantity"`
	AverageCost        decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0" json:"average_cost"`
	ReorderPoint       *decimal.Decimal `gorm:"type:decimal(12,3)" json:"reorder_point"`
	MaxStockLevel      *decimal.Decimal `gorm:"type:decimal(12,3)" json:"max_stock_level"`
	LastMovementDate   *time.Time       `json:"last_movement_date"`
	LastCountDate      *time.Time       `json:"last_count_date"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName returns the table name for Balance
func (Balance) TableName() string {
	return "inventory_balances"
}

// TotalQuantity is available + reserved + quarantine.
func (b *Balance) TotalQuantity() decimal.Decimal {
	return b.AvailableQuantity.Add(b.ReservedQuantity).Add(b.QuarantineQuantity)
}

// TotalValue is the available quantity valued at average cost.
func (b *Balance) TotalValue() decimal.Decimal {
	return b.AvailableQuantity.Mul(b.AverageCost)
}

// BelowReorderPoint reports whether available stock has fallen to or under
// the reorder point. Balances without a reorder point never trigger.
func (b *Balance) BelowReorderPoint() bool {
	if b.ReorderPoint == nil {
		return false
	}
	return b.AvailableQuantity.LessThanOrEqual(*b.ReorderPoint)
}

// BalanceFilter narrows balance queries.
type BalanceFilter struct {
	PartNumber string
	LocationID int64
}
