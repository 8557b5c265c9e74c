package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types recorded by the command service.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementTransfer   = "transfer"
	MovementAdjustment = "adjustment"
	MovementScrap      = "scrap"
)

// Movement is a single stock transaction.
type Movement struct {
	ID             int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	MovementNumber string           `gorm:"size:50;uniqueIndex;not null" json:"movement_number"`
	PartNumber     string           `gorm:"size:100;not null;index" json:"part_number"`
	MovementType   string           `gorm:"size:20;not null;index" json:"movement_type"`
	FromLocationID *int64           `gorm:"index" json:"from_location_id"`
	ToLocationID   *int64           `gorm:"index" json:"to_location_id"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitCost       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_cost"`
	ReferenceType  string           `gorm:"size:50;not null" json:"reference_type"`
	ReferenceID    *string          `gorm:"size:100" json:"reference_id"`
	ReasonCode     *string          `gorm:"size:50" json:"reason_code"`
	Notes          *string          `gorm:"type:text" json:"notes,omitempty"`
	UserID         int64            `gorm:"not null;index" json:"user_id"`
	MovementDate   time.Time        `gorm:"type:date;not null;index" json:"movement_date"`
	BatchNumber    *string          `gorm:"size:50" json:"batch_number,omitempty"`
	ExpiryDate     *time.Time       `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TableName returns the table name for Movement
func (Movement) TableName() string {
	return "inventory_movements"
}

// MovementFilter narrows movement queries.
type MovementFilter struct {
	PartNumber   string
	MovementType string
	DateFrom     *time.Time
	DateTo       *time.Time
	SortBy       string
	SortOrder    string
}
