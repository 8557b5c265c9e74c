// Package masterdata holds the read models for the product master, users
// and the legacy stock tables (finished goods, deliveries, returns, stock
// takes and adjustments).
package masterdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one part in the product master.
type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber    string          `gorm:"size:100;uniqueIndex;not null" json:"part_number"`
	Description   *string         `gorm:"type:text" json:"description"`
	UnitOfMeasure string          `gorm:"size:20;not null;default:PCS" json:"unit_of_measure"`
	StandardCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"standard_cost"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "master_prod"
}

// ProductFilter narrows product queries.
type ProductFilter struct {
	PartNumber string
	ActiveOnly bool
}
