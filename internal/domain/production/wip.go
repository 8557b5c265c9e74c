package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// WIPStock is work-in-progress stock at a station.
type WIPStock struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber     string          `gorm:"size:100;not null;index" json:"part_number"`
	Description    string          `gorm:"size:100;not null" json:"description"`
	Quantity       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity"`
	CurrentStation *string         `gorm:"size:100" json:"current_station"`
	LastUpdated    *time.Time      `json:"last_updated"`
}

// TableName returns the table name for WIPStock
func (WIPStock) TableName() string {
	return "stock_wip"
}

// WIPFilter narrows WIP queries.
type WIPFilter struct {
	PartNumber     string
	CurrentStation string
}
