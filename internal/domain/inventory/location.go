// Package inventory holds the read models for stock locations, balances,
// movements, reservations and cycle counts. The tables are owned by the
// command service; this side only queries them.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location is a physical storage location in the warehouse.
type Location struct {
	ID                    int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	LocationCode          string           `gorm:"size:50;uniqueIndex;not null" json:"location_code"`
	LocationName          string           `gorm:"size:255;not null" json:"location_name"`
	LocationType          string           `gorm:"size:50;not null" json:"location_type"`
	WarehouseZone         *string          `gorm:"size:50" json:"warehouse_zone"`
	Aisle                 *string          `gorm:"size:20" json:"aisle,omitempty"`
	Rack                  *string          `gorm:"size:20" json:"rack,omitempty"`
	Shelf                 *string          `gorm:"size:20" json:"shelf,omitempty"`
	Bin                   *string          `gorm:"size:20" json:"bin,omitempty"`
	Capacity              *decimal.Decimal `gorm:"type:decimal(12,2)" json:"capacity"`
	CurrentUtilization    decimal.Decimal  `gorm:"type:decimal(12,2);default:0" json:"current_utilization"`
	TemperatureControlled bool             `gorm:"not null;default:false" json:"temperature_controlled"`
	HazardousMaterials    bool             `gorm:"not null;default:false" json:"hazardous_materials"`
	IsActive              bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// TableName returns the table name for Location
func (Location) TableName() string {
	return "inventory_locations"
}

// UtilizationPercent returns current utilization against capacity as a
// percentage. Locations without a usable capacity report 0.
func (l *Location) UtilizationPercent() decimal.Decimal {
	if l.Capacity == nil || l.Capacity.IsZero() {
		return decimal.Zero
	}
	return l.CurrentUtilization.Div(*l.Capacity).Mul(decimal.NewFromInt(100))
}

// LocationFilter narrows location queries.
type LocationFilter struct {
	LocationType  string
	WarehouseZone string
	ActiveOnly    bool
}
