package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// Machine is a production machine registered in the plant.
type Machine struct {
	ID              int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	MachineCode     string           `gorm:"size:50;not null;index" json:"machine_code"`
	MachineName     string           `gorm:"size:100;not null" json:"machine_name"`
	MachineType     *string          `gorm:"size:50" json:"machine_type"`
	LocationID      *int64           `json:"location_id"`
	CapacityPerHour *decimal.Decimal `gorm:"type:decimal(8,2)" json:"capacity_per_hour"`
	Status          string           `gorm:"size:20;not null;default:active" json:"status"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName returns the table name for Machine
func (Machine) TableName() string {
	return "machines"
}

// UtilizationPercent relates actual output over a window to the machine's
// theoretical capacity. Machines without a known capacity report 0.
func (m *Machine) UtilizationPercent(produced decimal.Decimal, windowHours decimal.Decimal) decimal.Decimal {
	if m.CapacityPerHour == nil || m.CapacityPerHour.IsZero() || windowHours.IsZero() {
		return decimal.Zero
	}
	theoretical := m.CapacityPerHour.Mul(windowHours)
	if theoretical.IsZero() {
		return decimal.Zero
	}
	return produced.Div(theoretical).Mul(decimal.NewFromInt(100))
}

// MachineFilter narrows machine queries.
type MachineFilter struct {
	Status     string
	ActiveOnly bool
}
