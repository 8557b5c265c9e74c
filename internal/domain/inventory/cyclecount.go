package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cycle count statuses.
const (
	CountPending    = "pending"
	CountInProgress = "in_progress"
	CountCompleted  = "completed"
	CountCancelled  = "cancelled"
)

// CycleCount is a scheduled physical count of one location.
type CycleCount struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CountNumber string    `gorm:"size:50;uniqueIndex;not null" json:"count_number"`
	LocationID  int64     `gorm:"not null;index" json:"location_id"`
	CountDate   time.Time `gorm:"type:date;not null;index" json:"count_date"`
	CountType   string    `gorm:"size:20;not null" json:"count_type"`
	AssignedTo  *int64    `json:"assigned_to"`
	CreatedBy   int64     `gorm:"not null" json:"created_by"`
	ApprovedBy  *int64    `json:"approved_by"`
	Status      string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Details []CycleCountDetail `gorm:"foreignKey:CycleCountID" json:"details,omitempty"`
}

// TableName returns the table name for CycleCount
func (CycleCount) TableName() string {
	return "cycle_counts"
}

// CycleCountDetail is one counted line inside a cycle count.
type CycleCountDetail struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CycleCountID     int64            `gorm:"not null;index" json:"cycle_count_id"`
	PartNumber       string           `gorm:"size:100;not null;index" json:"part_number"`
	SystemQuantity   decimal.Decimal  `gorm:"type:decimal(12,3);not null" json:"system_quantity"`
	CountedQuantity  *decimal.Decimal `gorm:"type:decimal(12,3)" json:"counted_quantity"`
	VarianceQuantity *decimal.Decimal `gorm:"type:decimal(12,3)" json:"variance_quantity"`
	VarianceValue    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"variance_value"`
	ReasonCode       *string          `gorm:"size:50" json:"reason_code"`
	Notes            *string          `gorm:"type:text" json:"notes,omitempty"`
	CountedBy        *int64           `json:"counted_by"`
	CountedDate      *time.Time       `json:"counted_date"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName returns the table name for CycleCountDetail
func (CycleCountDetail) TableName() string {
	return "cycle_count_details"
}

// HasVariance reports whether the counted quantity differs from the system
// quantity. Uncounted lines carry no variance yet.
func (d *CycleCountDetail) HasVariance() bool {
	return d.VarianceQuantity != nil && !d.VarianceQuantity.IsZero()
}

// CycleCountFilter narrows cycle count queries.
type CycleCountFilter struct {
	LocationID int64
	Status     string
	CountType  string
}
