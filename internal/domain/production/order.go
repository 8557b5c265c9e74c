// Package production holds the read models for production orders, machine
// output, machines, work-in-progress stock and bills of material.
package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderRunning   = "running"
	OrderRework    = "rework"
	OrderPending   = "pending"
	OrderCancelled = "cancelled"
)

// Workflow statuses.
const (
	WorkflowPlanning   = "planning"
	WorkflowInProgress = "in_progress"
	WorkflowCompleted  = "completed"
	WorkflowCancelled  = "cancelled"
)

// Order is a production job for one part on one machine.
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	JobOrder       string          `gorm:"size:50;not null;index" json:"job_order"`
	PartNumber     string          `gorm:"size:100;not null;index" json:"part_number"`
	PlanQuantity   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"plan_quantity"`
	MachineName    *string         `gorm:"size:100" json:"machine_name"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"start_date"`
	Status         string          `gorm:"size:20;not null;default:running;index" json:"status"`
	WorkflowStatus string          `gorm:"size:20;not null;default:planning" json:"workflow_status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName returns the table name for Order
func (Order) TableName() string {
	return "production_orders"
}

// CompletionPercent returns produced/planned as a percentage.
// Orders with a zero plan quantity report 0.
func (o *Order) CompletionPercent(producedGood decimal.Decimal) decimal.Decimal {
	if o.PlanQuantity.IsZero() {
		return decimal.Zero
	}
	return producedGood.Div(o.PlanQuantity).Mul(decimal.NewFromInt(100))
}

// OrderFilter narrows production order queries.
type OrderFilter struct {
	Status     string
	PartNumber string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortOrder  string
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
