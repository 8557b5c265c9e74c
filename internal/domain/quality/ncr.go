package quality

import (
	"time"

	"github.com/shopspring/decimal"
)

// NCR statuses.
const (
	NCROpen           = "open"
	NCRInvestigating  = "investigating"
	NCRActionRequired = "action_required"
	NCRClosed         = "closed"
	NCRCancelled      = "cancelled"
)

// NCR is a non-conformance report raised from a failed inspection.
type NCR struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	NCRNumber          string          `gorm:"column:ncr_number;size:50;uniqueIndex;not null" json:"ncr_number"`
	InspectionResultID int64           `gorm:"not null;index" json:"inspection_result_id"`
	NCRType            string          `gorm:"column:ncr_type;size:30;not null" json:"ncr_type"`
	PartNumber         string          `gorm:"size:100;not null;index" json:"part_number"`
	LotNumber          string          `gorm:"size:255;not null" json:"lot_number"`
	QuantityAffected   decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity_affected"`
	ProblemDescription string          `gorm:"type:text;not null" json:"problem_description"`
	ImmediateAction    string          `gorm:"type:text;not null" json:"immediate_action"`
	Priority           string          `gorm:"size:20;not null;default:medium" json:"priority"`
	Status             string          `gorm:"size:20;not null;default:open;index" json:"status"`
	ReportedBy         int64           `gorm:"not null" json:"reported_by"`
	AssignedTo         *int64          `json:"assigned_to"`
	TargetCloseDate    *time.Time      `json:"target_close_date"`
	ActualCloseDate    *time.Time      `json:"actual_close_date"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName returns the table name for NCR
func (NCR) TableName() string {
	return "qc_non_conformance"
}

// IsOverdue reports whether an unfinished NCR has passed its target close
// date.
func (n *NCR) IsOverdue(now time.Time) bool {
	if n.Status == NCRClosed || n.Status == NCRCancelled {
		return false
	}
	return n.TargetCloseDate != nil && n.TargetCloseDate.Before(now)
}

// NCRFilter narrows NCR queries.
type NCRFilter struct {
	Status     string
	Priority   string
	PartNumber string
}
