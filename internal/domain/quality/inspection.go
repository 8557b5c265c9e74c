package quality

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inspection statuses.
const (
	InspectionPending    = "pending"
	InspectionInProgress = "in_progress"
	InspectionCompleted  = "completed"
	InspectionCancelled  = "cancelled"
)

// Overall results.
const (
	ResultPass        = "pass"
	ResultFail        = "fail"
	ResultConditional = "conditional"
)

// InspectionPlan defines how a part is inspected.
type InspectionPlan struct {
	ID                   int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PlanCode             string         `gorm:"size:50;uniqueIndex;not null" json:"plan_code"`
	PartNumber           string         `gorm:"size:100;not null;index" json:"part_number"`
	PlanName             string         `gorm:"size:255;not null" json:"plan_name"`
	InspectionType       string         `gorm:"size:20;not null" json:"inspection_type"`
	SamplingMethod       string         `gorm:"size:20;not null;default:statistical" json:"sampling_method"`
	SampleSize           int            `gorm:"not null;default:1" json:"sample_size"`
	AcceptanceCriteria   string         `gorm:"type:jsonb" json:"acceptance_criteria"`
	InspectionPoints     string         `gorm:"type:jsonb" json:"inspection_points"`
	RequiredTools        *string        `gorm:"size:500" json:"required_tools,omitempty"`
	EstimatedTimeMinutes int            `gorm:"not null;default:30" json:"estimated_time_minutes"`
	IsActive             bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedBy            int64          `gorm:"not null" json:"created_by"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// TableName returns the table name for InspectionPlan
func (InspectionPlan) TableName() string {
	return "qc_inspection_plans"
}

// InspectionResult is the outcome of executing a plan against one lot.
type InspectionResult struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	InspectionNumber    string          `gorm:"size:50;uniqueIndex;not null" json:"inspection_number"`
	QCPlanID            int64           `gorm:"column:qc_plan_id;not null;index" json:"qc_plan_id"`
	SourceType          string          `gorm:"size:20;not null" json:"source_type"`
	SourceReferenceID   *int64          `json:"source_reference_id"`
	LotNumber           string          `gorm:"size:255;not null" json:"lot_number"`
	PartNumber          string          `gorm:"size:100;not null;index" json:"part_number"`
	QuantityInspected   decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity_inspected"`
	QuantityPassed      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_passed"`
	QuantityFailed      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_failed"`
	QuantityRework      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity_rework"`
	InspectorID         int64           `gorm:"not null" json:"inspector_id"`
	InspectionStartTime *time.Time      `json:"inspection_start_time"`
	InspectionEndTime   *time.Time      `json:"inspection_end_time"`
	InspectionLocation  *string         `gorm:"size:100" json:"inspection_location,omitempty"`
	MeasurementData     string          `gorm:"type:jsonb" json:"measurement_data,omitempty"`
	DefectCodes         string          `gorm:"type:jsonb" json:"defect_codes,omitempty"`
	CorrectiveActions   *string         `gorm:"type:text" json:"corrective_actions,omitempty"`
	InspectorNotes      *string         `gorm:"type:text" json:"inspector_notes,omitempty"`
	InspectionStatus    string          `gorm:"size:20;not null;default:pending;index" json:"inspection_status"`
	OverallResult       *string         `gorm:"size:20" json:"overall_result"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TableName returns the table name for InspectionResult
func (InspectionResult) TableName() string {
	return "qc_inspection_results"
}

// PassRatePercent returns passed/inspected as a percentage, 0 when nothing
// was inspected.
func (r *InspectionResult) PassRatePercent() decimal.Decimal {
	if r.QuantityInspected.IsZero() {
		return decimal.Zero
	}
	return r.QuantityPassed.Div(r.QuantityInspected).Mul(decimal.NewFromInt(100))
}

// PlanFilter narrows inspection plan queries.
type PlanFilter struct {
	PartNumber     string
	InspectionType string
	ActiveOnly     bool
}

// ResultFilter narrows inspection result queries.
type ResultFilter struct {
	QCPlanID      int64
	PartNumber    string
	Status        string
	OverallResult string
	DateFrom      *time.Time
	DateTo        *time.Time
}
