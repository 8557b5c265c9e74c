package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine is one component line of a bill of materials.
type BOMLine struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentPartNumber  string          `gorm:"size:50;not null;index" json:"parent_part_number"`
	ChildPartNumber   string          `gorm:"size:50;not null;index" json:"child_part_number"`
	QuantityRequired  decimal.Decimal `gorm:"type:decimal(15,6);not null" json:"quantity_required"`
	UnitOfMeasure     string          `gorm:"size:10;not null" json:"unit_of_measure"`
	ScrapFactor       decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"scrap_factor"`
	OperationSequence int             `gorm:"not null;default:1" json:"operation_sequence"`
	EffectiveDate     time.Time       `gorm:"type:date;not null" json:"effective_date"`
	ExpiryDate        *time.Time      `gorm:"type:date" json:"expiry_date"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName returns the table name for BOMLine
func (BOMLine) TableName() string {
	return "bill_of_materials"
}

// RequiredFor returns the gross requirement of this component for a build
// quantity, including scrap allowance: qty * quantity_required * (1 + scrap).
func (l *BOMLine) RequiredFor(buildQuantity decimal.Decimal) decimal.Decimal {
	return buildQuantity.Mul(l.QuantityRequired).Mul(decimal.NewFromInt(1).Add(l.ScrapFactor))
}

// MaterialRequirement is the computed requirement of one component.
type MaterialRequirement struct {
	ChildPartNumber   string          `json:"child_part_number"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	OperationSequence int             `json:"operation_sequence"`
	QuantityPerUnit   decimal.Decimal `json:"quantity_per_unit"`
	ScrapFactor       decimal.Decimal `json:"scrap_factor"`
	RequiredQuantity  decimal.Decimal `json:"required_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	ShortageQuantity  decimal.Decimal `json:"shortage_quantity"`
}

// RequirementsResult is the material requirements answer for one build.
type RequirementsResult struct {
	ParentPartNumber string                `json:"parent_part_number"`
	BuildQuantity    decimal.Decimal       `json:"build_quantity"`
	Requirements     []MaterialRequirement `json:"requirements"`
	TotalShortage    decimal.Decimal       `json:"total_shortage"`
	CanProduce       bool                  `json:"can_produce"`
}
