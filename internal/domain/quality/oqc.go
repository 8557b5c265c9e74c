// Package quality holds the read models for outgoing QC, inspection plans
// and results, non-conformance reports and QC transfers.
package quality

import (
	"time"

	"github.com/shopspring/decimal"
)

// OQCRecord is an outgoing quality control check of one lot.
type OQCRecord struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber     string          `gorm:"size:100;index" json:"part_number"`
	LotNumber      string          `gorm:"size:100" json:"lot_number"`
	QuantityGood   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity_good"`
	QuantityNG     decimal.Decimal `gorm:"column:quantity_ng;type:decimal(10,2);not null;default:0" json:"quantity_ng"`
	InspectionDate *time.Time      `json:"inspection_date"`
	InspectorID    *int64          `json:"inspector_id"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName returns the table name for OQCRecord
func (OQCRecord) TableName() string {
	return "oqc"
}

// PassRatePercent returns good/(good+ng) as a percentage, 0 when the lot is
// empty.
func (r *OQCRecord) PassRatePercent() decimal.Decimal {
	total := r.QuantityGood.Add(r.QuantityNG)
	if total.IsZero() {
		return decimal.Zero
	}
	return r.QuantityGood.Div(total).Mul(decimal.NewFromInt(100))
}

// OQCFilter narrows OQC queries.
type OQCFilter struct {
	PartNumber string
	LotNumber  string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// TransferQC is a quantity handed from production to QC.
type TransferQC struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber        string          `gorm:"size:100;index" json:"part_number"`
	Quantity          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	TransferDate      *time.Time      `json:"transfer_date"`
	ProductionOrderID *int64          `json:"production_order_id"`
	UserID            *int64          `json:"user_id"`
	Notes             *string         `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for TransferQC
func (TransferQC) TableName() string {
	return "transfer_qc"
}

// TransferFilter narrows QC transfer queries.
type TransferFilter struct {
	PartNumber string
	DateFrom   *time.Time
	DateTo     *time.Time
}
