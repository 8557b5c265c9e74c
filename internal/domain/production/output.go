package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// Output is one machine output record (per job, machine, shift, day).
type Output struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductionOrderID *int64          `gorm:"index" json:"production_order_id"`
	MachineID         string          `gorm:"size:50;not null;index" json:"machine_id"`
	PartNumber        string          `gorm:"size:100;not null;index" json:"part_number"`
	QuantityGood      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity_good"`
	QuantityNG        decimal.Decimal `gorm:"column:quantity_ng;type:decimal(10,2);not null;default:0" json:"quantity_ng"`
	OperatorID        *int64          `json:"operator_id"`
	Shift             string          `gorm:"size:10;not null" json:"shift"`
	ProductionDate    time.Time       `gorm:"type:date;not null;index" json:"production_date"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TableName returns the table name for Output
func (Output) TableName() string {
	return "output_mc"
}

// YieldPercent returns good/(good+ng) as a percentage, 0 when nothing was
// produced.
func (o *Output) YieldPercent() decimal.Decimal {
	return YieldPercent(o.QuantityGood, o.QuantityNG)
}

// YieldPercent computes good/(good+ng)*100 with a zero-denominator guard.
func YieldPercent(good, ng decimal.Decimal) decimal.Decimal {
	total := good.Add(ng)
	if total.IsZero() {
		return decimal.Zero
	}
	return good.Div(total).Mul(decimal.NewFromInt(100))
}

// OutputFilter narrows machine output queries.
type OutputFilter struct {
	ProductionOrderID int64
	MachineID         string
	Shift             string
	PartNumber        string
	DateFrom          *time.Time
	DateTo            *time.Time
}

// DailyOutputSummary aggregates good/NG per production day.
type DailyOutputSummary struct {
	ProductionDate time.Time       `json:"production_date"`
	QuantityGood   decimal.Decimal `json:"quantity_good"`
	QuantityNG     decimal.Decimal `json:"quantity_ng"`
	YieldPercent   decimal.Decimal `json:"yield_percent" gorm:"-"`
}

// MachineOutputTotal aggregates output per machine over a window.
type MachineOutputTotal struct {
	MachineID    string          `json:"machine_id"`
	QuantityGood decimal.Decimal `json:"quantity_good"`
	QuantityNG   decimal.Decimal `json:"quantity_ng"`
}
