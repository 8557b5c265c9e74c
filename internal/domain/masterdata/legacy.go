package masterdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock types used by stock takes and adjustments.
const (
	StockTypeFG  = "fg"
	StockTypeWIP = "wip"
)

// Delivery is a shipment of finished goods to a customer.
type Delivery struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DeliveryOrderNumber string          `gorm:"size:100;uniqueIndex;not null" json:"delivery_order_number"`
	PartNumber          string          `gorm:"size:100;index" json:"part_number"`
	QuantityShipped     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity_shipped"`
	DeliveryDate        *time.Time      `json:"delivery_date"`
	UserID              *int64          `json:"user_id"`
	Customer            *string         `gorm:"size:255" json:"customer"`
	Notes               *string         `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for Delivery
func (Delivery) TableName() string {
	return "delivery"
}

// DeliveryFilter narrows delivery queries.
type DeliveryFilter struct {
	PartNumber string
	Customer   string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// CustomerReturn is a rejected quantity sent back by a customer.
type CustomerReturn struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber  string          `gorm:"size:255;not null" json:"part_number"`
	Model       *string         `gorm:"size:255" json:"model"`
	Description *string         `gorm:"type:text" json:"description"`
	Qty         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"qty"`
	StatusNG    *string         `gorm:"column:status_ng;size:50" json:"status_ng"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName returns the table name for CustomerReturn
func (CustomerReturn) TableName() string {
	return "return_customer"
}

// FGStock is finished-goods stock at a named location.
type FGStock struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNumber  string          `gorm:"size:100;index" json:"part_number"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"quantity"`
	Location    *string         `gorm:"size:100" json:"location"`
	LastUpdated *time.Time      `json:"last_updated"`
}

// TableName returns the table name for FGStock
func (FGStock) TableName() string {
	return "stock_fg"
}

// StockTake is one physical count against system stock.
type StockTake struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TakeDate         *time.Time      `json:"take_date"`
	StockType        string          `gorm:"size:10;not null" json:"stock_type"`
	PartNumber       string          `gorm:"size:100;index" json:"part_number"`
	SystemQuantity   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"system_quantity"`
	PhysicalQuantity decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"physical_quantity"`
	Discrepancy      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discrepancy"`
	UserID           *int64          `json:"user_id"`
	Notes            *string         `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for StockTake
func (StockTake) TableName() string {
	return "stock_take_history"
}

// StockTakeFilter narrows stock take queries.
type StockTakeFilter struct {
	StockType       string
	PartNumber      string
	WithDiscrepancy bool
}

// StockAdjustment corrects system stock after a stock take.
type StockAdjustment struct {
	ID                 int64           `gorm:"primaryKey" json:"id"`
	PartNumber         string          `gorm:"size:100;not null;index" json:"part_number"`
	StockType          string          `gorm:"size:10;not null" json:"stock_type"`
	AdjustmentQuantity decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"adjustment_quantity"`
	NewQuantity        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"new_quantity"`
	Reason             *string         `gorm:"size:255" json:"reason"`
	UserID             *int64          `json:"user_id"`
	AdjustmentDate     *time.Time      `json:"adjustment_date"`
	StockTakeHistoryID *int64          `json:"stock_take_history_id"`
}

// TableName returns the table name for StockAdjustment
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}
