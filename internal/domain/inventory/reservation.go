package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation statuses.
const (
	ReservationActive    = "active"
	ReservationConsumed  = "consumed"
	ReservationCancelled = "cancelled"
	ReservationExpired   = "expired"
)

// Reservation is stock put aside for a downstream reference
// (production order, sales order, transfer).
type Reservation struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReservationNumber string          `gorm:"size:50;uniqueIndex;not null" json:"reservation_number"`
	PartNumber        string          `gorm:"size:100;not null;index" json:"part_number"`
	LocationID        int64           `gorm:"not null;index" json:"location_id"`
	ReservedQuantity  decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"reserved_quantity"`
	ReservationType   string          `gorm:"size:50;not null" json:"reservation_type"`
	ReferenceID       *string         `gorm:"size:100" json:"reference_id"`
	ReservedBy        int64           `gorm:"not null" json:"reserved_by"`
	ExpiryDate        *time.Time      `gorm:"type:date;index" json:"expiry_date"`
	Notes             *string         `gorm:"type:text" json:"notes,omitempty"`
	Status            string          `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName returns the table name for Reservation
func (Reservation) TableName() string {
	return "stock_reservations"
}

// ExpiresWithin reports whether an active reservation expires within d of now.
func (r *Reservation) ExpiresWithin(now time.Time, d time.Duration) bool {
	if r.Status != ReservationActive || r.ExpiryDate == nil {
		return false
	}
	return !r.ExpiryDate.After(now.Add(d))
}

// ReservationFilter narrows reservation queries.
type ReservationFilter struct {
	PartNumber string
	Status     string
	LocationID int64
}
