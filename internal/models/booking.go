package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID uint  `gorm:"uniqueIndex:unique_booking_slot" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	// One row per (staff, date, start): the index is the whole conflict
	// check. Overlapping bookings with different start times pass.
	BookingDate string `gorm:"size:10;uniqueIndex:unique_booking_slot" json:"booking_date"`
	StartTime   string `gorm:"size:5;uniqueIndex:unique_booking_slot" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	DurationMin int    `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Price         float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	DepositPaid   float64 `gorm:"type:decimal(10,2);default:0" json:"deposit_paid"`
	PaymentStatus string  `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	Notes              string     `gorm:"type:text" json:"notes"`
	CancellationReason string     `gorm:"size:255" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CompletedAt        *time.Time `json:"completed_at"`

	CalendarEventID string `gorm:"size:255" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
