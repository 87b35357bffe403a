package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID  uint    `gorm:"index" json:"booking_id"`
	Booking    Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	CustomerID uint    `gorm:"index" json:"customer_id"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type   string  `gorm:"size:20;not null" json:"type"` // deposit, full_payment, refund

	Gateway             string `gorm:"size:50" json:"gateway"`
	GatewayPaymentID    string `gorm:"size:255" json:"gateway_payment_id"`
	GatewayPreferenceID string `gorm:"size:255" json:"gateway_preference_id"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
