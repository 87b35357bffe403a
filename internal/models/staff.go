package models

import (
	"time"

	"gorm.io/gorm"
)

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100" json:"last_name"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'staff'" json:"role"`

	PhotoURL   string `gorm:"size:512" json:"photo_url"`
	Title      string `gorm:"size:100" json:"title"`
	Bio        string `gorm:"type:text" json:"bio"`
	CalendarID string `gorm:"size:255" json:"-"`

	Active       bool `gorm:"default:true" json:"active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Staff) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

func (s *Staff) IsAdmin() bool {
	return s.Role == "admin"
}

// StaffService links a staff member to a service they perform.
// CustomPrice overrides the service base price when set.
type StaffService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StaffID   uint `gorm:"uniqueIndex:unique_staff_service" json:"staff_id"`
	ServiceID uint `gorm:"uniqueIndex:unique_staff_service" json:"service_id"`

	CustomPrice *float64 `gorm:"type:decimal(10,2)" json:"custom_price"`

	CreatedAt time.Time `json:"created_at"`
}

// EffectivePrice resolves the price a staff member charges for a service:
// the junction row's custom price when present, the service base price
// otherwise.
func EffectivePrice(svc *Service, link *StaffService) float64 {
	if link != nil && link.CustomPrice != nil {
		return *link.CustomPrice
	}
	return svc.Price
}
