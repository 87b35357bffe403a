package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`

	MarketingConsent   bool       `gorm:"default:false" json:"marketing_consent"`
	MarketingConsentAt *time.Time `json:"marketing_consent_at"`

	Notes  string `gorm:"type:text" json:"notes"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
