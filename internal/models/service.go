package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`

	DepositAmount *float64 `gorm:"type:decimal(10,2)" json:"deposit_amount"`
	DepositType   string   `gorm:"size:20;default:'fixed'" json:"deposit_type"`

	// Schema-only for now: nothing reads these during conflict checks.
	BufferBeforeMin int `gorm:"default:0" json:"buffer_before_min"`
	BufferAfterMin  int `gorm:"default:0" json:"buffer_after_min"`

	Active       bool `gorm:"default:true" json:"active"`
	DisplayOrder int  `gorm:"default:0" json:"display_order"`

	Categories []Category `gorm:"many2many:service_categories" json:"categories,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DepositDue resolves the deposit owed for a given booking price.
// Returns 0 when the service takes no deposit.
func (s *Service) DepositDue(price float64) float64 {
	if s.DepositAmount == nil || *s.DepositAmount <= 0 {
		return 0
	}
	if s.DepositType == "percentage" {
		return price * *s.DepositAmount / 100
	}
	return *s.DepositAmount
}

type Category struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
