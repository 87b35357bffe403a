package models

import "time"

// Setting is a plain key/value row for business configuration
// (timezone, currency, formats, booking windows, schema version).
type Setting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
