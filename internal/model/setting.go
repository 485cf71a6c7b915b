package model

import "time"

// Setting is a generic key/value configuration row (venue name, currency,
// invoice footer, …). Keys are upserted, never duplicated.
type Setting struct {
	Key         string `gorm:"primaryKey"`
	Value       string `gorm:"not null"`
	Description *string
	UpdatedAt   time.Time
}
