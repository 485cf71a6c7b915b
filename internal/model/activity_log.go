package model

import (
	"time"

	"github.com/google/uuid"
)

// Activity outcome recorded with every entry.
const (
	ActivitySuccess = "success"
	ActivityFailure = "failure"
)

// ActivityLogEntry is one append-only audit record. Entries are written
// best-effort by every mutating route and are never updated or deleted.
type ActivityLogEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"not null;index"`
	Resource   string     `gorm:"not null;index"`
	Details    string
	Status     string    `gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time `gorm:"index"`
}
