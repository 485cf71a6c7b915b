package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginSession tracks an issued credential so it can be force-revoked
// (logout) before the JWT itself expires. Expired or inactive rows are
// removed by the hourly cleanup job.
type LoginSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Token      string    `gorm:"uniqueIndex;not null"`
	OperatorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Active     bool      `gorm:"not null;default:true"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}
