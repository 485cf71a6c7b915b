package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, one-hour credential for resetting an
// operator password. Issuing a new token invalidates all prior unused tokens
// for the same email.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
