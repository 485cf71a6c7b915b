package model

import (
	"time"

	"github.com/google/uuid"
)

// Operator roles. Admins can manage operators, settings, backups, and the
// activity log; regular operators drive sessions and the catalog.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Operator is a back-office user who authenticates and drives sessions.
type Operator struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'operator'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
