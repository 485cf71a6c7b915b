package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a venue guest whose visits are billed through sessions.
// Phone must be unique among active customers; the partial unique index is
// created in infra.NewDatabase since GORM tags cannot express it.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string    `gorm:"not null"`
	LastName  string    `gorm:"not null"`
	Phone     string    `gorm:"index;not null"`
	Notes     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
