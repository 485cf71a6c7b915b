package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session lifecycle. "completed" is terminal; a session is "paused" only
// while every attached time-based item is paused.
const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionCompleted = "completed"
)

// SessionItem lifecycle. Unit-based items complete at attach time.
const (
	ItemActive    = "active"
	ItemPaused    = "paused"
	ItemCompleted = "completed"
)

// Session is one customer's billing period at the venue.
// TotalCost is always recomputed as the sum of item totals, never
// accumulated incrementally.
type Session struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperatorID uuid.UUID       `gorm:"type:uuid;not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'active';index"`
	TotalCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StartedAt  time.Time
	EndedAt    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Items    []SessionItem `gorm:"foreignKey:SessionID"`
}

// SessionItem is one catalog service attached to a session, with the pricing
// fields snapshotted at attach time so later catalog edits cannot change a
// running bill. A given ServiceID appears at most once per session.
type SessionItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_session_service"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_session_service"`
	ServiceName string          `gorm:"not null"`
	PricingMode string          `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	Status      string          `gorm:"type:varchar(20);not null;default:'active'"`
	StartTime   time.Time
	EndTime     *time.Time
	PausedAt    *time.Time
	// TotalPausedMinutes accumulates whole minutes across pause/resume cycles.
	TotalPausedMinutes int             `gorm:"not null;default:0"`
	TotalCost          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
