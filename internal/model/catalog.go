package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing modes for catalog services.
//   - time-based: billed by elapsed active (non-paused) minutes; UnitPrice is
//     the hourly rate.
//   - unit-based: billed once at attach time as UnitPrice × quantity.
const (
	PricingTimeBased = "time-based"
	PricingUnitBased = "unit-based"
)

// CatalogService is a billable service definition (console hour, snack, …).
type CatalogService struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"index;not null"`
	PricingMode string          `gorm:"type:varchar(20);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// TableName keeps the table name unambiguous next to billing sessions.
func (CatalogService) TableName() string { return "catalog_services" }

// Category groups catalog services for the operator UI.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
