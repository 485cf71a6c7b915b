package dto

import "github.com/shopspring/decimal"

// ── Service catalog ───────────────────────────────────────────────────────────

type CreateServiceRequest struct {
	Name        string          `json:"name"         validate:"required,min=2,max=100"`
	PricingMode string          `json:"pricing_mode" validate:"required,oneof=time-based unit-based"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"min=0"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
}

type UpdateServiceRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=2,max=100"`
	UnitPrice  *decimal.Decimal `json:"unit_price"  validate:"omitempty,min=0"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
	Active     *bool            `json:"active"`
}

type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	PricingMode string          `json:"pricing_mode"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Active      bool            `json:"active"`
}

// ── Categories ────────────────────────────────────────────────────────────────

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
}
