package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string  `json:"last_name"  validate:"required,min=2,max=100"`
	Phone     string  `json:"phone"      validate:"required,min=6,max=20"`
	Notes     *string `json:"notes"`
}

type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone"      validate:"omitempty,min=6,max=20"`
	Notes     *string `json:"notes"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone"`
	Notes     *string `json:"notes,omitempty"`
	Active    bool    `json:"active"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
