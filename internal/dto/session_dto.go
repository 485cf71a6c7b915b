package dto

import "github.com/shopspring/decimal"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

type AttachServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"omitempty,min=1"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SessionItemResponse struct {
	ServiceID          string          `json:"service_id"`
	ServiceName        string          `json:"service_name"`
	PricingMode        string          `json:"pricing_mode"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Quantity           int             `json:"quantity"`
	Status             string          `json:"status"`
	StartTime          string          `json:"start_time"`
	EndTime            *string         `json:"end_time,omitempty"`
	PausedAt           *string         `json:"paused_at,omitempty"`
	TotalPausedMinutes int             `json:"total_paused_minutes"`
	TotalCost          decimal.Decimal `json:"total_cost"`
}

type SessionResponse struct {
	ID         string                `json:"id"`
	CustomerID string                `json:"customer_id"`
	Customer   *string               `json:"customer,omitempty"`
	OperatorID string                `json:"operator_id"`
	Status     string                `json:"status"`
	TotalCost  decimal.Decimal       `json:"total_cost"`
	StartedAt  string                `json:"started_at"`
	EndedAt    *string               `json:"ended_at,omitempty"`
	Items      []SessionItemResponse `json:"items"`
}

type SessionListResponse struct {
	Data  []SessionResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
