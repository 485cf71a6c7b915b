package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type CreateOperatorRequest struct {
	Username string `json:"username"  validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=admin operator"`
}

type UpdateOperatorRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Role     *string `json:"role"      validate:"omitempty,oneof=admin operator"`
	Password *string `json:"password"  validate:"omitempty,min=8"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type OperatorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"` // always "bearer"
	ExpiresIn   int              `json:"expires_in"` // seconds
	Operator    OperatorResponse `json:"operator"`
}

// ForgotPasswordResponse is identical whether or not the email exists, to
// avoid account enumeration.
type ForgotPasswordResponse struct {
	Detail string `json:"detail"`
}
