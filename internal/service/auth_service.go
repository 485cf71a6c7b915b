package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamehouse/internal/apierror"
	"gamehouse/internal/config"
	"gamehouse/internal/dto"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"
	"gamehouse/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"golang.org/x/crypto/bcrypt"
)

// forgotPasswordDetail is returned for every forgot-password request,
// whether or not the email is registered, to avoid account enumeration.
const forgotPasswordDetail = "If that email is registered, a reset link has been sent"

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error

	CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*dto.OperatorResponse, error)
	GetOperator(ctx context.Context, id uuid.UUID) (*dto.OperatorResponse, error)
	ListOperators(ctx context.Context, includeInactive bool) ([]dto.OperatorResponse, error)
	UpdateOperator(ctx context.Context, id uuid.UUID, req dto.UpdateOperatorRequest) (*dto.OperatorResponse, error)
	DeactivateOperator(ctx context.Context, id uuid.UUID) error
	ReactivateOperator(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	operators     repository.OperatorRepository
	loginSessions repository.LoginSessionRepository
	resetTokens   repository.ResetTokenRepository
	dispatcher    *worker.Dispatcher
	cfg           *config.Config
}

func NewAuthService(
	operators repository.OperatorRepository,
	loginSessions repository.LoginSessionRepository,
	resetTokens repository.ResetTokenRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) AuthService {
	return &authService{
		operators:     operators,
		loginSessions: loginSessions,
		resetTokens:   resetTokens,
		dispatcher:    dispatcher,
		cfg:           cfg,
	}
}

// ── Login / Logout ────────────────────────────────────────────────────────────

// Login accepts the username or the email in the username field.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	op, err := s.operators.FindByLogin(ctx, req.Username)
	if err != nil {
		return nil, apierror.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("invalid credentials")
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(op, ttl)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	// Track the issued credential so logout can revoke it before expiry
	session := &model.LoginSession{
		Token:      token,
		OperatorID: op.ID,
		Active:     true,
		ExpiresAt:  time.Now().Add(ttl),
	}
	if err := s.loginSessions.Create(ctx, session); err != nil {
		return nil, apierror.Internal(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Operator:    mapOperator(op),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.loginSessions.Deactivate(ctx, token); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

// ── Password reset ────────────────────────────────────────────────────────────

// ForgotPassword issues a single-use reset token and emails it. The response
// is byte-identical whether or not the email is registered.
func (s *authService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	resp := &dto.ForgotPasswordResponse{Detail: forgotPasswordDetail}

	op, err := s.operators.FindByEmail(ctx, req.Email)
	if err != nil || !op.Active {
		return resp, nil
	}

	// A new token supersedes all earlier unused ones for this email
	if err := s.resetTokens.InvalidateForEmail(ctx, op.Email); err != nil {
		return nil, apierror.Internal(err)
	}

	token := &model.PasswordResetToken{
		Email:     op.Email,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.ResetTokenMinutes) * time.Minute),
	}
	if err := s.resetTokens.Create(ctx, token); err != nil {
		return nil, apierror.Internal(err)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account.\n"+
			"Open the link below within %d minutes to choose a new password:\n\n%s?token=%s\n\n"+
			"If you did not request this, you can ignore this email.",
		op.FullName, s.cfg.ResetTokenMinutes, s.cfg.ResetURLBase, token.Token,
	)
	payload := worker.EmailJobPayload{
		ToEmail: op.Email,
		Subject: "Password reset",
		Body:    body,
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			return nil, apierror.Internal(err)
		}
	}
	return resp, nil
}

// ResetPassword consumes the token and revokes every open login session of
// the operator.
func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	token, err := s.resetTokens.FindByToken(ctx, req.Token)
	if err != nil {
		return apierror.Invalid("invalid or expired reset token")
	}
	if token.Used || time.Now().After(token.ExpiresAt) {
		return apierror.Invalid("invalid or expired reset token")
	}

	op, err := s.operators.FindByEmail(ctx, token.Email)
	if err != nil {
		return apierror.Invalid("invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return apierror.Internal(err)
	}
	op.PasswordHash = string(hash)
	if err := s.operators.Update(ctx, op); err != nil {
		return apierror.Internal(err)
	}
	if err := s.resetTokens.MarkUsed(ctx, token); err != nil {
		return apierror.Internal(err)
	}
	if err := s.loginSessions.DeactivateAllForOperator(ctx, op.ID); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

// ── Operator management ───────────────────────────────────────────────────────

func (s *authService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*dto.OperatorResponse, error) {
	if existing, err := s.operators.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, apierror.Conflict("username is already taken")
	}
	if existing, err := s.operators.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apierror.Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, apierror.Internal(err)
	}
	op := &model.Operator{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.operators.Create(ctx, op); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapOperator(op)
	return &resp, nil
}

func (s *authService) GetOperator(ctx context.Context, id uuid.UUID) (*dto.OperatorResponse, error) {
	op, err := s.findOperator(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapOperator(op)
	return &resp, nil
}

func (s *authService) ListOperators(ctx context.Context, includeInactive bool) ([]dto.OperatorResponse, error) {
	var (
		ops []model.Operator
		err error
	)
	if includeInactive {
		ops, err = s.operators.ListAll(ctx)
	} else {
		ops, err = s.operators.List(ctx)
	}
	if err != nil {
		return nil, apierror.Internal(err)
	}
	resp := make([]dto.OperatorResponse, len(ops))
	for i := range ops {
		resp[i] = mapOperator(&ops[i])
	}
	return resp, nil
}

func (s *authService) UpdateOperator(ctx context.Context, id uuid.UUID, req dto.UpdateOperatorRequest) (*dto.OperatorResponse, error) {
	op, err := s.findOperator(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		op.FullName = *req.FullName
	}
	if req.Email != nil {
		op.Email = *req.Email
	}
	if req.Role != nil {
		op.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, apierror.Internal(err)
		}
		op.PasswordHash = string(hash)
		// Changing the password revokes every open login session
		if err := s.loginSessions.DeactivateAllForOperator(ctx, op.ID); err != nil {
			return nil, apierror.Internal(err)
		}
	}
	if err := s.operators.Update(ctx, op); err != nil {
		return nil, apierror.Internal(err)
	}
	resp := mapOperator(op)
	return &resp, nil
}

func (s *authService) DeactivateOperator(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findOperator(ctx, id); err != nil {
		return err
	}
	if err := s.operators.SoftDelete(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	if err := s.loginSessions.DeactivateAllForOperator(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

func (s *authService) ReactivateOperator(ctx context.Context, id uuid.UUID) error {
	if err := s.operators.Reactivate(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *authService) generateToken(op *model.Operator, ttl time.Duration) (string, error) {
	now := time.Now()
	// jti keeps every issued token unique even when the same operator logs
	// in twice within one second; login sessions are keyed by token.
	claims := jwt.MapClaims{
		"jti":         uuid.NewString(),
		"operator_id": op.ID.String(),
		"username":    op.Username,
		"role":        op.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) findOperator(ctx context.Context, id uuid.UUID) (*model.Operator, error) {
	op, err := s.operators.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("operator not found")
		}
		return nil, apierror.Internal(err)
	}
	return op, nil
}

func mapOperator(op *model.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:       op.ID.String(),
		Username: op.Username,
		FullName: op.FullName,
		Email:    op.Email,
		Role:     op.Role,
		Active:   op.Active,
	}
}
