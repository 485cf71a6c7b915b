package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/handler"
	"gamehouse/internal/repository"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubAuthService struct {
	loginErr error
	resetErr error
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{
		AccessToken: "issued-token",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		Operator:    dto.OperatorResponse{Username: req.Username, Role: "admin", Active: true},
	}, nil
}

func (s *stubAuthService) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) ForgotPassword(_ context.Context, _ dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	return &dto.ForgotPasswordResponse{Detail: "sent"}, nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, _ dto.ResetPasswordRequest) error {
	return s.resetErr
}

func (s *stubAuthService) CreateOperator(_ context.Context, _ dto.CreateOperatorRequest) (*dto.OperatorResponse, error) {
	return nil, nil
}

func (s *stubAuthService) GetOperator(_ context.Context, _ uuid.UUID) (*dto.OperatorResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ListOperators(_ context.Context, _ bool) ([]dto.OperatorResponse, error) {
	return nil, nil
}

func (s *stubAuthService) UpdateOperator(_ context.Context, _ uuid.UUID, _ dto.UpdateOperatorRequest) (*dto.OperatorResponse, error) {
	return nil, nil
}

func (s *stubAuthService) DeactivateOperator(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubAuthService) ReactivateOperator(_ context.Context, _ uuid.UUID) error { return nil }

var _ service.AuthService = (*stubAuthService)(nil)

type recordedEntry struct {
	action   string
	resource string
	details  string
	status   string
}

type recordingActivity struct {
	entries []recordedEntry
}

func (a *recordingActivity) Record(_ context.Context, _ *uuid.UUID, action, resource, details, status string) {
	a.entries = append(a.entries, recordedEntry{action, resource, details, status})
}

func (a *recordingActivity) List(_ context.Context, _ repository.ActivityLogFilter) (*dto.ActivityLogListResponse, error) {
	return &dto.ActivityLogListResponse{}, nil
}

var _ service.ActivityService = (*recordingActivity)(nil)

func newAuthRouter(svc service.AuthService, activity service.ActivityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAuthHandler(svc, activity)
	r := gin.New()
	r.POST("/v1/auth/login", h.Login)
	r.POST("/v1/auth/logout", h.Logout)
	r.POST("/v1/auth/forgot-password", h.ForgotPassword)
	r.POST("/v1/auth/reset-password", h.ResetPassword)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLoginWritesAuditEntry(t *testing.T) {
	activity := &recordingActivity{}
	r := newAuthRouter(&stubAuthService{}, activity)

	w := postJSON(t, r, "/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "correct-horse"})
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "login", activity.entries[0].action)
	assert.Equal(t, "auth", activity.entries[0].resource)
	assert.Equal(t, "admin", activity.entries[0].details)
	assert.Equal(t, "success", activity.entries[0].status)
}

func TestLoginFailureWritesAuditEntry(t *testing.T) {
	activity := &recordingActivity{}
	r := newAuthRouter(&stubAuthService{loginErr: apierror.Unauthorized("invalid credentials")}, activity)

	w := postJSON(t, r, "/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, "login", activity.entries[0].action)
	assert.Equal(t, "failure", activity.entries[0].status)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r := newAuthRouter(&stubAuthService{}, &recordingActivity{})

	w := postJSON(t, r, "/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "gh_token", cookies[0].Name)
	assert.Equal(t, "issued-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	r := newAuthRouter(&stubAuthService{}, &recordingActivity{})

	w := postJSON(t, r, "/v1/auth/logout", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "gh_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPasswordResetWritesAuditEntries(t *testing.T) {
	activity := &recordingActivity{}
	r := newAuthRouter(&stubAuthService{}, activity)

	w := postJSON(t, r, "/v1/auth/forgot-password", dto.ForgotPasswordRequest{Email: "admin@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/v1/auth/reset-password", dto.ResetPasswordRequest{Token: "tok", NewPassword: "new-password-1"})
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, activity.entries, 2)
	assert.Equal(t, "password_reset_request", activity.entries[0].action)
	assert.Equal(t, "password_reset", activity.entries[1].action)
}
