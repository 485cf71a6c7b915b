package handler

import (
	"net/http"

	"gamehouse/internal/dto"
	"gamehouse/internal/middleware"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc      service.AuthService
	activity service.ActivityService
}

func NewAuthHandler(svc service.AuthService, activity service.ActivityService) *AuthHandler {
	return &AuthHandler{svc: svc, activity: activity}
}

// Login godoc
// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials (username or email)"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	audit(c, h.activity, "login", "auth", req.Username, err)
	if err != nil {
		respondError(c, err)
		return
	}

	// Mirror the token in an HttpOnly cookie for the browser frontend
	c.SetCookie(middleware.TokenCookie, resp.AccessToken, resp.ExpiresIn, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the login session behind the presented credential.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetToken(c)
	err := h.svc.Logout(c.Request.Context(), token)
	audit(c, h.activity, "logout", "auth", "", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"detail": "Logged out"})
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.ForgotPasswordResponse
// @Router /v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ForgotPassword(c.Request.Context(), req)
	audit(c, h.activity, "password_reset_request", "auth", req.Email, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.ResetPassword(c.Request.Context(), req)
	audit(c, h.activity, "password_reset", "auth", "", err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Password updated"})
}
