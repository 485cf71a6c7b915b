package handler

import (
	"net/http"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/middleware"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionsHandler drives the billing-session lifecycle.
type SessionsHandler struct {
	svc      service.SessionService
	activity service.ActivityService
}

func NewSessionsHandler(svc service.SessionService, activity service.ActivityService) *SessionsHandler {
	return &SessionsHandler{svc: svc, activity: activity}
}

// Open godoc
// @Summary Open a billing session for a customer
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body dto.OpenSessionRequest true "Customer"
// @Success 201 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions [post]
func (h *SessionsHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	operatorID, err := uuid.Parse(claims.OperatorID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.svc.Open(c.Request.Context(), operatorID, req)
	audit(c, h.activity, "open", "session", req.CustomerID, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SessionsHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	resp, err := h.svc.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Attach godoc
// @Summary Attach a catalog service to an open session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param body body dto.AttachServiceRequest true "Service and quantity"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/sessions/{id}/services [post]
func (h *SessionsHandler) Attach(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AttachServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AttachService(c.Request.Context(), id, req)
	audit(c, h.activity, "attach_service", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) Detach(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	resp, err := h.svc.DetachService(c.Request.Context(), id, serviceID)
	audit(c, h.activity, "detach_service", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) Pause(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	resp, err := h.svc.PauseService(c.Request.Context(), id, serviceID)
	audit(c, h.activity, "pause_service", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) Resume(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := parseUUIDParam(c, "serviceId")
	if !ok {
		return
	}
	resp, err := h.svc.ResumeService(c.Request.Context(), id, serviceID)
	audit(c, h.activity, "resume_service", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete godoc
// @Summary Complete a session and finalize its bill
// @Tags sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/sessions/{id}/complete [post]
func (h *SessionsHandler) Complete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Complete(c.Request.Context(), id)
	audit(c, h.activity, "complete", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendInvoice generates the PDF and queues delivery through the bot.
func (h *SessionsHandler) SendInvoice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.SendInvoice(c.Request.Context(), id)
	audit(c, h.activity, "send_invoice", "session", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"detail": "Invoice queued for delivery"})
}
