package handler

import (
	"net/http"

	"gamehouse/internal/dto"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

// OperatorsHandler covers the admin-only operator management routes.
type OperatorsHandler struct {
	svc      service.AuthService
	activity service.ActivityService
}

func NewOperatorsHandler(svc service.AuthService, activity service.ActivityService) *OperatorsHandler {
	return &OperatorsHandler{svc: svc, activity: activity}
}

func (h *OperatorsHandler) Create(c *gin.Context) {
	var req dto.CreateOperatorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOperator(c.Request.Context(), req)
	audit(c, h.activity, "create", "operator", req.Username, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OperatorsHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListOperators(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperatorsHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetOperator(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperatorsHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOperatorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateOperator(c.Request.Context(), id, req)
	audit(c, h.activity, "update", "operator", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperatorsHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.DeactivateOperator(c.Request.Context(), id)
	audit(c, h.activity, "deactivate", "operator", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Operator deactivated"})
}

func (h *OperatorsHandler) Reactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.ReactivateOperator(c.Request.Context(), id)
	audit(c, h.activity, "reactivate", "operator", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Operator reactivated"})
}
