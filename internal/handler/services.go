package handler

import (
	"net/http"

	"gamehouse/internal/apierror"
	"gamehouse/internal/dto"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServicesHandler covers the billable service catalog.
type ServicesHandler struct {
	svc      service.CatalogService
	activity service.ActivityService
}

func NewServicesHandler(svc service.CatalogService, activity service.ActivityService) *ServicesHandler {
	return &ServicesHandler{svc: svc, activity: activity}
}

func (h *ServicesHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	audit(c, h.activity, "create", "service", req.Name, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ServicesHandler) List(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid category_id"))
			return
		}
		categoryID = &id
	}
	includeInactive := c.Query("include_inactive") == "true"

	resp, err := h.svc.List(c.Request.Context(), categoryID, includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServicesHandler) Get(c *gin.Context) {
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

func (h *ServicesHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	audit(c, h.activity, "update", "service", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ServicesHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Deactivate(c.Request.Context(), id)
	audit(c, h.activity, "deactivate", "service", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Service deactivated"})
}

func (h *ServicesHandler) Reactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Reactivate(c.Request.Context(), id)
	audit(c, h.activity, "reactivate", "service", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Service reactivated"})
}
