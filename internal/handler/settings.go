package handler

import (
	"net/http"

	"gamehouse/internal/dto"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc      service.SettingsService
	activity service.ActivityService
}

func NewSettingsHandler(svc service.SettingsService, activity service.ActivityService) *SettingsHandler {
	return &SettingsHandler{svc: svc, activity: activity}
}

func (h *SettingsHandler) Upsert(c *gin.Context) {
	key := c.Param("key")
	var req dto.UpsertSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), key, req)
	audit(c, h.activity, "upsert", "setting", key, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	err := h.svc.Delete(c.Request.Context(), key)
	audit(c, h.activity, "delete", "setting", key, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Setting deleted"})
}
