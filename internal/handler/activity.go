package handler

import (
	"net/http"

	"gamehouse/internal/repository"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(svc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := repository.ActivityLogFilter{
		Resource: c.Query("resource"),
		Status:   c.Query("status"),
		Page:     page,
		Limit:    limit,
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
