package handler

import (
	"net/http"

	"gamehouse/internal/dto"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct {
	svc      service.CustomerService
	activity service.ActivityService
}

func NewCustomersHandler(svc service.CustomerService, activity service.ActivityService) *CustomersHandler {
	return &CustomersHandler{svc: svc, activity: activity}
}

// Create godoc
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param body body dto.CreateCustomerRequest true "Customer data"
// @Success 201 {object} dto.CustomerResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/customers [post]
func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	audit(c, h.activity, "create", "customer", req.Phone, err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CustomersHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	resp, err := h.svc.List(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
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

func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	audit(c, h.activity, "update", "customer", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomersHandler) Deactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Deactivate(c.Request.Context(), id)
	audit(c, h.activity, "deactivate", "customer", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Customer deactivated"})
}

func (h *CustomersHandler) Reactivate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	err := h.svc.Reactivate(c.Request.Context(), id)
	audit(c, h.activity, "reactivate", "customer", id.String(), err)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Customer reactivated"})
}
