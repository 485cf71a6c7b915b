package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"gamehouse/internal/apierror"
	"gamehouse/internal/middleware"
	"gamehouse/internal/model"
	"gamehouse/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error onto the HTTP status of its kind.
// Internal errors always get the generic message; the cause stays in the logs.
func respondError(c *gin.Context, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		if apiErr.Kind == apierror.KindInternal {
			_ = c.Error(err)
			c.JSON(apiErr.Kind.Status(), apierror.New("Internal server error"))
			return
		}
		c.JSON(apiErr.Kind.Status(), apierror.New(apiErr.Msg))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
}

// parseUUIDParam reads a path parameter as a UUID, writing a 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads ?page and ?limit with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// audit writes one best-effort activity entry for a mutating route.
func audit(c *gin.Context, activity service.ActivityService, action, resource, details string, err error) {
	if activity == nil {
		return
	}
	var operatorID *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if id, parseErr := uuid.Parse(claims.OperatorID); parseErr == nil {
			operatorID = &id
		}
	}
	status := model.ActivitySuccess
	if err != nil {
		status = model.ActivityFailure
	}
	activity.Record(c.Request.Context(), operatorID, action, resource, details, status)
}
