package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/service"
)

type BaseHandler struct{}

// RequestCtx returns the request context, which already carries the principal
// and, on tenant-scoped routes, the bound tenant.
func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	return ginCtx.Request.Context()
}

func (h *BaseHandler) BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid_request", Message: err.Error()})
}

// ServiceError maps service sentinels to HTTP responses. Unknown errors are
// reported without detail.
func (h *BaseHandler) ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: "tenant_not_found", Message: err.Error()})
	case errors.Is(err, service.ErrTenantExists):
		c.JSON(http.StatusConflict, dto.Error{Error: "tenant_exists", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, dto.Error{Error: "invalid_transition", Message: err.Error()})
	case errors.Is(err, service.ErrActiveSubscriptionExists):
		c.JSON(http.StatusConflict, dto.Error{Error: "active_subscription_exists", Message: err.Error()})
	case errors.Is(err, service.ErrNoActiveSubscription):
		c.JSON(http.StatusConflict, dto.Error{Error: "no_active_subscription", Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTenantCode), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.Error{Error: "invalid_request", Message: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal_error"})
	}
}
