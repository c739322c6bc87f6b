package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
)

type SubscriptionService interface {
	Create(ctx context.Context, code string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Renew(ctx context.Context, code string, req dto.RenewSubscriptionRequest) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, code string) (*dto.SubscriptionResponse, error)
	List(ctx context.Context, code string) ([]dto.SubscriptionResponse, error)
}

type SubscriptionHandler struct {
	*BaseHandler
	service SubscriptionService
}

func NewSubscriptionHandler(service SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// CreateSubscription godoc
// @Summary Create a subscription
// @Description A tenant can hold at most one active subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Param body body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sub, err := h.service.Create(h.RequestCtx(c), c.Param("code"), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// ListSubscriptions godoc
// @Summary List a tenant's subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{code}/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.service.List(h.RequestCtx(c), c.Param("code"))
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

// RenewSubscription godoc
// @Summary Renew the active subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Param body body dto.RenewSubscriptionRequest true "New end date"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/subscriptions/renew [post]
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	var req dto.RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sub, err := h.service.Renew(h.RequestCtx(c), c.Param("code"), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// CancelSubscription godoc
// @Summary Cancel the active subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/subscriptions/cancel [post]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	sub, err := h.service.Cancel(h.RequestCtx(c), c.Param("code"))
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
