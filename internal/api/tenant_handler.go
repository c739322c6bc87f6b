package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
)

type TenantService interface {
	Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.TenantResponse, error)
	List(ctx context.Context, req dto.ListTenantsRequest) ([]dto.TenantResponse, error)
	Activate(ctx context.Context, code string) (*dto.TenantResponse, error)
	Suspend(ctx context.Context, code string) (*dto.TenantResponse, error)
	Cancel(ctx context.Context, code string) (*dto.TenantResponse, error)
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
}

func NewTenantHandler(service TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// CreateTenant godoc
// @Summary Provision a tenant
// @Description Register a new institution in pending status
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTenantRequest true "Tenant"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenant, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// ListTenants godoc
// @Summary List tenants
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {array} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Router /admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var req dto.ListTenantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenants, err := h.service.List(h.RequestCtx(c), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// GetTenant godoc
// @Summary Get a tenant by code
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{code} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.service.GetByCode(h.RequestCtx(c), c.Param("code"))
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// ActivateTenant godoc
// @Summary Activate a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/activate [post]
func (h *TenantHandler) ActivateTenant(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// SuspendTenant godoc
// @Summary Suspend a tenant
// @Description Requests for a suspended tenant are rejected and its store connections are dropped
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/suspend [post]
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	h.transition(c, h.service.Suspend)
}

// CancelTenant godoc
// @Summary Cancel a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param code path string true "Tenant code"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{code}/cancel [post]
func (h *TenantHandler) CancelTenant(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *TenantHandler) transition(c *gin.Context, fn func(context.Context, string) (*dto.TenantResponse, error)) {
	tenant, err := fn(h.RequestCtx(c), c.Param("code"))
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}
