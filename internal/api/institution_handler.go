package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

// InstitutionHandler serves tenant-scoped routes. It relies on the tenancy
// middleware having bound the request.
type InstitutionHandler struct {
	*BaseHandler
	logger *logger.Logger
}

func NewInstitutionHandler(logger *logger.Logger) *InstitutionHandler {
	return &InstitutionHandler{logger: logger}
}

// GetPublicInstitution godoc
// @Summary Public institution card
// @Description Resolves the institution from X-Tenant-Code or the subdomain
// @Tags institution
// @Produce json
// @Param X-Tenant-Code header string false "Tenant code"
// @Success 200 {object} dto.InstitutionResponse
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Failure 503 {object} dto.Error
// @Router /public/institution [get]
func (h *InstitutionHandler) GetPublicInstitution(c *gin.Context) {
	tenant, ok := tenancy.TenantFromContext(h.RequestCtx(c))
	if !ok {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal_error"})
		return
	}

	c.JSON(http.StatusOK, dto.InstitutionResponse{Code: tenant.Code, Name: tenant.Name})
}

// GetInstitutionContext godoc
// @Summary Tenant context of the current request
// @Description Reports the bound tenant, how it was resolved and which store the request is attached to
// @Tags institution
// @Produce json
// @Security BearerAuth
// @Param X-Tenant-Code header string false "Tenant code"
// @Success 200 {object} dto.InstitutionContextResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 503 {object} dto.Error
// @Router /institution/context [get]
func (h *InstitutionHandler) GetInstitutionContext(c *gin.Context) {
	ctx := h.RequestCtx(c)
	rc, ok := tenancy.FromContext(ctx)
	if !ok || rc.Tenant == nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal_error"})
		return
	}

	db, err := rc.DB()
	if err != nil {
		h.storeUnavailable(c, rc, err)
		return
	}
	var current string
	if err := db.WithContext(ctx).Raw("SELECT current_database()").Scan(&current).Error; err != nil {
		h.storeUnavailable(c, rc, err)
		return
	}

	resp := dto.InstitutionContextResponse{
		Tenant:          *dto.FromInstitutionTenant(rc.Tenant),
		ResolvedBy:      string(rc.Signal.Method),
		CurrentDatabase: current,
	}
	if rc.Subscription != nil {
		resp.Subscription = dto.FromSubscription(rc.Subscription)
	}
	if p := rc.Principal; p != nil {
		resp.Principal = dto.FromPrincipal(p)
		resp.OperatingAsAdmin = p.TenantID != rc.Tenant.ID && p.Can(domain.CapCrossTenant)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InstitutionHandler) storeUnavailable(c *gin.Context, rc *tenancy.RequestContext, err error) {
	h.logger.Error("tenant store query failed", err)
	c.Header("Retry-After", "5")
	c.JSON(http.StatusServiceUnavailable, dto.Error{
		Error:   "store_unavailable",
		Message: "tenant store unavailable: " + rc.Tenant.Code,
	})
}
