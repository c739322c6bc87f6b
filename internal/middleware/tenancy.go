package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const TenantCodeKey = "tenant_code"

const retryAfterSeconds = "5"

// PipelineRunner runs the tenancy stages for one request.
type PipelineRunner interface {
	Run(ctx context.Context, rc *tenancy.RequestContext) error
}

type TenancyMiddleware struct {
	pipeline  PipelineRunner
	localizer *tenancy.Localizer
	logger    *logger.Logger
}

func NewTenancyMiddleware(pipeline PipelineRunner, localizer *tenancy.Localizer, logger *logger.Logger) *TenancyMiddleware {
	return &TenancyMiddleware{
		pipeline:  pipeline,
		localizer: localizer,
		logger:    logger,
	}
}

// Resolve attaches the request to its tenant before any handler runs. The
// tenant store handle is released once the rest of the chain returns.
func (m *TenancyMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		rc := tenancy.NewRequestContext(c.Request, principal, requestInfo(c))

		if err := m.pipeline.Run(c.Request.Context(), rc); err != nil {
			m.reject(c, rc, err)
			return
		}
		defer rc.Release()

		c.Set(TenantCodeKey, rc.Tenant.Code)
		c.Request = c.Request.WithContext(tenancy.WithRequestContext(c.Request.Context(), rc))
		c.Next()
	}
}

func (m *TenancyMiddleware) reject(c *gin.Context, rc *tenancy.RequestContext, err error) {
	acceptLanguage := c.GetHeader("Accept-Language")

	rejection, ok := tenancy.AsRejection(err)
	if !ok {
		m.logger.Error("tenancy pipeline failed", err,
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if rejection.Kind == tenancy.KindStoreUnavailable {
		m.logger.Error("tenant store unavailable", err,
			zap.String("tenant", rc.Signal.Code),
			zap.String("request_id", c.GetString(RequestIDKey)))
	}
	if rejection.Kind.Retryable() {
		c.Header("Retry-After", retryAfterSeconds)
	}
	if rc.Signal.Code != "" {
		c.Set(TenantCodeKey, rc.Signal.Code)
	}

	c.AbortWithStatusJSON(rejection.Status(), m.localizer.Body(rejection, acceptLanguage))
}
