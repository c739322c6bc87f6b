package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/middleware"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const maxRequestBodyBytes = 1 << 20

type Server struct {
	tenant        *TenantHandler
	subscription  *SubscriptionHandler
	securityEvent *SecurityEventHandler
	institution   *InstitutionHandler
	websocket     *WebSocketHandler
	auth          *middleware.AuthMiddleware
	rateLimit     *middleware.RateLimitMiddleware
	request       *middleware.RequestMiddleware
	tenancy       *middleware.TenancyMiddleware
}

func NewServer(
	tenantService TenantService,
	subscriptionService SubscriptionService,
	securityEventService SecurityEventService,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	request *middleware.RequestMiddleware,
	tenancy *middleware.TenancyMiddleware,
	logger *logger.Logger,
	subscriber SecurityEventSubscriber,
) *Server {
	return &Server{
		tenant:        NewTenantHandler(tenantService),
		subscription:  NewSubscriptionHandler(subscriptionService),
		securityEvent: NewSecurityEventHandler(securityEventService),
		institution:   NewInstitutionHandler(logger),
		websocket:     NewWebSocketHandler(logger, subscriber),
		auth:          auth,
		rateLimit:     rateLimit,
		request:       request,
		tenancy:       tenancy,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.request.RequestID())
	api.Use(s.request.AccessLog())
	api.Use(s.request.ValidateRequestSize(maxRequestBodyBytes))
	api.Use(s.request.ValidateContentType("application/json"))
	api.Use(s.rateLimit.GlobalRateLimit())

	{
		admin := api.Group("/admin", s.auth.JWTAuth())

		tenants := admin.Group("/tenants", s.auth.RequireCapability(domain.CapManageTenants))
		{
			tenants.POST("", s.tenant.CreateTenant)
			tenants.GET("", s.tenant.ListTenants)
			tenants.GET("/:code", s.tenant.GetTenant)
			tenants.POST("/:code/activate", s.tenant.ActivateTenant)
			tenants.POST("/:code/suspend", s.tenant.SuspendTenant)
			tenants.POST("/:code/cancel", s.tenant.CancelTenant)

			tenants.GET("/:code/subscriptions", s.subscription.ListSubscriptions)
			tenants.POST("/:code/subscriptions", s.subscription.CreateSubscription)
			tenants.POST("/:code/subscriptions/renew", s.subscription.RenewSubscription)
			tenants.POST("/:code/subscriptions/cancel", s.subscription.CancelSubscription)
		}

		events := admin.Group("/security-events", s.auth.RequireCapability(domain.CapReadSecurity))
		{
			events.GET("", s.securityEvent.ListSecurityEvents)
			events.POST("/archive", s.securityEvent.ArchiveSecurityEvents)
			events.GET("/stream", s.websocket.HandleWebSocket)
		}
	}

	// Tenant-scoped routes run the full tenancy pipeline before the handler.
	{
		public := api.Group("/public", s.auth.OptionalJWTAuth(), s.tenancy.Resolve(), s.rateLimit.TenantRateLimit())
		public.GET("/institution", s.institution.GetPublicInstitution)

		institution := api.Group("/institution", s.auth.JWTAuth(), s.tenancy.Resolve(), s.rateLimit.TenantRateLimit())
		institution.GET("/context", s.auth.RequireCapability(domain.CapReadInstitution), s.institution.GetInstitutionContext)
	}
}

// StartWebSocketHub starts the hub that fans security events out to stream clients.
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

func (s *Server) StopWebSocketHub() {
	s.websocket.Stop()
}
