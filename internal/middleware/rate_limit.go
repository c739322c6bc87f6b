package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const (
	rateLimitWindow        = time.Minute
	defaultTenantRateLimit = 1000
	defaultGlobalRateLimit = 10000
)

// Counter is a fixed-window request counter.
type Counter interface {
	IncrWithExpiry(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimitMiddleware struct {
	counter Counter
	config  *config.Config
	logger  *logger.Logger
}

func NewRateLimitMiddleware(counter Counter, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		counter: counter,
		config:  config,
		logger:  logger,
	}
}

// TenantRateLimit limits requests per bound tenant. It must run after the
// tenancy middleware.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := tenancy.TenantFromContext(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		limit := m.config.DefaultRateLimit
		if limit <= 0 {
			limit = defaultTenantRateLimit
		}
		m.limit(c, fmt.Sprintf("rate_limit:tenant:%s", tenant.Code), limit, "Rate limit exceeded")
	}
}

// GlobalRateLimit implements global rate limiting based on IP
func (m *RateLimitMiddleware) GlobalRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := m.config.GlobalRateLimit
		if limit <= 0 {
			limit = defaultGlobalRateLimit
		}
		m.limit(c, fmt.Sprintf("rate_limit:global:%s", c.ClientIP()), limit, "Global rate limit exceeded")
	}
}

func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int, message string) {
	current, err := m.counter.IncrWithExpiry(c.Request.Context(), key, rateLimitWindow)
	if err != nil {
		// Fail open.
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	reset := time.Now().Add(rateLimitWindow).Unix()
	remaining := int64(limit) - current
	if remaining < 0 {
		remaining = 0
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

	if current > int64(limit) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": message,
			"limit": limit,
			"reset": reset,
		})
		return
	}

	c.Next()
}
