package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

type RequestMiddleware struct {
	logger *logger.Logger
}

func NewRequestMiddleware(logger *logger.Logger) *RequestMiddleware {
	return &RequestMiddleware{
		logger: logger,
	}
}

// RequestID propagates the caller's request id or assigns a new one.
func (m *RequestMiddleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured line per request, tagged with the tenant
// when the request was bound to one.
func (m *RequestMiddleware) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}
		if code := c.GetString(TenantCodeKey); code != "" {
			fields = append(fields, zap.String("tenant", code))
		}
		m.logger.Info("request", fields...)
	}
}

// ValidateContentType ensures only allowed content types
func (m *RequestMiddleware) ValidateContentType(allowedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodDelete || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		contentType := strings.TrimSpace(strings.Split(c.GetHeader("Content-Type"), ";")[0])
		for _, allowedType := range allowedTypes {
			if contentType == allowedType {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
			"error":         "Unsupported Content-Type",
			"allowed_types": allowedTypes,
		})
	}
}

// ValidateRequestSize limits request body size
func (m *RequestMiddleware) ValidateRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":         "Request body too large",
				"max_size":      maxSize,
				"received_size": c.Request.ContentLength,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// requestInfo collects the request metadata the ownership guard records.
func requestInfo(c *gin.Context) tenancy.RequestInfo {
	return tenancy.RequestInfo{
		SourceIP:  c.ClientIP(),
		Method:    c.Request.Method,
		URL:       c.Request.URL.RequestURI(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(RequestIDKey),
	}
}
