package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
)

func newAuthRouter(m *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", append(handlers, func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		fromCtx, _ := tenancy.PrincipalFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "tenant_id": p.TenantID, "same": fromCtx == p})
	})...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "secret", JWTExpirationHours: 1}
	m := NewAuthMiddleware(cfg)
	r := newAuthRouter(m, m.JWTAuth())

	t.Run("valid token", func(t *testing.T) {
		token, err := m.GenerateToken("user-1", 7, []string{"director"})
		require.NoError(t, err)

		w := get(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"user-1","tenant_id":7,"same":true}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("other", time.Hour, "user-1", 7, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateToken("secret", -time.Minute, "user-1", 7, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "user-1"}).SignedString([]byte("secret"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	})
}

func TestOptionalJWTAuth(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "secret", JWTExpirationHours: 1}
	m := NewAuthMiddleware(cfg)
	r := newAuthRouter(m, m.OptionalJWTAuth())

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)
}

func TestRequireCapability(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "secret", JWTExpirationHours: 1}
	m := NewAuthMiddleware(cfg)
	r := newAuthRouter(m, m.JWTAuth(), m.RequireCapability(domain.CapManageTenants))

	director, err := m.GenerateToken("user-1", 7, []string{"director"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, director).Code)

	admin, err := m.GenerateToken("root", 0, []string{"superadmin"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, admin).Code)

	unknownRole, err := m.GenerateToken("user-2", 7, []string{"janitor"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, unknownRole).Code)
}
