package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/tenancy"
)

const PrincipalKey = "principal"

var errMissingAuthorization = errors.New("authorization header is required")

// Claims is the JWT payload. TenantID is the institution the user belongs to.
type Claims struct {
	UserID   string   `json:"user_id"`
	TenantID uint     `json:"tenant_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	config *config.Config
}

func NewAuthMiddleware(config *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		config: config,
	}
}

// JWTAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.authenticate(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalJWTAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.authenticate(c)
		if errors.Is(err, errMissingAuthorization) {
			c.Next()
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// RequireCapability checks that the authenticated principal holds capability.
func (m *AuthMiddleware) RequireCapability(capability domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}
		if !principal.Can(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*domain.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingAuthorization
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (any, error) {
		return []byte(m.config.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user_id")
	}

	return &domain.Principal{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Roles:    domain.ParseRoles(claims.Roles),
	}, nil
}

func (m *AuthMiddleware) GenerateToken(userID string, tenantID uint, roles []string) (string, error) {
	return GenerateToken(m.config.JWTSecretKey, time.Duration(m.config.JWTExpirationHours)*time.Hour, userID, tenantID, roles)
}

// GenerateToken signs an HS256 token for the given principal.
func GenerateToken(secret string, ttl time.Duration, userID string, tenantID uint, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func setPrincipal(c *gin.Context, principal *domain.Principal) {
	c.Set(PrincipalKey, principal)
	c.Request = c.Request.WithContext(tenancy.WithPrincipal(c.Request.Context(), principal))
}

// GetPrincipal returns the authenticated caller, if any.
func GetPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*domain.Principal)
	return principal, ok && principal != nil
}
