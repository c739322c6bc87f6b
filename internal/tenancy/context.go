package tenancy

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

// Method records which signal identified the tenant.
type Method string

const (
	MethodHeader    Method = "header"
	MethodSubdomain Method = "subdomain"
	MethodQuery     Method = "query"
)

// Signal is a tenant code extracted from a request and where it came from.
type Signal struct {
	Code   string
	Method Method
}

// RequestContext is the per-request tenancy state. It is built by the pipeline,
// owned by exactly one request, and never persisted.
type RequestContext struct {
	Request      *http.Request
	Info         RequestInfo
	Signal       Signal
	Tenant       *domain.Tenant
	Subscription *domain.Subscription
	Binding      *Binding
	Principal    *domain.Principal
}

// Release returns the bound store handle. Safe to call more than once.
func (rc *RequestContext) Release() {
	if rc != nil && rc.Binding != nil {
		rc.Binding.Release()
	}
}

// DB returns the handle bound to this request's tenant store.
func (rc *RequestContext) DB() (*gorm.DB, error) {
	if rc == nil || rc.Binding == nil {
		return nil, ErrBindingReleased
	}
	return rc.Binding.DB()
}

type ctxKey int

const (
	requestContextKey ctxKey = iota
	principalKey
)

func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	return rc, ok && rc != nil
}

// TenantFromContext returns the tenant bound to the current request.
func TenantFromContext(ctx context.Context) (*domain.Tenant, bool) {
	rc, ok := FromContext(ctx)
	if !ok || rc.Tenant == nil {
		return nil, false
	}
	return rc.Tenant, true
}

// DBFromContext returns the tenant store handle bound to the current request.
func DBFromContext(ctx context.Context) (*gorm.DB, error) {
	rc, ok := FromContext(ctx)
	if !ok {
		return nil, ErrBindingReleased
	}
	return rc.DB()
}

func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}
