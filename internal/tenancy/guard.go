package tenancy

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

type Decision int

const (
	Allow Decision = iota
	Deny
)

// Decide applies the ownership rule: a principal may only act on its own
// tenant unless it holds the cross-tenant capability. Anonymous requests carry
// no tenant claim and are allowed.
func Decide(p *domain.Principal, tenant *domain.Tenant) Decision {
	if p == nil {
		return Allow
	}
	if p.Can(domain.CapCrossTenant) {
		return Allow
	}
	if p.TenantID == tenant.ID {
		return Allow
	}
	return Deny
}

// Auditor persists security events.
type Auditor interface {
	RecordSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error
}

// RequestInfo is the request metadata recorded with a violation.
type RequestInfo struct {
	SourceIP  string
	Method    string
	URL       string
	UserAgent string
	RequestID string
}

type Guard struct {
	auditor Auditor
	logger  *logger.Logger
	now     func() time.Time
}

func NewGuard(auditor Auditor, log *logger.Logger) *Guard {
	return &Guard{auditor: auditor, logger: log, now: time.Now}
}

// Check denies cross-tenant access and records every denial. A failing auditor
// never turns a denial into an allow.
func (g *Guard) Check(ctx context.Context, p *domain.Principal, tenant *domain.Tenant, info RequestInfo) error {
	if Decide(p, tenant) == Allow {
		return nil
	}

	event := &domain.SecurityEvent{
		Kind:                domain.SecurityEventOwnershipViolation,
		PrincipalID:         p.UserID,
		PrincipalTenantID:   p.TenantID,
		RequestedTenantID:   tenant.ID,
		RequestedTenantCode: tenant.Code,
		SourceIP:            info.SourceIP,
		Method:              info.Method,
		URL:                 info.URL,
		UserAgent:           info.UserAgent,
		RequestID:           info.RequestID,
		OccurredAt:          g.now().UTC(),
	}
	fields := []zap.Field{
		zap.String("principal_id", event.PrincipalID),
		zap.Uint("principal_tenant_id", event.PrincipalTenantID),
		zap.Uint("requested_tenant_id", event.RequestedTenantID),
		zap.String("requested_tenant_code", event.RequestedTenantCode),
		zap.String("source_ip", event.SourceIP),
		zap.String("method", event.Method),
		zap.String("url", event.URL),
		zap.String("request_id", event.RequestID),
	}

	g.logger.Warn("cross-tenant access denied", fields...)
	if g.auditor != nil {
		if err := g.auditor.RecordSecurityEvent(context.WithoutCancel(ctx), event); err != nil {
			g.logger.Error("failed to record security event", err, fields...)
		}
	}

	return OwnershipViolation(tenant)
}
