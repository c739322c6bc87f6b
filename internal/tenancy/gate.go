package tenancy

import (
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

// Gate decides whether a resolved tenant may be served. It is the single place
// tenant status and subscription validity are enforced.
type Gate struct {
	loc *time.Location
}

// NewGate evaluates subscription end dates as calendar days in loc.
func NewGate(loc *time.Location) *Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &Gate{loc: loc}
}

// Check applies, in order: tenant status, subscription presence, subscription
// status, subscription end date. The first failing check wins.
func (g *Gate) Check(tenant *domain.Tenant, sub *domain.Subscription, now time.Time) error {
	if !tenant.IsActive() {
		return TenantInactive(tenant)
	}
	if sub == nil {
		return NoSubscription(tenant)
	}
	if !sub.IsActive() {
		return SubscriptionInactive(sub)
	}
	if sub.ExpiredAt(now, g.loc) {
		return SubscriptionExpired(sub)
	}
	return nil
}
