package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

func TestLocalizer_Match(t *testing.T) {
	es := NewLocalizer("es")
	assert.Equal(t, language.Spanish, es.Match(""))
	assert.Equal(t, language.English, es.Match("en-US,en;q=0.9"))
	assert.Equal(t, language.Spanish, es.Match("es-PE"))
	assert.Equal(t, language.Spanish, es.Match("fr-FR"))

	en := NewLocalizer("en")
	assert.Equal(t, language.English, en.Match(""))
	assert.Equal(t, language.English, en.Match("de"))
}

func TestLocalizer_SuspendedMessage(t *testing.T) {
	l := NewLocalizer("es")
	tenant := &domain.Tenant{ID: 1, Code: "acme", Status: domain.TenantStatusSuspended}
	rej := TenantInactive(tenant)

	assert.Contains(t, l.Message(rej, "es"), "suspendida")
	assert.Contains(t, l.Message(rej, "en"), "suspended")

	body := l.Body(rej, "")
	assert.Equal(t, "tenant_inactive", body["error"])
	assert.Equal(t, "suspended", body["tenant_status"])
	assert.Equal(t, "acme", body["tenant_code"])
	assert.Contains(t, body["message"], "suspendida")
}

func TestLocalizer_Arguments(t *testing.T) {
	l := NewLocalizer("es")

	assert.Equal(t, `La institución "ghost" no existe.`, l.Message(TenantNotFound("ghost"), "es"))
	assert.Equal(t, `Institution "ghost" not found.`, l.Message(TenantNotFound("ghost"), "en"))
	assert.Contains(t, l.Message(Unidentified("X-Tenant-Code"), "en"), "X-Tenant-Code")

	sub := &domain.Subscription{Status: domain.SubscriptionStatusActive, EndDate: datePtr(2025, 3, 31)}
	assert.Contains(t, l.Message(SubscriptionExpired(sub), "en"), "2025-03-31")
}

func TestKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, 400, KindUnidentified.HTTPStatus())
	assert.Equal(t, 404, KindTenantNotFound.HTTPStatus())
	for _, k := range []Kind{KindTenantInactive, KindNoSubscription, KindSubscriptionInactive, KindSubscriptionExpired, KindOwnershipViolation} {
		assert.Equal(t, 403, k.HTTPStatus(), k)
	}
	assert.Equal(t, 503, KindStoreUnavailable.HTTPStatus())
	assert.False(t, KindOwnershipViolation.Retryable())
}
