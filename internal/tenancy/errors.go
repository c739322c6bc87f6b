package tenancy

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

var (
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrBindingReleased      = errors.New("tenant binding already released")
)

// Kind classifies why a request was refused before reaching business logic.
type Kind string

const (
	KindUnidentified         Kind = "tenant_unidentified"
	KindTenantNotFound       Kind = "tenant_not_found"
	KindTenantInactive       Kind = "tenant_inactive"
	KindNoSubscription       Kind = "no_subscription"
	KindSubscriptionInactive Kind = "subscription_inactive"
	KindSubscriptionExpired  Kind = "subscription_expired"
	KindOwnershipViolation   Kind = "ownership_violation"
	KindStoreUnavailable     Kind = "store_unavailable"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnidentified:
		return http.StatusBadRequest
	case KindTenantNotFound:
		return http.StatusNotFound
	case KindTenantInactive, KindNoSubscription, KindSubscriptionInactive,
		KindSubscriptionExpired, KindOwnershipViolation:
		return http.StatusForbidden
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Retryable is true only for operational failures a client may retry.
func (k Kind) Retryable() bool {
	return k == KindStoreUnavailable
}

// Rejection is a terminal pipeline outcome. It carries the message to show the
// client and the context fields rendered alongside it.
type Rejection struct {
	Kind    Kind
	Details map[string]any

	msgKey  messageKey
	msgArgs []any
	cause   error
}

func (r *Rejection) Error() string {
	if r.cause != nil {
		return fmt.Sprintf("%s: %v", r.Kind, r.cause)
	}
	return string(r.Kind)
}

func (r *Rejection) Unwrap() error {
	return r.cause
}

func (r *Rejection) Status() int {
	return r.Kind.HTTPStatus()
}

// AsRejection extracts a Rejection from an error chain.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func reject(kind Kind, key messageKey, args []any, details map[string]any, cause error) *Rejection {
	if details == nil {
		details = map[string]any{}
	}
	return &Rejection{Kind: kind, Details: details, msgKey: key, msgArgs: args, cause: cause}
}

func Unidentified(header string) *Rejection {
	return reject(KindUnidentified, msgUnidentified, []any{header}, map[string]any{"header": header}, nil)
}

func TenantNotFound(code string) *Rejection {
	return reject(KindTenantNotFound, msgTenantNotFound, []any{code}, map[string]any{"tenant_code": code}, ErrTenantNotFound)
}

func TenantInactive(t *domain.Tenant) *Rejection {
	key := msgTenantInactive
	switch t.Status {
	case domain.TenantStatusSuspended:
		key = msgTenantSuspended
	case domain.TenantStatusCancelled:
		key = msgTenantCancelled
	case domain.TenantStatusTrialExpired:
		key = msgTenantTrialExpired
	}
	return reject(KindTenantInactive, key, nil, map[string]any{
		"tenant_code":   t.Code,
		"tenant_status": string(t.Status),
	}, nil)
}

func NoSubscription(t *domain.Tenant) *Rejection {
	return reject(KindNoSubscription, msgNoSubscription, nil, map[string]any{"tenant_code": t.Code}, nil)
}

func SubscriptionInactive(s *domain.Subscription) *Rejection {
	return reject(KindSubscriptionInactive, msgSubscriptionInactive, []any{string(s.Status)}, map[string]any{
		"subscription_status": string(s.Status),
	}, nil)
}

func SubscriptionExpired(s *domain.Subscription) *Rejection {
	end := s.EndDate.UTC().Format(domain.DateLayout)
	return reject(KindSubscriptionExpired, msgSubscriptionExpired, []any{end}, map[string]any{"end_date": end}, nil)
}

func OwnershipViolation(t *domain.Tenant) *Rejection {
	return reject(KindOwnershipViolation, msgOwnershipViolation, nil, map[string]any{"tenant_code": t.Code}, nil)
}

func StoreUnavailable(code string, cause error) *Rejection {
	return reject(KindStoreUnavailable, msgStoreUnavailable, nil, map[string]any{
		"tenant_code": code,
		"retryable":   true,
	}, cause)
}
