package tenancy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

// MaxCacheTTL bounds how stale a cached tenant status may be.
const MaxCacheTTL = 30 * time.Second

const loadTimeout = 5 * time.Second

// Directory is the authoritative registry of tenants and subscriptions.
type Directory interface {
	// FindByCode returns ErrTenantNotFound when no tenant has the code.
	FindByCode(ctx context.Context, code string) (*domain.Tenant, error)
	// CurrentSubscription returns the most recently started subscription of a
	// tenant, or ErrSubscriptionNotFound.
	CurrentSubscription(ctx context.Context, tenantID uint) (*domain.Subscription, error)
}

// TenantSource and SubscriptionSource are the storage lookups a Directory is built on.
type TenantSource interface {
	FindByCode(ctx context.Context, code string) (*domain.Tenant, error)
}

type SubscriptionSource interface {
	FindCurrent(ctx context.Context, tenantID uint) (*domain.Subscription, error)
}

type directory struct {
	tenants       TenantSource
	subscriptions SubscriptionSource
	notFound      error
}

// NewDirectory adapts storage lookups to a Directory. Lookups that fail with
// notFound are reported as ErrTenantNotFound / ErrSubscriptionNotFound.
func NewDirectory(tenants TenantSource, subscriptions SubscriptionSource, notFound error) Directory {
	return &directory{tenants: tenants, subscriptions: subscriptions, notFound: notFound}
}

func (d *directory) FindByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	t, err := d.tenants.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, d.notFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func (d *directory) CurrentSubscription(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	s, err := d.subscriptions.FindCurrent(ctx, tenantID)
	if err != nil {
		if errors.Is(err, d.notFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return s, nil
}

// Cache is the byte-oriented store used by CachedDirectory.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedDirectory puts a short-lived cache in front of a Directory. Misses are
// never cached and cache failures fall through to the source.
type CachedDirectory struct {
	next   Directory
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *logger.Logger
}

func NewCachedDirectory(next Directory, cache Cache, ttl time.Duration, log *logger.Logger) (*CachedDirectory, error) {
	if ttl <= 0 || ttl > MaxCacheTTL {
		return nil, fmt.Errorf("directory cache ttl must be in (0, %s], got %s", MaxCacheTTL, ttl)
	}
	return &CachedDirectory{next: next, cache: cache, ttl: ttl, logger: log}, nil
}

func tenantKey(code string) string {
	return "tenancy:tenant:code:" + code
}

func subscriptionKey(tenantID uint) string {
	return fmt.Sprintf("tenancy:subscription:tenant:%d", tenantID)
}

func (d *CachedDirectory) FindByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	key := tenantKey(code)
	t := &domain.Tenant{}
	if d.lookup(ctx, key, t) {
		return t, nil
	}

	v, err := d.load(ctx, key, func(ctx context.Context) (any, error) {
		return d.next.FindByCode(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Tenant), nil
}

func (d *CachedDirectory) CurrentSubscription(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	key := subscriptionKey(tenantID)
	s := &domain.Subscription{}
	if d.lookup(ctx, key, s) {
		return s, nil
	}

	v, err := d.load(ctx, key, func(ctx context.Context) (any, error) {
		return d.next.CurrentSubscription(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Subscription), nil
}

// Invalidate drops every cached entry for the tenant.
func (d *CachedDirectory) Invalidate(ctx context.Context, tenant *domain.Tenant) error {
	if err := d.cache.Delete(ctx, tenantKey(tenant.Code), subscriptionKey(tenant.ID)); err != nil {
		return fmt.Errorf("failed to invalidate tenant cache: %w", err)
	}
	return nil
}

// load collapses concurrent misses for key into one source read. The shared read
// is detached from any single caller's cancellation; each caller still stops
// waiting when its own context ends.
func (d *CachedDirectory) load(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := d.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		v, err := fetch(loadCtx)
		if err != nil {
			return nil, err
		}
		d.store(loadCtx, key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (d *CachedDirectory) lookup(ctx context.Context, key string, dst any) bool {
	raw, found, err := d.cache.Get(ctx, key)
	if err != nil {
		d.logger.Warn("tenant directory cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		d.logger.Warn("tenant directory cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (d *CachedDirectory) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, key, raw, d.ttl); err != nil {
		d.logger.Warn("tenant directory cache write failed", zap.String("key", key), zap.Error(err))
	}
}
