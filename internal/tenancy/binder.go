package tenancy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
	"github.com/kingrain94/school-tenancy-api/pkg/utils"
)

// StoreOpener opens a connection pool to a tenant's isolated store.
type StoreOpener interface {
	Open(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error)
}

type poolKey struct {
	tenantID uint
	store    string
}

func (k poolKey) String() string {
	return fmt.Sprintf("%d/%s", k.tenantID, k.store)
}

// Binder hands each request a handle on its own tenant's store. Pools are
// opened lazily, once per tenant store, and keyed by tenant id so a handle can
// never be served to another tenant.
type Binder struct {
	opener StoreOpener
	logger *logger.Logger

	mu    sync.RWMutex
	pools map[poolKey]*gorm.DB
	group singleflight.Group
}

func NewBinder(opener StoreOpener, log *logger.Logger) *Binder {
	return &Binder{
		opener: opener,
		logger: log,
		pools:  make(map[poolKey]*gorm.DB),
	}
}

// Bind acquires a handle on tenant's store for the lifetime of one request.
// The caller must Release the returned binding. Acquisition stops as soon as
// ctx is done.
func (b *Binder) Bind(ctx context.Context, tenant *domain.Tenant) (*Binding, error) {
	key := poolKey{tenantID: tenant.ID, store: tenant.DatabaseName}

	pool, err := b.pool(ctx, tenant, key)
	if err == nil {
		err = ping(ctx, pool)
	}
	if err != nil {
		b.logger.Error("tenant store unavailable", err,
			zap.Uint("tenant_id", tenant.ID),
			zap.String("tenant_code", tenant.Code),
			zap.String("store", utils.StoreLabel(tenant.DatabaseName)),
		)
		return nil, StoreUnavailable(tenant.Code, err)
	}

	return &Binding{
		tenantID: tenant.ID,
		store:    tenant.DatabaseName,
		db:       pool.Session(&gorm.Session{NewDB: true, Context: ctx}),
	}, nil
}

func (b *Binder) pool(ctx context.Context, tenant *domain.Tenant, key poolKey) (*gorm.DB, error) {
	b.mu.RLock()
	pool, ok := b.pools[key]
	b.mu.RUnlock()
	if ok {
		return pool, nil
	}

	// The open outlives a cancelled caller; the pool it produces is kept for
	// the next request rather than leaked.
	ch := b.group.DoChan(key.String(), func() (interface{}, error) {
		b.mu.RLock()
		existing, ok := b.pools[key]
		b.mu.RUnlock()
		if ok {
			return existing, nil
		}

		opened, err := b.opener.Open(context.WithoutCancel(ctx), tenant)
		if err != nil {
			return nil, err
		}

		b.mu.Lock()
		b.pools[key] = opened
		b.mu.Unlock()

		b.logger.Info("tenant store pool opened",
			zap.Uint("tenant_id", tenant.ID),
			zap.String("tenant_code", tenant.Code),
			zap.String("store", utils.StoreLabel(tenant.DatabaseName)),
		)
		return opened, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gorm.DB), nil
	}
}

func ping(ctx context.Context, pool *gorm.DB) error {
	sqlDB, err := pool.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Evict closes every pool opened for tenantID. In-flight bindings fail their
// next query; new requests reopen on demand.
func (b *Binder) Evict(tenantID uint) error {
	b.mu.Lock()
	var evicted []*gorm.DB
	for key, pool := range b.pools {
		if key.tenantID == tenantID {
			evicted = append(evicted, pool)
			delete(b.pools, key)
		}
	}
	b.mu.Unlock()

	return closeAll(evicted)
}

// Close closes every pool.
func (b *Binder) Close() error {
	b.mu.Lock()
	pools := make([]*gorm.DB, 0, len(b.pools))
	for key, pool := range b.pools {
		pools = append(pools, pool)
		delete(b.pools, key)
	}
	b.mu.Unlock()

	return closeAll(pools)
}

// OpenPools reports how many tenant store pools are open.
func (b *Binder) OpenPools() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pools)
}

func closeAll(pools []*gorm.DB) error {
	var errs []error
	for _, pool := range pools {
		sqlDB, err := pool.DB()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Binding is one request's claim on its tenant store.
type Binding struct {
	tenantID uint
	store    string

	mu       sync.Mutex
	db       *gorm.DB
	released bool
}

func (b *Binding) TenantID() uint {
	return b.tenantID
}

func (b *Binding) Store() string {
	return b.store
}

// DB returns the bound handle, or ErrBindingReleased once the binding is released.
func (b *Binding) DB() (*gorm.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil, ErrBindingReleased
	}
	return b.db, nil
}

// Release returns the binding to the unbound state. Idempotent.
func (b *Binding) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
	b.db = nil
}
