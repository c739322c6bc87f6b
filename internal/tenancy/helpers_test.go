package tenancy

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

// memoryDirectory is an in-memory Directory that counts lookups.
type memoryDirectory struct {
	mu            sync.Mutex
	tenants       map[string]*domain.Tenant
	subscriptions map[uint]*domain.Subscription
	err           error
	tenantLookups int
	subLookups    int
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		tenants:       map[string]*domain.Tenant{},
		subscriptions: map[uint]*domain.Subscription{},
	}
}

func (d *memoryDirectory) add(t *domain.Tenant, s *domain.Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tenants[t.Code] = t
	if s != nil {
		d.subscriptions[t.ID] = s
	}
}

func (d *memoryDirectory) FindByCode(_ context.Context, code string) (*domain.Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tenantLookups++
	if d.err != nil {
		return nil, d.err
	}
	t, ok := d.tenants[code]
	if !ok {
		return nil, ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (d *memoryDirectory) CurrentSubscription(_ context.Context, tenantID uint) (*domain.Subscription, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subLookups++
	if d.err != nil {
		return nil, d.err
	}
	s, ok := d.subscriptions[tenantID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (d *memoryDirectory) lookups() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tenantLookups
}

// mockStoreOpener opens sqlmock-backed gorm pools, one per tenant store.
type mockStoreOpener struct {
	mu    sync.Mutex
	opens map[uint]int
	conns map[uint]*sql.DB
	mocks map[uint]sqlmock.Sqlmock
	fail  map[uint]error
	delay time.Duration
	ping  map[uint]bool
}

func newMockStoreOpener() *mockStoreOpener {
	return &mockStoreOpener{
		opens: map[uint]int{},
		conns: map[uint]*sql.DB{},
		mocks: map[uint]sqlmock.Sqlmock{},
		fail:  map[uint]error{},
		ping:  map[uint]bool{},
	}
}

func (o *mockStoreOpener) Open(_ context.Context, tenant *domain.Tenant) (*gorm.DB, error) {
	if o.delay > 0 {
		time.Sleep(o.delay)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.opens[tenant.ID]++
	if err := o.fail[tenant.ID]; err != nil {
		return nil, err
	}

	sqlDB, m, err := sqlmock.New(sqlmock.MonitorPingsOption(o.ping[tenant.ID]))
	if err != nil {
		return nil, err
	}
	o.conns[tenant.ID] = sqlDB
	o.mocks[tenant.ID] = m

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
}

func (o *mockStoreOpener) openCount(tenantID uint) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opens[tenantID]
}

func (o *mockStoreOpener) totalOpens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	total := 0
	for _, n := range o.opens {
		total += n
	}
	return total
}

func (o *mockStoreOpener) conn(tenantID uint) *sql.DB {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conns[tenantID]
}

func (o *mockStoreOpener) sqlMock(tenantID uint) sqlmock.Sqlmock {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mocks[tenantID]
}

// MockAuditor records security events.
type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) RecordSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// memoryCache is an in-memory Cache with programmable failures.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func activeTenant(id uint, code string) *domain.Tenant {
	return &domain.Tenant{
		ID:           id,
		Code:         code,
		Name:         "Colegio " + code,
		Status:       domain.TenantStatusActive,
		DatabaseName: domain.DefaultDatabaseName(code),
	}
}

func activeSubscription(tenantID uint, end *time.Time) *domain.Subscription {
	return &domain.Subscription{
		ID:           tenantID * 10,
		TenantID:     tenantID,
		PlanTier:     "standard",
		BillingCycle: domain.BillingCycleAnnual,
		Status:       domain.SubscriptionStatusActive,
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      end,
	}
}

func mustLoadLima(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	return loc
}
