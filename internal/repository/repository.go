package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uint) (*domain.Tenant, error)
	FindByCode(ctx context.Context, code string) (*domain.Tenant, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TenantStatus) error
	List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error)
}

//go:generate mockery --name SubscriptionRepository --output ../mocks
type SubscriptionRepository interface {
	// Create rejects a second active subscription for the same tenant with ErrDuplicate.
	Create(ctx context.Context, sub *domain.Subscription) error
	// FindCurrent returns the active subscription when one exists, otherwise
	// the most recently started one whatever its status.
	FindCurrent(ctx context.Context, tenantID uint) (*domain.Subscription, error)
	FindActive(ctx context.Context, tenantID uint) (*domain.Subscription, error)
	UpdateEndDate(ctx context.Context, id uint, endDate *time.Time) error
	UpdateStatus(ctx context.Context, id uint, status domain.SubscriptionStatus) error
	ListByTenant(ctx context.Context, tenantID uint) ([]domain.Subscription, error)
}

//go:generate mockery --name SecurityEventRepository --output ../mocks
type SecurityEventRepository interface {
	Create(ctx context.Context, event *domain.SecurityEvent) error
	List(ctx context.Context, filter domain.SecurityEventFilter) ([]domain.SecurityEvent, error)
	ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.SecurityEvent, error)
	DeleteBeforeDate(ctx context.Context, before time.Time) (int64, error)
}

//go:generate mockery --name OpenSearchRepository --output ../mocks
type OpenSearchRepository interface {
	Index(ctx context.Context, event *domain.SecurityEvent) error
	BulkIndex(ctx context.Context, events []domain.SecurityEvent) error
	Search(ctx context.Context, filter *domain.SecurityEventFilter) ([]domain.SecurityEvent, error)
}

type PostgresRepository interface {
	Tenant() TenantRepository
	Subscription() SubscriptionRepository
	SecurityEvent() SecurityEventRepository
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	OpenSearch() OpenSearchRepository
}
