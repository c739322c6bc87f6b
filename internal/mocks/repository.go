package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
)

// Repository is a mock type for the repository.Repository type
type Repository struct {
	mock.Mock
}

func (_m *Repository) Tenant() repository.TenantRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.TenantRepository)
}

func (_m *Repository) Subscription() repository.SubscriptionRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.SubscriptionRepository)
}

func (_m *Repository) SecurityEvent() repository.SecurityEventRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.SecurityEventRepository)
}

func (_m *Repository) OpenSearch() repository.OpenSearchRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.OpenSearchRepository)
}

// TenantRepository is a mock type for the repository.TenantRepository type
type TenantRepository struct {
	mock.Mock
}

func (_m *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	ret := _m.Called(ctx, tenant)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) GetByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	ret := _m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) FindByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	ret := _m.Called(ctx, code)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) UpdateStatus(ctx context.Context, id uint, status domain.TenantStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	ret := _m.Called(ctx, filter)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Tenant), ret.Error(1)
}

// SubscriptionRepository is a mock type for the repository.SubscriptionRepository type
type SubscriptionRepository struct {
	mock.Mock
}

func (_m *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	ret := _m.Called(ctx, sub)
	return ret.Error(0)
}

func (_m *SubscriptionRepository) FindCurrent(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	ret := _m.Called(ctx, tenantID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Subscription), ret.Error(1)
}

func (_m *SubscriptionRepository) FindActive(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	ret := _m.Called(ctx, tenantID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Subscription), ret.Error(1)
}

func (_m *SubscriptionRepository) UpdateEndDate(ctx context.Context, id uint, endDate *time.Time) error {
	ret := _m.Called(ctx, id, endDate)
	return ret.Error(0)
}

func (_m *SubscriptionRepository) UpdateStatus(ctx context.Context, id uint, status domain.SubscriptionStatus) error {
	ret := _m.Called(ctx, id, status)
	return ret.Error(0)
}

func (_m *SubscriptionRepository) ListByTenant(ctx context.Context, tenantID uint) ([]domain.Subscription, error) {
	ret := _m.Called(ctx, tenantID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Subscription), ret.Error(1)
}

// SecurityEventRepository is a mock type for the repository.SecurityEventRepository type
type SecurityEventRepository struct {
	mock.Mock
}

func (_m *SecurityEventRepository) Create(ctx context.Context, event *domain.SecurityEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *SecurityEventRepository) List(ctx context.Context, filter domain.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	ret := _m.Called(ctx, filter)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.SecurityEvent), ret.Error(1)
}

func (_m *SecurityEventRepository) ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.SecurityEvent, error) {
	ret := _m.Called(ctx, before, limit)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.SecurityEvent), ret.Error(1)
}

func (_m *SecurityEventRepository) DeleteBeforeDate(ctx context.Context, before time.Time) (int64, error) {
	ret := _m.Called(ctx, before)
	return ret.Get(0).(int64), ret.Error(1)
}

// OpenSearchRepository is a mock type for the repository.OpenSearchRepository type
type OpenSearchRepository struct {
	mock.Mock
}

func (_m *OpenSearchRepository) Index(ctx context.Context, event *domain.SecurityEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *OpenSearchRepository) BulkIndex(ctx context.Context, events []domain.SecurityEvent) error {
	ret := _m.Called(ctx, events)
	return ret.Error(0)
}

func (_m *OpenSearchRepository) Search(ctx context.Context, filter *domain.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	ret := _m.Called(ctx, filter)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.SecurityEvent), ret.Error(1)
}
