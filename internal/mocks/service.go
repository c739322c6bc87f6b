package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
)

// DirectoryInvalidator is a mock type for the service.DirectoryInvalidator type
type DirectoryInvalidator struct {
	mock.Mock
}

func (_m *DirectoryInvalidator) Invalidate(ctx context.Context, tenant *domain.Tenant) error {
	ret := _m.Called(ctx, tenant)
	return ret.Error(0)
}

// TenantEventPublisher is a mock type for the service.TenantEventPublisher type
type TenantEventPublisher struct {
	mock.Mock
}

func (_m *TenantEventPublisher) PublishTenantEvent(ctx context.Context, event *pubsub.TenantEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// SQSService is a mock type for the service.SQSService type
type SQSService struct {
	mock.Mock
}

func (_m *SQSService) SendIndexMessage(ctx context.Context, event *domain.SecurityEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

func (_m *SQSService) SendArchiveMessage(ctx context.Context, beforeDate time.Time) error {
	ret := _m.Called(ctx, beforeDate)
	return ret.Error(0)
}

// SecurityEventBroadcaster is a mock type for the service.SecurityEventBroadcaster type
type SecurityEventBroadcaster struct {
	mock.Mock
}

func (_m *SecurityEventBroadcaster) PublishSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}
