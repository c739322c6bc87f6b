package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

//go:generate mockery --name DirectoryInvalidator --output ../mocks
type DirectoryInvalidator interface {
	Invalidate(ctx context.Context, tenant *domain.Tenant) error
}

//go:generate mockery --name TenantEventPublisher --output ../mocks
type TenantEventPublisher interface {
	PublishTenantEvent(ctx context.Context, event *pubsub.TenantEvent) error
}

// changeNotifier propagates an administrative write to the resolution path:
// the local directory cache and, through Redis, every other API instance.
type changeNotifier struct {
	directory DirectoryInvalidator
	publisher TenantEventPublisher
	logger    *logger.Logger
}

// notify never fails the write that triggered it. A missed invalidation is
// bounded by the directory cache TTL.
func (n *changeNotifier) notify(ctx context.Context, tenant *domain.Tenant, eventType pubsub.TenantEventType) {
	if err := n.directory.Invalidate(ctx, tenant); err != nil {
		n.logger.Warnf("Failed to invalidate directory cache for tenant %s: %v", tenant.Code, err)
	}

	event := &pubsub.TenantEvent{
		Type:     eventType,
		TenantID: tenant.ID,
		Code:     tenant.Code,
		Status:   tenant.Status,
	}
	if err := n.publisher.PublishTenantEvent(ctx, event); err != nil {
		n.logger.Warnf("Failed to publish %s event for tenant %s: %v", eventType, tenant.Code, err)
	}
}

func findTenant(ctx context.Context, repo repository.Repository, code string) (*domain.Tenant, error) {
	tenant, err := repo.Tenant().FindByCode(ctx, domain.NormalizeTenantCode(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant %s: %w", code, err)
	}
	return tenant, nil
}
