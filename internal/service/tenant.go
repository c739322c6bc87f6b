package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
	"github.com/kingrain94/school-tenancy-api/pkg/utils"
)

type TenantService struct {
	repo repository.Repository
	changeNotifier
}

func NewTenantService(repo repository.Repository, directory DirectoryInvalidator, publisher TenantEventPublisher, logger *logger.Logger) *TenantService {
	return &TenantService{
		repo: repo,
		changeNotifier: changeNotifier{
			directory: directory,
			publisher: publisher,
			logger:    logger,
		},
	}
}

// Create provisions a tenant in pending status. Its store descriptor defaults
// to a name derived from the code.
func (s *TenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	code := domain.NormalizeTenantCode(req.Code)
	if !domain.IsValidTenantCode(code) {
		return nil, ErrInvalidTenantCode
	}

	tenant := &domain.Tenant{
		Code:         code,
		Name:         req.Name,
		Status:       domain.TenantStatusPending,
		DatabaseName: req.DatabaseName,
	}
	if tenant.DatabaseName == "" {
		tenant.DatabaseName = domain.DefaultDatabaseName(code)
	}

	created, err := s.repo.Tenant().Create(ctx, tenant)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTenantExists
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.Infof("Provisioned tenant %s (id=%d, store=%s)", created.Code, created.ID, utils.StoreLabel(created.DatabaseName))
	return dto.FromTenant(created), nil
}

func (s *TenantService) GetByCode(ctx context.Context, code string) (*dto.TenantResponse, error) {
	tenant, err := findTenant(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	return dto.FromTenant(tenant), nil
}

func (s *TenantService) List(ctx context.Context, req dto.ListTenantsRequest) ([]dto.TenantResponse, error) {
	filter := domain.TenantFilter{
		Status:   domain.TenantStatus(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	filter.Limit = filter.PageSize
	filter.Offset = (filter.Page - 1) * filter.PageSize

	tenants, err := s.repo.Tenant().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromTenants(tenants), nil
}

func (s *TenantService) Activate(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return s.transition(ctx, code, domain.TenantStatusActive)
}

func (s *TenantService) Suspend(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return s.transition(ctx, code, domain.TenantStatusSuspended)
}

func (s *TenantService) Cancel(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return s.transition(ctx, code, domain.TenantStatusCancelled)
}

func (s *TenantService) transition(ctx context.Context, code string, next domain.TenantStatus) (*dto.TenantResponse, error) {
	tenant, err := findTenant(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	if !tenant.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tenant.Status, next)
	}

	if err := s.repo.Tenant().UpdateStatus(ctx, tenant.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to update tenant status: %w", err)
	}

	previous := tenant.Status
	tenant.Status = next
	s.notify(ctx, tenant, pubsub.TenantEventStatusChanged)

	s.logger.Infof("Tenant %s moved from %s to %s", tenant.Code, previous, next)
	return dto.FromTenant(tenant), nil
}
