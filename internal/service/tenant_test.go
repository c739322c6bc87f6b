package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/mocks"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo      *mocks.Repository
	mockTenant    *mocks.TenantRepository
	mockDirectory *mocks.DirectoryInvalidator
	mockPublisher *mocks.TenantEventPublisher
	service       *TenantService
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)
	s.mockDirectory = new(mocks.DirectoryInvalidator)
	s.mockPublisher = new(mocks.TenantEventPublisher)

	s.mockRepo.On("Tenant").Return(s.mockTenant)

	s.service = NewTenantService(s.mockRepo, s.mockDirectory, s.mockPublisher, logger.NewNop())
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (s *TenantServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := dto.CreateTenantRequest{Code: " Colegio-Lima ", Name: "Colegio Lima"}

	s.mockTenant.On("Create", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Code == "colegio-lima" &&
			t.Status == domain.TenantStatusPending &&
			t.DatabaseName == "tenant_colegio_lima"
	})).Return(&domain.Tenant{
		ID:           3,
		Code:         "colegio-lima",
		Name:         "Colegio Lima",
		Status:       domain.TenantStatusPending,
		DatabaseName: "tenant_colegio_lima",
	}, nil)

	resp, err := s.service.Create(ctx, req)

	s.NoError(err)
	s.Equal(uint(3), resp.ID)
	s.Equal("colegio-lima", resp.Code)
	s.Equal("pending", resp.Status)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestCreate_KeepsExplicitDatabaseName() {
	ctx := context.Background()
	req := dto.CreateTenantRequest{Code: "acme", Name: "Acme", DatabaseName: "shared_cluster_acme"}

	created := &domain.Tenant{ID: 1, Code: "acme", Name: "Acme", Status: domain.TenantStatusPending, DatabaseName: "shared_cluster_acme"}
	s.mockTenant.On("Create", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.DatabaseName == "shared_cluster_acme"
	})).Return(created, nil)

	resp, err := s.service.Create(ctx, req)

	s.NoError(err)
	s.Equal("shared_cluster_acme", resp.DatabaseName)
}

func (s *TenantServiceTestSuite) TestCreate_InvalidCode() {
	resp, err := s.service.Create(context.Background(), dto.CreateTenantRequest{Code: "bad code!", Name: "x"})

	s.ErrorIs(err, ErrInvalidTenantCode)
	s.Nil(resp)
	s.mockTenant.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestCreate_Duplicate() {
	ctx := context.Background()
	s.mockTenant.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil, repository.ErrDuplicate)

	_, err := s.service.Create(ctx, dto.CreateTenantRequest{Code: "acme", Name: "Acme"})

	s.ErrorIs(err, ErrTenantExists)
}

func (s *TenantServiceTestSuite) TestSuspend_InvalidatesAndPublishes() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: 7, Code: "acme", Status: domain.TenantStatusActive}

	s.mockTenant.On("FindByCode", ctx, "acme").Return(tenant, nil)
	s.mockTenant.On("UpdateStatus", ctx, uint(7), domain.TenantStatusSuspended).Return(nil)
	s.mockDirectory.On("Invalidate", ctx, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.ID == 7 && t.Status == domain.TenantStatusSuspended
	})).Return(nil)
	s.mockPublisher.On("PublishTenantEvent", ctx, mock.MatchedBy(func(e *pubsub.TenantEvent) bool {
		return e.Type == pubsub.TenantEventStatusChanged && e.TenantID == 7 && e.Status == domain.TenantStatusSuspended
	})).Return(nil)

	resp, err := s.service.Suspend(ctx, "ACME")

	s.NoError(err)
	s.Equal("suspended", resp.Status)
	s.mockTenant.AssertExpectations(s.T())
	s.mockDirectory.AssertExpectations(s.T())
	s.mockPublisher.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestActivate_NotificationFailuresDoNotFailWrite() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: 2, Code: "acme", Status: domain.TenantStatusPending}

	s.mockTenant.On("FindByCode", ctx, "acme").Return(tenant, nil)
	s.mockTenant.On("UpdateStatus", ctx, uint(2), domain.TenantStatusActive).Return(nil)
	s.mockDirectory.On("Invalidate", ctx, mock.Anything).Return(errors.New("redis down"))
	s.mockPublisher.On("PublishTenantEvent", ctx, mock.Anything).Return(errors.New("redis down"))

	resp, err := s.service.Activate(ctx, "acme")

	s.NoError(err)
	s.Equal("active", resp.Status)
}

func (s *TenantServiceTestSuite) TestCancel_FromCancelledIsRejected() {
	ctx := context.Background()
	tenant := &domain.Tenant{ID: 2, Code: "acme", Status: domain.TenantStatusCancelled}
	s.mockTenant.On("FindByCode", ctx, "acme").Return(tenant, nil)

	_, err := s.service.Cancel(ctx, "acme")

	s.ErrorIs(err, ErrInvalidTransition)
	s.mockTenant.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	s.mockDirectory.AssertNotCalled(s.T(), "Invalidate", mock.Anything, mock.Anything)
}

func (s *TenantServiceTestSuite) TestActivate_NotFound() {
	ctx := context.Background()
	s.mockTenant.On("FindByCode", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := s.service.Activate(ctx, "ghost")

	s.ErrorIs(err, ErrTenantNotFound)
}

func (s *TenantServiceTestSuite) TestList_DefaultsPaging() {
	ctx := context.Background()
	tenants := []domain.Tenant{{ID: 1, Code: "a"}, {ID: 2, Code: "b"}}
	s.mockTenant.On("List", ctx, domain.TenantFilter{Page: 1, PageSize: 20, Limit: 20}).Return(tenants, nil)

	resp, err := s.service.List(ctx, dto.ListTenantsRequest{})

	s.NoError(err)
	s.Len(resp, 2)
	s.Equal("b", resp[1].Code)
}

func (s *TenantServiceTestSuite) TestList_UnknownStatus() {
	_, err := s.service.List(context.Background(), dto.ListTenantsRequest{Status: "frozen"})

	s.ErrorIs(err, ErrInvalidInput)
}
