package tenancy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
)

type PipelineTestSuite struct {
	suite.Suite
	directory *memoryDirectory
	opener    *mockStoreOpener
	binder    *Binder
	auditor   *MockAuditor
	pipeline  *Pipeline
}

func (s *PipelineTestSuite) SetupTest() {
	s.directory = newMemoryDirectory()
	s.opener = newMockStoreOpener()
	s.binder = NewBinder(s.opener, logger.NewNop())
	s.auditor = new(MockAuditor)

	resolver := newTestResolver(s.directory, true)
	gate := NewGate(time.UTC)
	guard := NewGuard(s.auditor, logger.NewNop())
	now := func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	s.pipeline = newPipeline(resolver, s.binder, s.directory, gate, guard, now)
}

func (s *PipelineTestSuite) TearDownTest() {
	_ = s.binder.Close()
}

func (s *PipelineTestSuite) request(header string) *RequestContext {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institution/context", nil)
	req.Host = "localhost"
	if header != "" {
		req.Header.Set("X-Tenant-Code", header)
	}
	return NewRequestContext(req, nil, RequestInfo{SourceIP: "192.0.2.1", URL: req.URL.String()})
}

func (s *PipelineTestSuite) assertKind(err error, kind Kind) {
	rej, ok := AsRejection(err)
	s.Require().True(ok, "expected rejection, got %v", err)
	s.Equal(kind, rej.Kind)
}

func (s *PipelineTestSuite) TestStageOrder() {
	s.Equal([]string{StageResolve, StageBind, StageGate, StageGuard}, s.pipeline.Stages())
}

func (s *PipelineTestSuite) TestActiveTenantIsBound() {
	// Arrange
	s.directory.add(activeTenant(1, "acme"), activeSubscription(1, datePtr(2025, 12, 31)))
	rc := s.request("acme")
	rc.Principal = &domain.Principal{UserID: "u1", TenantID: 1, Roles: []domain.Role{domain.RoleDirector}}

	// Act
	err := s.pipeline.Run(context.Background(), rc)

	// Assert
	s.Require().NoError(err)
	s.Equal(uint(1), rc.Tenant.ID)
	s.Equal(MethodHeader, rc.Signal.Method)
	s.NotNil(rc.Subscription)
	db, err := rc.DB()
	s.Require().NoError(err)
	s.Same(s.opener.conn(1), db.Statement.ConnPool)

	rc.Release()
	_, err = rc.DB()
	s.ErrorIs(err, ErrBindingReleased)
}

func (s *PipelineTestSuite) TestUnidentifiedNeverBinds() {
	err := s.pipeline.Run(context.Background(), s.request(""))

	s.assertKind(err, KindUnidentified)
	s.Equal(0, s.opener.totalOpens())
}

func (s *PipelineTestSuite) TestUnknownTenantNeverBinds() {
	err := s.pipeline.Run(context.Background(), s.request("ghost"))

	s.assertKind(err, KindTenantNotFound)
	s.Equal(0, s.opener.totalOpens())
}

func (s *PipelineTestSuite) TestSuspendedTenantReleasesBinding() {
	tenant := activeTenant(2, "beta")
	tenant.Status = domain.TenantStatusSuspended
	s.directory.add(tenant, activeSubscription(2, nil))
	rc := s.request("beta")

	err := s.pipeline.Run(context.Background(), rc)

	s.assertKind(err, KindTenantInactive)
	s.Require().NotNil(rc.Binding)
	_, err = rc.Binding.DB()
	s.ErrorIs(err, ErrBindingReleased)
}

func (s *PipelineTestSuite) TestExpiredSubscription() {
	s.directory.add(activeTenant(3, "gamma"), activeSubscription(3, datePtr(2025, 6, 1)))

	err := s.pipeline.Run(context.Background(), s.request("gamma"))

	s.assertKind(err, KindSubscriptionExpired)
}

func (s *PipelineTestSuite) TestMissingSubscription() {
	s.directory.add(activeTenant(4, "delta"), nil)

	err := s.pipeline.Run(context.Background(), s.request("delta"))

	s.assertKind(err, KindNoSubscription)
}

func (s *PipelineTestSuite) TestStoreDownStopsBeforeGate() {
	s.directory.add(activeTenant(5, "eps"), activeSubscription(5, nil))
	s.opener.fail[5] = errors.New("no route to host")

	err := s.pipeline.Run(context.Background(), s.request("eps"))

	s.assertKind(err, KindStoreUnavailable)
	s.Equal(0, s.directory.subLookups)
}

func (s *PipelineTestSuite) TestCrossTenantAccessIsDeniedAndAudited() {
	s.directory.add(activeTenant(1, "acme"), activeSubscription(1, nil))
	s.directory.add(activeTenant(2, "beta"), activeSubscription(2, nil))
	rc := s.request("beta")
	rc.Principal = &domain.Principal{UserID: "docente-1", TenantID: 1, Roles: []domain.Role{domain.RoleDocente}}
	s.auditor.On("RecordSecurityEvent", mock.Anything, mock.MatchedBy(func(e *domain.SecurityEvent) bool {
		return e.PrincipalTenantID == 1 && e.RequestedTenantID == 2 && e.SourceIP == "192.0.2.1"
	})).Return(nil).Once()

	err := s.pipeline.Run(context.Background(), rc)

	s.assertKind(err, KindOwnershipViolation)
	s.auditor.AssertExpectations(s.T())
	_, err = rc.Binding.DB()
	s.ErrorIs(err, ErrBindingReleased)
}

func (s *PipelineTestSuite) TestSuperadminCrossesTenants() {
	s.directory.add(activeTenant(2, "beta"), activeSubscription(2, nil))
	rc := s.request("beta")
	rc.Principal = &domain.Principal{UserID: "root", TenantID: 1, Roles: []domain.Role{domain.RoleSuperadmin}}

	err := s.pipeline.Run(context.Background(), rc)

	s.NoError(err)
	s.auditor.AssertNotCalled(s.T(), "RecordSecurityEvent", mock.Anything, mock.Anything)
	rc.Release()
}

func (s *PipelineTestSuite) TestStagePanicReleasesBinding() {
	s.directory.add(activeTenant(1, "acme"), activeSubscription(1, nil))
	s.pipeline.stages = append(s.pipeline.stages, Stage{Name: "boom", Run: func(context.Context, *RequestContext) error {
		panic("handler bug")
	}})
	rc := s.request("acme")

	s.Panics(func() { _ = s.pipeline.Run(context.Background(), rc) })

	_, err := rc.Binding.DB()
	s.ErrorIs(err, ErrBindingReleased)
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}
