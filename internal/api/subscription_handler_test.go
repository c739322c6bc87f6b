package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/service"
)

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Create(ctx context.Context, code string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	args := m.Called(ctx, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptionService) Renew(ctx context.Context, code string, req dto.RenewSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	args := m.Called(ctx, code, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptionService) Cancel(ctx context.Context, code string) (*dto.SubscriptionResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SubscriptionResponse), args.Error(1)
}

func (m *MockSubscriptionService) List(ctx context.Context, code string) ([]dto.SubscriptionResponse, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]dto.SubscriptionResponse), args.Error(1)
}

type SubscriptionHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSubscriptionService
}

func TestSubscriptionHandler(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlerTestSuite))
}

func (s *SubscriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockSubscriptionService)
	handler := NewSubscriptionHandler(s.mockService)

	s.router = gin.New()
	s.router.GET("/tenants/:code/subscriptions", handler.ListSubscriptions)
	s.router.POST("/tenants/:code/subscriptions", handler.CreateSubscription)
	s.router.POST("/tenants/:code/subscriptions/renew", handler.RenewSubscription)
	s.router.POST("/tenants/:code/subscriptions/cancel", handler.CancelSubscription)
}

func (s *SubscriptionHandlerTestSuite) post(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *SubscriptionHandlerTestSuite) TestCreateSubscription_Success() {
	req := dto.CreateSubscriptionRequest{
		PlanTier:     "standard",
		BillingCycle: "annual",
		StartDate:    "2025-03-01",
		EndDate:      "2026-02-28",
	}
	s.mockService.On("Create", mock.Anything, "colegio-lima", req).Return(&dto.SubscriptionResponse{
		ID: 7, TenantID: 1, PlanTier: "standard", Status: "active", StartDate: "2025-03-01", EndDate: "2026-02-28",
	}, nil)

	w := s.post("/tenants/colegio-lima/subscriptions", req)

	s.Equal(http.StatusCreated, w.Code)
	var response dto.SubscriptionResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("2026-02-28", response.EndDate)
	s.mockService.AssertExpectations(s.T())
}

func (s *SubscriptionHandlerTestSuite) TestCreateSubscription_AlreadyActive() {
	req := dto.CreateSubscriptionRequest{PlanTier: "standard", BillingCycle: "monthly", StartDate: "2025-03-01"}
	s.mockService.On("Create", mock.Anything, "colegio-lima", req).Return(nil, service.ErrActiveSubscriptionExists)

	w := s.post("/tenants/colegio-lima/subscriptions", req)

	s.Equal(http.StatusConflict, w.Code)
	var response dto.Error
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("active_subscription_exists", response.Error)
}

func (s *SubscriptionHandlerTestSuite) TestCreateSubscription_MissingStartDate() {
	w := s.post("/tenants/colegio-lima/subscriptions", map[string]string{"plan_tier": "standard", "billing_cycle": "annual"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SubscriptionHandlerTestSuite) TestRenewSubscription_PastDate() {
	req := dto.RenewSubscriptionRequest{EndDate: "2020-01-01"}
	s.mockService.On("Renew", mock.Anything, "colegio-lima", req).Return(nil, service.ErrInvalidInput)

	w := s.post("/tenants/colegio-lima/subscriptions/renew", req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SubscriptionHandlerTestSuite) TestCancelSubscription_NoneActive() {
	s.mockService.On("Cancel", mock.Anything, "colegio-lima").Return(nil, service.ErrNoActiveSubscription)

	w := s.post("/tenants/colegio-lima/subscriptions/cancel", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *SubscriptionHandlerTestSuite) TestListSubscriptions_UnknownTenant() {
	s.mockService.On("List", mock.Anything, "ghost").Return([]dto.SubscriptionResponse(nil), service.ErrTenantNotFound)

	req := httptest.NewRequest(http.MethodGet, "/tenants/ghost/subscriptions", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
}
