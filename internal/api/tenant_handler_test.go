package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/service"
)

type TenantHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTenantService
	handler     *TenantHandler
}

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantResponse), args.Error(1)
}

func (m *MockTenantService) GetByCode(ctx context.Context, code string) (*dto.TenantResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantResponse), args.Error(1)
}

func (m *MockTenantService) List(ctx context.Context, req dto.ListTenantsRequest) ([]dto.TenantResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]dto.TenantResponse), args.Error(1)
}

func (m *MockTenantService) Activate(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return m.transition("Activate", ctx, code)
}

func (m *MockTenantService) Suspend(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return m.transition("Suspend", ctx, code)
}

func (m *MockTenantService) Cancel(ctx context.Context, code string) (*dto.TenantResponse, error) {
	return m.transition("Cancel", ctx, code)
}

func (m *MockTenantService) transition(method string, ctx context.Context, code string) (*dto.TenantResponse, error) {
	args := m.MethodCalled(method, ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TenantResponse), args.Error(1)
}

func (s *TenantHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockService = new(MockTenantService)
	s.handler = NewTenantHandler(s.mockService)

	s.router.POST("/tenants", s.handler.CreateTenant)
	s.router.GET("/tenants", s.handler.ListTenants)
	s.router.GET("/tenants/:code", s.handler.GetTenant)
	s.router.POST("/tenants/:code/activate", s.handler.ActivateTenant)
	s.router.POST("/tenants/:code/suspend", s.handler.SuspendTenant)
	s.router.POST("/tenants/:code/cancel", s.handler.CancelTenant)
}

func TestTenantHandler(t *testing.T) {
	suite.Run(t, new(TenantHandlerTestSuite))
}

func (s *TenantHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TenantHandlerTestSuite) TestCreateTenant_Success() {
	now := time.Now()
	req := dto.CreateTenantRequest{Code: "colegio-lima", Name: "Colegio Lima"}
	expected := &dto.TenantResponse{
		ID:           1,
		Code:         "colegio-lima",
		Name:         "Colegio Lima",
		Status:       "pending",
		DatabaseName: "tenant_colegio_lima",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.mockService.On("Create", mock.Anything, req).Return(expected, nil)

	w := s.do(http.MethodPost, "/tenants", req)

	s.Equal(http.StatusCreated, w.Code)
	var response dto.TenantResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(expected.Code, response.Code)
	s.Equal("pending", response.Status)
	s.mockService.AssertExpectations(s.T())
}

func (s *TenantHandlerTestSuite) TestCreateTenant_MissingName() {
	w := s.do(http.MethodPost, "/tenants", map[string]string{"code": "colegio-lima"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *TenantHandlerTestSuite) TestCreateTenant_Duplicate() {
	req := dto.CreateTenantRequest{Code: "colegio-lima", Name: "Colegio Lima"}
	s.mockService.On("Create", mock.Anything, req).Return(nil, service.ErrTenantExists)

	w := s.do(http.MethodPost, "/tenants", req)

	s.Equal(http.StatusConflict, w.Code)
	var response dto.Error
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("tenant_exists", response.Error)
}

func (s *TenantHandlerTestSuite) TestCreateTenant_InvalidCode() {
	req := dto.CreateTenantRequest{Code: "Bad Code!", Name: "Colegio"}
	s.mockService.On("Create", mock.Anything, req).Return(nil, service.ErrInvalidTenantCode)

	w := s.do(http.MethodPost, "/tenants", req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TenantHandlerTestSuite) TestListTenants_Success() {
	expected := []dto.TenantResponse{
		{ID: 1, Code: "colegio-lima", Status: "active"},
		{ID: 2, Code: "colegio-cusco", Status: "active"},
	}
	s.mockService.On("List", mock.Anything, dto.ListTenantsRequest{Status: "active", Page: 2, PageSize: 10}).
		Return(expected, nil)

	w := s.do(http.MethodGet, "/tenants?status=active&page=2&page_size=10", nil)

	s.Equal(http.StatusOK, w.Code)
	var response []dto.TenantResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 2)
	s.Equal("colegio-cusco", response[1].Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *TenantHandlerTestSuite) TestGetTenant_NotFound() {
	s.mockService.On("GetByCode", mock.Anything, "ghost").Return(nil, service.ErrTenantNotFound)

	w := s.do(http.MethodGet, "/tenants/ghost", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TenantHandlerTestSuite) TestSuspendTenant_Success() {
	s.mockService.On("Suspend", mock.Anything, "colegio-lima").
		Return(&dto.TenantResponse{ID: 1, Code: "colegio-lima", Status: "suspended"}, nil)

	w := s.do(http.MethodPost, "/tenants/colegio-lima/suspend", nil)

	s.Equal(http.StatusOK, w.Code)
	var response dto.TenantResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("suspended", response.Status)
}

func (s *TenantHandlerTestSuite) TestActivateTenant_InvalidTransition() {
	s.mockService.On("Activate", mock.Anything, "colegio-lima").Return(nil, service.ErrInvalidTransition)

	w := s.do(http.MethodPost, "/tenants/colegio-lima/activate", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *TenantHandlerTestSuite) TestCancelTenant_InternalErrorHidesDetail() {
	s.mockService.On("Cancel", mock.Anything, "colegio-lima").Return(nil, errors.New("pq: connection reset"))

	w := s.do(http.MethodPost, "/tenants/colegio-lima/cancel", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "pq:")
}
