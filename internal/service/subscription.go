package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/internal/service/pubsub"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
	"github.com/kingrain94/school-tenancy-api/pkg/utils"
)

const defaultCurrency = "PEN"

type SubscriptionService struct {
	repo     repository.Repository
	location *time.Location
	now      func() time.Time
	changeNotifier
}

// NewSubscriptionService evaluates calendar dates in loc, the same zone the
// activation gate uses.
func NewSubscriptionService(repo repository.Repository, directory DirectoryInvalidator, publisher TenantEventPublisher, loc *time.Location, logger *logger.Logger) *SubscriptionService {
	if loc == nil {
		loc = time.UTC
	}
	return &SubscriptionService{
		repo:     repo,
		location: loc,
		now:      time.Now,
		changeNotifier: changeNotifier{
			directory: directory,
			publisher: publisher,
			logger:    logger,
		},
	}
}

func (s *SubscriptionService) Create(ctx context.Context, code string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	tenant, err := findTenant(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}

	cycle := domain.BillingCycle(strings.ToLower(req.BillingCycle))
	if !cycle.Valid() {
		return nil, fmt.Errorf("%w: billing_cycle must be monthly or annual", ErrInvalidInput)
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}
	end, err := utils.ParseOptionalDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
	}
	if end != nil && end.Before(start) {
		return nil, fmt.Errorf("%w: end_date must be on or after start_date", ErrInvalidInput)
	}
	if req.AmountCents < 0 || req.MaxUsers < 0 || req.MaxStudents < 0 || req.MaxStorageMB < 0 {
		return nil, fmt.Errorf("%w: amounts and limits cannot be negative", ErrInvalidInput)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	sub := &domain.Subscription{
		TenantID:     tenant.ID,
		PlanTier:     req.PlanTier,
		BillingCycle: cycle,
		AmountCents:  req.AmountCents,
		Currency:     currency,
		Status:       domain.SubscriptionStatusActive,
		StartDate:    start,
		EndDate:      end,
		MaxUsers:     req.MaxUsers,
		MaxStudents:  req.MaxStudents,
		MaxStorageMB: req.MaxStorageMB,
	}
	if err := s.repo.Subscription().Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrActiveSubscriptionExists
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.notify(ctx, tenant, pubsub.TenantEventSubscriptionChanged)
	return dto.FromSubscription(sub), nil
}

// Renew moves the end date of the active subscription. The new date cannot
// already be in the past.
func (s *SubscriptionService) Renew(ctx context.Context, code string, req dto.RenewSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	tenant, sub, err := s.active(ctx, code)
	if err != nil {
		return nil, err
	}

	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", ErrInvalidInput, err)
	}
	if end.Before(sub.StartDate) {
		return nil, fmt.Errorf("%w: end_date must be on or after start_date", ErrInvalidInput)
	}
	candidate := *sub
	candidate.EndDate = &end
	if candidate.ExpiredAt(s.now(), s.location) {
		return nil, fmt.Errorf("%w: end_date is already in the past", ErrInvalidInput)
	}

	if err := s.repo.Subscription().UpdateEndDate(ctx, sub.ID, &end); err != nil {
		return nil, fmt.Errorf("failed to renew subscription: %w", err)
	}
	sub.EndDate = &end

	s.notify(ctx, tenant, pubsub.TenantEventSubscriptionChanged)
	return dto.FromSubscription(sub), nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, code string) (*dto.SubscriptionResponse, error) {
	tenant, sub, err := s.active(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Subscription().UpdateStatus(ctx, sub.ID, domain.SubscriptionStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}
	sub.Status = domain.SubscriptionStatusCancelled

	s.notify(ctx, tenant, pubsub.TenantEventSubscriptionChanged)
	return dto.FromSubscription(sub), nil
}

func (s *SubscriptionService) List(ctx context.Context, code string) ([]dto.SubscriptionResponse, error) {
	tenant, err := findTenant(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.Subscription().ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.SubscriptionResponse, len(subs))
	for i := range subs {
		responses[i] = *dto.FromSubscription(&subs[i])
	}
	return responses, nil
}

func (s *SubscriptionService) active(ctx context.Context, code string) (*domain.Tenant, *domain.Subscription, error) {
	tenant, err := findTenant(ctx, s.repo, code)
	if err != nil {
		return nil, nil, err
	}
	sub, err := s.repo.Subscription().FindActive(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNoActiveSubscription
		}
		return nil, nil, fmt.Errorf("failed to load active subscription: %w", err)
	}
	return tenant, sub, nil
}
