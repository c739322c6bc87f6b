package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
	"github.com/kingrain94/school-tenancy-api/pkg/logger"
	"github.com/kingrain94/school-tenancy-api/pkg/utils"
)

//go:generate mockery --name SQSService --output ../mocks
type SQSService interface {
	SendIndexMessage(ctx context.Context, event *domain.SecurityEvent) error
	SendArchiveMessage(ctx context.Context, beforeDate time.Time) error
}

//go:generate mockery --name SecurityEventBroadcaster --output ../mocks
type SecurityEventBroadcaster interface {
	PublishSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error
}

type SecurityEventService struct {
	repo        repository.Repository
	sqsSvc      SQSService
	broadcaster SecurityEventBroadcaster
	logger      *logger.Logger
	now         func() time.Time
}

func NewSecurityEventService(repo repository.Repository, sqsSvc SQSService, broadcaster SecurityEventBroadcaster, logger *logger.Logger) *SecurityEventService {
	return &SecurityEventService{
		repo:        repo,
		sqsSvc:      sqsSvc,
		broadcaster: broadcaster,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordSecurityEvent persists the event. Indexing and live fan-out are best
// effort and never fail the caller.
func (s *SecurityEventService) RecordSecurityEvent(ctx context.Context, event *domain.SecurityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	if err := s.repo.SecurityEvent().Create(ctx, event); err != nil {
		return fmt.Errorf("failed to store security event: %w", err)
	}

	if err := s.sqsSvc.SendIndexMessage(ctx, event); err != nil {
		s.logger.Warnf("Failed to enqueue security event %s for indexing: %v", event.ID, err)
	}
	if s.broadcaster != nil {
		if err := s.broadcaster.PublishSecurityEvent(ctx, event); err != nil {
			s.logger.Warnf("Failed to publish security event %s: %v", event.ID, err)
		}
	}
	return nil
}

func (s *SecurityEventService) List(ctx context.Context, req dto.ListSecurityEventsRequest) ([]dto.SecurityEventResponse, error) {
	filter := &domain.SecurityEventFilter{
		PrincipalID:       req.PrincipalID,
		PrincipalTenantID: req.PrincipalTenantID,
		RequestedTenantID: req.RequestedTenantID,
		SourceIP:          req.SourceIP,
		Page:              req.Page,
		PageSize:          req.PageSize,
	}
	if req.StartTime != "" {
		t, err := utils.ParseUserTime(req.StartTime, false)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
		}
		filter.StartTime = t
	}
	if req.EndTime != "" {
		t, err := utils.ParseUserTime(req.EndTime, true)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
		}
		filter.EndTime = t
	}
	if !filter.StartTime.IsZero() && !filter.EndTime.IsZero() && filter.EndTime.Before(filter.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	filter.Limit = filter.PageSize
	filter.Offset = (filter.Page - 1) * filter.PageSize

	if filter.HasSearchCriteria() {
		events, err := s.repo.OpenSearch().Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		return dto.FromSecurityEvents(events), nil
	}

	events, err := s.repo.SecurityEvent().List(ctx, *filter)
	if err != nil {
		return nil, err
	}
	return dto.FromSecurityEvents(events), nil
}

// ScheduleArchive enqueues archival of every event recorded before the given day.
func (s *SecurityEventService) ScheduleArchive(ctx context.Context, req dto.ArchiveSecurityEventsRequest) (*dto.ArchiveScheduledResponse, error) {
	before, err := utils.ParseDate(req.BeforeDate)
	if err != nil {
		return nil, fmt.Errorf("%w: before_date: %v", ErrInvalidInput, err)
	}
	if before.After(s.now()) {
		return nil, fmt.Errorf("%w: before_date cannot be in the future", ErrInvalidInput)
	}

	if err := s.sqsSvc.SendArchiveMessage(ctx, before); err != nil {
		return nil, fmt.Errorf("failed to schedule archive: %w", err)
	}

	return &dto.ArchiveScheduledResponse{
		BeforeDate: before.Format(domain.DateLayout),
		Status:     "scheduled",
	}, nil
}
