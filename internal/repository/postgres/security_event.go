package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

type SecurityEventRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewSecurityEventRepository(writerDB, readerDB *gorm.DB) *SecurityEventRepository {
	return &SecurityEventRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *SecurityEventRepository) Create(ctx context.Context, event *domain.SecurityEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	return r.writerDB.WithContext(ctx).Create(event).Error
}

func (r *SecurityEventRepository) List(ctx context.Context, filter domain.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	var events []domain.SecurityEvent

	db := r.readerDB.WithContext(ctx)
	if filter.Kind != "" {
		db = db.Where("kind = ?", filter.Kind)
	}
	if filter.PrincipalID != "" {
		db = db.Where("principal_id = ?", filter.PrincipalID)
	}
	if filter.PrincipalTenantID != 0 {
		db = db.Where("principal_tenant_id = ?", filter.PrincipalTenantID)
	}
	if filter.RequestedTenantID != 0 {
		db = db.Where("requested_tenant_id = ?", filter.RequestedTenantID)
	}
	if filter.SourceIP != "" {
		db = db.Where("source_ip = ?", filter.SourceIP)
	}
	if !filter.StartTime.IsZero() {
		db = db.Where("occurred_at >= ?", filter.StartTime)
	}
	if !filter.EndTime.IsZero() {
		db = db.Where("occurred_at <= ?", filter.EndTime)
	}

	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	if err := db.Order("occurred_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListBefore returns up to limit of the oldest events that occurred before the cutoff.
func (r *SecurityEventRepository) ListBefore(ctx context.Context, before time.Time, limit int) ([]domain.SecurityEvent, error) {
	var events []domain.SecurityEvent
	err := r.readerDB.WithContext(ctx).
		Where("occurred_at < ?", before).
		Order("occurred_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *SecurityEventRepository) DeleteBeforeDate(ctx context.Context, before time.Time) (int64, error) {
	result := r.writerDB.WithContext(ctx).
		Where("occurred_at < ?", before).
		Delete(&domain.SecurityEvent{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
