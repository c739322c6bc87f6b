package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
)

type SubscriptionRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewSubscriptionRepository(writerDB, readerDB *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// Create inserts sub. The partial unique index on (tenant_id) WHERE status =
// 'active' backs the pre-check against concurrent writers.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if sub.Status == domain.SubscriptionStatusActive {
			var existing domain.Subscription
			err := tx.Where("tenant_id = ? AND status = ?", sub.TenantID, domain.SubscriptionStatusActive).
				First(&existing).Error
			if err == nil {
				return repository.ErrDuplicate
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return translate(tx.Create(sub).Error)
	})
}

func (r *SubscriptionRepository) FindCurrent(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.writerDB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "status = ? DESC, start_date DESC, id DESC",
			Vars:               []interface{}{string(domain.SubscriptionStatusActive)},
			WithoutParentheses: true,
		}}).
		Take(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, tenantID uint) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.writerDB.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, domain.SubscriptionStatusActive).
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *SubscriptionRepository) UpdateEndDate(ctx context.Context, id uint, endDate *time.Time) error {
	return r.update(ctx, id, "end_date", endDate)
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id uint, status domain.SubscriptionStatus) error {
	return r.update(ctx, id, "status", status)
}

func (r *SubscriptionRepository) update(ctx context.Context, id uint, column string, value interface{}) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListByTenant(ctx context.Context, tenantID uint) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.readerDB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC, id DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
