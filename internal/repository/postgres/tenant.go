package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
)

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if err := r.writerDB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, translate(err)
	}
	return tenant, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

// FindByCode reads from the writer so a status change is visible to the next
// directory load without replica lag.
func (r *TenantRepository) FindByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.writerDB.WithContext(ctx).First(&tenant, "code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return &tenant, nil
}

func (r *TenantRepository) UpdateStatus(ctx context.Context, id uint, status domain.TenantStatus) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	var tenants []domain.Tenant

	db := r.readerDB.WithContext(ctx)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	if err := db.Order("code ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}
