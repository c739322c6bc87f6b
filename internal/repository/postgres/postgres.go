package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
)

type postgresRepository struct {
	tenantRepo        repository.TenantRepository
	subscriptionRepo  repository.SubscriptionRepository
	securityEventRepo repository.SecurityEventRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	return &postgresRepository{
		tenantRepo:        NewTenantRepository(dbConnections.Writer, dbConnections.Reader),
		subscriptionRepo:  NewSubscriptionRepository(dbConnections.Writer, dbConnections.Reader),
		securityEventRepo: NewSecurityEventRepository(dbConnections.Writer, dbConnections.Reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) Subscription() repository.SubscriptionRepository {
	return r.subscriptionRepo
}

func (r *postgresRepository) SecurityEvent() repository.SecurityEventRepository {
	return r.securityEventRepo
}

// translate maps gorm errors onto repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
