package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/pkg/utils"
)

const (
	defaultConnectTimeout  = 5 * time.Second
	defaultConnMaxIdleTime = 5 * time.Minute
)

// TenantStoreOpener opens connection pools to tenant databases. Every tenant
// shares the server template from config; only the database differs, unless
// the tenant's descriptor is itself a full connection string.
type TenantStoreOpener struct {
	cfg      *config.TenantStoreConfig
	logLevel logger.LogLevel
}

func NewTenantStoreOpener(cfg *config.TenantStoreConfig, appEnv string) *TenantStoreOpener {
	logLevel := logger.Info
	if appEnv == "production" {
		logLevel = logger.Warn
	}
	return &TenantStoreOpener{cfg: cfg, logLevel: logLevel}
}

// ConnConfig builds the pgx configuration for tenant's store.
func (o *TenantStoreOpener) ConnConfig(tenant *domain.Tenant) (*pgx.ConnConfig, error) {
	dsn := o.cfg.DSN(tenant.DatabaseName)
	if utils.IsConnString(tenant.DatabaseName) {
		dsn = tenant.DatabaseName
	}

	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid store descriptor for tenant %s: %w", tenant.Code, err)
	}
	connCfg.ConnectTimeout = o.cfg.ConnectTimeout
	connCfg.RuntimeParams["application_name"] = "school-tenancy-api:" + tenant.Code
	return connCfg, nil
}

func (o *TenantStoreOpener) Open(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error) {
	connCfg, err := o.ConnConfig(tenant)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDB(*connCfg)
	o.applyPool(sqlDB)

	timeout := o.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach store for tenant %s: %w", tenant.Code, err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(o.logLevel),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open store for tenant %s: %w", tenant.Code, err)
	}
	return db, nil
}

// applyPool sizes a tenant pool. Idle connections are closed after the idle
// timeout, so a pool that stops serving traffic holds no server connections.
func (o *TenantStoreOpener) applyPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(o.cfg.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.cfg.Pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(o.cfg.Pool.ConnMaxLifetime)

	idle := o.cfg.Pool.ConnMaxIdleTime
	if idle <= 0 {
		idle = defaultConnMaxIdleTime
	}
	sqlDB.SetConnMaxIdleTime(idle)
}
