package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"school_directory"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

// DirectoryDatabaseConfig describes the central directory database and its read replica.
type DirectoryDatabaseConfig struct {
	Writer DatabaseConfig       `envPrefix:"POSTGRES_WRITER_"`
	Reader DatabaseConfig       `envPrefix:"POSTGRES_READER_"`
	Pool   ConnectionPoolConfig `envPrefix:"DB_"`
}

// TenantStoreConfig is the template every tenant database connection is built from.
// Only the database name varies per tenant.
type TenantStoreConfig struct {
	Host           string               `env:"HOST" envDefault:"localhost"`
	Port           uint16               `env:"PORT" envDefault:"5432"`
	User           string               `env:"USER" envDefault:"postgres"`
	Password       string               `env:"PASSWORD"`
	SSLMode        string               `env:"SSL_MODE" envDefault:"disable"`
	ConnectTimeout time.Duration        `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	Pool           ConnectionPoolConfig `envPrefix:"POOL_"`
}

func LoadDatabaseConfig() (*DirectoryDatabaseConfig, error) {
	cfg := &DirectoryDatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return cfg, nil
}

func LoadTenantStoreConfig() (*TenantStoreConfig, error) {
	cfg := &TenantStoreConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "TENANT_DB_"}); err != nil {
		return nil, fmt.Errorf("failed to parse tenant store config: %w", err)
	}
	if cfg.Pool.MaxOpenConns <= 0 {
		cfg.Pool.MaxOpenConns = 10
	}
	return cfg, nil
}

// DSN returns the template as a postgres URL pointing at dbName.
func (c *TenantStoreConfig) DSN(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// buildDSN creates PostgreSQL connection string from configuration
func (c *DatabaseConfig) buildDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL renders the configuration in the form golang-migrate expects.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// configureConnectionPool applies connection pool settings to the database connection
func configureConnectionPool(gormDB *gorm.DB, poolConfig ConnectionPoolConfig) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolConfig.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(poolConfig.ConnMaxIdleTime)

	return nil
}

// createDatabaseConnection creates a GORM database connection with connection pool tuning
func createDatabaseConnection(config DatabaseConfig, poolConfig ConnectionPoolConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.buildDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configureConnectionPool(db, poolConfig); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return db, nil
}

// DatabaseConnections holds both writer and reader connections to the directory
type DatabaseConnections struct {
	Writer *gorm.DB
	Reader *gorm.DB
}

// NewDatabaseConnections creates both writer and reader database connections
func NewDatabaseConnections(cfg *DirectoryDatabaseConfig, appEnv string) (*DatabaseConnections, error) {
	logLevel := logger.Info
	if appEnv == "production" {
		logLevel = logger.Warn
	}

	writer, err := createDatabaseConnection(cfg.Writer, cfg.Pool, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer database connection: %w", err)
	}

	reader, err := createDatabaseConnection(cfg.Reader, cfg.Pool, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader database connection: %w", err)
	}

	return &DatabaseConnections{
		Writer: writer,
		Reader: reader,
	}, nil
}

// Close closes both writer and reader database connections
func (dc *DatabaseConnections) Close() error {
	var writerErr, readerErr error

	if dc.Writer != nil {
		if sqlDB, err := dc.Writer.DB(); err == nil {
			writerErr = sqlDB.Close()
		}
	}

	if dc.Reader != nil {
		if sqlDB, err := dc.Reader.DB(); err == nil {
			readerErr = sqlDB.Close()
		}
	}

	if writerErr != nil {
		return fmt.Errorf("failed to close writer database connection: %w", writerErr)
	}
	if readerErr != nil {
		return fmt.Errorf("failed to close reader database connection: %w", readerErr)
	}

	return nil
}
