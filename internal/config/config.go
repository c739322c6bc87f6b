package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MaxTenantCacheTTL bounds how long a suspended institution can keep being served from cache.
const MaxTenantCacheTTL = 30 * time.Second

type Config struct {
	AppEnv             string        `env:"APP_ENV" envDefault:"development" json:"app_env"`
	ServerPort         int           `env:"SERVER_PORT" envDefault:"10000" json:"server_port"`
	JWTSecretKey       string        `env:"JWT_SECRET_KEY" json:"-"`
	JWTExpirationHours int           `env:"JWT_EXPIRATION_HOURS" envDefault:"24" json:"jwt_expiration_hours"`
	DefaultRateLimit   int           `env:"DEFAULT_RATE_LIMIT" envDefault:"1000" json:"default_rate_limit"` // per tenant per minute
	GlobalRateLimit    int           `env:"GLOBAL_RATE_LIMIT" envDefault:"10000" json:"global_rate_limit"`  // per IP per minute
	MigrationsDir      string        `env:"MIGRATIONS_DIR" envDefault:"migrations" json:"migrations_dir"`
	Tenancy            TenancyConfig `envPrefix:"TENANT_" json:"tenancy"`
}

// TenancyConfig drives tenant resolution, caching and message localization.
type TenancyConfig struct {
	Header         string        `env:"HEADER" envDefault:"X-Tenant-Code" json:"header"`
	ReservedLabels []string      `env:"RESERVED_LABELS" envSeparator:"," envDefault:"www,api" json:"reserved_labels"`
	BaseDomain     string        `env:"BASE_DOMAIN" json:"base_domain"`
	DevQueryParam  string        `env:"DEV_QUERY_PARAM" envDefault:"tenant" json:"dev_query_param"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"15s" json:"cache_ttl"`
	Timezone       string        `env:"TIMEZONE" envDefault:"America/Lima" json:"timezone"`
	DefaultLocale  string        `env:"DEFAULT_LOCALE" envDefault:"es" json:"default_locale"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.Tenancy.Header == "" {
		return errors.New("TENANT_HEADER must not be empty")
	}
	if c.Tenancy.CacheTTL <= 0 || c.Tenancy.CacheTTL > MaxTenantCacheTTL {
		return fmt.Errorf("TENANT_CACHE_TTL must be in (0, %s], got %s", MaxTenantCacheTTL, c.Tenancy.CacheTTL)
	}
	if _, err := time.LoadLocation(c.Tenancy.Timezone); err != nil {
		return fmt.Errorf("invalid TENANT_TIMEZONE: %w", err)
	}
	if c.IsProduction() && c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY is required in production")
	}
	for i, l := range c.Tenancy.ReservedLabels {
		c.Tenancy.ReservedLabels[i] = strings.ToLower(strings.TrimSpace(l))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location returns the timezone used to evaluate subscription dates.
func (c *TenancyConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
