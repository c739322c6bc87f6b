package utils

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// IsConnString reports whether a tenant store descriptor is a full postgres
// URL or keyword/value DSN rather than a bare database name.
func IsConnString(descriptor string) bool {
	return strings.HasPrefix(descriptor, "postgres://") ||
		strings.HasPrefix(descriptor, "postgresql://") ||
		strings.Contains(descriptor, "=")
}

// StoreLabel renders a store descriptor for logs. Connection strings are
// reduced to host, port and database so credentials never reach a log line.
func StoreLabel(descriptor string) string {
	if !IsConnString(descriptor) {
		return descriptor
	}
	cfg, err := pgx.ParseConfig(descriptor)
	if err != nil {
		return "[invalid descriptor]"
	}
	return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}
