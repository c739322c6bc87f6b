package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// TenantStatus is the lifecycle state of an institution.
type TenantStatus string

const (
	TenantStatusPending      TenantStatus = "pending"
	TenantStatusActive       TenantStatus = "active"
	TenantStatusSuspended    TenantStatus = "suspended"
	TenantStatusCancelled    TenantStatus = "cancelled"
	TenantStatusTrialExpired TenantStatus = "trial_expired"
)

// ValidTenantStatuses contains all valid tenant statuses
var ValidTenantStatuses = []TenantStatus{
	TenantStatusPending,
	TenantStatusActive,
	TenantStatusSuspended,
	TenantStatusCancelled,
	TenantStatusTrialExpired,
}

var tenantTransitions = map[TenantStatus][]TenantStatus{
	TenantStatusPending:      {TenantStatusActive, TenantStatusCancelled},
	TenantStatusActive:       {TenantStatusSuspended, TenantStatusCancelled, TenantStatusTrialExpired},
	TenantStatusSuspended:    {TenantStatusActive, TenantStatusCancelled},
	TenantStatusTrialExpired: {TenantStatusActive, TenantStatusCancelled},
}

func (s TenantStatus) Valid() bool {
	return slices.Contains(ValidTenantStatuses, s)
}

// CanTransitionTo reports whether an administrator may move a tenant from s to next.
// Cancelled is terminal.
func (s TenantStatus) CanTransitionTo(next TenantStatus) bool {
	return slices.Contains(tenantTransitions[s], next)
}

var tenantCodePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeTenantCode trims and lower-cases a raw code signal.
func NormalizeTenantCode(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidTenantCode checks that code is a DNS-label style slug.
func IsValidTenantCode(code string) bool {
	return tenantCodePattern.MatchString(code)
}

// DefaultDatabaseName derives the isolated store name for a new tenant.
func DefaultDatabaseName(code string) string {
	return "tenant_" + strings.ReplaceAll(code, "-", "_")
}

// Tenant is one subscribing school. Its academic data lives in its own database,
// described by DatabaseName, never in the central directory.
type Tenant struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	Status       TenantStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	DatabaseName string       `gorm:"type:text;not null" json:"database_name"`
	CreatedAt    time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

type TenantFilter struct {
	Status   TenantStatus `json:"status"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Limit    int          `json:"limit"`
	Offset   int          `json:"offset"`
}
