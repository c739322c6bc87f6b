package domain

import "time"

type SecurityEventKind string

const (
	SecurityEventOwnershipViolation SecurityEventKind = "ownership_violation"
)

// SecurityEvent is the audit record of a denied cross-tenant access attempt.
type SecurityEvent struct {
	ID                  string            `gorm:"primaryKey;type:uuid" json:"id"`
	Kind                SecurityEventKind `gorm:"type:text;not null" json:"kind"`
	PrincipalID         string            `gorm:"type:text;not null" json:"principal_id"`
	PrincipalTenantID   uint              `gorm:"not null" json:"principal_tenant_id"`
	RequestedTenantID   uint              `gorm:"not null" json:"requested_tenant_id"`
	RequestedTenantCode string            `gorm:"type:text;not null" json:"requested_tenant_code"`
	SourceIP            string            `gorm:"type:text" json:"source_ip"`
	Method              string            `gorm:"type:text" json:"method"`
	URL                 string            `gorm:"type:text" json:"url"`
	UserAgent           string            `gorm:"type:text" json:"user_agent"`
	RequestID           string            `gorm:"type:text" json:"request_id"`
	OccurredAt          time.Time         `gorm:"type:timestamp with time zone;not null" json:"occurred_at"`
	CreatedAt           time.Time         `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SecurityEvent) TableName() string {
	return "security_events"
}

type SecurityEventFilter struct {
	Kind              SecurityEventKind `json:"kind"`
	PrincipalID       string            `json:"principal_id"`
	PrincipalTenantID uint              `json:"principal_tenant_id"`
	RequestedTenantID uint              `json:"requested_tenant_id"`
	SourceIP          string            `json:"source_ip"`
	StartTime         time.Time         `json:"start_time"`
	EndTime           time.Time         `json:"end_time"`
	Page              int               `json:"page"`
	PageSize          int               `json:"page_size"`
	Limit             int               `json:"limit"`
	Offset            int               `json:"offset"`
}

// HasSearchCriteria reports whether the filter narrows beyond paging and time.
func (f *SecurityEventFilter) HasSearchCriteria() bool {
	return f.PrincipalID != "" || f.SourceIP != "" || f.PrincipalTenantID != 0 || f.RequestedTenantID != 0
}
