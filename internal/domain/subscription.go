package domain

import (
	"slices"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
)

var ValidSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusCancelled,
	SubscriptionStatusExpired,
	SubscriptionStatusTrial,
}

func (s SubscriptionStatus) Valid() bool {
	return slices.Contains(ValidSubscriptionStatuses, s)
}

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleAnnual  BillingCycle = "annual"
)

func (c BillingCycle) Valid() bool {
	return c == BillingCycleMonthly || c == BillingCycleAnnual
}

// DateLayout is the wire format of subscription dates.
const DateLayout = "2006-01-02"

// Subscription is a tenant's commercial entitlement. A tenant has at most one
// active subscription at a time.
type Subscription struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	TenantID     uint               `gorm:"not null;index" json:"tenant_id"`
	PlanTier     string             `gorm:"type:text;not null" json:"plan_tier"`
	BillingCycle BillingCycle       `gorm:"type:text;not null" json:"billing_cycle"`
	AmountCents  int64              `gorm:"not null;default:0" json:"amount_cents"`
	Currency     string             `gorm:"type:char(3);not null;default:'PEN'" json:"currency"`
	Status       SubscriptionStatus `gorm:"type:text;not null" json:"status"`
	StartDate    time.Time          `gorm:"type:date;not null" json:"start_date"`
	EndDate      *time.Time         `gorm:"type:date" json:"end_date,omitempty"`
	MaxUsers     int                `gorm:"not null;default:0" json:"max_users"`
	MaxStudents  int                `gorm:"not null;default:0" json:"max_students"`
	MaxStorageMB int64              `gorm:"column:max_storage_mb;not null;default:0" json:"max_storage_mb"`
	CreatedAt    time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Tenant       *Tenant            `gorm:"foreignKey:TenantID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

// ExpiredAt reports whether the end date lies strictly before the calendar day of
// now in loc. A subscription ending today is still valid today.
func (s *Subscription) ExpiredAt(now time.Time, loc *time.Location) bool {
	if s.EndDate == nil {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	end := s.EndDate.UTC()
	validUntil := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, loc)
	return !now.Before(validUntil)
}
