package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTenantStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to TenantStatus
		want     bool
	}{
		{TenantStatusPending, TenantStatusActive, true},
		{TenantStatusActive, TenantStatusSuspended, true},
		{TenantStatusSuspended, TenantStatusActive, true},
		{TenantStatusTrialExpired, TenantStatusActive, true},
		{TenantStatusActive, TenantStatusActive, false},
		{TenantStatusCancelled, TenantStatusActive, false},
		{TenantStatusPending, TenantStatusSuspended, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTenantCode(t *testing.T) {
	assert.Equal(t, "acme", NormalizeTenantCode("  ACME "))
	assert.True(t, IsValidTenantCode("colegio-san-jose"))
	assert.False(t, IsValidTenantCode("-acme"))
	assert.False(t, IsValidTenantCode("acme_school"))
	assert.False(t, IsValidTenantCode(""))
	assert.Equal(t, "tenant_colegio_san_jose", DefaultDatabaseName("colegio-san-jose"))
}

func TestSubscription_ExpiredAt(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	now := time.Date(2025, 6, 15, 22, 0, 0, 0, lima)

	tests := []struct {
		name string
		end  *time.Time
		want bool
	}{
		{"no end date", nil, false},
		{"ends tomorrow", date(2025, 6, 16), false},
		{"ends today", date(2025, 6, 15), false},
		{"ended yesterday", date(2025, 6, 14), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{Status: SubscriptionStatusActive, EndDate: tt.end}
			assert.Equal(t, tt.want, sub.ExpiredAt(now, lima))
		})
	}
}

func TestPrincipal_Can(t *testing.T) {
	admin := &Principal{UserID: "u1", Roles: []Role{RoleSuperadmin}}
	director := &Principal{UserID: "u2", TenantID: 3, Roles: []Role{RoleDirector}}
	var anonymous *Principal

	assert.True(t, admin.Can(CapCrossTenant))
	assert.False(t, director.Can(CapCrossTenant))
	assert.True(t, director.Can(CapManageInstitution))
	assert.False(t, anonymous.Can(CapReadInstitution))
	assert.Equal(t, []Role{RoleDocente}, ParseRoles([]string{"docente", "admin"}))
}
