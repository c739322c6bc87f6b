package dto

import (
	"github.com/kingrain94/school-tenancy-api/internal/domain"
)

func FromTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Status:       string(t.Status),
		DatabaseName: t.DatabaseName,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromInstitutionTenant(t *domain.Tenant) *InstitutionTenantResponse {
	return &InstitutionTenantResponse{
		ID:     t.ID,
		Code:   t.Code,
		Name:   t.Name,
		Status: string(t.Status),
	}
}

func FromTenants(tenants []domain.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *FromTenant(&tenants[i])
	}
	return responses
}

func FromSubscription(s *domain.Subscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:           s.ID,
		TenantID:     s.TenantID,
		PlanTier:     s.PlanTier,
		BillingCycle: string(s.BillingCycle),
		AmountCents:  s.AmountCents,
		Currency:     s.Currency,
		Status:       string(s.Status),
		StartDate:    s.StartDate.Format(domain.DateLayout),
		MaxUsers:     s.MaxUsers,
		MaxStudents:  s.MaxStudents,
		MaxStorageMB: s.MaxStorageMB,
	}
	if s.EndDate != nil {
		resp.EndDate = s.EndDate.Format(domain.DateLayout)
	}
	return resp
}

func FromSecurityEvent(e *domain.SecurityEvent) *SecurityEventResponse {
	return &SecurityEventResponse{
		ID:                  e.ID,
		Kind:                string(e.Kind),
		PrincipalID:         e.PrincipalID,
		PrincipalTenantID:   e.PrincipalTenantID,
		RequestedTenantID:   e.RequestedTenantID,
		RequestedTenantCode: e.RequestedTenantCode,
		SourceIP:            e.SourceIP,
		Method:              e.Method,
		URL:                 e.URL,
		UserAgent:           e.UserAgent,
		RequestID:           e.RequestID,
		OccurredAt:          e.OccurredAt,
	}
}

func FromSecurityEvents(events []domain.SecurityEvent) []SecurityEventResponse {
	responses := make([]SecurityEventResponse, len(events))
	for i := range events {
		responses[i] = *FromSecurityEvent(&events[i])
	}
	return responses
}

func FromPrincipal(p *domain.Principal) *PrincipalResponse {
	if p == nil {
		return nil
	}
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = string(r)
	}
	return &PrincipalResponse{
		UserID:   p.UserID,
		TenantID: p.TenantID,
		Roles:    roles,
	}
}
