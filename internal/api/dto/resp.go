package dto

import "time"

type TenantResponse struct {
	ID           uint      `json:"id" example:"1"`
	Code         string    `json:"code" example:"colegio-san-martin"`
	Name         string    `json:"name" example:"Colegio San Martin"`
	Status       string    `json:"status" example:"active"`
	DatabaseName string    `json:"database_name" example:"tenant_colegio_san_martin"`
	CreatedAt    time.Time `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt    time.Time `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

type SubscriptionResponse struct {
	ID           uint   `json:"id" example:"7"`
	TenantID     uint   `json:"tenant_id" example:"1"`
	PlanTier     string `json:"plan_tier" example:"standard"`
	BillingCycle string `json:"billing_cycle" example:"annual"`
	AmountCents  int64  `json:"amount_cents" example:"1200000"`
	Currency     string `json:"currency" example:"PEN"`
	Status       string `json:"status" example:"active"`
	StartDate    string `json:"start_date" example:"2025-03-01"`
	EndDate      string `json:"end_date,omitempty" example:"2026-02-28"`
	MaxUsers     int    `json:"max_users" example:"200"`
	MaxStudents  int    `json:"max_students" example:"1500"`
	MaxStorageMB int64  `json:"max_storage_mb" example:"10240"`
}

type SecurityEventResponse struct {
	ID                  string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Kind                string    `json:"kind" example:"ownership_violation"`
	PrincipalID         string    `json:"principal_id" example:"user-42"`
	PrincipalTenantID   uint      `json:"principal_tenant_id" example:"1"`
	RequestedTenantID   uint      `json:"requested_tenant_id" example:"2"`
	RequestedTenantCode string    `json:"requested_tenant_code" example:"colegio-lima"`
	SourceIP            string    `json:"source_ip" example:"203.0.113.7"`
	Method              string    `json:"method" example:"GET"`
	URL                 string    `json:"url" example:"/api/v1/institution/context"`
	UserAgent           string    `json:"user_agent,omitempty" example:"Mozilla/5.0"`
	RequestID           string    `json:"request_id,omitempty" example:"9b2f3c1e-1d7a-4d1e-8a53-2f0e8c9a7b11"`
	OccurredAt          time.Time `json:"occurred_at" example:"2025-07-17T21:20:48Z"`
}

// InstitutionTenantResponse is the tenant as shown to its own users. The store
// descriptor is left out; it may carry credentials.
type InstitutionTenantResponse struct {
	ID     uint   `json:"id" example:"1"`
	Code   string `json:"code" example:"colegio-san-martin"`
	Name   string `json:"name" example:"Colegio San Martin"`
	Status string `json:"status" example:"active"`
}

// InstitutionResponse is the public card of the institution bound to a request.
type InstitutionResponse struct {
	Code string `json:"code" example:"colegio-san-martin"`
	Name string `json:"name" example:"Colegio San Martin"`
}

type PrincipalResponse struct {
	UserID   string   `json:"user_id" example:"user-42"`
	TenantID uint     `json:"tenant_id" example:"1"`
	Roles    []string `json:"roles" example:"director"`
}

// InstitutionContextResponse describes how a request was attached to its tenant.
type InstitutionContextResponse struct {
	Tenant           InstitutionTenantResponse `json:"tenant"`
	ResolvedBy       string                    `json:"resolved_by" example:"subdomain"`
	Subscription     *SubscriptionResponse     `json:"subscription,omitempty"`
	Principal        *PrincipalResponse        `json:"principal,omitempty"`
	CurrentDatabase  string                    `json:"current_database" example:"tenant_colegio_san_martin"`
	OperatingAsAdmin bool                      `json:"operating_as_admin" example:"false"`
}

type ArchiveScheduledResponse struct {
	BeforeDate string `json:"before_date" example:"2025-01-01"`
	Status     string `json:"status" example:"scheduled"`
}
