package dto

type CreateTenantRequest struct {
	Code         string `json:"code" binding:"required" example:"colegio-san-martin"`
	Name         string `json:"name" binding:"required" example:"Colegio San Martin"`
	DatabaseName string `json:"database_name" example:"tenant_colegio_san_martin"`
}

type ListTenantsRequest struct {
	Status   string `form:"status" example:"active"`
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
}

type CreateSubscriptionRequest struct {
	PlanTier     string `json:"plan_tier" binding:"required" example:"standard"`
	BillingCycle string `json:"billing_cycle" binding:"required" example:"annual"`
	AmountCents  int64  `json:"amount_cents" example:"1200000"`
	Currency     string `json:"currency" example:"PEN"`
	StartDate    string `json:"start_date" binding:"required" example:"2025-03-01"`
	EndDate      string `json:"end_date" example:"2026-02-28"`
	MaxUsers     int    `json:"max_users" example:"200"`
	MaxStudents  int    `json:"max_students" example:"1500"`
	MaxStorageMB int64  `json:"max_storage_mb" example:"10240"`
}

type RenewSubscriptionRequest struct {
	EndDate string `json:"end_date" binding:"required" example:"2027-02-28"`
}

type ListSecurityEventsRequest struct {
	PrincipalID       string `form:"principal_id" example:"user-42"`
	PrincipalTenantID uint   `form:"principal_tenant_id" example:"1"`
	RequestedTenantID uint   `form:"requested_tenant_id" example:"2"`
	SourceIP          string `form:"source_ip" example:"203.0.113.7"`
	StartTime         string `form:"start_time" example:"2025-07-01"`
	EndTime           string `form:"end_time" example:"2025-07-31"`
	Page              int    `form:"page" example:"1"`
	PageSize          int    `form:"page_size" example:"20"`
}

type ArchiveSecurityEventsRequest struct {
	BeforeDate string `json:"before_date" binding:"required" example:"2025-01-01"`
}
