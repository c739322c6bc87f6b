package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/school-tenancy-api/internal/api/dto"
)

type SecurityEventService interface {
	List(ctx context.Context, req dto.ListSecurityEventsRequest) ([]dto.SecurityEventResponse, error)
	ScheduleArchive(ctx context.Context, req dto.ArchiveSecurityEventsRequest) (*dto.ArchiveScheduledResponse, error)
}

type SecurityEventHandler struct {
	*BaseHandler
	service SecurityEventService
}

func NewSecurityEventHandler(service SecurityEventService) *SecurityEventHandler {
	return &SecurityEventHandler{service: service}
}

// ListSecurityEvents godoc
// @Summary List security events
// @Description Denied cross-tenant access attempts. Searches OpenSearch when a principal, tenant or IP filter is given
// @Tags security-events
// @Produce json
// @Security BearerAuth
// @Param principal_id query string false "Principal id"
// @Param principal_tenant_id query int false "Principal's tenant id"
// @Param requested_tenant_id query int false "Requested tenant id"
// @Param source_ip query string false "Source IP"
// @Param start_time query string false "Start time (RFC3339 or YYYY-MM-DD)"
// @Param end_time query string false "End time (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {array} dto.SecurityEventResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Router /admin/security-events [get]
func (h *SecurityEventHandler) ListSecurityEvents(c *gin.Context) {
	var req dto.ListSecurityEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	events, err := h.service.List(h.RequestCtx(c), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// ArchiveSecurityEvents godoc
// @Summary Archive old security events
// @Description Ships events recorded before the date to S3 and removes them from the database
// @Tags security-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ArchiveSecurityEventsRequest true "Cutoff date"
// @Success 202 {object} dto.ArchiveScheduledResponse
// @Failure 400 {object} dto.Error
// @Router /admin/security-events/archive [post]
func (h *SecurityEventHandler) ArchiveSecurityEvents(c *gin.Context) {
	var req dto.ArchiveSecurityEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.service.ScheduleArchive(h.RequestCtx(c), req)
	if err != nil {
		h.ServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}
