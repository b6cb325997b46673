package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/request"
	"github.com/sangkips/loyalty-admin/internal/presentation/http/dto/response"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

// AuditHandler handles audit log HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit log entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	var req request.AuditLogFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &listing.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	result, err := h.auditService.List(c.Request.Context(), repository.AuditFilter{
		Resource: req.Resource,
		Action:   req.Action,
		RecordID: req.RecordID,
		Mine:     req.Mine,
	}, params)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Audit logs retrieved successfully", result)
}
