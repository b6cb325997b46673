package service

import (
	"context"
	"log"
	"net/http"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

// AuditService records console mutations and lists them
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// AuditEntry describes one mutation to record
type AuditEntry struct {
	Action   enum.AuditAction
	Resource string
	RecordID entity.ID
	Message  string
	Err      error
}

// Record stores the entry. Failures are logged and never fail the mutation itself.
func (s *AuditService) Record(ctx context.Context, e AuditEntry) {
	op := infraRepo.OperatorOrAnonymous(ctx)
	entry := &entity.AuditLog{
		OperatorID: op.ID,
		Operator:   op.Name,
		Action:     e.Action,
		Resource:   e.Resource,
		RecordID:   e.RecordID.String(),
		Succeeded:  e.Err == nil,
		Message:    e.Message,
		RequestID:  infraRepo.GetRequestID(ctx),
	}
	if e.Err != nil {
		entry.Message = e.Err.Error()
	}

	if s == nil || s.auditRepo == nil {
		log.Printf("audit: %s %s %s %s succeeded=%v", entry.OperatorID, entry.Action, entry.Resource, entry.RecordID, entry.Succeeded)
		return
	}
	// the request may already be cancelled; the row is still wanted
	if err := s.auditRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("Warning: failed to write audit log for %s %s: %v", entry.Action, entry.Resource, err)
	}
}

// List returns audit log entries, newest first
func (s *AuditService) List(ctx context.Context, filter repository.AuditFilter, params *listing.PaginationParams) (*listing.PaginatedResult[entity.AuditLog], error) {
	if s.auditRepo == nil {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "Audit log storage is not configured")
	}
	if filter.Mine && infraRepo.OperatorOrAnonymous(ctx).IsAnonymous() {
		return nil, apperror.NewBadRequestError("Filtering by operator requires a bearer token")
	}
	logs, total, err := s.auditRepo.List(ctx, filter, params)
	if err != nil {
		return nil, err
	}
	return listing.NewPaginatedResult(logs, listing.NewPagination(params.Page, params.PerPage, total)), nil
}
