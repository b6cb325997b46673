package repository

import (
	"context"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

// AuditFilter narrows an audit log listing. Empty fields match everything.
type AuditFilter struct {
	Resource string
	Action   string
	RecordID string
	// Mine restricts the listing to the operator in the context
	Mine bool
}

// AuditRepository defines the interface for the console audit trail
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter AuditFilter, params *listing.PaginationParams) ([]entity.AuditLog, int64, error)
}
