package repository

import (
	"context"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// Snapshot is the full list of a resource as the loyalty API returned it
type Snapshot[T any] struct {
	Items     []T            `json:"items"`
	Total     int64          `json:"total"`
	Stats     map[string]any `json:"stats,omitempty"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// MutationResult is what the loyalty API answered to a write
type MutationResult struct {
	Message  string    `json:"message,omitempty"`
	RecordID entity.ID `json:"id,omitempty"`
}

// LoyaltyRepository is one collection of the loyalty API
type LoyaltyRepository[T any] interface {
	// List returns every record matching params. params are passed to the API as-is.
	List(ctx context.Context, params map[string]string) (*Snapshot[T], error)
	Get(ctx context.Context, id entity.ID) (*T, error)
	Create(ctx context.Context, payload any) (*MutationResult, error)
	Update(ctx context.Context, id entity.ID, payload any) (*MutationResult, error)
	// Deactivate soft-deletes a record by clearing its active flag
	Deactivate(ctx context.Context, id entity.ID) (*MutationResult, error)
	// Delete removes a record for good
	Delete(ctx context.Context, id entity.ID) (*MutationResult, error)
}

// StoreSequenceRepository is the featured stores ordering
type StoreSequenceRepository interface {
	LoyaltyRepository[entity.StoreSequence]
	// BulkUpdateSequence writes the sequence numbers of all rows in one request
	BulkUpdateSequence(ctx context.Context, updates []entity.SequenceUpdate) (*MutationResult, error)
}
