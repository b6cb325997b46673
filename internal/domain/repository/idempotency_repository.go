package repository

import (
	"context"
	"errors"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// ErrIdempotencyKeyReused is returned when an operator sends a stored key to a
// different endpoint than the one it was first used on
var ErrIdempotencyKeyReused = errors.New("idempotency key already used on another endpoint")

// IdempotencyRepository stores the answers to console mutations per operator
type IdempotencyRepository interface {
	// Lookup returns the live record of key for the operator, nil when there is
	// none. A record stored for another endpoint yields ErrIdempotencyKeyReused.
	Lookup(ctx context.Context, key, operatorID, endpoint string) (*entity.IdempotencyKey, error)
	// Save stores a record. A record the operator already holds under the same
	// key is kept.
	Save(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes expired records
	DeleteExpired(ctx context.Context) error
}
