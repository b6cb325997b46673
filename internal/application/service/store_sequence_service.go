package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/observability"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
	"github.com/sangkips/loyalty-admin/pkg/reorder"
)

// StoreSequenceService manages the featured ("top stores") ordering
type StoreSequenceService struct {
	*Catalog[entity.StoreSequence]
	repo repository.StoreSequenceRepository

	// one reorder at a time, so two drops never interleave their bulk updates
	mu sync.Mutex
}

// NewStoreSequenceService creates a new store sequence service
func NewStoreSequenceService(repo repository.StoreSequenceRepository, deps CatalogDeps) *StoreSequenceService {
	return &StoreSequenceService{
		repo: repo,
		Catalog: NewCatalog[entity.StoreSequence](repo, CatalogOptions[entity.StoreSequence]{
			Name: "store-sequence",
			Spec: listing.Spec[entity.StoreSequence]{
				// the whole ordering is shown on one page
				PerPage:      0,
				SearchFields: func(s entity.StoreSequence) []string { return []string{s.StoreName} },
				Sorts: map[string]func(a, b entity.StoreSequence) int{
					"sequence_no": bySequence,
				},
			},
		}, deps),
	}
}

func bySequence(a, b entity.StoreSequence) int {
	return a.SequenceNo - b.SequenceNo
}

func setSequence(s *entity.StoreSequence, n int) {
	s.SequenceNo = n
}

// ReorderResult is the ordering after a reorder. When the bulk update failed the
// optimistic order is discarded: Items is the order the API still holds and
// RolledBack is set, with the failure in Message.
type ReorderResult struct {
	Items      []entity.StoreSequence `json:"items"`
	RolledBack bool                   `json:"rolled_back"`
	Message    string                 `json:"message,omitempty"`
}

// Sequence fetches the authoritative ordering, bypassing the snapshot cache
func (s *StoreSequenceService) Sequence(ctx context.Context) ([]entity.StoreSequence, error) {
	snap, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	items := append([]entity.StoreSequence{}, snap.Items...)
	slices.SortStableFunc(items, bySequence)
	return items, nil
}

// Move drags the entry at position from to position to (both 0-based) and
// persists the renumbered ordering with one bulk update
func (s *StoreSequenceService) Move(ctx context.Context, from, to int) (*ReorderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Sequence(ctx)
	if err != nil {
		return nil, err
	}

	session := reorder.NewSession(items, setSequence)
	if err := session.Pick(from); err != nil {
		return nil, positionError("from", err)
	}
	if err := session.Drop(to); err != nil {
		return nil, positionError("to", err)
	}
	pending, err := session.Persist()
	if err != nil {
		return nil, err
	}

	authoritative, persistErr := s.commit(ctx, pending)
	if err := session.Settle(persistErr, authoritative); err != nil {
		return nil, err
	}
	return s.result(session.Items(), session.RolledBack(), session.Failure())
}

// SetOrder persists a complete ordering given as the ids in their new order
func (s *StoreSequenceService) SetOrder(ctx context.Context, ids []entity.ID) (*ReorderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Sequence(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[entity.ID]entity.StoreSequence, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]entity.StoreSequence, 0, len(ids))
	seen := make(map[entity.ID]bool, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok || seen[id] {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "ids", Message: "must list every featured store exactly once"},
			})
		}
		seen[id] = true
		ordered = append(ordered, item)
	}
	if len(ordered) != len(items) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "ids", Message: "must list every featured store exactly once"},
		})
	}

	pending := reorder.Renumber(ordered, setSequence)
	authoritative, persistErr := s.commit(ctx, pending)
	if persistErr != nil {
		if authoritative == nil {
			authoritative = items
		}
		return s.result(authoritative, true, persistErr)
	}
	return s.result(pending, false, nil)
}

// commit sends the pending ordering. On failure it refetches the authoritative
// ordering; a nil slice means the refetch failed too.
func (s *StoreSequenceService) commit(ctx context.Context, pending []entity.StoreSequence) ([]entity.StoreSequence, error) {
	updates := make([]entity.SequenceUpdate, len(pending))
	for i, item := range pending {
		updates[i] = entity.SequenceUpdate{ID: item.ID, SequenceNo: item.SequenceNo}
	}

	res, err := s.repo.BulkUpdateSequence(ctx, updates)
	entry := AuditEntry{Action: enum.AuditActionReorder, Resource: s.Name(), Err: err}
	if res != nil {
		entry.Message = res.Message
	}
	s.deps.Audit.Record(ctx, entry)
	s.Invalidate(ctx)

	if err == nil {
		return nil, nil
	}
	observability.ReorderRollbacks.Inc()
	authoritative, refetchErr := s.Sequence(ctx)
	if refetchErr != nil {
		return nil, err
	}
	return authoritative, err
}

func (s *StoreSequenceService) result(items []entity.StoreSequence, rolledBack bool, failure error) (*ReorderResult, error) {
	// a cancelled request has nobody to show the rollback to
	if failure != nil && (errors.Is(failure, context.Canceled) || errors.Is(failure, context.DeadlineExceeded)) {
		return nil, failure
	}
	out := &ReorderResult{Items: items, RolledBack: rolledBack}
	if out.Items == nil {
		out.Items = []entity.StoreSequence{}
	}
	if failure != nil {
		out.Message = "Could not save the new order: " + failure.Error()
	}
	return out, nil
}

func positionError(field string, err error) error {
	if errors.Is(err, reorder.ErrOutOfRange) {
		return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: "is out of range"}})
	}
	return err
}

// SequenceInput adds a store to the featured ordering
type SequenceInput struct {
	StoreID    entity.ID `json:"store_id"`
	SequenceNo int       `json:"sequence_no"`
	IsActive   enum.Flag `json:"is_active"`
}

// Add features a store. Without a sequence number it is placed last.
func (s *StoreSequenceService) Add(ctx context.Context, in *SequenceInput) (*repository.MutationResult, error) {
	var v apperror.Validation
	v.Check(!in.StoreID.IsZero(), "store_id", "is required")
	v.Check(in.SequenceNo >= 0, "sequence_no", "must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Sequence(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.StoreID == in.StoreID {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "store_id", Message: "is already featured"},
			})
		}
	}
	if in.SequenceNo == 0 || in.SequenceNo > len(items)+1 {
		in.SequenceNo = len(items) + 1
	}
	in.IsActive = enum.FlagOn
	return s.Create(ctx, in)
}

// Remove drops a store from the featured ordering and closes the gap it leaves
func (s *StoreSequenceService) Remove(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.Sequence(ctx)
	if err != nil {
		return res, nil
	}
	items = slices.DeleteFunc(items, func(item entity.StoreSequence) bool { return item.ID == id })
	compact := reorder.Renumber(items, setSequence)
	if !slices.EqualFunc(items, compact, func(a, b entity.StoreSequence) bool { return a.SequenceNo == b.SequenceNo }) {
		// best effort; the entry itself is gone either way
		_, _ = s.commit(ctx, compact)
	}
	return res, nil
}
