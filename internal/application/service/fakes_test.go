package service

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"sync"
	"testing"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

var errUpstream = errors.New("upstream unavailable")

type identified interface {
	GetID() entity.ID
}

// fakeRepo is an in-memory collection of the loyalty API
type fakeRepo[T identified] struct {
	mu         sync.Mutex
	items      []T
	stats      map[string]any
	listErr    error
	mutErr     error
	listCalls  int
	lastParams map[string]string

	created     []any
	updated     map[entity.ID]any
	deactivated []entity.ID
	deleted     []entity.ID
}

func newFakeRepo[T identified](items ...T) *fakeRepo[T] {
	return &fakeRepo[T]{items: items, updated: map[entity.ID]any{}}
}

func (f *fakeRepo[T]) List(ctx context.Context, params map[string]string) (*repository.Snapshot[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastParams = maps.Clone(params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	items := append([]T{}, f.items...)
	return &repository.Snapshot[T]{Items: items, Total: int64(len(items)), Stats: f.stats}, nil
}

func (f *fakeRepo[T]) Get(ctx context.Context, id entity.ID) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.GetID() == id {
			return &item, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo[T]) Create(ctx context.Context, payload any) (*repository.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.created = append(f.created, payload)
	return &repository.MutationResult{Message: "Created", RecordID: "new-1"}, nil
}

func (f *fakeRepo[T]) Update(ctx context.Context, id entity.ID, payload any) (*repository.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.updated[id] = payload
	return &repository.MutationResult{Message: "Updated"}, nil
}

func (f *fakeRepo[T]) Deactivate(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.deactivated = append(f.deactivated, id)
	return &repository.MutationResult{Message: "Deactivated"}, nil
}

func (f *fakeRepo[T]) Delete(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.items[:0]
	for _, item := range f.items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return &repository.MutationResult{Message: "Deleted"}, nil
}

func (f *fakeRepo[T]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// fakeSequenceRepo applies bulk updates to its rows unless bulkErr is set
type fakeSequenceRepo struct {
	*fakeRepo[entity.StoreSequence]
	bulkErr   error
	bulkCalls [][]entity.SequenceUpdate
}

func newFakeSequenceRepo(items ...entity.StoreSequence) *fakeSequenceRepo {
	return &fakeSequenceRepo{fakeRepo: newFakeRepo(items...)}
}

func (f *fakeSequenceRepo) BulkUpdateSequence(ctx context.Context, updates []entity.SequenceUpdate) (*repository.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkCalls = append(f.bulkCalls, updates)
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	seq := make(map[entity.ID]int, len(updates))
	for _, u := range updates {
		seq[u.ID] = u.SequenceNo
	}
	for i := range f.items {
		if n, ok := seq[f.items[i].ID]; ok {
			f.items[i].SequenceNo = n
		}
	}
	return &repository.MutationResult{Message: "Sequence updated"}, nil
}

// fakeAuditRepo keeps audit rows in memory
type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (f *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter repository.AuditFilter, params *listing.PaginationParams) ([]entity.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.AuditLog{}, f.logs...), int64(len(f.logs)), nil
}

func (f *fakeAuditRepo) entries() []entity.AuditLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.AuditLog{}, f.logs...)
}

// validationFields fails the test unless err is a validation error
func validationFields(t *testing.T, err error) []apperror.FieldError {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("err = %v, want a validation error", err)
	}
	return appErr.Errors
}
