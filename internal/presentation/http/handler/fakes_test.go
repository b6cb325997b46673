package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type identified interface {
	GetID() entity.ID
}

// fakeRepo serves a fixed list of records and records every write
type fakeRepo[T identified] struct {
	mu      sync.Mutex
	items   []T
	listErr error
	mutErr  error
	created []any
	updated map[entity.ID]any
	bulk    [][]entity.SequenceUpdate
	bulkErr error
}

func newFakeRepo[T identified](items ...T) *fakeRepo[T] {
	return &fakeRepo[T]{items: items, updated: map[entity.ID]any{}}
}

func (r *fakeRepo[T]) List(ctx context.Context, params map[string]string) (*repository.Snapshot[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return &repository.Snapshot[T]{Items: slices.Clone(r.items), Total: int64(len(r.items))}, nil
}

func (r *fakeRepo[T]) Get(ctx context.Context, id entity.ID) (*T, error) {
	for _, item := range r.items {
		if item.GetID() == id {
			return &item, nil
		}
	}
	return nil, apperror.NewNotFoundError("Record")
}

func (r *fakeRepo[T]) Create(ctx context.Context, payload any) (*repository.MutationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mutErr != nil {
		return nil, r.mutErr
	}
	r.created = append(r.created, payload)
	return &repository.MutationResult{RecordID: "new-1"}, nil
}

func (r *fakeRepo[T]) Update(ctx context.Context, id entity.ID, payload any) (*repository.MutationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mutErr != nil {
		return nil, r.mutErr
	}
	r.updated[id] = payload
	return &repository.MutationResult{RecordID: id}, nil
}

func (r *fakeRepo[T]) Deactivate(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	return r.Update(ctx, id, map[string]int{"is_active": 0})
}

func (r *fakeRepo[T]) Delete(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mutErr != nil {
		return nil, r.mutErr
	}
	r.items = slices.DeleteFunc(r.items, func(item T) bool { return item.GetID() == id })
	return &repository.MutationResult{RecordID: id}, nil
}

// fakeSequenceRepo applies bulk sequence updates to its rows
type fakeSequenceRepo struct {
	*fakeRepo[entity.StoreSequence]
}

func (r fakeSequenceRepo) BulkUpdateSequence(ctx context.Context, updates []entity.SequenceUpdate) (*repository.MutationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bulkErr != nil {
		return nil, r.bulkErr
	}
	r.bulk = append(r.bulk, updates)
	for _, u := range updates {
		for i := range r.items {
			if r.items[i].ID == u.ID {
				r.items[i].SequenceNo = u.SequenceNo
			}
		}
	}
	return &repository.MutationResult{Message: "Sequence updated"}, nil
}

// envelope is the decoded body of every API response
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    json.RawMessage `json:"errors"`
	Retryable bool            `json:"retryable"`
}

func perform(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != xlsxContentType {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}

var _ repository.StoreSequenceRepository = fakeSequenceRepo{}
