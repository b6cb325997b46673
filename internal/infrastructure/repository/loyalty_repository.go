package repository

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	domainRepo "github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
)

type loyaltyRepository[T upstream.Identified] struct {
	client *upstream.Client
	res    upstream.Resource
}

// NewLoyaltyRepository creates a repository backed by one resource of the loyalty API
func NewLoyaltyRepository[T upstream.Identified](client *upstream.Client, res upstream.Resource) domainRepo.LoyaltyRepository[T] {
	return &loyaltyRepository[T]{client: client, res: res}
}

func (r *loyaltyRepository[T]) List(ctx context.Context, params map[string]string) (*domainRepo.Snapshot[T], error) {
	query := url.Values{}
	for k, v := range params {
		if v != "" {
			query.Set(k, v)
		}
	}

	items, meta, err := upstream.FetchAll[T](ctx, r.client, r.res, query)
	if err != nil {
		return nil, err
	}

	snap := &domainRepo.Snapshot[T]{
		Items:     items,
		Total:     int64(len(items)),
		FetchedAt: time.Now().UTC(),
	}
	if meta != nil {
		snap.Stats = meta.Stats
		if total := meta.Pagination.TotalItems(); total > snap.Total {
			snap.Total = total
		}
	}
	return snap, nil
}

func (r *loyaltyRepository[T]) Get(ctx context.Context, id entity.ID) (*T, error) {
	record, err := upstream.FetchOne[T](ctx, r.client, r.res, id.String())
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *loyaltyRepository[T]) Create(ctx context.Context, payload any) (*domainRepo.MutationResult, error) {
	reply, err := upstream.Send(ctx, r.client, http.MethodPost, r.res, "", payload)
	if err != nil {
		return nil, err
	}
	return r.result(reply, ""), nil
}

func (r *loyaltyRepository[T]) Update(ctx context.Context, id entity.ID, payload any) (*domainRepo.MutationResult, error) {
	reply, err := upstream.Send(ctx, r.client, http.MethodPut, r.res, "/"+url.PathEscape(id.String()), payload)
	if err != nil {
		return nil, err
	}
	return r.result(reply, id), nil
}

func (r *loyaltyRepository[T]) Deactivate(ctx context.Context, id entity.ID) (*domainRepo.MutationResult, error) {
	reply, err := upstream.Send(ctx, r.client, http.MethodPatch, r.res, "/"+url.PathEscape(id.String()), map[string]int{"is_active": 0})
	if err != nil {
		return nil, err
	}
	return r.result(reply, id), nil
}

func (r *loyaltyRepository[T]) Delete(ctx context.Context, id entity.ID) (*domainRepo.MutationResult, error) {
	reply, err := upstream.Send(ctx, r.client, http.MethodDelete, r.res, "/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return nil, err
	}
	return r.result(reply, id), nil
}

// result reads the message and, for creates, the id of the new record
func (r *loyaltyRepository[T]) result(reply *upstream.Reply, id entity.ID) *domainRepo.MutationResult {
	out := &domainRepo.MutationResult{Message: reply.Message, RecordID: id}
	if id.IsZero() {
		if record, ok := upstream.DecodeReply[T](reply, r.res); ok {
			out.RecordID = record.GetID()
		}
	}
	return out
}

type storeSequenceRepository struct {
	domainRepo.LoyaltyRepository[entity.StoreSequence]
	client *upstream.Client
	res    upstream.Resource
}

// NewStoreSequenceRepository creates the featured stores repository
func NewStoreSequenceRepository(client *upstream.Client, res upstream.Resource) domainRepo.StoreSequenceRepository {
	return &storeSequenceRepository{
		LoyaltyRepository: NewLoyaltyRepository[entity.StoreSequence](client, res),
		client:            client,
		res:               res,
	}
}

func (r *storeSequenceRepository) BulkUpdateSequence(ctx context.Context, updates []entity.SequenceUpdate) (*domainRepo.MutationResult, error) {
	body := map[string][]entity.SequenceUpdate{"sequences": updates}
	reply, err := upstream.Send(ctx, r.client, http.MethodPut, r.res, "/bulk-update-sequence", body)
	if err != nil {
		return nil, err
	}
	return &domainRepo.MutationResult{Message: reply.Message}, nil
}
