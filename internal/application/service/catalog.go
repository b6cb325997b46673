package service

import (
	"context"
	"errors"
	"log"
	"maps"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sangkips/loyalty-admin/internal/application/search"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/domain/enum"
	"github.com/sangkips/loyalty-admin/internal/domain/repository"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/cache"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/observability"
	infraRepo "github.com/sangkips/loyalty-admin/internal/infrastructure/repository"
	"github.com/sangkips/loyalty-admin/pkg/listing"
)

// CatalogDeps holds what every resource catalog shares
type CatalogDeps struct {
	Cache    cache.Cache
	TTL      time.Duration
	Searches *search.Coordinator
	Audit    *AuditService
}

// CatalogOptions describes one resource screen
type CatalogOptions[T any] struct {
	Name string
	Spec listing.Spec[T]
	// ServerSearch sends the search text to the loyalty API instead of matching locally
	ServerSearch bool
	// Summarize computes the stat cards shown above the table from the whole snapshot
	Summarize func(items []T) map[string]any
}

// ListRequest is one listing request of a screen
type ListRequest struct {
	Query listing.Query
	// Session identifies the screen instance so a newer search supersedes an older one
	Session string
	// Params are passed to the loyalty API as query parameters
	Params map[string]string
}

// Catalog lists and mutates one resource of the loyalty API. Listing works on a
// cached snapshot of the whole resource; every successful mutation drops the
// snapshots of the resource and is written to the audit log.
type Catalog[T any] struct {
	name         string
	repo         repository.LoyaltyRepository[T]
	spec         listing.Spec[T]
	serverSearch bool
	summarize    func([]T) map[string]any
	deps         CatalogDeps

	// generation counts invalidations; a snapshot read that started before
	// one must not be cached
	generation atomic.Uint64
}

// NewCatalog creates a new catalog
func NewCatalog[T any](repo repository.LoyaltyRepository[T], opts CatalogOptions[T], deps CatalogDeps) *Catalog[T] {
	if deps.TTL <= 0 {
		deps.TTL = 30 * time.Second
	}
	return &Catalog[T]{
		name:         opts.Name,
		repo:         repo,
		spec:         opts.Spec,
		serverSearch: opts.ServerSearch,
		summarize:    opts.Summarize,
		deps:         deps,
	}
}

// Name returns the resource name
func (c *Catalog[T]) Name() string {
	return c.name
}

// List searches, filters, sorts and pages the resource
func (c *Catalog[T]) List(ctx context.Context, req ListRequest) (*listing.PaginatedResult[T], error) {
	run := func(ctx context.Context) (*listing.PaginatedResult[T], error) {
		return c.list(ctx, req)
	}
	if c.deps.Searches == nil || req.Session == "" {
		return run(ctx)
	}

	op := infraRepo.OperatorOrAnonymous(ctx)
	key := search.Key(op.ID, c.name, req.Session)
	if strings.TrimSpace(req.Query.Search) != "" {
		return search.Latest(ctx, c.deps.Searches, key, run)
	}
	return search.Replace(ctx, c.deps.Searches, key, run)
}

func (c *Catalog[T]) list(ctx context.Context, req ListRequest) (*listing.PaginatedResult[T], error) {
	params := maps.Clone(req.Params)
	if params == nil {
		params = map[string]string{}
	}
	spec := c.spec
	if term := strings.TrimSpace(req.Query.Search); c.serverSearch && term != "" {
		params["search"] = term
		spec.SearchFields = nil
	}

	snap, err := c.Snapshot(ctx, params)
	if err != nil {
		return nil, err
	}

	result := listing.Apply(snap.Items, req.Query, spec)
	result.Stats = c.stats(snap)
	return result, nil
}

func (c *Catalog[T]) stats(snap *repository.Snapshot[T]) map[string]any {
	if len(snap.Stats) == 0 && c.summarize == nil {
		return nil
	}
	out := maps.Clone(snap.Stats)
	if out == nil {
		out = map[string]any{}
	}
	if c.summarize != nil {
		maps.Copy(out, c.summarize(snap.Items))
	}
	return out
}

// Snapshot returns every record matching params, from the cache when fresh
func (c *Catalog[T]) Snapshot(ctx context.Context, params map[string]string) (*repository.Snapshot[T], error) {
	key := c.snapshotKey(ctx, params)

	if c.deps.Cache != nil {
		var snap repository.Snapshot[T]
		err := cache.GetJSON(ctx, c.deps.Cache, key, &snap)
		switch {
		case err == nil:
			observability.SnapshotCache.WithLabelValues(c.name, "hit").Inc()
			return &snap, nil
		case errors.Is(err, cache.ErrNotFound):
			observability.SnapshotCache.WithLabelValues(c.name, "miss").Inc()
		default:
			observability.SnapshotCache.WithLabelValues(c.name, "error").Inc()
			log.Printf("Warning: snapshot cache read for %s failed: %v", c.name, err)
		}
	}

	generation := c.generation.Load()
	snap, err := c.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if c.deps.Cache != nil && c.generation.Load() == generation {
		if err := cache.SetJSON(ctx, c.deps.Cache, key, snap, c.deps.TTL); err != nil {
			log.Printf("Warning: snapshot cache write for %s failed: %v", c.name, err)
		}
		// an invalidation that landed during the write
		if c.generation.Load() != generation {
			_ = c.deps.Cache.Delete(context.WithoutCancel(ctx), key)
		}
	}
	return snap, nil
}

// snapshotKey is scoped by operator: two operators may see different records
func (c *Catalog[T]) snapshotKey(ctx context.Context, params map[string]string) string {
	op := infraRepo.OperatorOrAnonymous(ctx)
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	return c.snapshotPrefix() + op.ID + ":" + query.Encode()
}

func (c *Catalog[T]) snapshotPrefix() string {
	return "snapshot:" + c.name + ":"
}

// Invalidate drops every cached snapshot of the resource
func (c *Catalog[T]) Invalidate(ctx context.Context) {
	c.generation.Add(1)
	if c.deps.Cache == nil {
		return
	}
	if err := c.deps.Cache.DeletePrefix(context.WithoutCancel(ctx), c.snapshotPrefix()); err != nil {
		log.Printf("Warning: failed to invalidate %s snapshots: %v", c.name, err)
	}
}

// Get retrieves one record
func (c *Catalog[T]) Get(ctx context.Context, id entity.ID) (*T, error) {
	return c.repo.Get(ctx, id)
}

// Create sends a new record
func (c *Catalog[T]) Create(ctx context.Context, payload any) (*repository.MutationResult, error) {
	res, err := c.repo.Create(ctx, payload)
	c.after(ctx, enum.AuditActionCreate, "", res, err)
	return res, err
}

// Update replaces a record
func (c *Catalog[T]) Update(ctx context.Context, id entity.ID, payload any) (*repository.MutationResult, error) {
	res, err := c.repo.Update(ctx, id, payload)
	c.after(ctx, enum.AuditActionUpdate, id, res, err)
	return res, err
}

// Deactivate soft-deletes a record
func (c *Catalog[T]) Deactivate(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	res, err := c.repo.Deactivate(ctx, id)
	c.after(ctx, enum.AuditActionSoftDelete, id, res, err)
	return res, err
}

// Delete removes a record for good
func (c *Catalog[T]) Delete(ctx context.Context, id entity.ID) (*repository.MutationResult, error) {
	res, err := c.repo.Delete(ctx, id)
	c.after(ctx, enum.AuditActionDelete, id, res, err)
	return res, err
}

func (c *Catalog[T]) after(ctx context.Context, action enum.AuditAction, id entity.ID, res *repository.MutationResult, err error) {
	entry := AuditEntry{Action: action, Resource: c.name, RecordID: id, Err: err}
	if res != nil {
		entry.Message = res.Message
		if id.IsZero() {
			entry.RecordID = res.RecordID
		}
	}
	if err == nil {
		c.Invalidate(ctx)
	}
	c.deps.Audit.Record(ctx, entry)
}
