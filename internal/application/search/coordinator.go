// Package search makes sure only the newest search of a screen is answered.
//
// Every search stream is keyed by operator, resource and screen session. A new
// request cancels the one still in flight for the same key, waits a quiet
// period so keystroke bursts collapse into one upstream call, and is dropped
// with apperror.ErrSuperseded if yet another request arrived meanwhile.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/loyalty-admin/internal/infrastructure/observability"
	"github.com/sangkips/loyalty-admin/pkg/apperror"
)

// Coordinator tracks the latest request of every search stream
type Coordinator struct {
	quiet time.Duration

	mu      sync.Mutex
	streams map[string]*stream
}

type stream struct {
	gen    uint64
	cancel context.CancelFunc
}

// NewCoordinator creates a coordinator that waits quiet before calling upstream
func NewCoordinator(quiet time.Duration) *Coordinator {
	return &Coordinator{
		quiet:   quiet,
		streams: make(map[string]*stream),
	}
}

// Key builds a stream key
func Key(operatorID, resource, session string) string {
	return strings.Join([]string{operatorID, resource, session}, "|")
}

func (c *Coordinator) begin(parent context.Context, key string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.streams[key]
	if !ok {
		s = &stream{}
		c.streams[key] = s
	} else if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

func (c *Coordinator) latest(key string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.streams[key]
	return ok && s.gen == gen
}

func (c *Coordinator) end(key string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.streams[key]
	if !ok || s.gen != gen {
		return
	}
	s.cancel()
	delete(c.streams, key)
}

// InFlight returns the number of streams with a request in progress
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.streams)
}

// Latest runs fn as the newest request of the stream key after the quiet
// period. It returns apperror.ErrSuperseded when a newer request for the same
// key arrives before fn's result could be delivered.
func Latest[T any](ctx context.Context, c *Coordinator, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	return run(ctx, c, key, c.quiet, fn)
}

// Replace is Latest without the quiet period, for requests that are not typed
// (paging, filter picks) but must still supersede a pending search.
func Replace[T any](ctx context.Context, c *Coordinator, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	return run(ctx, c, key, 0, fn)
}

func run[T any](ctx context.Context, c *Coordinator, key string, quiet time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	runCtx, gen := c.begin(ctx, key)
	defer c.end(key, gen)

	if quiet > 0 {
		timer := time.NewTimer(quiet)
		select {
		case <-runCtx.Done():
			timer.Stop()
			if !c.latest(key, gen) {
				observability.SearchSuperseded.Inc()
				return zero, apperror.ErrSuperseded
			}
			return zero, runCtx.Err()
		case <-timer.C:
		}
	}

	result, err := fn(runCtx)
	if !c.latest(key, gen) {
		observability.SearchSuperseded.Inc()
		return zero, apperror.ErrSuperseded
	}
	return result, err
}
