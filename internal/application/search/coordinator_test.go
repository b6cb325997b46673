package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/loyalty-admin/pkg/apperror"
)

func TestLatest_SingleRequest(t *testing.T) {
	c := NewCoordinator(0)
	got, err := Latest(context.Background(), c, "k", func(ctx context.Context) (string, error) {
		return "rows", nil
	})
	if err != nil || got != "rows" {
		t.Fatalf("Latest = %q, %v, want rows", got, err)
	}
	if c.InFlight() != 0 {
		t.Errorf("InFlight = %d, want 0 after completion", c.InFlight())
	}
}

func TestLatest_NewerRequestSupersedesInFlight(t *testing.T) {
	c := NewCoordinator(0)
	key := Key("op-1", "users", "tab-1")

	started := make(chan struct{})
	var wg sync.WaitGroup
	var firstErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = Latest(context.Background(), c, key, func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "stale", ctx.Err()
		})
	}()

	<-started
	got, err := Latest(context.Background(), c, key, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	wg.Wait()

	if err != nil || got != "fresh" {
		t.Errorf("latest = %q, %v, want fresh", got, err)
	}
	if !errors.Is(firstErr, apperror.ErrSuperseded) {
		t.Errorf("first err = %v, want ErrSuperseded", firstErr)
	}
}

func TestLatest_QuietPeriodCollapsesBurst(t *testing.T) {
	c := NewCoordinator(50 * time.Millisecond)
	key := Key("op-1", "stores", "s")

	var mu sync.Mutex
	var upstreamCalls []string
	search := func(term string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			mu.Lock()
			upstreamCalls = append(upstreamCalls, term)
			mu.Unlock()
			return term, nil
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 3)
	results := make([]string, 3)
	for i, term := range []string{"c", "co", "cof"} {
		wg.Add(1)
		go func(i int, term string) {
			defer wg.Done()
			results[i], errs[i] = Latest(context.Background(), c, key, search(term))
		}(i, term)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		if !errors.Is(errs[i], apperror.ErrSuperseded) {
			t.Errorf("request %d err = %v, want ErrSuperseded", i, errs[i])
		}
	}
	if errs[2] != nil || results[2] != "cof" {
		t.Errorf("last request = %q, %v, want cof", results[2], errs[2])
	}
	if len(upstreamCalls) != 1 || upstreamCalls[0] != "cof" {
		t.Errorf("upstream calls = %v, want only [cof]", upstreamCalls)
	}
}

func TestLatest_DifferentStreamsDoNotInterfere(t *testing.T) {
	c := NewCoordinator(20 * time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, key := range []string{Key("op-1", "users", "s"), Key("op-2", "users", "s")} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			_, errs[i] = Latest(context.Background(), c, key, func(ctx context.Context) (int, error) {
				return i, nil
			})
		}(i, key)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("stream %d err = %v, want nil", i, err)
		}
	}
}

func TestLatest_CallerCancellation(t *testing.T) {
	c := NewCoordinator(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Latest(ctx, c, "k", func(ctx context.Context) (int, error) {
		t.Error("fn should not run after the caller went away")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReplace_SupersedesPendingSearch(t *testing.T) {
	c := NewCoordinator(time.Second)
	key := Key("op-1", "coupons", "s")

	done := make(chan error, 1)
	go func() {
		_, err := Latest(context.Background(), c, key, func(ctx context.Context) (string, error) {
			return "typed", nil
		})
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)

	got, err := Replace(context.Background(), c, key, func(ctx context.Context) (string, error) {
		return "page 2", nil
	})
	if err != nil || got != "page 2" {
		t.Errorf("Replace = %q, %v, want page 2", got, err)
	}
	if err := <-done; !errors.Is(err, apperror.ErrSuperseded) {
		t.Errorf("pending search err = %v, want ErrSuperseded", err)
	}
}
