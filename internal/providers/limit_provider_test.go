package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimitedProviderFirstCallIsImmediate(t *testing.T) {
	inner := &scriptedProvider{name: "fbref"}
	rl := NewRateLimitedProvider(inner, time.Hour, nil)
	defer rl.Close()

	if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected inner provider called once, got %d", inner.calls.Load())
	}
	if rl.Name() != "fbref" {
		t.Fatalf("expected inner name, got %q", rl.Name())
	}
}

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &scriptedProvider{}
	rl := NewRateLimitedProvider(inner, 10*time.Millisecond, nil)
	defer rl.Close()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected second call to wait, elapsed %s", elapsed)
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &scriptedProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)
	defer rl.Close()

	if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rl.FetchWages(ctx, "2016-2017"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderCloseReleasesWaiters(t *testing.T) {
	rl := NewRateLimitedProvider(&scriptedProvider{}, time.Minute, nil)
	if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	rl.Close()
	rl.Close()
	if _, err := rl.FetchWages(context.Background(), "2016-2017"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable after close, got %v", err)
	}
}

func TestRateLimitedProviderClosedSkipsUpstreamAfterInterval(t *testing.T) {
	inner := &scriptedProvider{}
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)
	if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	rl.Close()
	time.Sleep(5 * time.Millisecond)

	if _, err := rl.FetchWages(context.Background(), "2016-2017"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable once the interval has passed, got %v", err)
	}
	fresh := NewRateLimitedProvider(inner, time.Hour, nil)
	fresh.Close()
	if _, err := fresh.FetchWages(context.Background(), "2017-2018"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected first call after close to fail, got %v", err)
	}
	if got := inner.calls.Load(); got != 1 {
		t.Fatalf("expected only the pre-close call upstream, got %d", got)
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedProvider(nil, time.Millisecond, nil)
	if _, err := rl.FetchWages(context.Background(), "2015-2016"); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderZeroIntervalDoesNotWait(t *testing.T) {
	inner := &scriptedProvider{}
	rl := NewRateLimitedProvider(inner, -time.Second, nil)
	defer rl.Close()
	if rl.interval != 0 {
		t.Fatalf("expected negative interval clamped to 0, got %s", rl.interval)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := rl.FetchWages(context.Background(), "2015-2016"); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected no spacing, took %s", elapsed)
	}
	if got := inner.calls.Load(); got != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", got)
	}
}
