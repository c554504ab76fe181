package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

// RateLimitedProvider enforces a minimum interval between upstream calls.
// The first call proceeds immediately.
type RateLimitedProvider struct {
	next     WageProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
	done chan struct{}
	once sync.Once
}

// NewRateLimitedProvider returns a provider that spaces calls by interval.
// Calls block until the interval elapses. A zero or negative interval turns
// spacing off.
func NewRateLimitedProvider(next WageProvider, interval time.Duration, logger *slog.Logger) *RateLimitedProvider {
	if interval < 0 {
		interval = 0
	}
	return &RateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

func (p *RateLimitedProvider) Name() string {
	if p == nil {
		return ""
	}
	return NameOf(p.next, "rate-limited")
}

// FetchWages waits for the next slot and delegates.
func (p *RateLimitedProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.done:
		return nil, ErrProviderUnavailable
	default:
	}

	if !p.last.IsZero() {
		wait := p.interval - p.now().Sub(p.last)
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				logFetch(ctx, p.logger, slog.LevelWarn, p.Name(), season, "rate-limited fetch canceled")
				return nil, ctx.Err()
			case <-p.done:
				return nil, ErrProviderUnavailable
			case <-timer.C:
			}
		}
	}
	p.last = p.now()
	logFetch(ctx, p.logger, slog.LevelDebug, p.Name(), season, "rate-limited provider fetch")
	return p.next.FetchWages(ctx, season)
}

// Close releases waiters. Every later call fails with ErrProviderUnavailable
// without reaching the wrapped provider.
func (p *RateLimitedProvider) Close() {
	if p == nil {
		return
	}
	p.once.Do(func() { close(p.done) })
}
