package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 2 * time.Second
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a WageProvider with retry/backoff behavior.
type retryingProvider struct {
	inner       WageProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
	now         func() time.Time
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// Rate limit responses wait at least the upstream Retry-After; permanent errors are not retried.
func NewRetryingProvider(inner WageProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) WageProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		now: time.Now,
	}
}

func (r *retryingProvider) Name() string {
	return r.name
}

func (r *retryingProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := r.now()
		rows, err := r.inner.FetchWages(ctx, season)
		r.metrics.RecordProviderAttempt(r.name, r.now().Sub(start), err)
		if err == nil {
			return rows, nil
		}
		lastErr = err

		delay := r.backoffFn(attempt)
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			if rl.RetryAfter > delay {
				delay = rl.RetryAfter
			}
		}

		if attempt == r.maxAttempts || IsPermanent(err) {
			break
		}

		logFetch(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.name, season, "provider fetch retry",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	logFetch(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.name, season, "provider fetch failed",
		slog.Any("error", lastErr),
	)
	return nil, lastErr
}
