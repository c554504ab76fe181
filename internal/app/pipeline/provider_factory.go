package pipeline

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/pl-spend-service/internal/config"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
	"github.com/preston-bernstein/pl-spend-service/internal/providers/fbref"
	"github.com/preston-bernstein/pl-spend-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.WageProvider {
	switch strings.ToLower(cfg.Provider) {
	case "fixture":
		return fixture.New()
	case "fbref", "":
		return fbref.NewClient(fbref.Config{
			BaseURL:   cfg.FBref.BaseURL,
			UserAgent: cfg.FBref.UserAgent,
			Timeout:   cfg.FBref.Timeout,
		})
	default:
		logging.Warn(logger, "unknown wages provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: recorder}
}

// build returns the wrapped provider and a close func for its rate limiter.
func (f providerFactory) build(cfg config.Config) (providers.WageProvider, func()) {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, cfg.FBref.Sleep, f.logger)
	name := providers.NameOf(base, strings.ToLower(cfg.Provider))
	wrapped := providers.NewRetryingProvider(limited, f.logger, f.metrics, name, cfg.FBref.Attempts, cfg.FBref.Backoff)
	return wrapped, limited.Close
}
