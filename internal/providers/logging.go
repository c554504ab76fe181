package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
)

// logFetch writes a wage-fetch event tagged with the provider and season.
// A nil logger drops the event.
func logFetch(ctx context.Context, logger *slog.Logger, level slog.Level, provider, season, msg string, attrs ...slog.Attr) {
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	attrs = append(attrs,
		slog.String(logging.FieldProvider, provider),
		slog.String(logging.FieldSeason, season),
	)
	logger.LogAttrs(ctx, level, msg, attrs...)
}
