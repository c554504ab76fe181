package providers

import (
	"context"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

// WageProvider fetches a season's club wage bills from an upstream source.
// Seasons are YYYY-YYYY strings, for example 2013-2014.
type WageProvider interface {
	FetchWages(ctx context.Context, season string) ([]wages.Row, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or fallback.
func NameOf(p WageProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
