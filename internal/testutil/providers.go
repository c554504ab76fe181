package testutil

import (
	"context"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
)

// GoodProvider returns the provided rows, restamped with the requested season.
type GoodProvider struct {
	Rows []wages.Row
}

func (p GoodProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	_ = ctx
	out := make([]wages.Row, len(p.Rows))
	for i, r := range p.Rows {
		r.Season = season
		out[i] = r
	}
	return out, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	return nil, p.Err
}

// EmptyProvider returns no rows, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	return []wages.Row{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	return nil, providers.ErrProviderUnavailable
}

// NotifyingProvider returns rows and closes Notify on first fetch.
type NotifyingProvider struct {
	Rows   []wages.Row
	Notify chan struct{}
}

func (p *NotifyingProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	_ = ctx
	_ = season
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return p.Rows, nil
}
