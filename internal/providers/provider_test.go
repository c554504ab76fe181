package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

// scriptedProvider returns errs in order, then rows.
type scriptedProvider struct {
	name  string
	errs  []error
	rows  []wages.Row
	calls atomic.Int32
}

func (s *scriptedProvider) Name() string { return s.name }

func (s *scriptedProvider) FetchWages(ctx context.Context, season string) ([]wages.Row, error) {
	n := int(s.calls.Add(1))
	if n <= len(s.errs) {
		return nil, s.errs[n-1]
	}
	if s.rows != nil {
		return s.rows, nil
	}
	return []wages.Row{{Club: "Arsenal", Season: season, TotalWageBillGBP: 1}}, nil
}

type anonymousProvider struct{}

func (anonymousProvider) FetchWages(context.Context, string) ([]wages.Row, error) {
	return nil, errors.New("unused")
}

func TestWageProviderInterfaceImplemented(t *testing.T) {
	var _ WageProvider = (*scriptedProvider)(nil)
	var _ WageProvider = (*RateLimitedProvider)(nil)
}

func TestNameOf(t *testing.T) {
	if got := NameOf(&scriptedProvider{name: "fbref"}, "x"); got != "fbref" {
		t.Fatalf("expected fbref, got %q", got)
	}
	if got := NameOf(anonymousProvider{}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := NameOf(&scriptedProvider{}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for empty name, got %q", got)
	}
}
