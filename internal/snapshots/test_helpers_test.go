package snapshots

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

func sampleRows(long string) []wages.Row {
	return []wages.Row{
		{Club: "Arsenal", Season: long, TotalWageBillGBP: 166_000_000},
		{Club: "Burnley", Season: long, TotalWageBillGBP: 24_500_000.5},
	}
}

func writeSeason(t *testing.T, w *Writer, long string) string {
	t.Helper()
	path, err := w.WriteSeasonWages(long, sampleRows(long))
	if err != nil {
		t.Fatalf("failed to write season %s: %v", long, err)
	}
	return path
}

func requireFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	return data
}

func assertSeasonsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("seasons length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("seasons mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

// seasonProvider fails for the seasons in fail and records every request.
type seasonProvider struct {
	fail      map[string]error
	requested []string
}

func (p *seasonProvider) Name() string { return "stub" }

func (p *seasonProvider) FetchWages(ctx context.Context, long string) ([]wages.Row, error) {
	p.requested = append(p.requested, long)
	if err, ok := p.fail[long]; ok {
		return nil, err
	}
	return sampleRows(long), nil
}

var errUpstream = errors.New("upstream exploded")
