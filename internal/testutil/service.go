package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/pl-spend-service/internal/app/analysis"
	"github.com/preston-bernstein/pl-spend-service/internal/store"
)

// NewLoadedService builds an analysis service over a memory store, loaded with AnalysisTable.
func NewLoadedService(t *testing.T) *analysis.Service {
	t.Helper()
	svc := analysis.NewService(store.NewMemoryStore(), nil)
	if _, err := svc.Load(context.Background(), AnalysisTable(), "fixture"); err != nil {
		t.Fatalf("load fixture dataset: %v", err)
	}
	return svc
}
