package pipeline

import (
	"context"

	"github.com/preston-bernstein/pl-spend-service/internal/season"
	"github.com/preston-bernstein/pl-spend-service/internal/snapshots"
)

// Wages scrapes every season in the inclusive YYYY-YYYY range into the wages
// directory. Empty bounds fall back to the configured range.
func (r *Runner) Wages(ctx context.Context, start, end string) (snapshots.RunSummary, error) {
	if start == "" {
		start = r.cfg.FBref.StartSeason
	}
	if end == "" {
		end = r.cfg.FBref.EndSeason
	}
	seasons, err := season.Range(start, end)
	if err != nil {
		return snapshots.RunSummary{}, err
	}

	provider, closeProvider := r.newProvider(r.cfg)
	defer closeProvider()

	syncer := snapshots.NewSyncer(provider, snapshots.NewWriter(r.cfg.Paths.WagesDir),
		snapshots.SyncConfig{Interval: r.cfg.FBref.Sleep}, r.logger, r.metrics)
	summary, err := syncer.Run(ctx, seasons)
	r.printf("Saved %d season(s), %d failure(s) to %s\n", len(summary.Results), len(summary.Failures), r.cfg.Paths.WagesDir)
	for _, f := range summary.Failures {
		r.printf("  %s: %s\n", f.Season, f.Error)
	}
	return summary, err
}
