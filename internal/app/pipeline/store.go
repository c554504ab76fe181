package pipeline

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/pl-spend-service/internal/database"
	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/snapshots"
	"github.com/preston-bernstein/pl-spend-service/internal/store"
)

// Store migrates the configured database and loads the analysis-ready
// club-seasons plus any scraped wage files into it.
func (r *Runner) Store(ctx context.Context) (int, error) {
	var seasons int
	err := r.stage(ctx, StageStore, func(ctx context.Context, logger *slog.Logger) (int, error) {
		t, err := dataset.ReadCSVFile(r.cfg.Paths.AnalysisReady)
		if err != nil {
			return 0, err
		}
		db, dialect, err := database.Open(ctx, r.cfg.Database)
		if err != nil {
			return 0, err
		}
		defer db.Close()
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return 0, err
		}

		sqlStore := store.NewSQLStore(db, dialect)
		records := dataset.ClubSeasons(t)
		n, err := store.ReplaceAll(ctx, sqlStore, records)
		if err != nil {
			return 0, err
		}
		seasons = n

		all, err := snapshots.NewFSStore(r.cfg.Paths.WagesDir).LoadAll()
		if err != nil {
			return 0, err
		}
		provider := r.cfg.Provider
		if m, err := snapshots.ReadManifest(r.cfg.Paths.WagesDir); err == nil && m.Provider != "" {
			provider = m.Provider
		}
		for _, sw := range all {
			sw.Provider = provider
			if err := sqlStore.ReplaceWages(ctx, sw); err != nil {
				return 0, err
			}
		}
		if len(all) > 0 {
			logging.Info(logger, "wage tables stored", logging.FieldCount, len(all), logging.FieldProvider, provider)
		}
		r.printf("Stored %d club-seasons across %d seasons (%s)\n", len(records), n, dialect)
		return len(records), nil
	})
	return seasons, err
}
