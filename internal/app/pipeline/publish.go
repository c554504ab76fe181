package pipeline

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/pl-spend-service/internal/artifacts"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
)

// ArtifactStore returns the MinIO store when configured, else a local store
// under the artifacts directory.
func (r *Runner) ArtifactStore(ctx context.Context) (artifacts.ArtifactStore, error) {
	if r.cfg.MinIO.Enabled() {
		return artifacts.NewMinIOStore(ctx, r.cfg.MinIO)
	}
	return artifacts.NewLocalStore(r.cfg.Paths.ArtifactsDir), nil
}

// Publish uploads the pipeline outputs under runs/{timestamp}/. Outputs not
// produced yet are skipped with a warning.
func (r *Runner) Publish(ctx context.Context, dest artifacts.ArtifactStore) ([]artifacts.Published, error) {
	var published []artifacts.Published
	err := r.stage(ctx, StagePublish, func(ctx context.Context, logger *slog.Logger) (int, error) {
		var files []artifacts.File
		for _, path := range []string{
			r.cfg.Paths.Stacked,
			r.cfg.Paths.AnalysisReady,
			r.cfg.Paths.Efficiency,
			r.cfg.Paths.Regression,
		} {
			if !fileExists(path) {
				logging.Warn(logger, "artifact missing, skipping", logging.FieldFile, path)
				continue
			}
			files = append(files, artifacts.File{Path: path})
		}
		if len(files) == 0 {
			return 0, errNoArtifacts
		}

		prefix := artifacts.RunPrefix(r.now())
		out, err := artifacts.Publish(ctx, dest, prefix, files, logger)
		published = out
		if err != nil {
			return 0, err
		}
		for _, p := range out {
			r.printf("Published %s/%s (%d bytes)\n", dest.Location(), p.Key, p.Size)
		}
		return len(out), nil
	})
	return published, err
}
