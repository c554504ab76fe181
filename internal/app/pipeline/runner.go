// Package pipeline runs the analysis stages end to end: ingest, prepare,
// regress, wage sync, reconcile, efficiency, store and publish.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/config"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
)

// Stage names used in logs and metrics.
const (
	StageIngest     = "ingest"
	StagePrepare    = "prepare"
	StageRegress    = "regress"
	StageReconcile  = "reconcile"
	StageEfficiency = "efficiency"
	StageStore      = "store"
	StagePublish    = "publish"
)

// Runner executes pipeline stages against the configured paths.
type Runner struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Recorder
	out     io.Writer
	now     func() time.Time

	// newProvider is swapped in tests.
	newProvider func(config.Config) (providers.WageProvider, func())
}

// New constructs a Runner. Human-readable stage output goes to out.
func New(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	r := &Runner{
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		out:     out,
		now:     time.Now,
	}
	r.newProvider = newProviderFactory(logger, recorder).build
	return r
}

// Config returns the runner's configuration.
func (r *Runner) Config() config.Config {
	return r.cfg
}

// stage times fn, records the outcome and logs it. fn returns the number of
// rows it produced.
func (r *Runner) stage(ctx context.Context, name string, fn func(ctx context.Context, logger *slog.Logger) (int, error)) error {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldStage, name))
	}
	start := r.now()
	rows, err := fn(ctx, logger)
	elapsed := r.now().Sub(start)

	r.metrics.RecordStage(name, elapsed, err)
	if err != nil {
		logging.Error(logger, "stage failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		return fmt.Errorf("%s: %w", name, err)
	}
	r.metrics.RecordRows(name, rows)
	logging.Info(logger, "stage complete",
		logging.FieldCount, rows,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// writeFileAtomic writes data to a temp file next to path and renames it.
func writeFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var errNoArtifacts = errors.New("no artifacts to publish")
