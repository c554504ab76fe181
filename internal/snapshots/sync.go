package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
	"github.com/preston-bernstein/pl-spend-service/internal/providers"
)

const stageWages = "wages"

// SeasonResult is one saved season in a sync run.
type SeasonResult struct {
	Season string
	Rows   int
	File   string
}

// SeasonFailure is one season that could not be fetched or written.
type SeasonFailure struct {
	Season string
	Error  string
}

// RunSummary describes a completed sync run.
type RunSummary struct {
	RunID    string
	Provider string
	Results  []SeasonResult
	Failures []SeasonFailure
}

// SyncConfig controls wage sync behavior.
type SyncConfig struct {
	// Interval is the pause between season requests.
	Interval time.Duration
}

// Syncer fetches wage tables season by season and writes them to disk.
type Syncer struct {
	provider providers.WageProvider
	writer   *Writer
	cfg      SyncConfig
	logger   *slog.Logger
	metrics  *metrics.Recorder
	newRunID func() string
	now      func() time.Time
}

// NewSyncer constructs a wage syncer.
func NewSyncer(provider providers.WageProvider, writer *Writer, cfg SyncConfig, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	if cfg.Interval < 0 {
		cfg.Interval = 0
	}
	return &Syncer{
		provider: provider,
		writer:   writer,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		newRunID: func() string { return uuid.NewString() },
		now:      time.Now,
	}
}

// Run fetches each season in order. A failing season is recorded and the run
// moves on; the run log and failures file are always written. The returned
// error covers only a missing writer, cancellation or a run log write failure.
func (s *Syncer) Run(ctx context.Context, seasons []string) (RunSummary, error) {
	if s == nil || s.writer == nil {
		return RunSummary{}, errWriterNotConfigured
	}
	summary := RunSummary{
		RunID:    s.newRunID(),
		Provider: providers.NameOf(s.provider, "unknown"),
	}
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldRunID, summary.RunID))
	}
	logging.Info(logger, "wage sync starting",
		slog.Int("seasons", len(seasons)),
		slog.String(logging.FieldProvider, summary.Provider),
		slog.String("interval", s.cfg.Interval.String()),
	)

	start := s.now()
	var runErr error
	for i, long := range seasons {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		s.syncSeason(ctx, logger, long, &summary)
		if i < len(seasons)-1 {
			if err := sleep(ctx, s.cfg.Interval); err != nil {
				runErr = err
				break
			}
		}
	}

	if err := s.writer.WriteRunLog(summary); err != nil {
		runErr = errors.Join(runErr, err)
	}
	s.metrics.RecordStage(stageWages, s.now().Sub(start), runErr)

	logging.Info(logger, "wage sync finished",
		slog.Int("saved", len(summary.Results)),
		slog.Int("failed", len(summary.Failures)),
		slog.Int64(logging.FieldDurationMS, s.now().Sub(start).Milliseconds()),
	)
	return summary, runErr
}

func (s *Syncer) syncSeason(ctx context.Context, logger *slog.Logger, long string, summary *RunSummary) {
	fail := func(err error) {
		summary.Failures = append(summary.Failures, SeasonFailure{Season: long, Error: err.Error()})
		logging.Warn(logger, "wage sync season failed",
			slog.String(logging.FieldSeason, long),
			slog.Any("err", err),
		)
	}

	if s.provider == nil {
		fail(providers.ErrProviderUnavailable)
		return
	}
	rows, err := s.provider.FetchWages(ctx, long)
	if err != nil {
		fail(err)
		return
	}
	path, err := s.writer.WriteSeasonWages(long, rows)
	if err != nil {
		fail(err)
		return
	}
	s.metrics.RecordRows(stageWages, len(rows))
	summary.Results = append(summary.Results, SeasonResult{Season: long, Rows: len(rows), File: path})
	logging.Info(logger, "wage season saved",
		slog.String(logging.FieldSeason, long),
		slog.Int(logging.FieldCount, len(rows)),
		slog.String(logging.FieldFile, path),
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
