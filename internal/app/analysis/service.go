// Package analysis serves the analysis-ready dataset and its derived results.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/regression"
	"github.com/preston-bernstein/pl-spend-service/internal/store"
)

var (
	// ErrNotLoaded is returned before the first successful load.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrModelNotFound is returned for ids outside the standard models.
	ErrModelNotFound = errors.New("model not found")
)

// Snapshot is everything derived from one load of the dataset.
type Snapshot struct {
	Source       string
	LoadedAt     time.Time
	ModTime      time.Time
	Rows         int
	Seasons      []string
	Missing      []dataset.MissingCount
	Correlations dataset.Correlations
	Models       map[int]regression.Fitted
	ModelErrors  map[int]error
	Efficiency   []dataset.Efficiency
}

// Service coordinates reads over the club-season store and the cached snapshot.
type Service struct {
	store  store.ClubSeasonStore
	logger *slog.Logger
	now    func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService constructs a Service with the provided store.
func NewService(st store.ClubSeasonStore, logger *slog.Logger) *Service {
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &Service{store: st, logger: logger, now: time.Now}
}

// LoadFile reads an analysis-ready CSV and loads it. An unchanged file (same
// path and modification time) is not parsed again.
func (s *Service) LoadFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat dataset: %w", err)
	}
	if cur := s.current(); cur != nil && cur.Source == path && cur.ModTime.Equal(info.ModTime()) {
		return nil
	}
	t, err := dataset.ReadCSVFile(path)
	if err != nil {
		return err
	}
	_, err = s.load(ctx, t, path, info.ModTime())
	return err
}

// Load replaces the store contents with t and recomputes the snapshot. A model
// that cannot be fitted is recorded in ModelErrors without failing the load.
func (s *Service) Load(ctx context.Context, t *dataset.Table, source string) (*Snapshot, error) {
	return s.load(ctx, t, source, time.Time{})
}

func (s *Service) load(ctx context.Context, t *dataset.Table, source string, modTime time.Time) (*Snapshot, error) {
	logger := logging.FromContext(ctx, s.logger)
	prepared := dataset.Prepare(t)
	records := dataset.ClubSeasons(prepared.Table)

	if err := s.replaceStore(ctx, records); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Source:       source,
		LoadedAt:     s.now().UTC(),
		ModTime:      modTime,
		Rows:         len(records),
		Seasons:      prepared.Table.Distinct(clubs.ColSeason),
		Missing:      prepared.Missing,
		Correlations: prepared.Correlations,
		Models:       make(map[int]regression.Fitted, len(regression.StandardModels)),
		ModelErrors:  make(map[int]error),
		Efficiency:   dataset.RankEfficiency(dataset.ComputeEfficiency(records)),
	}
	sort.Strings(snap.Seasons)

	inputs := regression.PrepareInputs(prepared.Table)
	for _, spec := range regression.StandardModels {
		res, err := regression.FitModel(inputs, spec.Formula)
		if err != nil {
			snap.ModelErrors[spec.ID] = err
			logging.Warn(logger, "model fit failed", "model", spec.ID, "error", err)
			continue
		}
		snap.Models[spec.ID] = regression.Fitted{Spec: spec, Result: res}
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	logging.Info(logger, "dataset loaded",
		logging.FieldFile, source,
		logging.FieldCount, snap.Rows,
		"seasons", len(snap.Seasons),
	)
	return snap, nil
}

func (s *Service) replaceStore(ctx context.Context, records []clubs.ClubSeason) error {
	existing, err := s.store.ListSeasons(ctx)
	if err != nil {
		return err
	}
	if _, err := store.ReplaceAll(ctx, s.store, records); err != nil {
		return err
	}
	present := make(map[string]bool)
	for _, r := range records {
		present[r.Season] = true
	}
	for _, season := range existing {
		if present[season] {
			continue
		}
		if err := s.store.ReplaceSeason(ctx, season, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Ready reports whether a dataset has been loaded.
func (s *Service) Ready() bool {
	return s.current() != nil
}

// Snapshot returns the latest snapshot.
func (s *Service) Snapshot() (*Snapshot, error) {
	snap := s.current()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Seasons lists the stored seasons.
func (s *Service) Seasons(ctx context.Context) ([]string, error) {
	return s.store.ListSeasons(ctx)
}

// ClubSeasons returns the records for one canonical season.
func (s *Service) ClubSeasons(ctx context.Context, season string) ([]clubs.ClubSeason, error) {
	return s.store.ClubSeasons(ctx, season)
}

// Correlations returns both correlation tables.
func (s *Service) Correlations() (dataset.Correlations, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return dataset.Correlations{}, err
	}
	return snap.Correlations, nil
}

// Model returns a fitted standard model by id.
func (s *Service) Model(id int) (regression.Fitted, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return regression.Fitted{}, err
	}
	if fitted, ok := snap.Models[id]; ok {
		return fitted, nil
	}
	if err, ok := snap.ModelErrors[id]; ok {
		return regression.Fitted{}, fmt.Errorf("model %d: %w", id, err)
	}
	return regression.Fitted{}, ErrModelNotFound
}

// Efficiency returns the ranking, limited to one season when season is set.
func (s *Service) Efficiency(season string) ([]dataset.Efficiency, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Efficiency, 0, len(snap.Efficiency))
	for _, e := range snap.Efficiency {
		if season == "" || e.Season == season {
			out = append(out, e)
		}
	}
	return out, nil
}
