package snapshots

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Store defines how wage snapshots are loaded.
type Store interface {
	LoadSeasonWages(long string) ([]wages.Row, error)
	Seasons() ([]string, error)
}

// FSStore loads wage snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSeasonWages reads {basePath}/wages_YYYY_YYYY.csv. Rows with an
// unparsable wage figure are skipped.
func (s *FSStore) LoadSeasonWages(long string) ([]wages.Row, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if _, err := season.Slug(long); err != nil {
		return nil, err
	}
	t, err := dataset.ReadCSVFile(WagesPath(s.basePath, long))
	if err != nil {
		return nil, err
	}
	for _, col := range []string{ColClub, ColWagesGBP} {
		if !t.Has(col) {
			return nil, fmt.Errorf("wages %s: missing column %q", long, col)
		}
	}

	rows := make([]wages.Row, 0, t.Len())
	for i := range t.Rows {
		amount, ok := dataset.ParseNumber(t.Value(i, ColWagesGBP))
		club := t.Value(i, ColClub)
		if !ok || club == "" {
			continue
		}
		rowSeason := t.Value(i, ColSeason)
		if rowSeason == "" {
			rowSeason = long
		}
		rows = append(rows, wages.Row{Club: club, Season: rowSeason, TotalWageBillGBP: amount})
	}
	return rows, nil
}

// Seasons lists the seasons with a wage CSV on disk.
func (s *FSStore) Seasons() ([]string, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	return listSeasons(s.basePath)
}

// LoadAll reads every season on disk, in season order.
func (s *FSStore) LoadAll() ([]wages.SeasonWages, error) {
	seasons, err := s.Seasons()
	if err != nil {
		return nil, err
	}
	out := make([]wages.SeasonWages, 0, len(seasons))
	for _, long := range seasons {
		rows, err := s.LoadSeasonWages(long)
		if err != nil {
			return nil, err
		}
		out = append(out, wages.SeasonWages{Season: long, Rows: rows})
	}
	return out, nil
}
