package ingest

import (
	"fmt"
	"io"
	"sort"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// SeasonCount is the number of club rows recorded for a season.
type SeasonCount struct {
	Season string `json:"season"`
	Clubs  int    `json:"clubs"`
}

// Duplicate is a (season, club) pair that appears more than once.
type Duplicate struct {
	Season string `json:"season"`
	Club   string `json:"club"`
}

// Report summarises the stacked table for quick integrity checks.
type Report struct {
	Rows          int           `json:"rows"`
	Seasons       int           `json:"seasons"`
	Clubs         int           `json:"clubs"`
	RowsPerSeason []SeasonCount `json:"rowsPerSeason"`
	// Duplicates lists every member row of a duplicated pair.
	Duplicates []Duplicate `json:"duplicates"`
}

// BuildReport counts rows, seasons and clubs and finds duplicate club-seasons.
func BuildReport(t *dataset.Table) Report {
	r := Report{
		Rows:       t.Len(),
		Seasons:    len(t.Distinct(clubs.ColSeason)),
		Clubs:      len(t.Distinct(clubs.ColClub)),
		Duplicates: []Duplicate{},
	}

	perSeason := make(map[string]int)
	pairs := make(map[Duplicate]int)
	for i := range t.Rows {
		s, c := t.Value(i, clubs.ColSeason), t.Value(i, clubs.ColClub)
		if c != "" {
			perSeason[s]++
		}
		pairs[Duplicate{Season: s, Club: c}]++
	}

	for s, n := range perSeason {
		r.RowsPerSeason = append(r.RowsPerSeason, SeasonCount{Season: s, Clubs: n})
	}
	sort.Slice(r.RowsPerSeason, func(i, j int) bool {
		return r.RowsPerSeason[i].Season < r.RowsPerSeason[j].Season
	})

	for pair, n := range pairs {
		for k := 0; k < n && n > 1; k++ {
			r.Duplicates = append(r.Duplicates, pair)
		}
	}
	sort.Slice(r.Duplicates, func(i, j int) bool {
		a, b := r.Duplicates[i], r.Duplicates[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Club < b.Club
	})
	return r
}

// WriteText renders the report the way the ingest command prints it.
func (r Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Rows: %d\nSeasons: %d\nUnique clubs: %d\n\nRows per season:\n", r.Rows, r.Seasons, r.Clubs); err != nil {
		return err
	}
	for _, sc := range r.RowsPerSeason {
		if _, err := fmt.Fprintf(w, "  %s  %d\n", sc.Season, sc.Clubs); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nDuplicate season,club rows: %d\n", len(r.Duplicates)); err != nil {
		return err
	}
	for _, d := range r.Duplicates {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", d.Season, d.Club); err != nil {
			return err
		}
	}
	return nil
}
