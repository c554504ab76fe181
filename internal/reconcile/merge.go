package reconcile

import (
	"sort"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Options tunes MergeWages.
type Options struct {
	// Overwrite replaces wage bills already present in the table.
	Overwrite bool
}

// Match pairs a dataset row with the wage row it was matched to.
type Match struct {
	Season     string  `json:"season"`
	Club       string  `json:"club"`
	SourceClub string  `json:"sourceClub"`
	WageBillM  float64 `json:"wageBillGbpM"`
	Filled     bool    `json:"filled"`
}

// Unmatched is a club-season present on one side only.
type Unmatched struct {
	Season string `json:"season"`
	Club   string `json:"club"`
}

// Report summarises a merge.
type Report struct {
	Matched        []Match     `json:"matched"`
	UnmatchedRows  []Unmatched `json:"unmatchedRows"`
	UnmatchedWages []Unmatched `json:"unmatchedWages"`
	DuplicateWages []Unmatched `json:"duplicateWages"`
	Filled         int         `json:"filled"`
}

type wageEntry struct {
	row  wages.Row
	used bool
}

// MergeWages writes wage bills (in GBP millions) into the table's
// total_wage_bill_gbp_m column, matching on season and ClubKey. Existing
// values are kept unless opts.Overwrite is set. Only dataset rows whose season
// appears in the wage data are reported as unmatched.
func MergeWages(t *dataset.Table, rows []wages.Row, opts Options) Report {
	var report Report
	index := make(map[string]*wageEntry, len(rows))
	wageSeasons := make(map[string]bool)
	var order []string

	for _, r := range rows {
		s := season.Canonical(r.Season)
		key := s + "|" + ClubKey(r.Club)
		if _, dup := index[key]; dup {
			report.DuplicateWages = append(report.DuplicateWages, Unmatched{Season: s, Club: r.Club})
			continue
		}
		index[key] = &wageEntry{row: r}
		order = append(order, key)
		wageSeasons[s] = true
	}

	t.EnsureColumn(clubs.ColWageBill)
	for i := range t.Rows {
		s := t.Value(i, clubs.ColSeason)
		club := t.Value(i, clubs.ColClub)
		if club == "" {
			continue
		}
		entry, ok := index[s+"|"+ClubKey(club)]
		if !ok {
			if wageSeasons[s] {
				report.UnmatchedRows = append(report.UnmatchedRows, Unmatched{Season: s, Club: club})
			}
			continue
		}
		entry.used = true

		m := Match{Season: s, Club: club, SourceClub: entry.row.Club, WageBillM: entry.row.Millions()}
		if _, present := dataset.ParseNumber(t.Value(i, clubs.ColWageBill)); !present || opts.Overwrite {
			t.Set(i, clubs.ColWageBill, dataset.FormatNumber(m.WageBillM))
			m.Filled = true
			report.Filled++
		}
		report.Matched = append(report.Matched, m)
	}

	for _, key := range order {
		if e := index[key]; !e.used {
			report.UnmatchedWages = append(report.UnmatchedWages, Unmatched{Season: season.Canonical(e.row.Season), Club: e.row.Club})
		}
	}
	sortUnmatched(report.UnmatchedRows)
	sortUnmatched(report.UnmatchedWages)
	return report
}

func sortUnmatched(u []Unmatched) {
	sort.Slice(u, func(i, j int) bool {
		if u[i].Season != u[j].Season {
			return u[i].Season < u[j].Season
		}
		return u[i].Club < u[j].Club
	})
}
