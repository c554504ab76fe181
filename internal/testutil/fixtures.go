package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
)

// FixtureSeasons are the seasons covered by AnalysisTable.
var FixtureSeasons = []string{"2013-14", "2014-15", "2015-16"}

// FixtureClubs are the clubs in every fixture season.
var FixtureClubs = []string{
	"Arsenal",
	"Chelsea",
	"Everton",
	"Liverpool",
	"Manchester United",
	"Stoke City",
	"Swansea City",
	"Hull City",
}

// AnalysisColumns is the column order of AnalysisTable.
var AnalysisColumns = []string{
	clubs.ColSeason,
	clubs.ColClub,
	clubs.ColPromoted,
	clubs.ColTransferSpend,
	clubs.ColWageBill,
	clubs.ColPosition,
	clubs.ColPoints,
}

// AnalysisTable returns a deterministic analysis-ready table large enough to
// fit every standard model. The first club has no transfer spend in the first
// season.
func AnalysisTable() *dataset.Table {
	t := dataset.NewTable(AnalysisColumns...)
	for s, season := range FixtureSeasons {
		type row struct {
			club     string
			promoted int
			spend    float64
			wages    float64
			points   int
		}
		rows := make([]row, 0, len(FixtureClubs))
		for i, club := range FixtureClubs {
			w := 60 + 20*float64(i) + 3*float64(s) + float64((i*7+s*3)%5)
			sp := 10 + 9*float64((i*5+s*2)%8)
			promoted := 0
			if i == 7 || (i == 6 && s == 1) {
				promoted = 1
			}
			pts := int(20 + 0.3*w + 0.1*sp - 3*float64(promoted) + float64((i*3+s)%7))
			rows = append(rows, row{club, promoted, sp, w, pts})
		}
		ranked := append([]row(nil), rows...)
		sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].points > ranked[b].points })
		position := make(map[string]int, len(ranked))
		for p, r := range ranked {
			position[r.club] = p + 1
		}
		for i, r := range rows {
			spend := dataset.FormatNumber(r.spend)
			if s == 0 && i == 0 {
				spend = ""
			}
			t.Append(map[string]string{
				clubs.ColSeason:        season,
				clubs.ColClub:          r.club,
				clubs.ColPromoted:      strconv.Itoa(r.promoted),
				clubs.ColTransferSpend: spend,
				clubs.ColWageBill:      dataset.FormatNumber(r.wages),
				clubs.ColPosition:      strconv.Itoa(position[r.club]),
				clubs.ColPoints:        strconv.Itoa(r.points),
			})
		}
	}
	return t
}

// WriteAnalysisCSV writes AnalysisTable to dir and returns the file path.
func WriteAnalysisCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "pl_financials_analysis_ready.csv")
	if err := dataset.WriteCSVFile(path, AnalysisTable()); err != nil {
		t.Fatalf("write analysis csv: %v", err)
	}
	return path
}

// TouchLater bumps a file's modification time so reload checks see a change.
func TouchLater(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	later := info.ModTime().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// SampleClubSeason returns a minimal club-season with points and wages.
func SampleClubSeason(season, club string) clubs.ClubSeason {
	wage := 150.0
	spend := 40.0
	pts := 60
	pos := 5
	return clubs.ClubSeason{
		Season:        season,
		Club:          club,
		TransferSpend: &spend,
		WageBill:      &wage,
		Position:      &pos,
		Points:        &pts,
	}
}

// SampleWageRows returns scraped-style wage rows for a YYYY-YYYY season.
func SampleWageRows(season string) []wages.Row {
	return []wages.Row{
		{Club: "Manchester Utd", Season: season, TotalWageBillGBP: 180_000_000},
		{Club: "Arsenal", Season: season, TotalWageBillGBP: 166_000_000},
	}
}
