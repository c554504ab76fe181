package dataset

import (
	"math"
	"strconv"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// ColSeasonExcel holds the workbook's own season column after renaming. The
// sheet-derived season is authoritative, so it is dropped.
const ColSeasonExcel = "season_excel"

// Renames maps workbook header spellings onto canonical column names.
var Renames = map[string]string{
	"Season":          ColSeasonExcel,
	"League position": clubs.ColPosition,
	"Points total":    clubs.ColPoints,
}

// NumericColumns are coerced to numbers before analysis.
var NumericColumns = []string{
	clubs.ColWageBill,
	clubs.ColPosition,
	clubs.ColPoints,
	clubs.ColTransferSpend,
	clubs.ColPromoted,
}

// MissingCount is the number of empty cells in one key column.
type MissingCount struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// Prepared is the analysis-ready table plus the diagnostics computed on the way.
type Prepared struct {
	Table        *Table
	Missing      []MissingCount
	Correlations Correlations
}

// Prepare normalises the stacked table for analysis. The input is not modified.
func Prepare(stacked *Table) *Prepared {
	t := stacked.Clone()
	applyRenames(t, Renames)
	t.Drop(ColSeasonExcel)

	missing := CountMissing(t, clubs.KeyColumns)

	for _, col := range NumericColumns {
		Coerce(t, col)
	}
	fillPromoted(t)

	return &Prepared{Table: t, Missing: missing, Correlations: Correlate(t)}
}

// applyRenames renames headers; when the target already exists the source
// column is dropped and the existing canonical column wins.
func applyRenames(t *Table, mapping map[string]string) {
	for from, to := range mapping {
		if !t.Has(from) {
			continue
		}
		if t.Has(to) {
			t.Drop(from)
			continue
		}
		_ = t.Rename(map[string]string{from: to})
	}
}

// CountMissing reports empty cells per column; absent columns count every row.
func CountMissing(t *Table, cols []string) []MissingCount {
	out := make([]MissingCount, 0, len(cols))
	for _, col := range cols {
		n := 0
		for i := range t.Rows {
			if t.Value(i, col) == "" {
				n++
			}
		}
		out = append(out, MissingCount{Column: col, Missing: n})
	}
	return out
}

// Coerce rewrites col as plain numbers, blanking anything unparsable.
func Coerce(t *Table, col string) {
	if !t.Has(col) {
		return
	}
	for i := range t.Rows {
		if v, ok := ParseNumber(t.Value(i, col)); ok {
			t.Set(i, col, FormatNumber(v))
		} else {
			t.Set(i, col, "")
		}
	}
}

// FillMissing sets empty cells in col to value, adding the column if needed.
func FillMissing(t *Table, col, value string) {
	t.EnsureColumn(col)
	for i := range t.Rows {
		if t.Value(i, col) == "" {
			t.Set(i, col, value)
		}
	}
}

// fillPromoted treats a missing flag as not promoted and truncates to an integer.
func fillPromoted(t *Table) {
	FillMissing(t, clubs.ColPromoted, "0")
	for i := range t.Rows {
		v, _ := ParseNumber(t.Value(i, clubs.ColPromoted))
		t.Set(i, clubs.ColPromoted, strconv.Itoa(int(math.Trunc(v))))
	}
}
