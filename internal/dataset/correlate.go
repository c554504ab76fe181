package dataset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/pl-spend-service/internal/domain/clubs"
)

// Correlation is a Pearson coefficient between a target and one column,
// computed over rows where both are present.
type Correlation struct {
	Column string  `json:"column"`
	R      float64 `json:"r"`
	N      int     `json:"n"`
	Valid  bool    `json:"valid"`
}

// Correlations holds the two views printed during preparation.
type Correlations struct {
	Points   []Correlation `json:"points"`
	Position []Correlation `json:"position"`
}

var spendColumns = []string{clubs.ColWageBill, clubs.ColTransferSpend}

// Correlate computes correlations of spend against points (descending) and
// against league position (ascending, lower position is better).
func Correlate(t *Table) Correlations {
	points := correlateWith(t, clubs.ColPoints, spendColumns)
	sortCorrelations(points, true)

	position := correlateWith(t, clubs.ColPosition, spendColumns)
	sortCorrelations(position, false)

	return Correlations{Points: points, Position: position}
}

func correlateWith(t *Table, target string, others []string) []Correlation {
	cols := append([]string{target}, others...)
	y, yOK := t.Column(target)
	out := make([]Correlation, 0, len(cols))
	for _, col := range cols {
		x, xOK := t.Column(col)
		out = append(out, Pearson(col, y, yOK, x, xOK))
	}
	return out
}

// Pearson computes r over pairwise-complete observations. Fewer than two
// pairs or a constant series yields an invalid result.
func Pearson(col string, y []float64, yOK []bool, x []float64, xOK []bool) Correlation {
	var ys, xs []float64
	for i := range y {
		if yOK[i] && xOK[i] {
			ys = append(ys, y[i])
			xs = append(xs, x[i])
		}
	}
	c := Correlation{Column: col, N: len(ys), R: math.NaN()}
	if len(ys) < 2 {
		return c
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return c
	}
	c.R = r
	c.Valid = true
	return c
}

// sortCorrelations orders by r; invalid entries always sort last.
func sortCorrelations(cs []Correlation, descending bool) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Valid != b.Valid {
			return a.Valid
		}
		if descending {
			return a.R > b.R
		}
		return a.R < b.R
	})
}
