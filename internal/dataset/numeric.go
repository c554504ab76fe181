package dataset

import (
	"math"
	"strconv"
	"strings"
)

var numericReplacer = strings.NewReplacer("£", "", "€", "", "$", "", ",", "", " ", "")

// ParseNumber coerces a cell into a float. Currency symbols, thousands
// separators and a trailing m/M (millions, kept in the same unit) are
// tolerated. Unparsable or empty cells report ok=false.
func ParseNumber(raw string) (float64, bool) {
	s := numericReplacer.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, "m"), "M")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a float the shortest way that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Column extracts col as floats with a parallel validity mask.
func (t *Table) Column(col string) ([]float64, []bool) {
	values := make([]float64, t.Len())
	valid := make([]bool, t.Len())
	for i := range t.Rows {
		values[i], valid[i] = ParseNumber(t.Value(i, col))
	}
	return values, valid
}
