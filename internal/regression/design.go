package regression

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
)

// InterceptName labels the constant column.
const InterceptName = "Intercept"

// ErrUnknownColumn is returned when a formula names a column the table lacks.
var ErrUnknownColumn = errors.New("unknown column")

// Design is the model matrix after listwise deletion of incomplete rows.
type Design struct {
	Response string
	Names    []string
	X        *mat.Dense
	Y        *mat.VecDense
	// Rows maps design rows back to table rows.
	Rows []int
}

// BuildDesign expands a formula against a table. Categorical dummies follow
// the intercept and precede numeric regressors; the first level in sorted
// order is the reference.
func BuildDesign(t *dataset.Table, f Formula) (*Design, error) {
	cols := append([]string{f.Response}, termColumns(f)...)
	for _, col := range cols {
		if !t.Has(col) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, col)
		}
	}

	rows := completeRows(t, f)
	levels := categoricalLevels(t, f, rows)

	names := []string{InterceptName}
	for _, term := range f.Terms {
		if term.Categorical {
			for _, lvl := range levels[term.Column][1:] {
				names = append(names, fmt.Sprintf("C(%s)[T.%s]", term.Column, lvl))
			}
		}
	}
	for _, term := range f.Terms {
		if !term.Categorical {
			names = append(names, term.Column)
		}
	}

	n, p := len(rows), len(names)
	if n == 0 {
		return nil, ErrInsufficientObservations
	}
	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, r := range rows {
		yv, _ := dataset.ParseNumber(t.Value(r, f.Response))
		y.SetVec(i, yv)

		j := 0
		x.Set(i, j, 1)
		j++
		for _, term := range f.Terms {
			if !term.Categorical {
				continue
			}
			v := t.Value(r, term.Column)
			for _, lvl := range levels[term.Column][1:] {
				if v == lvl {
					x.Set(i, j, 1)
				}
				j++
			}
		}
		for _, term := range f.Terms {
			if term.Categorical {
				continue
			}
			v, _ := dataset.ParseNumber(t.Value(r, term.Column))
			x.Set(i, j, v)
			j++
		}
	}

	return &Design{Response: f.Response, Names: names, X: x, Y: y, Rows: rows}, nil
}

func termColumns(f Formula) []string {
	out := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		out[i] = t.Column
	}
	return out
}

// completeRows keeps rows where the response and every term are present.
func completeRows(t *dataset.Table, f Formula) []int {
	var rows []int
	for i := range t.Rows {
		if _, ok := dataset.ParseNumber(t.Value(i, f.Response)); !ok {
			continue
		}
		keep := true
		for _, term := range f.Terms {
			v := t.Value(i, term.Column)
			if term.Categorical {
				keep = v != ""
			} else {
				_, keep = dataset.ParseNumber(v)
			}
			if !keep {
				break
			}
		}
		if keep {
			rows = append(rows, i)
		}
	}
	return rows
}

func categoricalLevels(t *dataset.Table, f Formula, rows []int) map[string][]string {
	out := make(map[string][]string)
	for _, term := range f.Terms {
		if !term.Categorical {
			continue
		}
		seen := make(map[string]struct{})
		for _, r := range rows {
			seen[t.Value(r, term.Column)] = struct{}{}
		}
		levels := make([]string, 0, len(seen))
		for lvl := range seen {
			levels = append(levels, lvl)
		}
		sort.Strings(levels)
		if len(levels) == 0 {
			levels = []string{""}
		}
		out[term.Column] = levels
	}
	return out
}
