// Package dataset holds the tabular club-season data and the preparation
// steps applied between ingest and modelling.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an ordered set of named columns over string cells.
// Empty cells are treated as missing.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the table carries col.
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Value returns the trimmed cell at (row, col); missing columns read as empty.
func (t *Table) Value(row int, col string) string {
	idx := t.Index(col)
	if idx < 0 || idx >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// Set writes a cell, adding the column when absent.
func (t *Table) Set(row int, col, value string) {
	idx := t.EnsureColumn(col)
	for len(t.Rows[row]) <= idx {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][idx] = value
}

// EnsureColumn appends col if missing and returns its index.
func (t *Table) EnsureColumn(col string) int {
	if idx := t.Index(col); idx >= 0 {
		return idx
	}
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Columns) - 1
}

// Append adds a row keyed by column name. Unknown columns are added.
func (t *Table) Append(values map[string]string) {
	for col := range values {
		t.EnsureColumn(col)
	}
	row := make([]string, len(t.Columns))
	for col, v := range values {
		row[t.Index(col)] = v
	}
	t.Rows = append(t.Rows, row)
}

// Rename renames columns according to mapping; absent sources are ignored.
// Renaming onto an existing column is an error.
func (t *Table) Rename(mapping map[string]string) error {
	for from, to := range mapping {
		idx := t.Index(from)
		if idx < 0 || from == to {
			continue
		}
		if t.Has(to) {
			return fmt.Errorf("rename %q: column %q already exists", from, to)
		}
		t.Columns[idx] = to
	}
	return nil
}

// Drop removes the named columns if present.
func (t *Table) Drop(cols ...string) {
	for _, col := range cols {
		idx := t.Index(col)
		if idx < 0 {
			continue
		}
		t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
		for i, row := range t.Rows {
			if idx < len(row) {
				t.Rows[i] = append(row[:idx:idx], row[idx+1:]...)
			}
		}
	}
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := NewTable(t.Columns...)
	for i, row := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

// Distinct returns the sorted distinct non-empty values of col.
func (t *Table) Distinct(col string) []string {
	seen := make(map[string]struct{})
	for i := range t.Rows {
		if v := t.Value(i, col); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return t.Filter(func(int) bool { return true })
}
