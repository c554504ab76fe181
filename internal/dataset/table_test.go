package dataset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAppendAddsColumns(t *testing.T) {
	tbl := NewTable("season", "club")
	tbl.Append(map[string]string{"season": "2013-14", "club": "Arsenal"})
	tbl.Append(map[string]string{"season": "2013-14", "club": "Chelsea", "points_total": "82"})

	assert.Equal(t, []string{"season", "club", "points_total"}, tbl.Columns)
	assert.Equal(t, "", tbl.Value(0, "points_total"))
	assert.Equal(t, "82", tbl.Value(1, "points_total"))
	assert.Equal(t, "", tbl.Value(0, "missing_column"))
}

func TestTableRenameRejectsCollision(t *testing.T) {
	tbl := NewTable("a", "b")
	require.Error(t, tbl.Rename(map[string]string{"a": "b"}))
	require.NoError(t, tbl.Rename(map[string]string{"a": "c", "zzz": "y"}))
	assert.Equal(t, []string{"c", "b"}, tbl.Columns)
}

func TestTableDropDoesNotAlias(t *testing.T) {
	tbl := NewTable("a", "b", "c")
	tbl.Rows = [][]string{{"1", "2", "3"}}
	clone := tbl.Clone()

	tbl.Drop("b")

	assert.Equal(t, []string{"a", "c"}, tbl.Columns)
	assert.Equal(t, []string{"1", "3"}, tbl.Rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, clone.Rows[0])
}

func TestTableDistinctSkipsEmpty(t *testing.T) {
	tbl := NewTable("season")
	for _, s := range []string{"2014-15", "", "2013-14", "2014-15"} {
		tbl.Append(map[string]string{"season": s})
	}
	assert.Equal(t, []string{"2013-14", "2014-15"}, tbl.Distinct("season"))
}

func TestReadCSVPadsShortRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("season,club,points_total\n2013-14,Arsenal\n"))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Len(t, tbl.Rows[0], 3)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteCSVFileCreatesDirectories(t *testing.T) {
	tbl := NewTable("season", "club")
	tbl.Append(map[string]string{"season": "2013-14", "club": "Stoke City"})
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	require.NoError(t, WriteCSVFile(path, tbl))

	back, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, back.Columns)
	assert.Equal(t, tbl.Rows, back.Rows)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, back))
	assert.Equal(t, "season,club\n2013-14,Stoke City\n", buf.String())
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"82", 82, true},
		{" 1,250.5 ", 1250.5, true},
		{"£12.5m", 12.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, tc.in)
		}
	}
}
