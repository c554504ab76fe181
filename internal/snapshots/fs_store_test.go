package snapshots

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

func TestFSStoreLoadsWrittenSeason(t *testing.T) {
	dir := t.TempDir()
	writeSeason(t, NewWriter(dir), "2016-2017")

	store := NewFSStore(dir)
	rows, err := store.LoadSeasonWages("2016-2017")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := sampleRows("2016-2017")
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range rows {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, rows[i], want[i])
		}
	}
}

func TestFSStoreSkipsUnparsableRows(t *testing.T) {
	dir := t.TempDir()
	body := "club,total_wage_bill_gbp\nArsenal,100\n,5\nStoke,n/a\n"
	if err := os.WriteFile(filepath.Join(dir, "wages_2013_2014.csv"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := NewFSStore(dir).LoadSeasonWages("2013-2014")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rows) != 1 || rows[0].Season != "2013-2014" || rows[0].TotalWageBillGBP != 100 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestFSStoreErrors(t *testing.T) {
	var nilStore *FSStore
	if _, err := nilStore.LoadSeasonWages("2013-2014"); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := nilStore.Seasons(); err == nil {
		t.Fatal("expected error for nil store")
	}

	dir := t.TempDir()
	store := NewFSStore(dir)
	if _, err := store.LoadSeasonWages("13-14"); !errors.Is(err, season.ErrLongFormat) {
		t.Fatalf("expected ErrLongFormat, got %v", err)
	}
	if _, err := store.LoadSeasonWages("2013-2014"); !os.IsNotExist(errors.Unwrap(err)) && !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "wages_2014_2015.csv"), []byte("team,wage\nx,1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.LoadSeasonWages("2014-2015"); err == nil {
		t.Fatal("expected missing column error")
	}
}

func TestFSStoreLoadAll(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	writeSeason(t, w, "2014-2015")
	writeSeason(t, w, "2013-2014")

	all, err := NewFSStore(dir).LoadAll()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(all) != 2 || all[0].Season != "2013-2014" || len(all[1].Rows) != 2 {
		t.Fatalf("unexpected seasons %+v", all)
	}
}
