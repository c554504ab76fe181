package snapshots

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriterWritesSeasonCSVAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	path := writeSeason(t, w, "2013-2014")
	if filepath.Base(path) != "wages_2013_2014.csv" {
		t.Fatalf("unexpected file name %s", path)
	}
	data := string(requireFile(t, path))
	want := "club,season,total_wage_bill_gbp\nArsenal,2013-2014,166000000\nBurnley,2013-2014,24500000.5\n"
	if data != want {
		t.Fatalf("unexpected csv:\n%s", data)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("expected manifest, got %v", err)
	}
	assertSeasonsEqual(t, m.Wages.Seasons, []string{"2013-2014"})
	if m.Wages.LastRefreshed.IsZero() {
		t.Fatal("expected last refreshed to be set")
	}
}

func TestWriterSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	path := writeSeason(t, w, "2014-2015")

	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	writeSeason(t, w, "2014-2015")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(old) {
		t.Fatalf("expected unchanged file to be left alone, modtime %s", info.ModTime())
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("expected no temp file left behind")
	}
}

func TestWriterRejectsBadInput(t *testing.T) {
	var w *Writer
	if _, err := w.WriteSeasonWages("2013-2014", nil); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if err := w.WriteRunLog(RunSummary{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir())
	if _, err := w.WriteSeasonWages("2013-14", nil); err == nil {
		t.Fatalf("expected error for short season")
	}
}

func TestWriteRunLog(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	summary := RunSummary{
		RunID:    "run-1",
		Provider: "stub",
		Results:  []SeasonResult{{Season: "2013-2014", Rows: 20, File: "x.csv"}},
		Failures: []SeasonFailure{{Season: "2014-2015", Error: "boom, again"}},
	}
	if err := w.WriteRunLog(summary); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if got := string(requireFile(t, RunLogPath(dir))); got != "season,rows,file\n2013-2014,20,x.csv\n" {
		t.Fatalf("unexpected run log %q", got)
	}
	if got := string(requireFile(t, FailuresPath(dir))); !strings.Contains(got, `2014-2015,"boom, again"`) {
		t.Fatalf("unexpected failures %q", got)
	}
	m, err := ReadManifest(dir)
	if err != nil || m.LastRunID != "run-1" || m.Provider != "stub" {
		t.Fatalf("unexpected manifest %+v err=%v", m, err)
	}
}

func TestListSeasonsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"wages_2015_2016.csv", "wages_2013_2014.csv", "wages_bad.csv", "run_log.csv", "wages_2014_2015.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("club\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "wages_2016_2017.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	seasons, err := listSeasons(dir)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	assertSeasonsEqual(t, seasons, []string{"2013-2014", "2015-2016"})

	missing, err := listSeasons(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v %v", missing, err)
	}
}
