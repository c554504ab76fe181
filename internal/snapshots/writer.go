package snapshots

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/dataset"
	"github.com/preston-bernstein/pl-spend-service/internal/domain/wages"
	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

// Wage CSV columns, matching what the scraper has always written.
const (
	ColClub     = "club"
	ColSeason   = "season"
	ColWagesGBP = "total_wage_bill_gbp"
	ColRows     = "rows"
	ColFile     = "file"
	ColError    = "error"
)

var errWriterNotConfigured = errors.New("snapshot writer not configured")

// Writer persists per-season wage CSVs and the manifest.
type Writer struct {
	basePath string
	now      func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{
		basePath: basePath,
		now:      time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeasonWages writes wages_YYYY_YYYY.csv and records the season in the
// manifest. Unchanged content leaves the file untouched.
func (w *Writer) WriteSeasonWages(long string, rows []wages.Row) (string, error) {
	if w == nil {
		return "", errWriterNotConfigured
	}
	if _, err := season.Slug(long); err != nil {
		return "", err
	}

	target := WagesPath(w.basePath, long)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	data, err := encodeWages(rows)
	if err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return "", err
		}
		if err := os.Rename(tmp, target); err != nil {
			return "", err
		}
	}

	return target, w.updateManifest(func(m *Manifest) {
		m.Wages.LastRefreshed = w.now().UTC()
	})
}

func encodeWages(rows []wages.Row) ([]byte, error) {
	t := dataset.NewTable(ColClub, ColSeason, ColWagesGBP)
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Club, r.Season, dataset.FormatNumber(r.TotalWageBillGBP)})
	}
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteRunLog writes run_log.csv and failures.csv for a completed sync run
// and stamps the run id into the manifest.
func (w *Writer) WriteRunLog(summary RunSummary) error {
	if w == nil {
		return errWriterNotConfigured
	}

	results := dataset.NewTable(ColSeason, ColRows, ColFile)
	for _, r := range summary.Results {
		results.Rows = append(results.Rows, []string{r.Season, strconv.Itoa(r.Rows), r.File})
	}
	if err := dataset.WriteCSVFile(RunLogPath(w.basePath), results); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}

	failures := dataset.NewTable(ColSeason, ColError)
	for _, f := range summary.Failures {
		failures.Rows = append(failures.Rows, []string{f.Season, f.Error})
	}
	if err := dataset.WriteCSVFile(FailuresPath(w.basePath), failures); err != nil {
		return fmt.Errorf("write failures: %w", err)
	}

	return w.updateManifest(func(m *Manifest) {
		m.LastRunID = summary.RunID
		m.Provider = summary.Provider
	})
}

func (w *Writer) updateManifest(mutate func(*Manifest)) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestFile))
	seasons, err := listSeasons(w.basePath)
	if err != nil {
		return err
	}
	m.Wages.Seasons = seasons
	mutate(&m)
	return writeManifest(w.basePath, m)
}

// listSeasons returns the YYYY-YYYY seasons that have a wage CSV, sorted.
func listSeasons(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	seasons := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, wagesPrefix) || filepath.Ext(name) != csvExt {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimPrefix(name, wagesPrefix), csvExt)
		long := strings.ReplaceAll(stem, "_", "-")
		if _, err := season.Slug(long); err != nil {
			continue
		}
		seasons = append(seasons, long)
	}
	sort.Strings(seasons)
	return seasons, nil
}
