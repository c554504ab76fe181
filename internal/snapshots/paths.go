package snapshots

import (
	"path/filepath"

	"github.com/preston-bernstein/pl-spend-service/internal/season"
)

const (
	manifestFile = "manifest.json"
	runLogFile   = "run_log.csv"
	failuresFile = "failures.csv"
	wagesPrefix  = "wages_"
	csvExt       = ".csv"
)

// WagesPath builds the CSV path for a YYYY-YYYY season, e.g. wages_2013_2014.csv.
func WagesPath(basePath, long string) string {
	return filepath.Join(basePath, wagesPrefix+season.FileStem(long)+csvExt)
}

// RunLogPath and FailuresPath hold the last sync run's outcome.
func RunLogPath(basePath string) string {
	return filepath.Join(basePath, runLogFile)
}

func FailuresPath(basePath string) string {
	return filepath.Join(basePath, failuresFile)
}
