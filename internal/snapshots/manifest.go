package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks which wage seasons are on disk and the last sync run.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	LastRunID   string    `json:"lastRunId,omitempty"`
	Provider    string    `json:"provider,omitempty"`
	Wages       WagesMeta `json:"wages"`
}

type WagesMeta struct {
	Seasons       []string  `json:"seasons"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Wages: WagesMeta{
			Seasons: []string{},
		},
	}
}

// ReadManifest loads {basePath}/manifest.json.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(filepath.Join(basePath, manifestFile))
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Wages.Seasons == nil {
		m.Wages.Seasons = []string{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, manifestFile)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
