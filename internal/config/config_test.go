package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DataBaseURL == "" {
		t.Error("default DataBaseURL should be set")
	}
	if cfg.UpcomingPath != "data/conferences.json" {
		t.Errorf("UpcomingPath = %q", cfg.UpcomingPath)
	}
	if cfg.ArchivePath != "data/conferences_archive.json" {
		t.Errorf("ArchivePath = %q", cfg.ArchivePath)
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		t.Error("FetchTimeoutSeconds should be positive")
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
}

func TestLoadFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	if got := loadFile(filepath.Join(dir, "missing.json")); got.DataBaseURL != Default().DataBaseURL {
		t.Error("missing file should yield defaults")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{nope"), 0o644)
	if got := loadFile(bad); got.DataBaseURL != Default().DataBaseURL {
		t.Error("unparseable file should yield defaults")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	saved := Default()
	saved.DataBaseURL = "https://example.com/deadlines"
	saved.Theme = "light"
	data, _ := json.Marshal(saved)
	os.WriteFile(path, data, 0o644)

	got := loadFile(path)
	if got.DataBaseURL != "https://example.com/deadlines" {
		t.Errorf("DataBaseURL = %q", got.DataBaseURL)
	}
	if got.Theme != "light" {
		t.Errorf("Theme = %q", got.Theme)
	}
	// Fields absent from the file keep their defaults.
	if got.UpcomingPath != Default().UpcomingPath {
		t.Errorf("UpcomingPath = %q", got.UpcomingPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AIDEADLINES_DATA_URL", "http://localhost:8000")
	t.Setenv("AIDEADLINES_FETCH_TIMEOUT", "5")

	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	if cfg.DataBaseURL != "http://localhost:8000" {
		t.Errorf("DataBaseURL = %q", cfg.DataBaseURL)
	}
	if cfg.FetchTimeoutSeconds != 5 {
		t.Errorf("FetchTimeoutSeconds = %d", cfg.FetchTimeoutSeconds)
	}
	// Untouched fields survive the overlay.
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}
