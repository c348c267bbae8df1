// Package config holds the persistent application configuration.
//
// Settings live in a JSON file under the app directory; environment
// variables override whatever the file says.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the persistent application configuration.
type Config struct {
	// DataBaseURL is where the conference feeds are served from.
	DataBaseURL string `json:"data_base_url" env:"AIDEADLINES_DATA_URL"`

	// Feed paths relative to DataBaseURL.
	UpcomingPath string `json:"upcoming_path" env:"AIDEADLINES_UPCOMING_PATH"`
	ArchivePath  string `json:"archive_path" env:"AIDEADLINES_ARCHIVE_PATH"`

	// FetchTimeoutSeconds bounds each feed request.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds" env:"AIDEADLINES_FETCH_TIMEOUT"`

	// Theme is the default theme ("dark" or "light") when no preference
	// has been stored yet.
	Theme string `json:"theme" env:"AIDEADLINES_THEME"`
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		DataBaseURL:         "https://tobna.github.io/ai-deadlines",
		UpcomingPath:        "data/conferences.json",
		ArchivePath:         "data/conferences_archive.json",
		FetchTimeoutSeconds: 30,
		Theme:               "dark",
	}
}

// Dir returns the application directory (~/.ai-deadlines).
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ai-deadlines")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config file, falling back to defaults when it is missing
// or unreadable, then applies environment overrides.
func Load() (*Config, error) {
	cfg := loadFile(Path())
	if err := env.Parse(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	return cfg
}

// Save writes the config to disk, creating the app directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0o644)
}
