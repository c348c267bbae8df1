package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tobna/ai-deadlines/internal/config"
	"github.com/tobna/ai-deadlines/internal/countdown"
	"github.com/tobna/ai-deadlines/internal/fetch"
	"github.com/tobna/ai-deadlines/internal/logging"
	"github.com/tobna/ai-deadlines/internal/store"
	"github.com/tobna/ai-deadlines/internal/ui"
)

func main() {
	// App directory: ~/.ai-deadlines/
	appDir := config.Dir()
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		log.Fatalf("Failed to create app directory: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := logging.Init(appDir); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		logging.Warn("config load failed, using defaults", "err", err)
		cfg = config.Default()
	}

	// Preference store. Losing it is not fatal; the theme just will not
	// persist this session.
	var prefs *store.Store
	prefs, err = store.Open(filepath.Join(appDir, "prefs.db"))
	if err != nil {
		logging.Warn("preference store unavailable", "err", err)
		prefs = nil
	} else {
		defer prefs.Close()
	}

	theme := cfg.Theme
	if prefs != nil {
		if saved, err := prefs.Theme(); err == nil && saved != "" {
			theme = saved
		}
	}

	client := fetch.NewClient(
		cfg.DataBaseURL,
		cfg.UpcomingPath,
		cfg.ArchivePath,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	)

	registry := countdown.NewRegistry(time.Second, nil)

	var model tea.Model = ui.NewModel(client, prefsOrNil(prefs), registry, ui.ThemeByName(theme))
	program := tea.NewProgram(model, tea.WithAltScreen())

	// The registry only exists before the program does, so the tick
	// callback is wired here.
	registry.SetNotify(func(id string) {
		program.Send(ui.CountdownTickMsg{ID: id})
	})

	logging.Info("starting", "baseURL", cfg.DataBaseURL, "theme", theme)
	if _, err := program.Run(); err != nil {
		logging.Error("program failed", "err", err)
		registry.Close()
		os.Exit(1)
	}
	registry.Close()
}

// prefsOrNil keeps a nil *store.Store from turning into a non-nil
// interface value.
func prefsOrNil(s *store.Store) ui.Prefs {
	if s == nil {
		return nil
	}
	return s
}
