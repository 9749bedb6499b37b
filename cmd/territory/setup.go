package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-territory/internal/config"
	"github.com/vovakirdan/tui-territory/internal/core"
	"github.com/vovakirdan/tui-territory/internal/games/territory"
	"github.com/vovakirdan/tui-territory/internal/storage"
)

// effectiveConfig reads the configuration file and applies the rule flags.
func effectiveConfig() (config.TerritoryConfig, string, error) {
	mode, err := config.ParseMode(flagMode)
	if err != nil {
		return config.TerritoryConfig{}, "", err
	}

	cfg, source, err := config.LoadTerritory(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	config.Overrides{
		Width:     flagWidth,
		Height:    flagHeight,
		TickMS:    flagTickMS,
		MaxTicks:  flagMaxTicks,
		NoRespawn: flagNoRespawn,
		Mode:      mode,
	}.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("after flags: %w", err)
	}
	return cfg, source, nil
}

// loadConfig resolves the effective configuration and installs it for new games.
func loadConfig(logger *log.Logger) (config.TerritoryConfig, error) {
	cfg, source, err := effectiveConfig()
	if err != nil {
		return cfg, err
	}

	logger.Debug("configuration loaded", "source", source, "players", len(cfg.Players))
	territory.SetConfig(cfg)
	territory.SetLogger(logger)
	return cfg, nil
}

// newLogger creates a logger at the --log-level on w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.arcade/territory.log while the TUI owns the terminal.
// Falls back to discarding when the file cannot be opened.
func fileLogger() (*log.Logger, func(), error) {
	noop := func() {}

	home, err := os.UserHomeDir()
	if err != nil {
		l, lerr := newLogger(io.Discard, "territory")
		return l, noop, lerr
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l, lerr := newLogger(io.Discard, "territory")
		return l, noop, lerr
	}

	f, err := os.OpenFile(filepath.Join(dir, "territory.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		l, lerr := newLogger(io.Discard, "territory")
		return l, noop, lerr
	}

	l, err := newLogger(f, "territory")
	if err != nil {
		f.Close()
		return nil, noop, err
	}
	return l, func() { f.Close() }, nil
}

// openStore opens the scores database, continuing without one on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig builds the platform config for a terminal of the given size.
func runtimeConfig(cfg config.TerritoryConfig, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: cfg.TickInterval(),
		Seed:         flagSeed,
	}
}
