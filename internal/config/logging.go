package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Theme names accepted in the config file.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// OpenLogger returns a text logger appending to LogFile. The terminal is
// owned by the TUI, so nothing is written to stderr. The returned closer
// releases the file.
func (c *Config) OpenLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), f, nil
}
