package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "punchclock", "config.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != ThemeAuto || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.DBPath) != "punchclock.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Path() != path {
		t.Fatalf("Path() = %q, want %q", cfg.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadConfigFillsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := filepath.Join(dir, "data")
	body := "data_dir = \"" + filepath.ToSlash(data) + "\"\ntheme = \"Dark\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != ThemeDark {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
	if cfg.DBPath != filepath.Join(cfg.DataDir, "punchclock.db") {
		t.Errorf("DBPath = %q should follow data_dir", cfg.DBPath)
	}
	if cfg.LogFile != filepath.Join(cfg.DataDir, "punchclock.log") {
		t.Errorf("LogFile = %q should follow data_dir", cfg.LogFile)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"theme":  "theme = \"solarized\"\n",
		"level":  "log_level = \"loud\"\n",
		"syntax": "theme = \n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte(body), 0o644)
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, _ := LoadConfig(path)
	cfg.LogLevel = "debug"
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LogLevel != "debug" || got.ExportDir != cfg.ExportDir {
		t.Fatalf("reloaded %+v", got)
	}
}

func TestOpenLogger(t *testing.T) {
	cfg := defaultsIn(t.TempDir())
	cfg.LogLevel = "warn"

	log, closer, err := cfg.OpenLogger()
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown", "key", "value")
	closer.Close()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "key=value") {
		t.Errorf("log output = %q", out)
	}
}
