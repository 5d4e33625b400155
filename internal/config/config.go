package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appDir = "punchclock"

// Config represents the application configuration
type Config struct {
	DataDir   string `toml:"data_dir"`
	DBPath    string `toml:"db_path"`
	ExportDir string `toml:"export_dir"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	Theme     string `toml:"theme"`

	path string
}

// DefaultConfig returns the default configuration rooted at the user config
// directory. When that directory is unknown, paths are relative to the
// working directory.
func DefaultConfig() *Config {
	dataDir := appDir
	if dir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(dir, appDir)
	}
	return defaultsIn(dataDir)
}

func defaultsIn(dataDir string) *Config {
	home, err := os.UserHomeDir()
	exportDir := dataDir
	if err == nil {
		exportDir = home
	}
	return &Config{
		DataDir:   dataDir,
		DBPath:    filepath.Join(dataDir, "punchclock.db"),
		ExportDir: exportDir,
		LogFile:   filepath.Join(dataDir, "punchclock.log"),
		LogLevel:  "info",
		Theme:     ThemeAuto,
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appDir, "config.toml"), nil
}

// LoadConfig loads the configuration from path, or from GetConfigPath when
// path is empty. A missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.path = path
		// If we can't save, just run with defaults
		_ = cfg.Save()
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.path = path

	cfg.fillDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path is the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values. Paths that were left out follow
// data_dir when it was set.
func (c *Config) fillDefaults() {
	var defaults *Config
	if c.DataDir == "" {
		defaults = DefaultConfig()
		c.DataDir = defaults.DataDir
	} else {
		defaults = defaultsIn(c.DataDir)
	}

	if c.DBPath == "" {
		c.DBPath = defaults.DBPath
	}
	if c.ExportDir == "" {
		c.ExportDir = defaults.ExportDir
	}
	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.Theme = strings.ToLower(c.Theme)
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (want auto, dark or light)", c.Theme)
	}
	return nil
}
