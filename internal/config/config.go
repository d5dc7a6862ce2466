// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/meetgrid/internal/dateutil"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Server   ServerConfig   `toml:"server"`
	Export   ExportConfig   `toml:"export"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds placement settings.
type ScheduleConfig struct {
	MeetingCapHours float64 `toml:"meeting_cap_hours"` // average weekly meeting hours per day
	Seed            uint64  `toml:"seed"`              // 0 means seed from the clock
}

// ServerConfig holds web front end settings.
type ServerConfig struct {
	Addr      string  `toml:"addr"`       // e.g., "localhost:8888"
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables
	Burst     int     `toml:"burst"`
}

// ExportConfig holds calendar export settings.
type ExportConfig struct {
	BaseDate string `toml:"base_date"` // Monday of week 1, YYYY-MM-DD
	ProdID   string `toml:"prod_id"`
}

// Base returns the configured first Monday of the horizon.
func (e ExportConfig) Base() (time.Time, error) {
	return dateutil.ParseMonday(e.BaseDate)
}

// StorageConfig holds archive database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // zerolog level name
	Format string `toml:"format"` // "console" or "json"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha" or "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			MeetingCapHours: 2.5,
		},
		Server: ServerConfig{
			Addr:      "localhost:8888",
			RateLimit: 20,
			Burst:     40,
		},
		Export: ExportConfig{
			BaseDate: "2025-04-14",
			ProdID:   "-//Meeting Scheduler//xAI//EN",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default archive path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "archive.db"
	}
	return filepath.Join(home, ".local", "share", "meetgrid", "archive.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "meetgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MEETGRID_MEETING_CAP_HOURS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MEETGRID_MEETING_CAP_HOURS: %w", err)
		}
		cfg.Schedule.MeetingCapHours = f
	}
	if v := os.Getenv("MEETGRID_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MEETGRID_SEED: %w", err)
		}
		cfg.Schedule.Seed = n
	}

	if v := os.Getenv("MEETGRID_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MEETGRID_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MEETGRID_RATE_LIMIT: %w", err)
		}
		cfg.Server.RateLimit = f
	}

	if v := os.Getenv("MEETGRID_BASE_DATE"); v != "" {
		cfg.Export.BaseDate = v
	}

	if v := os.Getenv("MEETGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("MEETGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("MEETGRID_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("MEETGRID_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.MeetingCapHours <= 0 {
		return errors.New("meeting_cap_hours must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return errors.New("burst must be at least 1 when rate_limit is set")
	}
	if _, err := c.Export.Base(); err != nil {
		return fmt.Errorf("base_date: %w", err)
	}
	if c.Export.ProdID == "" {
		return errors.New("prod_id must be set")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	switch c.UI.Theme {
	case "mocha", "latte":
	default:
		return fmt.Errorf("unknown theme %q", c.UI.Theme)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
