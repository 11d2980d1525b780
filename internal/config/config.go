package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TrackedConfig is the persisted tracked selection: explicit team
// codes plus whole conferences and divisions.
type TrackedConfig struct {
	Teams       []string `yaml:"teams" json:"teams"`
	Conferences []string `yaml:"conferences" json:"conferences"`
	Divisions   []string `yaml:"divisions" json:"divisions"`
}

// Empty reports whether nothing is tracked.
func (t TrackedConfig) Empty() bool {
	return len(t.Teams) == 0 && len(t.Conferences) == 0 && len(t.Divisions) == 0
}

// Config is the top-level application configuration.
type Config struct {
	// Season is the season identifier, e.g. "2024-25".
	Season string `yaml:"season" json:"season"`

	// Tracked is the user's tracked selection.
	Tracked TrackedConfig `yaml:"tracked" json:"tracked"`

	// CalendarsDir is where per-team .ics files are written.
	CalendarsDir string `yaml:"calendars_dir" json:"calendars_dir"`

	// CacheDir holds the schedule fetch cache (ETag/Last-Modified).
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// Timezone is the IANA zone all game times are normalized to.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Listen is the HTTP listen address for the feed server.
	Listen string `yaml:"listen" json:"listen"`

	// RefreshCron is a cron-style schedule (e.g. "0 */6 * * *") used by
	// serve mode to re-run the sync periodically.
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Season:       CurrentSeason(time.Now()),
		Tracked:      TrackedConfig{},
		CalendarsDir: "./calendars",
		CacheDir:     "./cache",
		Timezone:     "America/New_York",
		Listen:       "127.0.0.1:8080",
		RefreshCron:  "0 */6 * * *",
	}
}

// CurrentSeason derives the season string for a given date. A season
// spans October through the following June, so October onward belongs
// to the season starting that year.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Season == "" {
		c.Season = CurrentSeason(time.Now())
	}
	if c.CalendarsDir == "" {
		c.CalendarsDir = "./calendars"
	}
	if c.CacheDir == "" {
		c.CacheDir = "./cache"
	}
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "0 */6 * * *"
	}
}

// Location resolves the configured timezone, falling back to UTC when
// the zone database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: create parent directory if needed,
//     write a default config with 0600 perms, return the default.
//   - If the file exists: read YAML, unmarshal, normalize defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(dir, ".nbacal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
