package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nbacal", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.True(t, cfg.Tracked.Empty())
	assert.NotEmpty(t, cfg.Season)

	// The default file must now exist with restrictive permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Season = "2024-25"
	cfg.Tracked = TrackedConfig{
		Teams:       []string{"LAL", "BOS"},
		Conferences: []string{"East"},
		Divisions:   []string{"Pacific"},
	}
	cfg.CalendarsDir = "/srv/calendars"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", got.Season)
	assert.Equal(t, []string{"LAL", "BOS"}, got.Tracked.Teams)
	assert.Equal(t, []string{"East"}, got.Tracked.Conferences)
	assert.Equal(t, []string{"Pacific"}, got.Tracked.Divisions)
	assert.Equal(t, "/srv/calendars", got.CalendarsDir)
}

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	assert.NotEmpty(t, cfg.Season)
	assert.Equal(t, "./calendars", cfg.CalendarsDir)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "0 */6 * * *", cfg.RefreshCron)
}

func TestCurrentSeason(t *testing.T) {
	t.Run("october starts the new season", func(t *testing.T) {
		now := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-25", CurrentSeason(now))
	})

	t.Run("spring belongs to the running season", func(t *testing.T) {
		now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-25", CurrentSeason(now))
	})
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
