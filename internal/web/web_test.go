package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbacal/internal/config"
	calsync "nbacal/internal/sync"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Season = "2024-25"
	cfg.CalendarsDir = t.TempDir()
	return NewServer(cfg), cfg.CalendarsDir
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("before any sync", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Season  string           `json:"season"`
			LastRun *json.RawMessage `json:"last_run"`
			Teams   []map[string]any `json:"teams"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "2024-25", resp.Season)
		assert.Nil(t, resp.LastRun)
		assert.Empty(t, resp.Teams)
	})

	t.Run("after a sync", func(t *testing.T) {
		s.SetReports([]calsync.Report{
			{Team: "LAL", Added: 2, Path: "/data/nba_lal.ics"},
			{Team: "BOS", Err: errors.New("fetch schedule: upstream down")},
		})

		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var resp struct {
			LastRun *string `json:"last_run"`
			Teams   []struct {
				Team  string `json:"team"`
				Added int    `json:"added"`
				File  string `json:"file"`
				Error string `json:"error"`
			} `json:"teams"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.LastRun)
		require.Len(t, resp.Teams, 2)
		assert.Equal(t, "LAL", resp.Teams[0].Team)
		assert.Equal(t, 2, resp.Teams[0].Added)
		assert.Equal(t, "nba_lal.ics", resp.Teams[0].File)
		assert.Empty(t, resp.Teams[0].Error)
		assert.Contains(t, resp.Teams[1].Error, "upstream down")
	})
}

func TestCalendarFeed(t *testing.T) {
	s, dir := newTestServer(t)
	body := "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nba_lal.ics"), []byte(body), 0o644))

	t.Run("serves a calendar file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calendars/nba_lal.ics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, body, rec.Body.String())
	})

	t.Run("unknown calendar is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/calendars/nba_xxx.ics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects non-ics and nested names", func(t *testing.T) {
		for _, path := range []string{
			"/calendars/",
			"/calendars/config.yaml",
			"/calendars/sub/nba_lal.ics",
		} {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code, path)
		}
	})
}
