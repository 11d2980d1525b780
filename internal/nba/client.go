package nba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	appLog "nbacal/internal/log"
)

const scheduleURLFormat = "https://data.nba.com/data/10s/v2015/json/mobile_teams/nba/%d/league/00_full_schedule.json"

// cacheEntry holds HTTP cache metadata for one season's schedule.
type cacheEntry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Client fetches the league schedule feed with HTTP caching
// (ETag / Last-Modified) backed by a disk cache, so serve mode can
// poll frequently without re-downloading an unchanged season payload.
type Client struct {
	client   *http.Client
	cacheDir string
}

// NewClient creates a schedule Client. cacheDir is the base directory
// for per-season cache files, e.g. "./cache".
func NewClient(cacheDir string) *Client {
	if cacheDir == "" {
		cacheDir = "./cache"
	}
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cacheDir: cacheDir,
	}
}

// SeasonStartYear extracts the starting year from a season identifier
// like "2024-25".
func SeasonStartYear(season string) (int, error) {
	head, _, _ := strings.Cut(season, "-")
	year, err := strconv.Atoi(head)
	if err != nil || year < 1946 {
		return 0, fmt.Errorf("invalid season %q", season)
	}
	return year, nil
}

// FetchSeason downloads (or serves from cache) the full schedule for
// one season and decodes it. On network failure a previously cached
// payload is used when available.
func (c *Client) FetchSeason(ctx context.Context, season string) (*Schedule, error) {
	year, err := SeasonStartYear(season)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf(scheduleURLFormat, year)
	cachePath := filepath.Join(c.cacheDir, fmt.Sprintf("schedule-%d", year))

	body, err := c.fetch(ctx, url, cachePath)
	if err != nil {
		return nil, err
	}

	var sched Schedule
	if err := json.Unmarshal(body, &sched); err != nil {
		return nil, fmt.Errorf("decode schedule payload: %w", err)
	}

	games := 0
	for _, m := range sched.Months {
		games += len(m.Month.Games)
	}
	appLog.Info("schedule fetched", "season", season, "months", len(sched.Months), "games", games)

	return &sched, nil
}

// fetch performs a conditional GET against url, honoring ETag and
// Last-Modified from the cache directory at cachePath.
func (c *Client) fetch(ctx context.Context, url, cachePath string) ([]byte, error) {
	if err := os.MkdirAll(cachePath, 0o700); err != nil {
		return nil, err
	}

	meta, _ := loadCacheMeta(cachePath)
	cachedBody, _ := os.ReadFile(filepath.Join(cachePath, "body.json"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "nbacal/1.0")
	req.Header.Set("Accept", "application/json")

	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Network error; fall back to the cached body if we have one.
		if len(cachedBody) > 0 {
			appLog.Warn("schedule fetch failed, using cached body", "url", url, "err", err)
			return cachedBody, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		newMeta := cacheEntry{
			URL:          url,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := saveCache(cachePath, newMeta, body); err != nil {
			// Log but still return the freshly fetched body.
			appLog.Error("schedule cache save failed", err, "url", url)
		}
		return body, nil

	case http.StatusNotModified:
		if len(cachedBody) == 0 {
			return nil, errors.New("received 304 Not Modified but no cached body available")
		}
		appLog.Debug("schedule not modified; using cache", "url", url)
		return cachedBody, nil

	default:
		if len(cachedBody) > 0 {
			appLog.Warn("schedule fetch non-OK, using cached body", "url", url, "status", resp.StatusCode)
			return cachedBody, nil
		}
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
}

func loadCacheMeta(cachePath string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(cachePath, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

func saveCache(cachePath string, meta cacheEntry, body []byte) error {
	// Write body first so meta never points at a missing body.
	if err := os.WriteFile(filepath.Join(cachePath, "body.json"), body, 0o600); err != nil {
		return err
	}

	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cachePath, "meta.json"), data, 0o600)
}
