package web

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"nbacal/internal/config"
	appLog "nbacal/internal/log"
	calsync "nbacal/internal/sync"
)

// Server publishes the generated calendar files over HTTP so calendar
// applications can subscribe by polling, plus a small status API.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	// Last sync outcome, updated by the serve loop after every run.
	mu          sync.RWMutex
	lastReports []calsync.Report
	lastRun     time.Time
}

// NewServer constructs a Server for the given configuration.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// SetReports records the outcome of the most recent sync run for the
// status endpoint.
func (s *Server) SetReports(reports []calsync.Report) {
	s.mu.Lock()
	s.lastReports = reports
	s.lastRun = time.Now()
	s.mu.Unlock()
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/calendars/", s.handleCalendar)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// statusResponse is the JSON response shape for /api/status.
type statusResponse struct {
	Season  string      `json:"season"`
	LastRun *time.Time  `json:"last_run,omitempty"`
	Teams   []reportDTO `json:"teams"`
}

// reportDTO is a JSON-friendly view of a per-team sync report.
type reportDTO struct {
	Team      string `json:"team"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Removed   int    `json:"removed"`
	Unchanged int    `json:"unchanged"`
	File      string `json:"file"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	reports := s.lastReports
	lastRun := s.lastRun
	s.mu.RUnlock()

	resp := statusResponse{
		Season: s.cfg.Season,
		Teams:  make([]reportDTO, 0, len(reports)),
	}
	if !lastRun.IsZero() {
		resp.LastRun = &lastRun
	}

	for _, r := range reports {
		dto := reportDTO{
			Team:      r.Team,
			Added:     r.Added,
			Updated:   r.Updated,
			Removed:   r.Removed,
			Unchanged: r.Unchanged,
			File:      filepath.Base(r.Path),
		}
		if r.Err != nil {
			dto.Error = r.Err.Error()
		}
		resp.Teams = append(resp.Teams, dto)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCalendar serves a single generated .ics file. The file on
// disk is replaced atomically by the syncer, so a poll never sees a
// partial calendar.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/calendars/")
	// Flat .ics names only; no traversal into the data directory.
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".ics") {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(s.cfg.CalendarsDir, name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}
