package sync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nbacal/internal/ics"
	appLog "nbacal/internal/log"
	"nbacal/internal/model"
	"nbacal/internal/nba"
	"nbacal/internal/team"
)

// Fetcher supplies the raw season schedule. Satisfied by *nba.Client;
// tests substitute a stub.
type Fetcher interface {
	FetchSeason(ctx context.Context, season string) (*nba.Schedule, error)
}

// Report summarizes one team's sync outcome. Err is set when that
// team's sync failed; other teams are unaffected.
type Report struct {
	Team      string
	Added     int
	Updated   int
	Removed   int
	Unchanged int
	Path      string
	Err       error
}

// Failed reports whether any team in the batch failed.
func Failed(reports []Report) bool {
	for _, r := range reports {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Syncer runs the fetch -> normalize -> reconcile -> render pipeline
// for every tracked team. Teams are independent: one team's failure is
// recorded in its Report and never aborts the rest.
type Syncer struct {
	fetch Fetcher
	dir   string
	loc   *time.Location
	now   func() time.Time
}

// New creates a Syncer writing calendar files into dir, with game
// times normalized to loc.
func New(fetch Fetcher, dir string, loc *time.Location) *Syncer {
	if loc == nil {
		loc = time.UTC
	}
	return &Syncer{
		fetch: fetch,
		dir:   dir,
		loc:   loc,
		now:   time.Now,
	}
}

// FileName returns the published calendar file name for a team code.
func FileName(code string) string {
	return "nba_" + strings.ToLower(code) + ".ics"
}

func calendarName(t team.Team) string {
	return "NBA - " + t.Name
}

// Run executes one full sync for the tracked selection. It fails as a
// whole only when the selection itself is invalid; everything after
// that is reported per team.
func (s *Syncer) Run(ctx context.Context, sel team.Selection, season string) ([]Report, error) {
	teams, err := team.Resolve(sel)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		appLog.Info("nothing tracked; no calendars to sync")
		return nil, nil
	}

	// One league-wide fetch serves every team.
	sched, fetchErr := s.fetch.FetchSeason(ctx, season)

	now := s.now().UTC().Truncate(time.Second)
	reports := make([]Report, 0, len(teams))
	for _, t := range teams {
		reports = append(reports, s.syncTeam(sched, fetchErr, t, season, now))
	}
	return reports, nil
}

func (s *Syncer) syncTeam(sched *nba.Schedule, fetchErr error, t team.Team, season string, now time.Time) Report {
	rep := Report{
		Team: t.Code,
		Path: filepath.Join(s.dir, FileName(t.Code)),
	}

	if fetchErr != nil {
		rep.Err = fmt.Errorf("fetch schedule: %w", fetchErr)
		appLog.Error("team sync failed", rep.Err, "team", t.Code)
		return rep
	}

	games := nba.Normalize(sched, t.Code, season, s.loc)
	old, hadFile := s.readExisting(rep.Path)

	plan := BuildPlan(games, old, now)
	rep.Added = len(plan.Add)
	rep.Updated = len(plan.Update)
	rep.Removed = len(plan.Remove)
	rep.Unchanged = len(plan.Unchanged)

	if !plan.Changed() && hadFile {
		appLog.Info("calendar up to date", "team", t.Code, "events", rep.Unchanged)
		return rep
	}

	data := ics.Render(calendarName(t), plan.Events())
	if err := ics.WriteFile(rep.Path, data); err != nil {
		rep.Err = fmt.Errorf("write calendar: %w", err)
		appLog.Error("team sync failed", rep.Err, "team", t.Code)
		return rep
	}

	appLog.Info("calendar written",
		"team", t.Code,
		"path", rep.Path,
		"added", rep.Added,
		"updated", rep.Updated,
		"removed", rep.Removed,
	)
	return rep
}

// readExisting loads and parses the current calendar file. Absence
// and corruption are both treated as an empty prior state; a corrupted
// file is simply regenerated on this run.
func (s *Syncer) readExisting(path string) (events []model.Event, hadFile bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Warn("existing calendar unreadable", "path", path, "err", err)
		}
		return nil, false
	}

	events, err = ics.Parse(data)
	if err != nil {
		// Treated as absent so the file is regenerated this run.
		appLog.Warn("existing calendar unparseable; regenerating", "path", path, "err", err)
		return nil, false
	}
	return events, true
}
