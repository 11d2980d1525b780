package nba

import (
	"sort"
	"strconv"
	"strings"
	"time"

	appLog "nbacal/internal/log"
	"nbacal/internal/model"
)

const (
	rawTimeLayout = "2006-01-02T15:04:05"
	rawDateLayout = "2006-01-02"

	// Tip-off fallback when the feed carries a date but no time yet.
	defaultTipHour   = 19
	defaultTipMinute = 30
)

// dupKey identifies a logical game within one team's schedule. The
// feed occasionally repeats an entry during live-update windows; the
// later record in fetch order wins.
type dupKey struct {
	date     string
	opponent string
}

// Normalize extracts the canonical game list for one team from a raw
// season payload. Entries missing required fields are dropped with a
// warning; duplicates for the same (date, opponent) are merged keeping
// the most-recently-seen record. All timestamps are produced in loc,
// which must be the same zone for every call within a sync so that
// downstream diffing is well-defined.
func Normalize(sched *Schedule, teamCode, season string, loc *time.Location) []model.Game {
	if sched == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[dupKey]int)
	var games []model.Game

	for _, m := range sched.Months {
		for _, raw := range m.Month.Games {
			if raw.Home.Code != teamCode && raw.Visitor.Code != teamCode {
				continue
			}

			g, ok := normalizeOne(raw, teamCode, season, loc)
			if !ok {
				continue
			}

			key := dupKey{date: g.Start.Format(rawDateLayout), opponent: g.Opponent}
			if i, seen := index[key]; seen {
				// Conflicting duplicate from upstream: last seen wins.
				appLog.Warn("duplicate schedule entry, keeping later record",
					"team", teamCode, "opponent", g.Opponent, "date", key.date)
				games[i] = g
				continue
			}
			index[key] = len(games)
			games = append(games, g)
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Start.Equal(games[j].Start) {
			return games[i].Start.Before(games[j].Start)
		}
		return games[i].Opponent < games[j].Opponent
	})

	return games
}

// normalizeOne maps a single raw entry for teamCode into a Game.
// Returns ok=false when required fields are missing.
func normalizeOne(raw RawGame, teamCode, season string, loc *time.Location) (model.Game, bool) {
	home := raw.Home.Code == teamCode

	opponent := raw.Home.Code
	if home {
		opponent = raw.Visitor.Code
	}
	if opponent == "" {
		appLog.Warn("schedule entry missing opponent, dropped", "team", teamCode, "game_id", raw.ID)
		return model.Game{}, false
	}

	start, ok := parseStart(raw, loc)
	if !ok {
		appLog.Warn("schedule entry missing start time, dropped",
			"team", teamCode, "opponent", opponent, "game_id", raw.ID)
		return model.Game{}, false
	}

	g := model.Game{
		Season:     season,
		Team:       teamCode,
		Opponent:   opponent,
		Home:       home,
		Start:      start,
		Arena:      arenaLocation(raw),
		Status:     gameStatus(raw),
		SeasonType: seasonType(raw.Series),
	}

	if g.Status == model.GameFinal {
		hs, herr := strconv.Atoi(strings.TrimSpace(raw.Home.Score))
		as, aerr := strconv.Atoi(strings.TrimSpace(raw.Visitor.Score))
		if herr == nil && aerr == nil {
			g.HomeScore = hs
			g.AwayScore = as
			g.HasScore = true
		}
	}

	return g, true
}

// parseStart builds the tip-off time in loc. The feed's etm field is
// an Eastern wall-clock time; when it is absent or malformed we fall
// back to the game date with the league's usual evening tip-off.
func parseStart(raw RawGame, loc *time.Location) (time.Time, bool) {
	if raw.EasternTM != "" {
		if t, err := time.ParseInLocation(rawTimeLayout, raw.EasternTM, loc); err == nil {
			return t, true
		}
	}
	if raw.Date != "" {
		if d, err := time.ParseInLocation(rawDateLayout, raw.Date, loc); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), defaultTipHour, defaultTipMinute, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

func gameStatus(raw RawGame) model.GameStatus {
	if raw.StatusNum == 3 {
		return model.GameFinal
	}
	stt := strings.ToLower(raw.StatusText)
	if strings.Contains(stt, "ppd") || strings.Contains(stt, "postpon") {
		return model.GamePostponed
	}
	return model.GameScheduled
}

func seasonType(series string) string {
	switch {
	case strings.Contains(series, "Play-In"):
		return "Play-In"
	case strings.Contains(series, "Playoff"), strings.Contains(series, "Finals"):
		return "Playoffs"
	default:
		return "Regular Season"
	}
}

// arenaLocation joins arena, city and state into a display location.
func arenaLocation(raw RawGame) string {
	parts := make([]string, 0, 3)
	if raw.Arena != "" {
		parts = append(parts, raw.Arena)
	}
	if raw.ArenaCity != "" {
		parts = append(parts, raw.ArenaCity)
	}
	if raw.ArenaState != "" {
		parts = append(parts, raw.ArenaState)
	}
	return strings.Join(parts, ", ")
}
