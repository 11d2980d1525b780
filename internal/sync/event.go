package sync

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"nbacal/internal/model"
	"nbacal/internal/team"
)

// eventDuration is the assumed slot for a game; the feed does not
// carry an end time.
const eventDuration = 3 * time.Hour

// EventUID derives the stable identity for a game's calendar entry:
// a deterministic function of (season, team, opponent, scheduled
// date). A time change on the same date therefore keeps the identity
// and becomes an update rather than a remove+add. Identities are
// unique within one team's calendar as long as a team does not play
// the same opponent twice on one date, which the league schedule
// never does.
func EventUID(season, teamCode, opponent string, date time.Time) string {
	base := fmt.Sprintf("%s-%s-%s-%s", season, teamCode, opponent, date.Format("20060102"))
	sum := md5.Sum([]byte(base))
	return hex.EncodeToString(sum[:]) + "@nbacal"
}

// BuildEvent maps a canonical game record onto its calendar event.
// LastModified is left zero; the reconciler stamps it on added and
// updated events and preserves the old stamp on unchanged ones.
func BuildEvent(g model.Game) model.Event {
	homeCode, awayCode := g.Opponent, g.Team
	if g.Home {
		homeCode, awayCode = g.Team, g.Opponent
	}

	summary := fmt.Sprintf("%s @ %s", awayCode, homeCode)
	if g.Status == model.GameFinal && g.HasScore {
		summary = fmt.Sprintf("%s %d @ %s %d", awayCode, g.AwayScore, homeCode, g.HomeScore)
	}
	if g.Status == model.GamePostponed {
		// Annotate rather than silently drop; removal happens only when
		// the game disappears from the schedule entirely.
		summary += " (Postponed)"
	}

	return model.Event{
		UID:         EventUID(g.Season, g.Team, g.Opponent, g.Start),
		Summary:     summary,
		Description: buildDescription(g, homeCode, awayCode),
		Location:    g.Arena,
		Start:       g.Start,
		End:         g.Start.Add(eventDuration),
		Status:      eventStatus(g.Status),
	}
}

// buildDescription composes a single-line description: matchup by
// full names, season, and season type / final score where relevant.
func buildDescription(g model.Game, homeCode, awayCode string) string {
	parts := []string{
		fmt.Sprintf("%s @ %s", team.DisplayName(awayCode), team.DisplayName(homeCode)),
		"Season: " + g.Season,
	}
	if g.SeasonType != "" && g.SeasonType != "Regular Season" {
		parts = append(parts, "Type: "+g.SeasonType)
	}
	if g.Status == model.GameFinal && g.HasScore {
		parts = append(parts, fmt.Sprintf("Final: %s %d - %d %s", awayCode, g.AwayScore, g.HomeScore, homeCode))
	}
	return strings.Join(parts, " / ")
}

func eventStatus(s model.GameStatus) string {
	switch s {
	case model.GameFinal:
		return "CONFIRMED"
	case model.GamePostponed:
		return "CANCELLED"
	default:
		return "TENTATIVE"
	}
}
