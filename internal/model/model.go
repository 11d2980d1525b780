package model

import "time"

// GameStatus describes where a game stands in the upstream schedule.
type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameFinal     GameStatus = "final"
	GamePostponed GameStatus = "postponed"
)

// Game is the canonical per-team schedule record produced by the
// normalizer. It is recomputed on every sync and never persisted;
// only its derived Event form reaches disk.
type Game struct {
	Season   string
	Team     string // tracked team code, e.g. "LAL"
	Opponent string // opponent code
	Home     bool   // true when the tracked team hosts

	// Start is the tip-off time in the canonical schedule timezone.
	Start time.Time

	// Arena is "<arena>, <city>, <state>" as far as the upstream
	// payload provides it; may be empty.
	Arena string

	Status     GameStatus
	SeasonType string // "Regular Season", "Play-In", "Playoffs"

	// Scores are meaningful only when HasScore is true (final games).
	HomeScore int
	AwayScore int
	HasScore  bool
}

// Event is a single VEVENT as stored in a team's calendar file.
// UID is the stable identity: a deterministic function of
// (season, team, opponent, scheduled date), so a time change on the
// same date updates the existing entry instead of replacing it.
type Event struct {
	UID string

	Summary     string
	Description string
	Location    string

	Start time.Time
	End   time.Time

	// Status is the iCalendar STATUS value: TENTATIVE for upcoming
	// games, CONFIRMED for finals, CANCELLED for postponed games.
	Status string

	// LastModified is carried through unchanged syncs so that repeated
	// runs with identical upstream data render byte-identical files.
	LastModified time.Time
}

// SameAttributes reports whether two events render identically aside
// from their modification stamp.
func (e Event) SameAttributes(o Event) bool {
	return e.Summary == o.Summary &&
		e.Description == o.Description &&
		e.Location == o.Location &&
		e.Status == o.Status &&
		e.Start.Equal(o.Start) &&
		e.End.Equal(o.End)
}
