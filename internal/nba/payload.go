package nba

// Raw schedule payload shapes for the league's public mobile schedule
// feed. Only the fields the normalizer reads are declared; everything
// else in the feed is ignored by encoding/json.

// Schedule is the season-wide payload: one entry per month.
type Schedule struct {
	Months []MonthSchedule `json:"lscd"`
}

// MonthSchedule wraps a single month block.
type MonthSchedule struct {
	Month Month `json:"mscd"`
}

// Month holds the games scheduled within one calendar month.
type Month struct {
	Name  string    `json:"mon"`
	Games []RawGame `json:"g"`
}

// RawGame is one schedule entry as delivered upstream.
type RawGame struct {
	ID         string  `json:"gid"`
	Date       string  `json:"gdte"` // YYYY-MM-DD
	EasternTM  string  `json:"etm"`  // 2006-01-02T15:04:05, Eastern wall clock
	StatusNum  int     `json:"st"`   // 1 scheduled, 2 live, 3 final
	StatusText string  `json:"stt"`  // e.g. "7:30 pm ET", "Final", "PPD"
	Series     string  `json:"seri"` // playoff series text, empty in regular season
	Arena      string  `json:"an"`
	ArenaCity  string  `json:"ac"`
	ArenaState string  `json:"as"`
	Visitor    RawTeam `json:"v"`
	Home       RawTeam `json:"h"`
}

// RawTeam is the home/visitor sub-object of a RawGame.
type RawTeam struct {
	ID    int    `json:"tid"`
	Code  string `json:"ta"`
	Name  string `json:"tn"`
	City  string `json:"tc"`
	Score string `json:"s"` // empty until the game has a score
}
