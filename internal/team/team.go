package team

import (
	"sort"
	"strings"
)

// Conference is one of the two NBA conferences.
type Conference string

const (
	East Conference = "East"
	West Conference = "West"
)

// Division is one of the eight NBA divisions.
type Division string

const (
	Atlantic  Division = "Atlantic"
	Central   Division = "Central"
	Southeast Division = "Southeast"
	Northwest Division = "Northwest"
	Pacific   Division = "Pacific"
	Southwest Division = "Southwest"
)

// Team is the static registry entry for one franchise.
type Team struct {
	Code       string // short code, unique, e.g. "LAL"
	Name       string // display name
	Conference Conference
	Division   Division
	UpstreamID int // numeric team id used by the schedule feed
}

// registry is the build-time team table. Grouped by division.
var registry = []Team{
	// East / Atlantic
	{Code: "BOS", Name: "Boston Celtics", Conference: East, Division: Atlantic, UpstreamID: 1610612738},
	{Code: "BKN", Name: "Brooklyn Nets", Conference: East, Division: Atlantic, UpstreamID: 1610612751},
	{Code: "NYK", Name: "New York Knicks", Conference: East, Division: Atlantic, UpstreamID: 1610612752},
	{Code: "PHI", Name: "Philadelphia 76ers", Conference: East, Division: Atlantic, UpstreamID: 1610612755},
	{Code: "TOR", Name: "Toronto Raptors", Conference: East, Division: Atlantic, UpstreamID: 1610612761},
	// East / Central
	{Code: "CHI", Name: "Chicago Bulls", Conference: East, Division: Central, UpstreamID: 1610612741},
	{Code: "CLE", Name: "Cleveland Cavaliers", Conference: East, Division: Central, UpstreamID: 1610612739},
	{Code: "DET", Name: "Detroit Pistons", Conference: East, Division: Central, UpstreamID: 1610612765},
	{Code: "IND", Name: "Indiana Pacers", Conference: East, Division: Central, UpstreamID: 1610612754},
	{Code: "MIL", Name: "Milwaukee Bucks", Conference: East, Division: Central, UpstreamID: 1610612749},
	// East / Southeast
	{Code: "ATL", Name: "Atlanta Hawks", Conference: East, Division: Southeast, UpstreamID: 1610612737},
	{Code: "CHA", Name: "Charlotte Hornets", Conference: East, Division: Southeast, UpstreamID: 1610612766},
	{Code: "MIA", Name: "Miami Heat", Conference: East, Division: Southeast, UpstreamID: 1610612748},
	{Code: "ORL", Name: "Orlando Magic", Conference: East, Division: Southeast, UpstreamID: 1610612753},
	{Code: "WAS", Name: "Washington Wizards", Conference: East, Division: Southeast, UpstreamID: 1610612764},
	// West / Northwest
	{Code: "DEN", Name: "Denver Nuggets", Conference: West, Division: Northwest, UpstreamID: 1610612743},
	{Code: "MIN", Name: "Minnesota Timberwolves", Conference: West, Division: Northwest, UpstreamID: 1610612750},
	{Code: "OKC", Name: "Oklahoma City Thunder", Conference: West, Division: Northwest, UpstreamID: 1610612760},
	{Code: "POR", Name: "Portland Trail Blazers", Conference: West, Division: Northwest, UpstreamID: 1610612757},
	{Code: "UTA", Name: "Utah Jazz", Conference: West, Division: Northwest, UpstreamID: 1610612762},
	// West / Pacific
	{Code: "GSW", Name: "Golden State Warriors", Conference: West, Division: Pacific, UpstreamID: 1610612744},
	{Code: "LAC", Name: "Los Angeles Clippers", Conference: West, Division: Pacific, UpstreamID: 1610612746},
	{Code: "LAL", Name: "Los Angeles Lakers", Conference: West, Division: Pacific, UpstreamID: 1610612747},
	{Code: "PHX", Name: "Phoenix Suns", Conference: West, Division: Pacific, UpstreamID: 1610612756},
	{Code: "SAC", Name: "Sacramento Kings", Conference: West, Division: Pacific, UpstreamID: 1610612758},
	// West / Southwest
	{Code: "DAL", Name: "Dallas Mavericks", Conference: West, Division: Southwest, UpstreamID: 1610612742},
	{Code: "HOU", Name: "Houston Rockets", Conference: West, Division: Southwest, UpstreamID: 1610612745},
	{Code: "MEM", Name: "Memphis Grizzlies", Conference: West, Division: Southwest, UpstreamID: 1610612763},
	{Code: "NOP", Name: "New Orleans Pelicans", Conference: West, Division: Southwest, UpstreamID: 1610612740},
	{Code: "SAS", Name: "San Antonio Spurs", Conference: West, Division: Southwest, UpstreamID: 1610612759},
}

// All returns every registered team sorted by code.
func All() []Team {
	out := make([]Team, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Lookup finds a team by code. Matching is case-insensitive.
func Lookup(code string) (Team, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	for _, t := range registry {
		if t.Code == c {
			return t, true
		}
	}
	return Team{}, false
}

// DisplayName returns the registry display name for a code, or the
// code itself when the opponent is not a registered franchise
// (e.g. international exhibition opponents in the raw feed).
func DisplayName(code string) string {
	if t, ok := Lookup(code); ok {
		return t.Name
	}
	return code
}

// ByConference returns all teams in the given conference, sorted by code.
func ByConference(c Conference) []Team {
	var out []Team
	for _, t := range registry {
		if t.Conference == c {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ByDivision returns all teams in the given division, sorted by code.
func ByDivision(d Division) []Team {
	var out []Team
	for _, t := range registry {
		if t.Division == d {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ParseConference validates a conference name. Matching is
// case-insensitive ("east" == "East").
func ParseConference(s string) (Conference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east":
		return East, true
	case "west":
		return West, true
	}
	return "", false
}

// ParseDivision validates a division name, case-insensitively.
func ParseDivision(s string) (Division, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "atlantic":
		return Atlantic, true
	case "central":
		return Central, true
	case "southeast":
		return Southeast, true
	case "northwest":
		return Northwest, true
	case "pacific":
		return Pacific, true
	case "southwest":
		return Southwest, true
	}
	return "", false
}
