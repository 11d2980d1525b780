package team

import (
	"fmt"
	"sort"
)

// Selection is the user's tracked set: explicit team codes plus whole
// conferences and divisions. It is loaded from configuration and is
// read-only here.
type Selection struct {
	Teams       []string
	Conferences []string
	Divisions   []string
}

// Empty reports whether nothing is tracked.
func (s Selection) Empty() bool {
	return len(s.Teams) == 0 && len(s.Conferences) == 0 && len(s.Divisions) == 0
}

// UnknownTeamError reports a selection entry that does not exist in
// the registry. Tracking commands validate input up front, but the
// config file can be hand-edited, so Resolve re-validates.
type UnknownTeamError struct {
	Kind string // "team", "conference" or "division"
	Name string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Name)
}

// Resolve expands a Selection into the concrete set of teams: the
// union of explicitly tracked teams and every team belonging to a
// tracked conference or division. The result is de-duplicated and
// sorted by code so downstream processing order is deterministic.
func Resolve(sel Selection) ([]Team, error) {
	byCode := make(map[string]Team)

	for _, code := range sel.Teams {
		t, ok := Lookup(code)
		if !ok {
			return nil, &UnknownTeamError{Kind: "team", Name: code}
		}
		byCode[t.Code] = t
	}

	for _, name := range sel.Conferences {
		conf, ok := ParseConference(name)
		if !ok {
			return nil, &UnknownTeamError{Kind: "conference", Name: name}
		}
		for _, t := range ByConference(conf) {
			byCode[t.Code] = t
		}
	}

	for _, name := range sel.Divisions {
		div, ok := ParseDivision(name)
		if !ok {
			return nil, &UnknownTeamError{Kind: "division", Name: name}
		}
		for _, t := range ByDivision(div) {
			byCode[t.Code] = t
		}
	}

	out := make([]Team, 0, len(byCode))
	for _, t := range byCode {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
