package sync

import (
	"time"

	appLog "nbacal/internal/log"
	"nbacal/internal/model"
)

// Plan is the per-team reconciliation outcome: three disjoint change
// sets plus the events that are identical in both old and new state.
// Every identity appears in exactly one of the four slices.
type Plan struct {
	Add       []model.Event
	Update    []model.Event
	Remove    []model.Event
	Unchanged []model.Event
}

// Changed reports whether rendering would alter the calendar file.
func (p Plan) Changed() bool {
	return len(p.Add) > 0 || len(p.Update) > 0 || len(p.Remove) > 0
}

// Events returns the final event set to render: everything except the
// removals. Ordering is irrelevant here; Render sorts.
func (p Plan) Events() []model.Event {
	out := make([]model.Event, 0, len(p.Add)+len(p.Update)+len(p.Unchanged))
	out = append(out, p.Add...)
	out = append(out, p.Update...)
	out = append(out, p.Unchanged...)
	return out
}

// BuildPlan diffs the fresh game list against the events parsed from
// the existing calendar file. Identity is the event UID: present only
// in new -> add; present in both with differing attributes -> update,
// stamped with now; identical -> unchanged, keeping the old stamp so
// repeated runs render byte-identical output; present only in old ->
// remove (game gone from the schedule, or team no longer tracked).
func BuildPlan(games []model.Game, old []model.Event, now time.Time) Plan {
	oldByUID := make(map[string]model.Event, len(old))
	for _, ev := range old {
		oldByUID[ev.UID] = ev
	}

	// Build the new event list preserving fetch order; should two
	// records collapse to one identity despite normalizer de-dup, the
	// later one wins, deterministically.
	newIndex := make(map[string]int, len(games))
	news := make([]model.Event, 0, len(games))
	for _, g := range games {
		ev := BuildEvent(g)
		if i, dup := newIndex[ev.UID]; dup {
			appLog.Warn("duplicate event identity, keeping later record", "uid", ev.UID, "team", g.Team)
			news[i] = ev
			continue
		}
		newIndex[ev.UID] = len(news)
		news = append(news, ev)
	}

	var p Plan
	for _, ev := range news {
		oldEv, exists := oldByUID[ev.UID]
		if !exists {
			ev.LastModified = now
			p.Add = append(p.Add, ev)
			continue
		}
		if ev.SameAttributes(oldEv) {
			p.Unchanged = append(p.Unchanged, oldEv)
		} else {
			ev.LastModified = now
			p.Update = append(p.Update, ev)
		}
	}

	removed := make(map[string]bool)
	for _, oldEv := range old {
		if _, stillThere := newIndex[oldEv.UID]; stillThere {
			continue
		}
		if removed[oldEv.UID] {
			continue
		}
		removed[oldEv.UID] = true
		p.Remove = append(p.Remove, oldEv)
	}

	return p
}
