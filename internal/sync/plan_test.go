package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbacal/internal/model"
)

func testGame(opponent string, start time.Time) model.Game {
	return model.Game{
		Season:   "2024-25",
		Team:     "LAL",
		Opponent: opponent,
		Home:     true,
		Start:    start,
		Arena:    "Crypto.com Arena, Los Angeles, CA",
		Status:   model.GameScheduled,
	}
}

func TestEventUID(t *testing.T) {
	date := time.Date(2024, 11, 1, 19, 30, 0, 0, time.UTC)

	uid := EventUID("2024-25", "LAL", "BOS", date)
	assert.True(t, len(uid) > 0)
	assert.Contains(t, uid, "@nbacal")

	// Deterministic, and a time change on the same date keeps identity.
	assert.Equal(t, uid, EventUID("2024-25", "LAL", "BOS", date.Add(30*time.Minute)))

	// Any component change produces a new identity.
	assert.NotEqual(t, uid, EventUID("2024-25", "LAL", "DEN", date))
	assert.NotEqual(t, uid, EventUID("2024-25", "BOS", "LAL", date))
	assert.NotEqual(t, uid, EventUID("2025-26", "LAL", "BOS", date))
	assert.NotEqual(t, uid, EventUID("2024-25", "LAL", "BOS", date.AddDate(0, 0, 1)))
}

func TestBuildEvent(t *testing.T) {
	start := time.Date(2024, 11, 1, 19, 30, 0, 0, time.UTC)

	t.Run("scheduled home game", func(t *testing.T) {
		g := testGame("BOS", start)
		ev := BuildEvent(g)
		assert.Equal(t, "BOS @ LAL", ev.Summary)
		assert.Equal(t, "TENTATIVE", ev.Status)
		assert.Equal(t, g.Arena, ev.Location)
		assert.True(t, ev.End.Equal(start.Add(3*time.Hour)))
		assert.True(t, ev.LastModified.IsZero())
		assert.Contains(t, ev.Description, "Boston Celtics @ Los Angeles Lakers")
	})

	t.Run("final with score", func(t *testing.T) {
		g := testGame("BOS", start)
		g.Status = model.GameFinal
		g.HasScore = true
		g.HomeScore = 110
		g.AwayScore = 102
		ev := BuildEvent(g)
		assert.Equal(t, "BOS 102 @ LAL 110", ev.Summary)
		assert.Equal(t, "CONFIRMED", ev.Status)
	})

	t.Run("postponed", func(t *testing.T) {
		g := testGame("BOS", start)
		g.Status = model.GamePostponed
		ev := BuildEvent(g)
		assert.Equal(t, "BOS @ LAL (Postponed)", ev.Summary)
		assert.Equal(t, "CANCELLED", ev.Status)
	})

	t.Run("away game flips summary", func(t *testing.T) {
		g := testGame("DEN", start)
		g.Home = false
		ev := BuildEvent(g)
		assert.Equal(t, "LAL @ DEN", ev.Summary)
	})
}

func TestBuildPlan(t *testing.T) {
	now := time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 11, 1, 19, 30, 0, 0, time.UTC)

	t.Run("first sync is all adds", func(t *testing.T) {
		games := []model.Game{
			testGame("BOS", start),
			testGame("DEN", start.AddDate(0, 0, 3)),
			testGame("MIA", start.AddDate(0, 0, 6)),
		}
		p := BuildPlan(games, nil, now)
		assert.Len(t, p.Add, 3)
		assert.Empty(t, p.Update)
		assert.Empty(t, p.Remove)
		assert.Empty(t, p.Unchanged)
		for _, ev := range p.Add {
			assert.True(t, ev.LastModified.Equal(now))
		}
	})

	t.Run("time change on same date is an update", func(t *testing.T) {
		old := []model.Event{BuildEvent(testGame("BOS", start))}
		old[0].LastModified = now.Add(-24 * time.Hour)

		moved := testGame("BOS", start.Add(30*time.Minute))
		p := BuildPlan([]model.Game{moved}, old, now)

		require.Len(t, p.Update, 1)
		assert.Empty(t, p.Add)
		assert.Empty(t, p.Remove)
		assert.Empty(t, p.Unchanged)
		assert.Equal(t, old[0].UID, p.Update[0].UID)
		assert.True(t, p.Update[0].LastModified.Equal(now))
	})

	t.Run("identical game is unchanged and keeps its stamp", func(t *testing.T) {
		oldStamp := now.Add(-24 * time.Hour)
		old := []model.Event{BuildEvent(testGame("BOS", start))}
		old[0].LastModified = oldStamp

		p := BuildPlan([]model.Game{testGame("BOS", start)}, old, now)

		require.Len(t, p.Unchanged, 1)
		assert.False(t, p.Changed())
		assert.True(t, p.Unchanged[0].LastModified.Equal(oldStamp))
	})

	t.Run("game gone from schedule is removed", func(t *testing.T) {
		old := []model.Event{
			BuildEvent(testGame("BOS", start)),
			BuildEvent(testGame("DEN", start.AddDate(0, 0, 3))),
		}
		p := BuildPlan([]model.Game{testGame("BOS", start)}, old, now)

		require.Len(t, p.Remove, 1)
		assert.Equal(t, old[1].UID, p.Remove[0].UID)
		assert.Len(t, p.Unchanged, 1)
		assert.NotContains(t, uids(p.Events()), p.Remove[0].UID)
	})

	t.Run("empty schedule removes everything", func(t *testing.T) {
		old := []model.Event{BuildEvent(testGame("BOS", start))}
		p := BuildPlan(nil, old, now)
		assert.Len(t, p.Remove, 1)
		assert.Empty(t, p.Events())
		assert.True(t, p.Changed())
	})
}

func uids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.UID)
	}
	return out
}
