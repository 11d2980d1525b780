package ics

import (
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	"nbacal/internal/model"
)

const (
	prodID     = "-//nbacal//nbacal//EN"
	timezoneID = "America/New_York"

	// utcLayout is the iCalendar UTC date-time form used for
	// LAST-MODIFIED.
	utcLayout = "20060102T150405Z"
)

// Not among the library's named component property constants.
const (
	lastModifiedProp = ical.ComponentProperty("LAST-MODIFIED")
	categoriesProp   = ical.ComponentProperty("CATEGORIES")
)

// Render serializes an event set into the portable calendar format.
// Output is deterministic: events are sorted by start time then UID,
// and every property value is derived from the Event itself, so the
// same set always renders byte-identical. Unrelated re-runs therefore
// produce no spurious file diff.
func Render(calName string, events []model.Event) []byte {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].UID < sorted[j].UID
	})

	cal := ical.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(calName)
	cal.SetXWRTimezone(timezoneID)

	for _, ev := range sorted {
		ve := cal.AddEvent(ev.UID)

		// DTSTAMP mirrors LAST-MODIFIED instead of wall-clock time so
		// rendering stays deterministic.
		stamp := ev.LastModified.UTC()
		ve.SetDtStampTime(stamp)
		ve.SetProperty(lastModifiedProp, stamp.Format(utcLayout))

		ve.SetStartAt(ev.Start.UTC())
		end := ev.End
		if end.IsZero() {
			end = ev.Start.Add(3 * time.Hour)
		}
		ve.SetEndAt(end.UTC())

		ve.SetProperty(categoriesProp, "NBA")
		ve.SetSummary(ev.Summary)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Status != "" {
			ve.SetStatus(ical.ObjectStatus(ev.Status))
		}
	}

	return []byte(cal.Serialize())
}
