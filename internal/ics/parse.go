package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "nbacal/internal/log"
	"nbacal/internal/model"
)

// Parse reads a previously rendered calendar file back into its event
// set for reconciliation. Unknown properties are ignored; a VEVENT
// that is missing its identity or start time is skipped with a
// warning, never fatal, so a partially corrupted file still yields the
// rest of its events. Only a payload that fails to parse as a calendar
// at all returns an error; callers treat that as an absent file and
// regenerate.
func Parse(data []byte) ([]model.Event, error) {
	if len(data) == 0 {
		return nil, errors.New("empty calendar body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			// Skip this event but keep parsing the others.
			appLog.Warn("calendar event skipped", "reason", perr)
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	start, err := ve.GetStartAt()
	if err != nil {
		return out, errors.New("missing or malformed DTSTART")
	}
	out.Start = start

	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	} else {
		out.End = start.Add(3 * time.Hour)
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = unescapeText(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.Status = strings.ToUpper(strings.TrimSpace(p.Value))
	}

	if p := ve.GetProperty(lastModifiedProp); p != nil {
		if t, err := time.Parse(utcLayout, strings.TrimSpace(p.Value)); err == nil {
			out.LastModified = t
		}
	}

	return out, nil
}

// unescapeText undoes iCalendar TEXT escaping so reconciliation
// compares real values, not their wire form. Values written without
// escaping pass through unchanged.
func unescapeText(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	return textUnescaper.Replace(v)
}

var textUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\;`, ";",
	`\,`, ",",
	`\n`, "\n",
	`\N`, "\n",
)
