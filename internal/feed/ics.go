package feed

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"confsched/internal/models"
)

// sessionStarts maps each time slot to its start of day. A proposal's slot is
// the last one whose start is not after the event's start time.
var sessionStarts = []struct {
	sess models.Session
	hour int
	min  int
}{
	{models.MorningA, 9, 0},
	{models.MorningB, 10, 45},
	{models.AfternoonA, 13, 30},
	{models.AfternoonB, 15, 15},
	{models.Evening, 17, 0},
}

// SessionStart returns the wall-clock start of a time slot.
func SessionStart(s models.Session) (hour, min int) {
	for _, e := range sessionStarts {
		if e.sess == s {
			return e.hour, e.min
		}
	}
	return 9, 0
}

func sessionForTime(t time.Time) models.Session {
	sess := models.MorningA
	for _, e := range sessionStarts {
		if t.Hour() > e.hour || (t.Hour() == e.hour && t.Minute() >= e.min) {
			sess = e.sess
		}
	}
	return sess
}

func dayForWeekday(w time.Weekday) (models.Day, bool) {
	switch w {
	case time.Monday:
		return models.Monday, true
	case time.Tuesday:
		return models.Tuesday, true
	case time.Wednesday:
		return models.Wednesday, true
	}
	return 0, false
}

// Parse converts an ICS payload into the proposal collection, preserving the
// feed's event order. Events without a UID or falling outside the conference's
// weekdays are skipped with a warning; a payload yielding zero proposals is an
// error.
func Parse(body []byte, logger *slog.Logger) ([]models.Proposal, error) {
	if len(body) == 0 {
		return nil, errors.New("feed: empty ICS payload")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("feed: parse calendar: %w", err)
	}

	var out []models.Proposal
	for _, ve := range cal.Events() {
		p, err := parseVEvent(ve)
		if err != nil {
			logger.Warn("feed: skipping event", slog.String("error", err.Error()))
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, errors.New("feed: no usable events in payload")
	}
	return out, nil
}

func parseVEvent(ve *ical.VEvent) (models.Proposal, error) {
	var p models.Proposal

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return p, errors.New("missing UID")
	}
	p.ID = uid.Value

	if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
		p.Title = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
		p.Abstract = prop.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return p, fmt.Errorf("missing DTSTART: %w", err)
	}
	day, ok := dayForWeekday(start.Weekday())
	if !ok {
		return p, errors.New("event outside conference days: " + start.Weekday().String())
	}
	p.Day = day
	p.Session = sessionForTime(start)

	p.Room = models.Auditorium
	if prop := ve.GetProperty(ical.ComponentPropertyLocation); prop != nil {
		if room, ok := models.ParseRoom(prop.Value); ok {
			p.Room = room
		} else {
			slog.Warn("feed: unknown room, using default",
				slog.String("uid", p.ID), slog.String("location", prop.Value))
		}
	}

	p.Presenters = parsePresenters(ve)
	return p, nil
}

// parsePresenters extracts presenter names from ATTENDEE CN parameters.
func parsePresenters(ve *ical.VEvent) []models.Presenter {
	var out []models.Presenter
	for _, att := range ve.Attendees() {
		cns, ok := att.ICalParameters["CN"]
		if !ok || len(cns) == 0 {
			continue
		}
		if pr, ok := splitName(cns[0]); ok {
			out = append(out, pr)
		}
	}
	return out
}

func splitName(full string) (models.Presenter, bool) {
	fields := strings.Fields(strings.TrimSpace(full))
	if len(fields) == 0 {
		return models.Presenter{}, false
	}
	p := models.Presenter{FirstName: fields[0]}
	if len(fields) > 1 {
		p.LastName = strings.Join(fields[1:], " ")
	}
	return p, true
}
