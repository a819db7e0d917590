package feed

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"confsched/internal/models"
)

// slotLength is the nominal duration of one talk slot.
const slotLength = 75 * time.Minute

// ExportICS serializes the given proposals as an iCalendar payload. firstDay
// is the calendar date of the conference's first day; each proposal's start is
// derived from its day and time slot.
func ExportICS(proposals []models.Proposal, firstDay time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	now := time.Now()
	for _, p := range proposals {
		hour, min := SessionStart(p.Session)
		day := firstDay.AddDate(0, 0, int(p.Day))
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, firstDay.Location())

		e := cal.AddEvent(p.ID)
		e.SetCreatedTime(now)
		e.SetDtStampTime(now)
		e.SetStartAt(start)
		e.SetEndAt(start.Add(slotLength))
		e.SetSummary(p.Title)
		e.SetLocation(p.Room.String())
		e.SetDescription(p.Abstract)
	}
	return cal.Serialize()
}
