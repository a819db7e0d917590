package schedule

import "confsched/internal/models"

// SessionGroup is one time slot's proposals within a day view.
type SessionGroup struct {
	Session   models.Session    `json:"session"`
	Label     string            `json:"label"`
	Proposals []models.Proposal `json:"proposals"`
}

// DayGroup is one conference day's proposals grouped by session.
type DayGroup struct {
	Day      models.Day     `json:"day"`
	Sessions []SessionGroup `json:"sessions"`
}

// ProposalsForDay filters the programme to a single day, preserving order.
func ProposalsForDay(proposals []models.Proposal, day models.Day) []models.Proposal {
	var out []models.Proposal
	for _, p := range proposals {
		if p.Day == day {
			out = append(out, p)
		}
	}
	return out
}

// GroupBySession groups proposals by time slot in declaration order. Empty
// slots are omitted.
func GroupBySession(proposals []models.Proposal) []SessionGroup {
	var out []SessionGroup
	for _, sess := range models.Sessions() {
		var ps []models.Proposal
		for _, p := range proposals {
			if p.Session == sess {
				ps = append(ps, p)
			}
		}
		if len(ps) > 0 {
			out = append(out, SessionGroup{Session: sess, Label: sess.Label(), Proposals: ps})
		}
	}
	return out
}

// Agenda returns the bookmarked proposals grouped by day and session, both in
// declaration order. Bookmark identifiers with no matching proposal are
// silently excluded.
func Agenda(proposals []models.Proposal, bookmarks Bookmarks) []DayGroup {
	var marked []models.Proposal
	for _, p := range proposals {
		if bookmarks.Contains(p.ID) {
			marked = append(marked, p)
		}
	}

	var out []DayGroup
	for _, day := range models.Days() {
		sessions := GroupBySession(ProposalsForDay(marked, day))
		if len(sessions) > 0 {
			out = append(out, DayGroup{Day: day, Sessions: sessions})
		}
	}
	return out
}
