// Package scheduleservice coordinates the catalog, the application core, and
// the feed exporter behind the API and MCP surfaces.
package scheduleservice

import (
	"context"
	"time"

	"confsched/internal/apperr"
	"confsched/internal/catalog"
	"confsched/internal/feed"
	"confsched/internal/models"
	"confsched/internal/schedule"
)

// DayInfo summarizes one conference day for the day listing.
type DayInfo struct {
	Day   models.Day `json:"day"`
	Count int        `json:"count"`
}

// DayProgramme is one day's proposals grouped by session.
type DayProgramme struct {
	Day      models.Day              `json:"day"`
	Sessions []schedule.SessionGroup `json:"sessions"`
}

// ProposalDetail is a proposal enriched with the caller's bookmark state.
type ProposalDetail struct {
	models.Proposal
	Bookmarked bool `json:"bookmarked"`
}

// Service exposes read and bookmark operations over the schedule.
type Service struct {
	db       catalog.Store
	app      *schedule.App
	firstDay time.Time
}

// NewService creates a new schedule service. firstDay is the calendar date of
// the first conference day, used for agenda export.
func NewService(db catalog.Store, app *schedule.App, firstDay time.Time) *Service {
	return &Service{db: db, app: app, firstDay: firstDay}
}

// Days returns every conference day with its proposal count, in display order.
func (s *Service) Days(_ context.Context) ([]DayInfo, error) {
	counts, err := s.db.DayCounts()
	if err != nil {
		return nil, err
	}
	out := make([]DayInfo, 0, len(models.Days()))
	for _, d := range models.Days() {
		out = append(out, DayInfo{Day: d, Count: counts[d]})
	}
	return out, nil
}

// Day returns one day's programme grouped by session. Unknown day tokens yield
// apperr.ErrNotFound.
func (s *Service) Day(_ context.Context, token string) (*DayProgramme, error) {
	day, ok := models.ParseDay(token)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	proposals, err := s.db.ByDay(day)
	if err != nil {
		return nil, err
	}
	return &DayProgramme{Day: day, Sessions: schedule.GroupBySession(proposals)}, nil
}

// Proposal returns one proposal with the bookmark flag, or apperr.ErrNotFound.
func (s *Service) Proposal(_ context.Context, id string) (*ProposalDetail, error) {
	p, err := s.db.Get(id)
	if err != nil {
		return nil, err
	}
	marked := s.app.Snapshot().Bookmarks.Contains(id)
	return &ProposalDetail{Proposal: p, Bookmarked: marked}, nil
}

// Search delegates abstract search to the catalog.
func (s *Service) Search(_ context.Context, term string, limit int) ([]catalog.SearchHit, error) {
	return s.db.Search(term, limit)
}

// Agenda returns the bookmarked proposals grouped by day and session.
func (s *Service) Agenda(_ context.Context) []schedule.DayGroup {
	snap := s.app.Snapshot()
	return schedule.Agenda(snap.Proposals, snap.Bookmarks)
}

// ToggleBookmark flips a bookmark through the application core and returns
// the new full bookmark list. It never fails; unknown identifiers toggle like
// any other.
func (s *Service) ToggleBookmark(_ context.Context, id string) []string {
	next := s.app.Do(schedule.ToggleBookmark{ID: id})
	return next.Bookmarks.IDs()
}

// ClearBookmarks unbookmarks every bookmarked proposal, one toggle at a time,
// and returns the resulting (empty) list.
func (s *Service) ClearBookmarks(ctx context.Context) []string {
	ids := s.app.Snapshot().Bookmarks.IDs()
	out := []string{}
	for _, id := range ids {
		out = s.ToggleBookmark(ctx, id)
	}
	return out
}

// ExportAgenda serializes the bookmarked proposals as an iCalendar payload,
// in programme order.
func (s *Service) ExportAgenda(_ context.Context) string {
	snap := s.app.Snapshot()
	var marked []models.Proposal
	for _, p := range snap.Proposals {
		if snap.Bookmarks.Contains(p.ID) {
			marked = append(marked, p)
		}
	}
	return feed.ExportICS(marked, s.firstDay)
}

// Snapshot exposes the current application state for view rendering.
func (s *Service) Snapshot() schedule.State {
	return s.app.Snapshot()
}

// ReloadProposals delivers a freshly loaded programme into the core.
func (s *Service) ReloadProposals(proposals []models.Proposal) {
	s.app.Dispatch(schedule.ProposalsLoaded{Proposals: proposals})
}
