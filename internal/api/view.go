package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"confsched/internal/models"
	"confsched/internal/route"
	"confsched/internal/schedule"
)

// ViewState is the rendered result of resolving a client path through the
// route model. Exactly one of the optional fields is populated, matching Kind.
type ViewState struct {
	Kind     string              `json:"kind"` // day | proposal | agenda | search | not_found
	Path     string              `json:"path"`
	Day      *DayView            `json:"day,omitempty"`
	Proposal *models.Proposal    `json:"proposal,omitempty"`
	Agenda   []schedule.DayGroup `json:"agenda,omitempty"`
	Search   *SearchView         `json:"search,omitempty"`
}

// DayView is one day's programme as rendered for a view.
type DayView struct {
	Day      models.Day              `json:"day"`
	Sessions []schedule.SessionGroup `json:"sessions"`
}

// SearchView is the search view: the term and its matches in programme order.
type SearchView struct {
	Term    string            `json:"term"`
	Matches []models.Proposal `json:"matches"`
}

// ResolveView handles GET /api/view/*. The path remainder is decoded through
// the route model, which is total: unrecognized paths render the not_found
// view state with status 200 (client navigation semantics), never an error.
// A proposal route whose identifier is absent from the programme also renders
// not_found.
func (h *Handler) ResolveView(w http.ResponseWriter, r *http.Request) {
	path := "/" + chi.URLParam(r, "*")
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}
	writeJSON(w, http.StatusOK, RenderView(h.svc.Snapshot(), route.Decode(path)))
}

// RenderView projects a decoded route onto the current state.
func RenderView(snap schedule.State, rt route.Route) ViewState {
	vs := ViewState{Path: route.Encode(rt)}
	switch v := rt.(type) {
	case route.Day:
		vs.Kind = "day"
		vs.Day = &DayView{
			Day:      v.Day,
			Sessions: schedule.GroupBySession(schedule.ProposalsForDay(snap.Proposals, v.Day)),
		}
	case route.Proposal:
		p, ok := schedule.FindProposal(snap.Proposals, v.ID)
		if !ok {
			return ViewState{Kind: "not_found", Path: vs.Path}
		}
		vs.Kind = "proposal"
		vs.Proposal = &p
	case route.Agenda:
		vs.Kind = "agenda"
		vs.Agenda = schedule.Agenda(snap.Proposals, snap.Bookmarks)
	case route.Search:
		vs.Kind = "search"
		vs.Search = &SearchView{Term: v.Term, Matches: schedule.Search(v.Term, snap.Proposals)}
	default:
		vs.Kind = "not_found"
		vs.Path = "/"
	}
	return vs
}

func countProposals(days []schedule.DayGroup) int {
	n := 0
	for _, d := range days {
		for _, s := range d.Sessions {
			n += len(s.Proposals)
		}
	}
	return n
}
