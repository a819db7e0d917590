package schedule

import (
	"confsched/internal/models"
	"confsched/internal/route"
)

// Event is one input to the state-transition function.
type Event interface {
	isEvent()
}

// Navigate replaces the current route.
type Navigate struct {
	Route route.Route
}

// ToggleBookmark flips membership of the identifier in the bookmark set. It
// never fails, even when the programme has no proposal with that identifier.
type ToggleBookmark struct {
	ID string
}

// VisitSearch navigates to the search view for the given term.
type VisitSearch struct {
	Term string
}

// VisitProposal navigates to the detail view of the given proposal.
type VisitProposal struct {
	Proposal models.Proposal
}

// ProposalsLoaded delivers the full programme, replacing the previous
// collection wholesale. Partial loads do not exist.
type ProposalsLoaded struct {
	Proposals []models.Proposal
}

// WidgetMsg carries a message for the opaque widget substate.
type WidgetMsg struct {
	Msg any
}

func (Navigate) isEvent()        {}
func (ToggleBookmark) isEvent()  {}
func (VisitSearch) isEvent()     {}
func (VisitProposal) isEvent()   {}
func (ProposalsLoaded) isEvent() {}
func (WidgetMsg) isEvent()       {}

// Effect is a side-effect request emitted by Update. The core never performs
// the effect itself; the host shell consumes it.
type Effect interface {
	isEffect()
}

// PersistBookmarks asks the host shell to write the full bookmark set to
// durable storage.
type PersistBookmarks struct {
	IDs []string
}

func (PersistBookmarks) isEffect() {}

// Update is the pure state-transition function: (state, event) to (next state,
// effect requests). It is total and synchronous; no branch blocks or fails.
func Update(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Navigate:
		s.Route = e.Route
		return s, nil

	case ToggleBookmark:
		s.Bookmarks = s.Bookmarks.Toggle(e.ID)
		return s, []Effect{PersistBookmarks{IDs: s.Bookmarks.IDs()}}

	case VisitSearch:
		s.Route = route.Search{Term: e.Term}
		return s, nil

	case VisitProposal:
		s.Route = route.Proposal{ID: e.Proposal.ID}
		return s, nil

	case ProposalsLoaded:
		s.Proposals = e.Proposals
		return s, nil

	case WidgetMsg:
		if s.Widget != nil {
			s.Widget = s.Widget.HandleMsg(e.Msg)
		}
		return s, nil
	}
	return s, nil
}
