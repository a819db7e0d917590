// Package schedule implements the application core: the aggregate state of the
// loaded programme, the pure state-transition function driving it, abstract
// search, and the grouping logic behind the day and agenda views. Nothing in
// this package performs I/O; persistence is requested through effects.
package schedule

import (
	"sort"

	"confsched/internal/models"
	"confsched/internal/route"
)

// Bookmarks is the set of bookmarked proposal identifiers. Membership is not
// validated against the loaded programme; stale identifiers are tolerated.
type Bookmarks map[string]struct{}

// NewBookmarks builds a set from a list of identifiers. Duplicates collapse.
func NewBookmarks(ids []string) Bookmarks {
	b := make(Bookmarks, len(ids))
	for _, id := range ids {
		b[id] = struct{}{}
	}
	return b
}

// Contains reports whether id is bookmarked.
func (b Bookmarks) Contains(id string) bool {
	_, ok := b[id]
	return ok
}

// Toggle returns a new set with id added if absent or removed if present. The
// receiver is not modified.
func (b Bookmarks) Toggle(id string) Bookmarks {
	next := make(Bookmarks, len(b)+1)
	for k := range b {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// IDs returns the members as a sorted list, the representation used for
// persistence.
func (b Bookmarks) IDs() []string {
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WidgetState is the view layer's opaque interaction substate. The core never
// inspects it; widget messages are delegated through HandleMsg and the result
// replaces the previous substate wholesale.
type WidgetState interface {
	HandleMsg(msg any) WidgetState
}

// NoWidget is the inert widget substate used when no view layer is attached.
type NoWidget struct{}

// HandleMsg discards the message.
func (NoWidget) HandleMsg(any) WidgetState { return NoWidget{} }

// State is the aggregate application state. It is treated as immutable: Update
// returns a new value and never mutates maps or slices reachable from an
// existing one, so snapshots may be shared freely.
type State struct {
	Proposals []models.Proposal
	Bookmarks Bookmarks
	Route     route.Route
	Widget    WidgetState
}

// NewState builds the initial state from the loaded programme, the persisted
// bookmark identifiers, and the initial URL path.
func NewState(proposals []models.Proposal, bookmarkIDs []string, initialPath string) State {
	return State{
		Proposals: proposals,
		Bookmarks: NewBookmarks(bookmarkIDs),
		Route:     route.Decode(initialPath),
		Widget:    NoWidget{},
	}
}

// FindProposal looks up a proposal by identifier in the loaded programme.
func FindProposal(proposals []models.Proposal, id string) (models.Proposal, bool) {
	for _, p := range proposals {
		if p.ID == id {
			return p, true
		}
	}
	return models.Proposal{}, false
}
