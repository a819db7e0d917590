package schedule

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"confsched/internal/models"
	"confsched/internal/route"
)

func initialState(bookmarks ...string) State {
	return NewState(programme(), bookmarks, "/")
}

func programme() []models.Proposal {
	return []models.Proposal{
		{ID: "p1", Title: "One", Abstract: "first abstract", Day: models.Monday, Session: models.MorningA, Room: models.Auditorium},
		{ID: "p2", Title: "Two", Abstract: "second abstract", Day: models.Tuesday, Session: models.AfternoonA, Room: models.Room101},
	}
}

func TestNavigateReplacesRoute(t *testing.T) {
	s := initialState()

	next, effects := Update(s, Navigate{Route: route.Agenda{}})
	if next.Route != (route.Agenda{}) {
		t.Errorf("route = %#v, want Agenda", next.Route)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
}

func TestToggleBookmarkAddsAndPersists(t *testing.T) {
	s := initialState()

	next, effects := Update(s, ToggleBookmark{ID: "p42"})
	if !next.Bookmarks.Contains("p42") {
		t.Error("p42 should be bookmarked")
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %v, want one persist effect", effects)
	}
	persist, ok := effects[0].(PersistBookmarks)
	if !ok {
		t.Fatalf("effect = %T, want PersistBookmarks", effects[0])
	}
	if diff := cmp.Diff([]string{"p42"}, persist.IDs); diff != "" {
		t.Errorf("persisted ids mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleBookmarkTwiceRestoresSet(t *testing.T) {
	s := initialState()

	once, _ := Update(s, ToggleBookmark{ID: "p42"})
	twice, effects := Update(once, ToggleBookmark{ID: "p42"})

	if diff := cmp.Diff(s.Bookmarks.IDs(), twice.Bookmarks.IDs()); diff != "" {
		t.Errorf("double toggle should restore the set (-want +got):\n%s", diff)
	}
	persist := effects[0].(PersistBookmarks)
	if diff := cmp.Diff([]string{}, persist.IDs); diff != "" {
		t.Errorf("second persist should carry the empty set (-want +got):\n%s", diff)
	}
}

func TestToggleBookmarkUnknownIDNeverFails(t *testing.T) {
	// Bookmarks are keyed by identifier, not validated against the programme.
	s := initialState()
	next, _ := Update(s, ToggleBookmark{ID: "no-such-proposal"})
	if !next.Bookmarks.Contains("no-such-proposal") {
		t.Error("unknown id should still toggle")
	}
}

func TestToggleBookmarkDoesNotMutatePreviousState(t *testing.T) {
	s := initialState("p1")

	next, _ := Update(s, ToggleBookmark{ID: "p2"})
	if s.Bookmarks.Contains("p2") {
		t.Error("previous state's bookmark set was mutated")
	}
	if !next.Bookmarks.Contains("p1") || !next.Bookmarks.Contains("p2") {
		t.Error("next state should contain both bookmarks")
	}
}

func TestVisitSearchSetsSearchRoute(t *testing.T) {
	s := initialState()
	next, effects := Update(s, VisitSearch{Term: "generics"})
	if next.Route != (route.Search{Term: "generics"}) {
		t.Errorf("route = %#v", next.Route)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
}

func TestVisitProposalSetsProposalRoute(t *testing.T) {
	s := initialState()
	p := programme()[1]
	next, _ := Update(s, VisitProposal{Proposal: p})
	if next.Route != (route.Proposal{ID: "p2"}) {
		t.Errorf("route = %#v", next.Route)
	}
}

func TestProposalsLoadedReplacesCollectionWholesale(t *testing.T) {
	s := initialState("p1")
	replacement := []models.Proposal{
		{ID: "r1", Title: "Replacement", Day: models.Wednesday, Session: models.Evening},
	}

	next, effects := Update(s, ProposalsLoaded{Proposals: replacement})
	if diff := cmp.Diff(replacement, next.Proposals); diff != "" {
		t.Errorf("proposals mismatch (-want +got):\n%s", diff)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
	// Bookmarks survive a reload even when their proposals are gone.
	if !next.Bookmarks.Contains("p1") {
		t.Error("bookmarks should survive a programme reload")
	}
}

type recordingWidget struct {
	msgs []any
}

func (w recordingWidget) HandleMsg(msg any) WidgetState {
	return recordingWidget{msgs: append(w.msgs[:len(w.msgs):len(w.msgs)], msg)}
}

func TestWidgetMsgIsDelegatedOpaquely(t *testing.T) {
	s := initialState()
	s.Widget = recordingWidget{}

	next, effects := Update(s, WidgetMsg{Msg: "ripple"})
	w, ok := next.Widget.(recordingWidget)
	if !ok {
		t.Fatalf("widget = %T", next.Widget)
	}
	if len(w.msgs) != 1 || w.msgs[0] != "ripple" {
		t.Errorf("widget msgs = %v", w.msgs)
	}
	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
	// The rest of the state is untouched by widget traffic.
	if next.Route != s.Route {
		t.Error("widget event must not change the route")
	}
}
