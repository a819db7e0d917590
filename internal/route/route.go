// Package route models the navigable locations of the schedule and the total
// mapping between URL paths and locations. Decode never fails: every path
// string maps to exactly one Route, with NotFound as the catch-all.
package route

import (
	"net/url"
	"strings"

	"confsched/internal/models"
)

// Route is one navigable location. Exactly one variant is active at a time.
type Route interface {
	isRoute()
}

// Day shows the programme for a single conference day.
type Day struct {
	Day models.Day
}

// Proposal shows the detail view for one proposal. The identifier is not
// checked for existence at decode time, only at render time.
type Proposal struct {
	ID string
}

// Agenda shows the bookmarked proposals grouped by day and session.
type Agenda struct{}

// Search shows proposals whose abstract contains the term.
type Search struct {
	Term string
}

// NotFound is the catch-all for unrecognized paths. It has no canonical
// encoding.
type NotFound struct{}

func (Day) isRoute()      {}
func (Proposal) isRoute() {}
func (Agenda) isRoute()   {}
func (Search) isRoute()   {}
func (NotFound) isRoute() {}

// Decode maps a URL path (with optional query string) to a Route. It is total:
// malformed or unrecognized input yields NotFound, never an error. The root
// path maps to the first conference day.
func Decode(path string) Route {
	u, err := url.Parse(path)
	if err != nil {
		return NotFound{}
	}

	// Work on the escaped form so that identifiers containing encoded
	// slashes stay a single segment.
	p := strings.TrimSuffix(u.EscapedPath(), "/")
	switch {
	case p == "":
		return Day{Day: models.Days()[0]}
	case p == "/agenda":
		return Agenda{}
	case p == "/search":
		return Search{Term: u.Query().Get("q")}
	}

	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if len(segs) != 2 || segs[1] == "" {
		return NotFound{}
	}

	switch segs[0] {
	case "day":
		d, ok := models.ParseDay(segs[1])
		if !ok {
			return NotFound{}
		}
		return Day{Day: d}
	case "proposal":
		id, err := url.PathUnescape(segs[1])
		if err != nil {
			id = segs[1]
		}
		return Proposal{ID: id}
	}
	return NotFound{}
}

// Encode maps a Route back to its canonical path. Decode(Encode(r)) == r holds
// for every constructible Route except NotFound, which encodes to the root.
func Encode(r Route) string {
	switch v := r.(type) {
	case Day:
		return "/day/" + v.Day.Token()
	case Proposal:
		return "/proposal/" + url.PathEscape(v.ID)
	case Agenda:
		return "/agenda"
	case Search:
		return "/search?q=" + url.QueryEscape(v.Term)
	default:
		return "/"
	}
}
