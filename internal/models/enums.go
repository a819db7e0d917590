package models

import (
	"encoding/json"
	"fmt"
)

// Day is one of the fixed conference dates. Declaration order is display order.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
)

var dayTokens = [...]string{"monday", "tuesday", "wednesday"}

// Days returns every conference day in display order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday}
}

// Token returns the URL token for the day (e.g. "tuesday").
func (d Day) Token() string {
	if d < 0 || int(d) >= len(dayTokens) {
		return ""
	}
	return dayTokens[d]
}

func (d Day) String() string { return d.Token() }

// ParseDay maps a URL token to a Day. The second return value reports whether
// the token named a known day.
func ParseDay(token string) (Day, bool) {
	for i, t := range dayTokens {
		if t == token {
			return Day(i), true
		}
	}
	return 0, false
}

// MarshalJSON encodes the day as its token.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Token())
}

// UnmarshalJSON decodes a day token.
func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	day, ok := ParseDay(s)
	if !ok {
		return fmt.Errorf("models: unknown day %q", s)
	}
	*d = day
	return nil
}

// Session is one of the fixed time slots. Declaration order is display order.
type Session int

const (
	MorningA Session = iota
	MorningB
	AfternoonA
	AfternoonB
	Evening
)

var sessionTokens = [...]string{"morning-a", "morning-b", "afternoon-a", "afternoon-b", "evening"}

var sessionLabels = [...]string{"Morning A", "Morning B", "Afternoon A", "Afternoon B", "Evening"}

// Sessions returns every time slot in display order.
func Sessions() []Session {
	return []Session{MorningA, MorningB, AfternoonA, AfternoonB, Evening}
}

// Token returns the stable token for the session (e.g. "morning-a").
func (s Session) Token() string {
	if s < 0 || int(s) >= len(sessionTokens) {
		return ""
	}
	return sessionTokens[s]
}

// Label returns the human-readable slot name (e.g. "Morning A").
func (s Session) Label() string {
	if s < 0 || int(s) >= len(sessionLabels) {
		return ""
	}
	return sessionLabels[s]
}

func (s Session) String() string { return s.Token() }

// ParseSession maps a token to a Session.
func ParseSession(token string) (Session, bool) {
	for i, t := range sessionTokens {
		if t == token {
			return Session(i), true
		}
	}
	return 0, false
}

// MarshalJSON encodes the session as its token.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Token())
}

// UnmarshalJSON decodes a session token.
func (s *Session) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sess, ok := ParseSession(str)
	if !ok {
		return fmt.Errorf("models: unknown session %q", str)
	}
	*s = sess
	return nil
}

// Room is one of the closed set of physical locations. Rooms carry no ordering
// semantics; they are used for display and equality only.
type Room int

const (
	Auditorium Room = iota
	Room101
	Room102
	WorkshopLab
)

var roomNames = [...]string{"Auditorium", "Room 101", "Room 102", "Workshop Lab"}

func (r Room) String() string {
	if r < 0 || int(r) >= len(roomNames) {
		return ""
	}
	return roomNames[r]
}

// ParseRoom maps a display name to a Room.
func ParseRoom(name string) (Room, bool) {
	for i, n := range roomNames {
		if n == name {
			return Room(i), true
		}
	}
	return 0, false
}

// MarshalJSON encodes the room as its display name.
func (r Room) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a room display name.
func (r *Room) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	room, ok := ParseRoom(s)
	if !ok {
		return fmt.Errorf("models: unknown room %q", s)
	}
	*r = room
	return nil
}
