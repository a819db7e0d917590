// Package models defines the domain types for Confsched.
package models

// Presenter is a person giving a talk.
type Presenter struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Proposal represents one accepted conference talk. Proposals are immutable
// once loaded; the full collection is replaced wholesale on a feed reload.
type Proposal struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Abstract   string      `json:"abstract"`
	Presenters []Presenter `json:"presenters"`
	Day        Day         `json:"day"`
	Session    Session     `json:"session"`
	Room       Room        `json:"room"`
}
