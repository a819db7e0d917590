package api

import (
	"confsched/internal/schedule"
	"confsched/internal/scheduleservice"
)

// DayListResponse wraps the day listing.
type DayListResponse struct {
	Days []scheduleservice.DayInfo `json:"days"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	ID      string `json:"id" example:"p42"`
	Title   string `json:"title" example:"Generics in Anger"`
	Snippet string `json:"snippet" example:"...matched text..."`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// AgendaResponse wraps the agenda view: bookmarked proposals grouped by day
// and session, plus the flat count of matched proposals.
type AgendaResponse struct {
	Days  []schedule.DayGroup `json:"days"`
	Total int                 `json:"total"`
}

// BookmarksResponse carries the full bookmark list after a mutation.
type BookmarksResponse struct {
	Bookmarks []string `json:"bookmarks"`
}
