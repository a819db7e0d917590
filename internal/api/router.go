package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"confsched/internal/scheduleservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *scheduleservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Programme browsing.
	r.Get("/days", h.ListDays)
	r.Get("/days/{day}", h.GetDay)
	r.Get("/proposals/{id}", h.GetProposal)

	// Search.
	r.Get("/search", h.Search)

	// Agenda.
	r.Get("/agenda", h.GetAgenda)
	r.Get("/agenda/export.ics", h.ExportAgenda)
	r.Post("/agenda/{id}", h.ToggleBookmark)
	r.Delete("/agenda", h.ClearAgenda)

	// Route-model resolver for client navigation.
	r.Get("/view/*", h.ResolveView)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
