package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"confsched/internal/apperr"
	"confsched/internal/scheduleservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *scheduleservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *scheduleservice.Service) *Handler {
	return &Handler{svc: svc}
}

// proposalID extracts the {id} URL parameter, tolerating encoded characters.
func proposalID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListDays handles GET /api/days.
//
//	@Summary		List conference days with proposal counts
//	@Tags			schedule
//	@Produce		json
//	@Success		200	{object}	DayListResponse
//	@Security		BearerAuth
//	@Router			/days [get]
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.svc.Days(r.Context())
	if err != nil {
		slog.Error("list days failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DayListResponse{Days: days})
}

// GetDay handles GET /api/days/{day}.
//
//	@Summary		Get one day's programme grouped by session
//	@Tags			schedule
//	@Produce		json
//	@Param			day	path		string	true	"Day token (e.g. tuesday)"
//	@Success		200	{object}	scheduleservice.DayProgramme
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/days/{day} [get]
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "day")
	prog, err := h.svc.Day(r.Context(), token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get day failed", slog.String("day", token), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

// GetProposal handles GET /api/proposals/{id}.
//
//	@Summary		Get a single proposal with bookmark state
//	@Tags			schedule
//	@Produce		json
//	@Param			id	path		string	true	"Proposal identifier"
//	@Success		200	{object}	scheduleservice.ProposalDetail
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/proposals/{id} [get]
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id := proposalID(r)
	detail, err := h.svc.Proposal(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get proposal failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Search handles GET /api/search.
//
//	@Summary		Search proposal abstracts
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	false	"Search term (empty matches all)"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{ID: hit.ID, Title: hit.Title, Snippet: hit.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// GetAgenda handles GET /api/agenda.
//
//	@Summary		Get bookmarked proposals grouped by day and session
//	@Tags			agenda
//	@Produce		json
//	@Success		200	{object}	AgendaResponse
//	@Security		BearerAuth
//	@Router			/agenda [get]
func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	days := h.svc.Agenda(r.Context())
	writeJSON(w, http.StatusOK, AgendaResponse{Days: days, Total: countProposals(days)})
}

// ToggleBookmark handles POST /api/agenda/{id}.
//
//	@Summary		Toggle a bookmark
//	@Tags			agenda
//	@Produce		json
//	@Param			id	path		string	true	"Proposal identifier (existence not required)"
//	@Success		200	{object}	BookmarksResponse
//	@Security		BearerAuth
//	@Router			/agenda/{id} [post]
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id := proposalID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	ids := h.svc.ToggleBookmark(r.Context(), id)
	writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: ids})
}

// ClearAgenda handles DELETE /api/agenda.
//
//	@Summary		Remove every bookmark
//	@Tags			agenda
//	@Produce		json
//	@Success		200	{object}	BookmarksResponse
//	@Security		BearerAuth
//	@Router			/agenda [delete]
func (h *Handler) ClearAgenda(w http.ResponseWriter, r *http.Request) {
	ids := h.svc.ClearBookmarks(r.Context())
	writeJSON(w, http.StatusOK, BookmarksResponse{Bookmarks: ids})
}

// ExportAgenda handles GET /api/agenda/export.ics.
//
//	@Summary		Export the agenda as an iCalendar file
//	@Tags			agenda
//	@Produce		text/calendar
//	@Success		200	{string}	string
//	@Security		BearerAuth
//	@Router			/agenda/export.ics [get]
func (h *Handler) ExportAgenda(w http.ResponseWriter, r *http.Request) {
	payload := h.svc.ExportAgenda(r.Context())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))
}
