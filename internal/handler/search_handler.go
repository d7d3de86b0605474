package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
	"shopfront/internal/search"
)

// SearchHandler exposes the recent-search history.
type SearchHandler struct {
	history *search.History
	logger  zerolog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(history *search.History, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		history: history,
		logger:  logger.With().Str("handler", "search").Logger(),
	}
}

// Recent handles GET /api/search/history?n=10.
func (h *SearchHandler) Recent(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "invalid n parameter", h.logger)
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, map[string][]string{"terms": h.history.Recent(n)})
}

// Record handles POST /api/search/history.
func (h *SearchHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	h.history.Record(req.Term)
	writeJSON(w, http.StatusOK, map[string][]string{"terms": h.history.Recent(0)})
}

// Clear handles DELETE /api/search/history.
func (h *SearchHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}
