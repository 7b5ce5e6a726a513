package handlers

import (
	"net/http"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/storage"
)

// StatsHandler reports corpus statistics for debugging.
type StatsHandler struct {
	verses        storage.VerseStore
	vectorEnabled bool
	collection    string
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(verses storage.VerseStore, vectorEnabled bool, collection string) *StatsHandler {
	return &StatsHandler{verses: verses, vectorEnabled: vectorEnabled, collection: collection}
}

// StatsResponse summarizes the loaded corpus.
type StatsResponse struct {
	Verses        int    `json:"verses"`
	VectorEnabled bool   `json:"vector_enabled"`
	Collection    string `json:"collection,omitempty"`
}

// ServeHTTP handles GET requests for corpus stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	count, err := h.verses.Count(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count verses", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to read corpus stats")
		return
	}

	resp := StatsResponse{
		Verses:        count,
		VectorEnabled: h.vectorEnabled,
	}
	if h.vectorEnabled {
		resp.Collection = h.collection
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
