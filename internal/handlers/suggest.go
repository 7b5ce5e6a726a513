package handlers

import (
	"net/http"
)

// SuggestHandler serves starter prompts for an empty question box.
type SuggestHandler struct {
	suggestions []string
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(suggestions []string) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions}
}

// SuggestResponse carries starter prompts.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ServeHTTP handles GET requests for suggestions.
func (h *SuggestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	suggestions := h.suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, SuggestResponse{Suggestions: suggestions})
}
