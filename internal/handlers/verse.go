package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/qa"
	"github.com/indepthg/gita-qa/internal/storage"
)

// VerseHandler serves verse lookups: chapter titles and full debug records.
type VerseHandler struct {
	verses storage.VerseStore
}

// NewVerseHandler creates a new VerseHandler.
func NewVerseHandler(verses storage.VerseStore) *VerseHandler {
	return &VerseHandler{verses: verses}
}

// TitleResponse carries the short title of one verse.
type TitleResponse struct {
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Title   string `json:"title"`
}

// VerseResponse is the full verse record, used by the debug endpoint.
type VerseResponse struct {
	Chapter      int    `json:"chapter"`
	Verse        int    `json:"verse"`
	Sanskrit     string `json:"sanskrit,omitempty"`
	Roman        string `json:"roman,omitempty"`
	Colloquial   string `json:"colloquial,omitempty"`
	Translation  string `json:"translation,omitempty"`
	Commentary1  string `json:"commentary1,omitempty"`
	Commentary2  string `json:"commentary2,omitempty"`
	Commentary3  string `json:"commentary3,omitempty"`
	WordMeanings string `json:"word_meanings,omitempty"`
	Title        string `json:"title,omitempty"`
	CapsuleURL   string `json:"capsule_url,omitempty"`
	AudioID      string `json:"audio_id,omitempty"`
}

// Title handles GET /title/{chapter}/{verse}.
func (h *VerseHandler) Title(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	row, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(ctx, w, http.StatusOK, TitleResponse{
		Chapter: row.Chapter,
		Verse:   row.Verse,
		Title:   row.Title,
	})
}

// Verse handles GET /debug/verse/{chapter}/{verse} with the full record.
func (h *VerseHandler) Verse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	row, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(ctx, w, http.StatusOK, VerseResponse{
		Chapter:      row.Chapter,
		Verse:        row.Verse,
		Sanskrit:     row.Sanskrit,
		Roman:        row.Roman,
		Colloquial:   row.Colloquial,
		Translation:  row.Translation,
		Commentary1:  row.Commentary1,
		Commentary2:  row.Commentary2,
		Commentary3:  row.Commentary3,
		WordMeanings: row.WordMeanings,
		Title:        row.Title,
		CapsuleURL:   row.CapsuleURL,
		AudioID:      row.AudioID,
	})
}

// lookup parses the {chapter}/{verse} URL params and fetches the record,
// writing the error response itself on failure.
func (h *VerseHandler) lookup(w http.ResponseWriter, r *http.Request) (*storage.VerseRecord, bool) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	chapter, err1 := strconv.Atoi(chi.URLParam(r, "chapter"))
	verse, err2 := strconv.Atoi(chi.URLParam(r, "verse"))
	if err1 != nil || err2 != nil ||
		chapter < 1 || chapter > qa.MaxChapter || verse < 1 || verse > qa.MaxVerse {
		writeError(ctx, w, http.StatusBadRequest, "Invalid chapter or verse")
		return nil, false
	}

	row, err := h.verses.GetByRef(ctx, chapter, verse)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(ctx, w, http.StatusNotFound,
			fmt.Sprintf("Chapter %d, Verse %d does not exist.", chapter, verse))
		return nil, false
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch verse", "chapter", chapter, "verse", verse, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to fetch verse")
		return nil, false
	}
	return row, true
}
