package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/indepthg/gita-qa/internal/handlers"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/storage/mocks"
)

func verseRouter(h *handlers.VerseHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/title/{chapter}/{verse}", h.Title)
	r.Get("/debug/verse/{chapter}/{verse}", h.Verse)
	return r
}

func TestVerseHandler_Title(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	verses.EXPECT().GetByRef(gomock.Any(), 2, 47).
		Return(&storage.VerseRecord{Chapter: 2, Verse: 47, Title: "Karma yoga"}, nil)

	router := verseRouter(handlers.NewVerseHandler(verses))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/title/2/47", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var resp handlers.TitleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Chapter != 2 || resp.Verse != 47 || resp.Title != "Karma yoga" {
		t.Errorf("response = %+v", resp)
	}
}

func TestVerseHandler_TitleNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	verses.EXPECT().GetByRef(gomock.Any(), 2, 199).Return(nil, storage.ErrNotFound)

	router := verseRouter(handlers.NewVerseHandler(verses))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/title/2/199", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Error != "Chapter 2, Verse 199 does not exist." {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestVerseHandler_InvalidParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	router := verseRouter(handlers.NewVerseHandler(verses))

	for _, path := range []string{"/title/abc/47", "/title/0/47", "/title/19/1", "/title/2/500"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, w.Code)
		}
	}
}

func TestVerseHandler_DebugVerse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	verses.EXPECT().GetByRef(gomock.Any(), 12, 13).Return(&storage.VerseRecord{
		Chapter:      12,
		Verse:        13,
		Translation:  "He who hates no being...",
		WordMeanings: "adveshta — non-hating",
		Commentary2:  "The portrait of the devotee begins here.",
		Title:        "The dear devotee",
	}, nil)

	router := verseRouter(handlers.NewVerseHandler(verses))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/verse/12/13", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp handlers.VerseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Translation != "He who hates no being..." || resp.Commentary2 == "" {
		t.Errorf("response = %+v", resp)
	}
}
