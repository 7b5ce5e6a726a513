package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/indepthg/gita-qa/internal/handlers"
	"github.com/indepthg/gita-qa/internal/storage"
	"github.com/indepthg/gita-qa/internal/storage/mocks"
)

const verseSheet = "rownum,audio_id,chapter,verse,sanskrit,roman,colloquial,translation,capsule_url,word_meanings,title\n" +
	"1,a-2-47,2,47,,,,You have a right to action alone.,,,Karma yoga\n" +
	"2,a-2-48,2,48,,,,Perform your duty established in yoga.,,,Equanimity\n"

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestIngestHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	verses.EXPECT().BulkUpsert(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ any, rows []storage.VerseRecord) (int, error) {
			if rows[0].Chapter != 2 || rows[0].Verse != 47 {
				t.Errorf("first row = %d:%d", rows[0].Chapter, rows[0].Verse)
			}
			return 2, nil
		})

	h := handlers.NewIngestHandler(verses, nil)
	body, contentType := multipartBody(t, "file", "verses.csv", verseSheet)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	var resp handlers.IngestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RowsParsed != 2 || resp.RowsWritten != 2 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Indexing != "" {
		t.Errorf("indexing = %q, want empty without a pipeline", resp.Indexing)
	}
}

func TestIngestHandler_BadSheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	h := handlers.NewIngestHandler(verses, nil)

	body, contentType := multipartBody(t, "file", "verses.csv", "rownum,chapter\n1,2\n")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "missing required column") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestIngestHandler_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	h := handlers.NewIngestHandler(verses, nil)

	body, contentType := multipartBody(t, "wrong_field", "verses.csv", verseSheet)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestIngestHandler_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	verses := mocks.NewMockVerseStore(ctrl)
	verses.EXPECT().BulkUpsert(gomock.Any(), gomock.Any()).Return(0, storage.ErrNotFound)

	h := handlers.NewIngestHandler(verses, nil)
	body, contentType := multipartBody(t, "file", "verses.csv", verseSheet)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingest", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
