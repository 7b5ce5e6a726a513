package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/indexer"
	"github.com/indepthg/gita-qa/internal/ingest"
	"github.com/indepthg/gita-qa/internal/storage"
)

const maxSheetBytes = 32 << 20

// IngestHandler loads a verse sheet into the database and, when an indexing
// pipeline is configured, re-embeds the uploaded verses in the background.
type IngestHandler struct {
	verses   storage.VerseStore
	pipeline *indexer.Pipeline // optional
}

// NewIngestHandler creates a new IngestHandler. pipeline may be nil.
func NewIngestHandler(verses storage.VerseStore, pipeline *indexer.Pipeline) *IngestHandler {
	return &IngestHandler{verses: verses, pipeline: pipeline}
}

// IngestResponse reports the outcome of a sheet upload.
type IngestResponse struct {
	RowsParsed  int    `json:"rows_parsed"`
	RowsWritten int    `json:"rows_written"`
	Indexing    string `json:"indexing,omitempty"`
}

// ServeHTTP handles POST requests with a multipart "file" field holding the
// verse CSV.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxSheetBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Expected a multipart form with a file field")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	rows, err := ingest.ParseSheet(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to parse verse sheet", "error", err)
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid verse sheet: %v", err))
		return
	}
	if len(rows) == 0 {
		writeError(ctx, w, http.StatusBadRequest, "Verse sheet contained no usable rows")
		return
	}

	written, err := h.verses.BulkUpsert(ctx, rows)
	if err != nil {
		logger.ErrorContext(ctx, "failed to store verses", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to store verses")
		return
	}
	logger.InfoContext(ctx, "verse sheet ingested", "rows", written)

	resp := IngestResponse{
		RowsParsed:  len(rows),
		RowsWritten: written,
	}

	// Embedding runs in the background so the upload returns promptly.
	if h.pipeline != nil {
		resp.Indexing = "started"
		go func() {
			indexCtx := context.Background()
			stats, err := h.pipeline.IndexVerses(indexCtx, rows)
			if err != nil {
				logger.ErrorContext(indexCtx, "verse indexing completed with errors", "error", err)
				return
			}
			logger.InfoContext(indexCtx, "verse indexing completed",
				"embedded", stats.VersesEmbedded, "skipped", stats.VersesSkipped)
		}()
	}

	writeJSON(ctx, w, http.StatusAccepted, resp)
}
