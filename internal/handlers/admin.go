package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/jobs"
)

// RegenHandler controls canonical answer regeneration jobs.
type RegenHandler struct {
	runner *jobs.Runner
}

// NewRegenHandler creates a new RegenHandler.
func NewRegenHandler(runner *jobs.Runner) *RegenHandler {
	return &RegenHandler{runner: runner}
}

// RegenStartResponse reports a newly started regeneration job.
type RegenStartResponse struct {
	JobID string `json:"job_id"`
	Rows  int    `json:"rows"`
}

// Start handles POST requests with a multipart "file" field holding the
// control CSV. Returns 409 while another job is running.
func (h *RegenHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

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

	rows, err := jobs.ParseControlSheet(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to parse control sheet", "error", err)
		writeError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid control sheet: %v", err))
		return
	}
	if len(rows) == 0 {
		writeError(ctx, w, http.StatusBadRequest, "Control sheet contained no usable rows")
		return
	}

	id, err := h.runner.Start(rows)
	if errors.Is(err, jobs.ErrAlreadyRunning) {
		writeError(ctx, w, http.StatusConflict, "A regeneration job is already running")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to start regeneration", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to start regeneration")
		return
	}

	logger.InfoContext(ctx, "regeneration started", "job_id", id, "rows", len(rows))
	writeJSON(ctx, w, http.StatusAccepted, RegenStartResponse{JobID: id, Rows: len(rows)})
}

// Status handles GET requests for the current or most recent job.
func (h *RegenHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.runner.Status())
}

// Cancel handles POST requests to stop the running job.
func (h *RegenHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !h.runner.Cancel() {
		writeError(ctx, w, http.StatusConflict, "No regeneration job is running")
		return
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "regeneration cancel requested")
	writeJSON(ctx, w, http.StatusOK, h.runner.Status())
}
