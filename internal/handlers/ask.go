package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/qa"
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	engine qa.Engine
	md     goldmark.Markdown
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine qa.Engine) *AskHandler {
	return &AskHandler{
		engine: engine,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(ghhtml.WithHardWraps()),
		),
	}
}

// AskRequest represents the HTTP request payload for questions.
// This mirrors qa.AskRequest but is defined here for HTTP layer separation.
type AskRequest struct {
	Question string `json:"question"`
	Topic    string `json:"topic,omitempty"`
}

// AskResponse represents the HTTP response payload for questions.
type AskResponse struct {
	// Mode is the route the question took (explain, word_meaning, canonical,
	// listing, definition, broad, error).
	Mode string `json:"mode"`

	// Answer in plain text with inline [chapter:verse] citation tokens.
	Answer string `json:"answer"`

	// AnswerHTML is the rendered answer, present with ?format=html.
	AnswerHTML template.HTML `json:"answer_html,omitempty"`

	// Citations holds bracketed citation strings in first-seen order.
	Citations []string `json:"citations"`

	// Suggestions holds follow-up prompts offered on no-match results.
	Suggestions []string `json:"suggestions,omitempty"`

	// Debug contains diagnostic information when ?debug=true is set.
	Debug map[string]any `json:"debug,omitempty"`
}

// ServeHTTP handles HTTP requests for question answering.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(ctx, w, http.StatusBadRequest, "Question is required")
		return
	}

	debug := false
	if debugParam := r.URL.Query().Get("debug"); debugParam != "" {
		debug = strings.ToLower(debugParam) == "true" || debugParam == "1"
	}

	result, err := h.engine.Ask(ctx, qa.AskRequest{
		Question: req.Question,
		Topic:    req.Topic,
		Debug:    debug,
	})
	if err != nil {
		if errors.Is(err, qa.ErrEmptyQuestion) {
			writeError(ctx, w, http.StatusBadRequest, "Question is required")
			return
		}
		logger.ErrorContext(ctx, "engine error", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to answer question")
		return
	}

	resp := AskResponse{
		Mode:        string(result.Mode),
		Answer:      result.Answer,
		Citations:   result.Citations,
		Suggestions: result.Suggestions,
		Debug:       result.Debug,
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "html") {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(result.Answer), &buf); err != nil {
			logger.WarnContext(ctx, "failed to render answer as HTML", "error", err)
		} else {
			resp.AnswerHTML = template.HTML(buf.String())
		}
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
