package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/indepthg/gita-qa/internal/contextutil"
	"github.com/indepthg/gita-qa/internal/qa"
	"github.com/indepthg/gita-qa/internal/storage"
)

// ErrAlreadyRunning is returned when a regeneration is started while one is
// still in flight. The runner is single-flight: canonical answers are shared
// state and concurrent runs would interleave writes.
var ErrAlreadyRunning = errors.New("a regeneration job is already running")

// Tiers generated for every canonical entry. Answering composes a subset,
// but all tiers are kept populated.
var generatedTiers = []string{"short", "medium", "long"}

// State names for Status.State.
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
	StateCancelled = "cancelled"
)

// Status is a snapshot of the current or most recent regeneration job.
type Status struct {
	ID         string    `json:"id,omitempty"`
	State      string    `json:"state"`
	Processed  int       `json:"processed"`
	Total      int       `json:"total"`
	Errors     int       `json:"errors"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Runner regenerates canonical answers from a control sheet in the
// background, one job at a time.
type Runner struct {
	verses storage.VerseStore
	canon  storage.CanonicalStore
	gen    qa.Generator
	pause  time.Duration

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
}

// NewRunner creates a regeneration runner. pause is the delay between
// generation calls; zero disables pacing.
func NewRunner(verses storage.VerseStore, canon storage.CanonicalStore, gen qa.Generator, pause time.Duration) *Runner {
	return &Runner{
		verses: verses,
		canon:  canon,
		gen:    gen,
		pause:  pause,
		status: Status{State: StateIdle},
	}
}

// Start launches a background regeneration over the given rows and returns
// the job ID. Returns ErrAlreadyRunning while a job is in flight.
func (r *Runner) Start(rows []ControlRow) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.State == StateRunning {
		return "", ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()
	r.status = Status{
		ID:        id,
		State:     StateRunning,
		Total:     len(rows),
		StartedAt: time.Now().UTC(),
	}
	r.cancel = cancel

	go r.run(ctx, rows)
	return id, nil
}

// Status returns a snapshot of the current or most recent job.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Cancel requests cancellation of the running job. Returns false when no job
// is running.
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.State != StateRunning || r.cancel == nil {
		return false
	}
	r.cancel()
	return true
}

func (r *Runner) run(ctx context.Context, rows []ControlRow) {
	logger := contextutil.LoggerFromContext(ctx)
	errorCount := 0

	for i, row := range rows {
		select {
		case <-ctx.Done():
			r.finish(StateCancelled, i, errorCount, "cancelled")
			return
		default:
		}

		if err := r.regenerateRow(ctx, row); err != nil {
			if ctx.Err() != nil {
				r.finish(StateCancelled, i, errorCount, "cancelled")
				return
			}
			errorCount++
			logger.ErrorContext(ctx, "failed to regenerate canonical entry",
				"question", row.QuestionText, "error", err)
		}

		r.mu.Lock()
		r.status.Processed = i + 1
		r.status.Errors = errorCount
		r.mu.Unlock()
	}

	state := StateCompleted
	message := ""
	if errorCount > 0 {
		message = fmt.Sprintf("completed with %d errors", errorCount)
	}
	r.finish(state, len(rows), errorCount, message)
}

func (r *Runner) finish(state string, processed, errorCount int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.State = state
	r.status.Processed = processed
	r.status.Errors = errorCount
	r.status.Message = message
	r.status.FinishedAt = time.Now().UTC()
	r.cancel = nil
}

// regenerateRow upserts the canonical entry and rewrites each answer tier
// from the whitelisted verse context.
func (r *Runner) regenerateRow(ctx context.Context, row ControlRow) error {
	lines := r.contextLines(ctx, row.Whitelist)
	if len(lines) == 0 {
		return fmt.Errorf("no usable context for whitelist")
	}

	entry := &storage.CanonicalEntry{
		MicroTopicID: row.MicroTopicID,
		Intent:       "general",
		Priority:     3,
		Source:       "canonical",
		QuestionText: row.QuestionText,
	}
	if err := r.canon.UpsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to upsert question: %w", err)
	}

	for _, tier := range generatedTiers {
		answer, err := r.generateAnswer(ctx, row, tier, lines)
		if err != nil {
			return err
		}
		if answer == "" {
			return fmt.Errorf("empty %s answer", tier)
		}
		if err := r.canon.UpsertAnswer(ctx, entry.ID, tier, answer); err != nil {
			return fmt.Errorf("failed to store %s answer: %w", tier, err)
		}

		if r.pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.pause):
			}
		}
	}
	return nil
}

// contextLines builds citation-prefixed context from the whitelisted verses.
// Commentary is preferred over the bare translation. Missing verses are
// skipped.
func (r *Runner) contextLines(ctx context.Context, whitelist []qa.VerseRef) []string {
	const maxLines = 40
	const maxChars = 600

	var lines []string
	for _, ref := range whitelist {
		if len(lines) >= maxLines {
			break
		}
		v, err := r.verses.GetByRef(ctx, ref.Chapter, ref.Verse)
		if err != nil {
			continue
		}

		block := strings.TrimSpace(v.Commentary2)
		if block == "" {
			block = strings.TrimSpace(v.Commentary1)
		}
		if block == "" {
			block = strings.TrimSpace(v.Translation)
		}
		if block == "" {
			continue
		}
		if len([]rune(block)) > maxChars {
			cut := string([]rune(block)[:maxChars])
			if i := strings.LastIndex(cut, " "); i > 0 {
				cut = cut[:i]
			}
			block = cut + "…"
		}
		lines = append(lines, ref.Token()+" "+block)
	}
	return lines
}

func (r *Runner) generateAnswer(ctx context.Context, row ControlRow, tier string, lines []string) (string, error) {
	var guide string
	switch tier {
	case "short":
		guide = "Give a crisp 2-4 sentence answer."
	case "medium":
		guide = "Write 3-6 short paragraphs with a natural flow."
	default:
		guide = "Write an in-depth, well-structured exposition of 6-10 paragraphs."
	}

	styleNote := ""
	switch row.Style {
	case "portrait":
		styleNote = "If natural, enumerate qualities or signs succinctly; avoid robotic templates."
	case "doctrinal":
		styleNote = "Favor a readable narrative; insert brief bullets only if they help clarity."
	}

	system := "You are a Bhagavad Gita tutor. Answer ONLY from the provided context. " +
		"Weave in verse citations like [chapter:verse] wherever relevant. " +
		"Write directly in plain, elegant English without boilerplate."
	user := "Question: " + row.QuestionText + "\n" +
		guide + "\n" + styleNote + "\n\n" +
		"Context lines (each begins with a verse citation you may cite):\n" +
		strings.Join(lines, "\n")

	out, err := r.gen.Generate(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s answer: %w", tier, err)
	}
	return qa.NormalizeCitations(strings.TrimSpace(out)), nil
}
