package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_canonical_store.go -package=mocks github.com/indepthg/gita-qa/internal/storage CanonicalStore

import (
	"context"
	"database/sql"
	"fmt"
)

// CanonicalStore defines the interface for canonical question/answer lookups.
type CanonicalStore interface {
	// SearchBest runs a relevance-ranked full-text query over canonical
	// question texts and returns the single best entry.
	// Returns nil and ErrNotFound when nothing matches.
	SearchBest(ctx context.Context, query string) (*CanonicalEntry, error)
	// SubstringBest returns the highest-priority entry whose question text
	// contains the given text, case-insensitively.
	// Returns nil and ErrNotFound when nothing matches.
	SubstringBest(ctx context.Context, text string) (*CanonicalEntry, error)
	// Answers returns the stored answer text per length tier for an entry.
	Answers(ctx context.Context, questionID int64) (map[string]string, error)
	// ListEntries returns all canonical entries ordered by id.
	ListEntries(ctx context.Context) ([]CanonicalEntry, error)
	// UpsertEntry inserts an entry keyed on question text, or leaves an
	// existing one in place. The entry ID is set either way.
	UpsertEntry(ctx context.Context, e *CanonicalEntry) error
	// UpsertAnswer inserts or replaces one answer tier for an entry.
	UpsertAnswer(ctx context.Context, questionID int64, tier, text string) error
}

// CanonicalRepo provides methods for canonical question/answer operations.
// It implements the CanonicalStore interface.
type CanonicalRepo struct {
	db *sql.DB
}

// NewCanonicalRepo creates a new CanonicalRepo.
func NewCanonicalRepo(db *sql.DB) *CanonicalRepo {
	return &CanonicalRepo{db: db}
}

const canonicalColumns = "id, micro_topic_id, intent, priority, source, question_text"

func scanCanonical(s interface{ Scan(dest ...any) error }) (*CanonicalEntry, error) {
	var e CanonicalEntry
	var intent, source sql.NullString
	err := s.Scan(&e.ID, &e.MicroTopicID, &intent, &e.Priority, &source, &e.QuestionText)
	if err != nil {
		return nil, err
	}
	e.Intent = intent.String
	e.Source = source.String
	return &e, nil
}

// SearchBest runs a relevance-ranked full-text query over canonical question
// texts. FTS5 rank ascends toward better matches; priority breaks ties.
func (r *CanonicalRepo) SearchBest(ctx context.Context, query string) (*CanonicalEntry, error) {
	if query == "" {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT q.id, q.micro_topic_id, q.intent, q.priority, q.source, q.question_text
		 FROM questions_fts
		 JOIN questions AS q ON q.id = questions_fts.rowid
		 WHERE questions_fts MATCH ('' || ?)
		 ORDER BY rank ASC, q.priority ASC
		 LIMIT 1`,
		query,
	)
	e, err := scanCanonical(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search canonical questions: %w", err)
	}
	return e, nil
}

// SubstringBest returns the highest-priority entry whose question text
// contains the given text, case-insensitively.
func (r *CanonicalRepo) SubstringBest(ctx context.Context, text string) (*CanonicalEntry, error) {
	if text == "" {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+canonicalColumns+`
		 FROM questions
		 WHERE question_text LIKE '%' || ? || '%'
		 ORDER BY priority ASC, id ASC
		 LIMIT 1`,
		text,
	)
	e, err := scanCanonical(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run substring lookup: %w", err)
	}
	return e, nil
}

// Answers returns the stored answer text per length tier for an entry.
func (r *CanonicalRepo) Answers(ctx context.Context, questionID int64) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT length_tier, answer_text FROM answers WHERE question_id = ?",
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make(map[string]string)
	for rows.Next() {
		var tier, text string
		if err := rows.Scan(&tier, &text); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		out[tier] = text
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// ListEntries returns all canonical entries ordered by id.
func (r *CanonicalRepo) ListEntries(ctx context.Context) ([]CanonicalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+canonicalColumns+" FROM questions ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list canonical entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []CanonicalEntry
	for rows.Next() {
		e, err := scanCanonical(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan canonical entry: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// UpsertEntry inserts an entry keyed on question text, or leaves an existing
// one in place. The entry ID is set either way.
func (r *CanonicalRepo) UpsertEntry(ctx context.Context, e *CanonicalEntry) error {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM questions WHERE question_text = ? LIMIT 1", e.QuestionText,
	).Scan(&id)
	if err == nil {
		e.ID = id
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing question: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO questions (question_text, micro_topic_id, intent, priority, source) VALUES (?, ?, ?, ?, ?)",
		e.QuestionText, e.MicroTopicID, e.Intent, e.Priority, e.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted question id: %w", err)
	}
	return nil
}

// UpsertAnswer inserts or replaces one answer tier for an entry.
func (r *CanonicalRepo) UpsertAnswer(ctx context.Context, questionID int64, tier, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (question_id, length_tier, answer_text)
		 VALUES (?, ?, ?)
		 ON CONFLICT (question_id, length_tier) DO UPDATE SET answer_text = excluded.answer_text`,
		questionID, tier, text,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", err)
	}
	return nil
}
