package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_verse_store.go -package=mocks github.com/indepthg/gita-qa/internal/storage VerseStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// VerseStore defines the interface for verse storage operations.
type VerseStore interface {
	// GetByRef gets a verse by chapter and verse number.
	// Returns nil and ErrNotFound if not found.
	GetByRef(ctx context.Context, chapter, verse int) (*VerseRecord, error)
	// Neighbors returns verses within radius of the given verse in the same
	// chapter, excluding the verse itself, ordered by verse number.
	Neighbors(ctx context.Context, chapter, verse, radius int) ([]VerseRecord, error)
	// SearchFTS runs a relevance-ranked full-text query over the verse index.
	// The query may contain FTS5 boolean operators.
	SearchFTS(ctx context.Context, query string, limit int) ([]VerseRecord, error)
	// BulkUpsert inserts or updates rows keyed on (chapter, verse) and
	// rebuilds the full-text index. Returns the number of rows written.
	BulkUpsert(ctx context.Context, rows []VerseRecord) (int, error)
	// Count returns the total number of verse rows.
	Count(ctx context.Context) (int, error)
}

const verseColumns = "id, rownum, audio_id, chapter, verse, sanskrit, roman, colloquial, translation, commentary1, commentary2, commentary3, capsule_url, word_meanings, title"

// VerseRepo provides methods for verse operations.
// It implements the VerseStore interface.
type VerseRepo struct {
	db *sql.DB
}

// NewVerseRepo creates a new VerseRepo.
func NewVerseRepo(db *sql.DB) *VerseRepo {
	return &VerseRepo{db: db}
}

func scanVerse(s interface{ Scan(dest ...any) error }) (*VerseRecord, error) {
	var v VerseRecord
	var rownum sql.NullInt64
	var audioID, sanskrit, roman, colloquial, translation sql.NullString
	var c1, c2, c3, capsuleURL, wordMeanings, title sql.NullString

	err := s.Scan(&v.ID, &rownum, &audioID, &v.Chapter, &v.Verse, &sanskrit, &roman,
		&colloquial, &translation, &c1, &c2, &c3, &capsuleURL, &wordMeanings, &title)
	if err != nil {
		return nil, err
	}

	v.RowNum = int(rownum.Int64)
	v.AudioID = audioID.String
	v.Sanskrit = sanskrit.String
	v.Roman = roman.String
	v.Colloquial = colloquial.String
	v.Translation = translation.String
	v.Commentary1 = c1.String
	v.Commentary2 = c2.String
	v.Commentary3 = c3.String
	v.CapsuleURL = capsuleURL.String
	v.WordMeanings = wordMeanings.String
	v.Title = title.String
	return &v, nil
}

// GetByRef gets a verse by chapter and verse number.
// Returns nil and ErrNotFound if not found.
func (r *VerseRepo) GetByRef(ctx context.Context, chapter, verse int) (*VerseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+verseColumns+" FROM verses WHERE chapter = ? AND verse = ?",
		chapter, verse,
	)
	v, err := scanVerse(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query verse: %w", err)
	}
	return v, nil
}

// Neighbors returns verses within radius of the given verse in the same
// chapter, excluding the verse itself.
func (r *VerseRepo) Neighbors(ctx context.Context, chapter, verse, radius int) ([]VerseRecord, error) {
	lo := verse - radius
	if lo < 1 {
		lo = 1
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+verseColumns+" FROM verses WHERE chapter = ? AND verse BETWEEN ? AND ? AND verse != ? ORDER BY verse ASC",
		chapter, lo, verse+radius, verse,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighbors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []VerseRecord
	for rows.Next() {
		v, err := scanVerse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan neighbor: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// SearchFTS runs a relevance-ranked full-text query over the verse index.
//
// The query is concatenated with an empty string inside the MATCH so the
// expression stays a bound parameter while boolean operators (OR/NEAR/NOT)
// still work; no quoting is forced on the caller's expression.
func (r *VerseRepo) SearchFTS(ctx context.Context, query string, limit int) ([]VerseRecord, error) {
	if query == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+verseColumnsPrefixed("v")+`
		 FROM verses_fts
		 JOIN verses AS v ON v.rowid = verses_fts.rowid
		 WHERE verses_fts MATCH ('' || ?)
		 ORDER BY rank
		 LIMIT ?`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run verse search: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []VerseRecord
	for rows.Next() {
		v, err := scanVerse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func verseColumnsPrefixed(alias string) string {
	return alias + ".id, " + alias + ".rownum, " + alias + ".audio_id, " + alias + ".chapter, " +
		alias + ".verse, " + alias + ".sanskrit, " + alias + ".roman, " + alias + ".colloquial, " +
		alias + ".translation, " + alias + ".commentary1, " + alias + ".commentary2, " + alias + ".commentary3, " +
		alias + ".capsule_url, " + alias + ".word_meanings, " + alias + ".title"
}

// BulkUpsert inserts or updates rows keyed on (chapter, verse), then
// rebuilds the contentless full-text index so searches see the new rows.
func (r *VerseRepo) BulkUpsert(ctx context.Context, rows []VerseRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO verses (rownum, audio_id, chapter, verse, sanskrit, roman, colloquial, translation, commentary1, commentary2, commentary3, capsule_url, word_meanings, title)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (chapter, verse) DO UPDATE SET
		 rownum = excluded.rownum, audio_id = excluded.audio_id, sanskrit = excluded.sanskrit,
		 roman = excluded.roman, colloquial = excluded.colloquial, translation = excluded.translation,
		 commentary1 = excluded.commentary1, commentary2 = excluded.commentary2, commentary3 = excluded.commentary3,
		 capsule_url = excluded.capsule_url, word_meanings = excluded.word_meanings, title = excluded.title`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	count := 0
	for _, v := range rows {
		_, err := stmt.ExecContext(ctx,
			v.RowNum, v.AudioID, v.Chapter, v.Verse, v.Sanskrit, v.Roman, v.Colloquial,
			v.Translation, v.Commentary1, v.Commentary2, v.Commentary3, v.CapsuleURL,
			v.WordMeanings, v.Title,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert verse %d:%d: %w", v.Chapter, v.Verse, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert: %w", err)
	}

	if err := rebuildVerseFTS(r.db); err != nil {
		return count, fmt.Errorf("failed to rebuild verse index: %w", err)
	}
	return count, nil
}

// Count returns the total number of verse rows.
func (r *VerseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM verses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count verses: %w", err)
	}
	return n, nil
}
