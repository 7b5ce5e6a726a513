package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables WAL mode and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// WAL keeps readers unblocked during ingestion writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := checkFTS5(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// checkFTS5 verifies the driver was compiled with the FTS5 module. The
// sqlite3 driver only includes it behind the fts5 build tag; without it
// Migrate would fail with the far less obvious "no such module: fts5".
func checkFTS5(db *sql.DB) error {
	if _, err := db.Exec(`CREATE VIRTUAL TABLE temp.fts5_check USING fts5(t);`); err != nil {
		return fmt.Errorf("sqlite driver built without FTS5, rebuild with -tags fts5: %w", err)
	}
	if _, err := db.Exec(`DROP TABLE temp.fts5_check;`); err != nil {
		return fmt.Errorf("failed to drop fts5 check table: %w", err)
	}
	return nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// The verses full-text index is contentless (content=''): it is rebuilt
// from the verses table on every boot and after bulk ingestion, instead
// of being trigger-maintained. The questions index is content-backed and
// kept in sync by triggers.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS verses (
			id INTEGER PRIMARY KEY,
			rownum INTEGER,
			audio_id TEXT,
			chapter INTEGER NOT NULL,
			verse INTEGER NOT NULL,
			sanskrit TEXT,
			roman TEXT,
			colloquial TEXT,
			translation TEXT,
			commentary1 TEXT,
			commentary2 TEXT,
			commentary3 TEXT,
			capsule_url TEXT,
			word_meanings TEXT,
			title TEXT,
			UNIQUE (chapter, verse)
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY,
			micro_topic_id INTEGER NOT NULL,
			intent TEXT DEFAULT 'general',
			priority INTEGER DEFAULT 5,
			source TEXT DEFAULT 'seed',
			question_text TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY,
			question_id INTEGER NOT NULL,
			length_tier TEXT CHECK (length_tier IN ('short','medium','long')) NOT NULL,
			answer_text TEXT NOT NULL,
			UNIQUE (question_id, length_tier),
			FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question_id ON answers(question_id);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS questions_fts USING fts5(
			question_text,
			intent UNINDEXED,
			source UNINDEXED,
			content='questions',
			content_rowid='id'
		);`,
		`CREATE TRIGGER IF NOT EXISTS questions_ai AFTER INSERT ON questions BEGIN
			INSERT INTO questions_fts(rowid, question_text, intent, source)
			VALUES (new.id, new.question_text, new.intent, new.source);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS questions_ad AFTER DELETE ON questions BEGIN
			INSERT INTO questions_fts(questions_fts, rowid, question_text, intent, source)
			VALUES ('delete', old.id, old.question_text, old.intent, old.source);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS questions_au AFTER UPDATE ON questions BEGIN
			INSERT INTO questions_fts(questions_fts, rowid, question_text, intent, source)
			VALUES ('delete', old.id, old.question_text, old.intent, old.source);
			INSERT INTO questions_fts(rowid, question_text, intent, source)
			VALUES (new.id, new.question_text, new.intent, new.source);
		END;`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return rebuildVerseFTS(db)
}

// rebuildVerseFTS drops and rebuilds the contentless FTS5 index over verses.
// Commentary columns are included so broad queries work without embeddings.
func rebuildVerseFTS(db *sql.DB) error {
	stmts := []string{
		`DROP TABLE IF EXISTS verses_fts;`,
		`CREATE VIRTUAL TABLE verses_fts USING fts5(
			title,
			translation,
			word_meanings,
			roman,
			colloquial,
			commentary1,
			commentary2,
			commentary3,
			content='',
			tokenize='unicode61'
		);`,
		`INSERT INTO verses_fts(rowid, title, translation, word_meanings, roman, colloquial, commentary1, commentary2, commentary3)
		 SELECT rowid, title, translation, word_meanings, roman, colloquial, commentary1, commentary2, commentary3
		 FROM verses;`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
