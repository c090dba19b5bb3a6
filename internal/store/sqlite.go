// Package store keeps the class registry and the history ledger in a
// SQLite database. The default DSN is ":memory:", so state lives only for
// the process lifetime; a file path can be configured instead.
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quizmaster/backend/internal/domain/history"
	"github.com/quizmaster/backend/internal/domain/question"
	"github.com/quizmaster/backend/internal/domain/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS classes (
    name TEXT PRIMARY KEY,
    loaded_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    class_name TEXT NOT NULL,
    chapter TEXT NOT NULL,
    question_text TEXT NOT NULL,
    reasoning TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    alternative_1 TEXT NOT NULL,
    alternative_2 TEXT NOT NULL,
    alternative_3 TEXT NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (class_name) REFERENCES classes(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recorded_at TEXT NOT NULL,
    class_name TEXT NOT NULL,
    total_questions INTEGER NOT NULL,
    correct_answers INTEGER NOT NULL,
    percentage REAL NOT NULL,
    missed_questions INTEGER NOT NULL,
    chapter_stats TEXT NOT NULL,
    chapters TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the database at dsn and ensures the schema exists.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// The in-memory database disappears with its last connection, so keep
	// exactly one open.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Classes
// ============================================================================

// SaveClass stores a class's question pool, replacing any previous pool
// for the same class name wholesale.
func (s *SQLiteStore) SaveClass(name string, pool *question.Pool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO classes (name, loaded_at) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET loaded_at = excluded.loaded_at",
		name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM questions WHERE class_name = ?", name); err != nil {
		return err
	}

	position := 0
	for _, chapter := range pool.Chapters() {
		for _, q := range pool.Questions(chapter) {
			_, err = tx.Exec(
				`INSERT INTO questions
				 (class_name, chapter, question_text, reasoning, correct_answer,
				  alternative_1, alternative_2, alternative_3, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				name, q.Chapter, q.Text, q.Reasoning, q.CorrectAnswer,
				q.Alternatives[0], q.Alternatives[1], q.Alternatives[2], position,
			)
			if err != nil {
				return err
			}
			position++
		}
	}

	return tx.Commit()
}

// ListClasses returns class names in the order they were first loaded.
func (s *SQLiteStore) ListClasses() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM classes ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		classes = append(classes, name)
	}
	return classes, rows.Err()
}

// GetPool rebuilds a class's question pool. Chapter order and question
// order match the source file because questions are replayed by position.
func (s *SQLiteStore) GetPool(name string) (*question.Pool, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM classes WHERE name = ?", name).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(
		`SELECT chapter, question_text, reasoning, correct_answer,
		        alternative_1, alternative_2, alternative_3
		 FROM questions WHERE class_name = ? ORDER BY position`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pool := question.NewPool()
	for rows.Next() {
		var chapter, text, reasoning, correct, alt1, alt2, alt3 string
		if err := rows.Scan(&chapter, &text, &reasoning, &correct, &alt1, &alt2, &alt3); err != nil {
			return nil, err
		}
		q, err := question.New(chapter, text, reasoning, correct, []string{alt1, alt2, alt3})
		if err != nil {
			return nil, err
		}
		pool.Add(q)
	}
	return pool, rows.Err()
}

// ============================================================================
// History
// ============================================================================

// SaveHistoryEntry appends one completed session to the ledger.
func (s *SQLiteStore) SaveHistoryEntry(e history.Entry) error {
	chapterStats, err := json.Marshal(e.ChapterStats)
	if err != nil {
		return err
	}
	chapters, err := json.Marshal(e.SelectedChapters)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO history
		 (recorded_at, class_name, total_questions, correct_answers,
		  percentage, missed_questions, chapter_stats, chapters)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Format(time.RFC3339Nano), e.ClassName,
		e.TotalQuestions, e.CorrectAnswers, e.Percentage, e.MissedQuestions,
		string(chapterStats), string(chapters),
	)
	return err
}

// ListHistory returns the ledger in append order.
func (s *SQLiteStore) ListHistory() ([]history.Entry, error) {
	rows, err := s.db.Query(
		`SELECT recorded_at, class_name, total_questions, correct_answers,
		        percentage, missed_questions, chapter_stats, chapters
		 FROM history ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var recordedAt, chapterStats, chapters string
		if err := rows.Scan(
			&recordedAt, &e.ClassName, &e.TotalQuestions, &e.CorrectAnswers,
			&e.Percentage, &e.MissedQuestions, &chapterStats, &chapters,
		); err != nil {
			return nil, err
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		e.ChapterStats = make(map[string]stats.ChapterStat)
		if err := json.Unmarshal([]byte(chapterStats), &e.ChapterStats); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(chapters), &e.SelectedChapters); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
