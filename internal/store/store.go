// Package store handles SQLite persistence for content and results.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkurev/typedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for lessons, tests, word lists, and results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id INTEGER PRIMARY KEY,
			guid TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			focus_keys TEXT NOT NULL DEFAULT '',
			sequence INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT 'lesson',
			lesson_text TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tests (
			id INTEGER PRIMARY KEY,
			guid TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			word_count INTEGER NOT NULL DEFAULT 0,
			duration INTEGER NOT NULL DEFAULT 0,
			text_source TEXT NOT NULL DEFAULT '',
			test_text TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wordlists (
			name TEXT PRIMARY KEY,
			words TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			timestamp TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			errors INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			mode TEXT NOT NULL,
			reference_id TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_lessons_sequence ON lessons(sequence);`,
		`CREATE INDEX IF NOT EXISTS idx_results_timestamp ON results(timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_results_mode_ref ON results(mode, reference_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertLesson inserts a lesson or updates it in place by guid.
func (s *Store) UpsertLesson(ctx context.Context, l model.Lesson) error {
	created := l.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lessons (guid, title, focus_keys, sequence, category, lesson_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guid) DO UPDATE SET
			title = excluded.title,
			focus_keys = excluded.focus_keys,
			sequence = excluded.sequence,
			category = excluded.category,
			lesson_text = excluded.lesson_text`,
		l.GUID, l.Title, l.FocusKeys, l.Sequence, l.Category, l.Text,
		created.Format(time.RFC3339Nano))
	return err
}

// UpsertTest inserts a test or updates it in place by guid.
func (s *Store) UpsertTest(ctx context.Context, t model.Test) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tests (guid, title, category, difficulty, word_count, duration, text_source, test_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guid) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			difficulty = excluded.difficulty,
			word_count = excluded.word_count,
			duration = excluded.duration,
			text_source = excluded.text_source,
			test_text = excluded.test_text`,
		t.GUID, t.Title, t.Category, t.Difficulty, t.WordCount, t.Duration,
		t.TextSource, t.Text, created.Format(time.RFC3339Nano))
	return err
}

// UpsertWordList stores a named word pool, replacing any previous words.
func (s *Store) UpsertWordList(ctx context.Context, name string, words []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wordlists (name, words) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET words = excluded.words`,
		name, strings.Join(words, " "))
	return err
}

// ListLessons returns all lessons in sequence order.
func (s *Store) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guid, title, focus_keys, sequence, category, lesson_text, created_at
		 FROM lessons ORDER BY sequence ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var lessons []model.Lesson
	for rows.Next() {
		var l model.Lesson
		var created string
		if err := rows.Scan(&l.GUID, &l.Title, &l.FocusKeys, &l.Sequence, &l.Category, &l.Text, &created); err != nil {
			return nil, err
		}
		l.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// ListTests returns all tests ordered by title.
func (s *Store) ListTests(ctx context.Context) ([]model.Test, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guid, title, category, difficulty, word_count, duration, text_source, test_text, created_at
		 FROM tests ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		var created string
		if err := rows.Scan(&t.GUID, &t.Title, &t.Category, &t.Difficulty, &t.WordCount, &t.Duration, &t.TextSource, &t.Text, &created); err != nil {
			return nil, err
		}
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// GetWordList loads a named word pool. Returns sql.ErrNoRows when the list
// does not exist.
func (s *Store) GetWordList(ctx context.Context, name string) (model.WordList, error) {
	var joined string
	err := s.db.QueryRowContext(ctx,
		`SELECT words FROM wordlists WHERE name = ?`, name).Scan(&joined)
	if err != nil {
		return model.WordList{}, err
	}
	return model.WordList{Name: name, Words: strings.Fields(joined)}, nil
}

// InsertResult stores a finished session's result and returns its row id.
func (s *Store) InsertResult(ctx context.Context, r model.ResultRecord) (int64, error) {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (timestamp, wpm, accuracy, errors, duration_seconds, mode, reference_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339Nano), r.WPM, r.Accuracy, r.Errors,
		r.DurationSeconds, string(r.Mode), r.ReferenceID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListResults returns results matching the stats config, oldest first. Set
// newestFirst for the API's reverse-chronological listing.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig, newestFirst bool) ([]model.ResultRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	switch cfg.Filter {
	case model.FilterLessons:
		clauses = append(clauses, "mode = ?")
		args = append(args, string(model.ModeLesson))
	case model.FilterTests:
		clauses = append(clauses, "mode != ?", "reference_id != ''")
		args = append(args, string(model.ModeLesson))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT id, timestamp, wpm, accuracy, errors, duration_seconds, mode, reference_id
		FROM results
		WHERE %s
		ORDER BY timestamp %s`, strings.Join(clauses, " AND "), order)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var results []model.ResultRecord
	for rows.Next() {
		var r model.ResultRecord
		var ts, mode string
		if err := rows.Scan(&r.ID, &ts, &r.WPM, &r.Accuracy, &r.Errors, &r.DurationSeconds, &mode, &r.ReferenceID); err != nil {
			return nil, err
		}
		r.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, err
		}
		r.Mode = model.Mode(mode)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		if newestFirst {
			results = results[:cfg.Last]
		} else {
			results = results[len(results)-cfg.Last:]
		}
	}
	return results, nil
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}
