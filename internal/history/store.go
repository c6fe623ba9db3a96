// Package history persists one record per build in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	foundation "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Status is the final state of a recorded build.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Record summarizes one build.
type Record struct {
	BuildID    string
	StartedAt  time.Time
	Duration   time.Duration
	Posts      int
	Categories int
	Tags       int
	Skipped    int
	OutputDir  string
	Archive    string
	Commit     string
	Status     Status
	Error      string
}

// ErrNoRecords is returned by Latest on an empty store.
var ErrNoRecords = errors.New("history: no records")

// Store is a SQLite-backed build history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the database at path. Use ":memory:" for a private in-memory store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, foundation.WrapError(err, foundation.CategoryHistory, "create history directory").
				WithContext("path", path).Build()
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryHistory, "open history database").
			WithContext("path", path).Build()
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, foundation.WrapError(err, foundation.CategoryHistory, "initialize history schema").Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL UNIQUE,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		posts INTEGER NOT NULL,
		categories INTEGER NOT NULL,
		tags INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		output_dir TEXT NOT NULL,
		archive TEXT NOT NULL,
		git_commit TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores r.
func (s *Store) Append(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, started_at, duration_ms, posts, categories, tags, skipped,
			output_dir, archive, git_commit, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.BuildID, r.StartedAt.UnixMilli(), r.Duration.Milliseconds(), r.Posts, r.Categories, r.Tags, r.Skipped,
		r.OutputDir, r.Archive, r.Commit, string(r.Status), r.Error,
	)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryHistory, "insert build record").
			WithContext("build_id", r.BuildID).Build()
	}
	return nil
}

// List returns up to limit records, most recent first. A limit of zero or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT build_id, started_at, duration_ms, posts, categories, tags, skipped,
			output_dir, archive, git_commit, status, error
		FROM builds ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryHistory, "query build records").Build()
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var (
			r          Record
			startedAt  int64
			durationMS int64
			status     string
		)
		if err := rows.Scan(&r.BuildID, &startedAt, &durationMS, &r.Posts, &r.Categories, &r.Tags, &r.Skipped,
			&r.OutputDir, &r.Archive, &r.Commit, &status, &r.Error); err != nil {
			return nil, foundation.WrapError(err, foundation.CategoryHistory, "scan build record").Build()
		}
		r.StartedAt = time.UnixMilli(startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Status = Status(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryHistory, "iterate build records").Build()
	}
	return records, nil
}

// Latest returns the most recent record or ErrNoRecords.
func (s *Store) Latest(ctx context.Context) (Record, error) {
	records, err := s.List(ctx, 1)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, ErrNoRecords
	}
	return records[0], nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
