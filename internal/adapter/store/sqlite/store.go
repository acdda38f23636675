// Package sqlite persists a history of completed lint runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Graylog2/reviewbot/internal/usecase/lint"
)

// Store implements the RunRecorder port using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store at the given path. Use ":memory:" for an
// in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		base_sha TEXT NOT NULL,
		head_sha TEXT NOT NULL,
		files INTEGER NOT NULL,
		hints INTEGER NOT NULL,
		status TEXT NOT NULL CHECK(status IN ('passed', 'failed', 'skipped'))
	);

	CREATE INDEX IF NOT EXISTS idx_runs_head_sha ON runs(head_sha);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun inserts one completed run.
func (s *Store) RecordRun(ctx context.Context, rec lint.RunRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, base_sha, head_sha, files, hints, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		createdAt.Unix(), rec.BaseSHA, rec.HeadSHA, rec.Files, rec.Hints, rec.Status)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]lint.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at, base_sha, head_sha, files, hints, status
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []lint.RunRecord
	for rows.Next() {
		var rec lint.RunRecord
		var createdAt int64
		if err := rows.Scan(&createdAt, &rec.BaseSHA, &rec.HeadSHA, &rec.Files, &rec.Hints, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
