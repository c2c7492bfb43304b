// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records one row per pipeline attempt in a local SQLite
// database. The journal is append-only observability: the pipeline never
// reads it back, so no retry state survives a restart.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/srwatch/pkg/types"
)

const dbFile = "journal.db"

// Store manages the processing-history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal database under appDir, creating the
// schema if it does not exist.
func Open(appDir string) (*Store, error) {
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating app directory: %w", err)
	}

	dbPath := filepath.Join(appDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		source TEXT NOT NULL,
		artifact TEXT NOT NULL DEFAULT '',
		published TEXT NOT NULL DEFAULT '',
		rows_changed INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	)`)
	return err
}

// Record appends one run record.
func (s *Store) Record(rec types.RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (started_at, source, artifact, published, rows_changed, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.Source, rec.Artifact, rec.Published, rec.RowsChanged,
		string(rec.Outcome), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", rec.Source, err)
	}
	return nil
}

// Recent returns up to limit run records, newest first.
func (s *Store) Recent(limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT started_at, source, artifact, published, rows_changed, outcome, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var startedAt, outcome string
		if err := rows.Scan(&startedAt, &rec.Source, &rec.Artifact, &rec.Published,
			&rec.RowsChanged, &outcome, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		rec.Outcome = types.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}
