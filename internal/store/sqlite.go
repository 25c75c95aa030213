// Package store provides SQLite-based persistence for debug sessions.
// It records stepwise runs so they can be listed and replayed later.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentSchemaVersion = 1

// Store represents the SQLite session store.
type Store struct {
	db *sql.DB
}

// New creates a new store connection, creating the parent directory
// if needed.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the database schema.
func (s *Store) Initialize() error {
	schema := `
	-- Debug sessions (one per recorded run)
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		program TEXT NOT NULL,
		env TEXT,
		symbols_file TEXT,
		status TEXT NOT NULL,
		final TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		step_count INTEGER DEFAULT 0
	);

	-- Reported rows of each session
	CREATE TABLE IF NOT EXISTS session_steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		row_number INTEGER NOT NULL,
		fields JSON NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id),
		UNIQUE(session_id, row_number)
	);

	-- Config (schema version, etc.)
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT
	);

	-- Indexes
	CREATE INDEX IF NOT EXISTS idx_steps_session ON session_steps(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.SetValue("schema_version", fmt.Sprintf("%d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// GetValue gets a value from the key-value store.
func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetValue sets a value in the key-value store.
func (s *Store) SetValue(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = ?",
		key, value, value,
	)
	return err
}

// parseTimestamp parses a timestamp string from SQLite in various formats.
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999+07:00",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05+07:00",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
