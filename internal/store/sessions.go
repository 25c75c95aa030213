package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kilupskalvis/clvm-tools/internal/models"
)

// NewSessionID derives a session ID from the program text and the
// moment the run started.
func NewSessionID(program string, startedAt time.Time) string {
	h := sha256.New()
	h.Write([]byte(program))
	h.Write([]byte(startedAt.Format(time.RFC3339Nano)))
	return hex.EncodeToString(h.Sum(nil))
}

// CreateSession inserts a new debug session.
func (s *Store) CreateSession(session *models.DebugSession) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, program, env, symbols_file, status, final, step_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Program, session.Env, session.SymbolsFile,
		session.Status, session.Final, session.StepCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// UpdateSessionOutcome records the status, final value and step count
// of a finished session.
func (s *Store) UpdateSessionOutcome(id, status, final string, stepCount int) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET status = ?, final = ?, step_count = ? WHERE id = ?",
		status, final, stepCount, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// AddStep appends one reported row to a session.
func (s *Store) AddStep(sessionID string, step *models.DebugStep) error {
	fields, err := json.Marshal(step.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal step fields: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO session_steps (session_id, row_number, fields) VALUES (?, ?, ?)",
		sessionID, step.Row, string(fields),
	)
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	return nil
}

// GetSession fetches a session by ID or unique ID prefix.
func (s *Store) GetSession(id string) (*models.DebugSession, error) {
	rows, err := s.db.Query(
		`SELECT id, program, env, symbols_file, status, final, created_at, step_count
		 FROM sessions WHERE id = ? OR id LIKE ? || '%'`,
		id, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*models.DebugSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("session %s not found", id)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("session prefix %s is ambiguous (%d matches)", id, len(matches))
}

// ListSessions returns sessions newest first, all of them when limit
// is zero.
func (s *Store) ListSessions(limit int) ([]*models.DebugSession, error) {
	query := `SELECT id, program, env, symbols_file, status, final, created_at, step_count
	          FROM sessions ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.DebugSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// GetSteps returns the reported rows of a session in order.
func (s *Store) GetSteps(sessionID string) ([]*models.DebugStep, error) {
	rows, err := s.db.Query(
		"SELECT row_number, fields FROM session_steps WHERE session_id = ? ORDER BY row_number",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*models.DebugStep
	for rows.Next() {
		var row int
		var fieldsJSON string
		if err := rows.Scan(&row, &fieldsJSON); err != nil {
			return nil, err
		}
		fields := map[string]string{}
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("failed to decode step fields: %w", err)
		}
		steps = append(steps, &models.DebugStep{Row: row, Fields: fields})
	}
	return steps, rows.Err()
}

func scanSession(rows *sql.Rows) (*models.DebugSession, error) {
	var session models.DebugSession
	var env, symbolsFile, final sql.NullString
	var createdAt string
	if err := rows.Scan(
		&session.ID, &session.Program, &env, &symbolsFile,
		&session.Status, &final, &createdAt, &session.StepCount,
	); err != nil {
		return nil, err
	}
	session.Env = env.String
	session.SymbolsFile = symbolsFile.String
	session.Final = final.String
	session.CreatedAt = parseTimestamp(createdAt)
	return &session, nil
}
