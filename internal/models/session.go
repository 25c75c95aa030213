package models

import "time"

// Debug session status values.
const (
	SessionCompleted = "completed"
	SessionThrew     = "threw"
	SessionFailed    = "failed"
)

// DebugSession records one stepwise run of a program.
type DebugSession struct {
	ID          string    `json:"id"`
	Program     string    `json:"program"`
	Env         string    `json:"env,omitempty"`
	SymbolsFile string    `json:"symbols_file,omitempty"`
	Status      string    `json:"status"`
	Final       string    `json:"final,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	StepCount   int       `json:"step_count"`
}

// ShortID returns a shortened session ID (first 7 characters).
func (s *DebugSession) ShortID() string {
	if len(s.ID) > 7 {
		return s.ID[:7]
	}
	return s.ID
}

// DebugStep is one reported row of a debug session.
type DebugStep struct {
	Row    int               `json:"row"`
	Fields map[string]string `json:"fields"`
}
