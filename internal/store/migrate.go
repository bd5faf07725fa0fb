package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableLLMEvents  = "llm_request_events"
	tableWorksheets = "worksheets"
	tableSequence   = "global_sequence"
)

// ddl creates every table and index the store owns, in order.
// ent's dialect builders cover DML only, so the DDL is written out by hand.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		purpose TEXT NOT NULL DEFAULT '',
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_sequence ON llm_request_events (sequence)`,
	`CREATE TABLE IF NOT EXISTS worksheets (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		params TEXT NOT NULL,
		problems TEXT NOT NULL,
		problem_count INTEGER NOT NULL DEFAULT 0,
		model TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS worksheets_sequence ON worksheets (sequence)`,
}

// migrate creates any missing tables. Existing tables are left alone.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
