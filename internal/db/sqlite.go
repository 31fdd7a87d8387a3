package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the local portal database. The portal keeps only scratch
// state here (overlay mutations, exam sessions); the case registry is an
// external service and is never touched through this handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

// Migrate applies the schema. All statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS overlay_mutations (
			bucket     TEXT NOT NULL,
			entry_id   TEXT NOT NULL,
			op         TEXT NOT NULL,
			payload    TEXT,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (bucket, entry_id)
		)`,
		`CREATE TABLE IF NOT EXISTS exam_sessions (
			id           TEXT PRIMARY KEY,
			tramite_id   TEXT NOT NULL,
			license_type TEXT NOT NULL,
			questions    TEXT NOT NULL,
			status       TEXT NOT NULL,
			started_at   TIMESTAMP NOT NULL,
			expires_at   TIMESTAMP NOT NULL,
			submitted_at TIMESTAMP,
			result       TEXT,
			result_pushed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exam_sessions_tramite
			ON exam_sessions (tramite_id)`,
		`CREATE TABLE IF NOT EXISTS exam_answers (
			session_id  TEXT NOT NULL,
			question_id TEXT NOT NULL,
			selected    INTEGER NOT NULL,
			updated_at  TIMESTAMP NOT NULL,
			PRIMARY KEY (session_id, question_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
