// Package postgres persists briefs, history, saved items, settings and posts
// over database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schemaLockKey = int64(2026082901)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// EnsureSchema creates all tables idempotently. The advisory lock serializes
// bootstrap DDL across concurrent api/worker startups.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS briefs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	original_text TEXT NOT NULL,
	simplified_text TEXT NOT NULL,
	audience TEXT NOT NULL,
	reasoning TEXT NOT NULL DEFAULT '',
	source_filename TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS history_items (
	id TEXT PRIMARY KEY,
	brief_id TEXT NOT NULL REFERENCES briefs(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	audience TEXT NOT NULL,
	view_count INTEGER NOT NULL DEFAULT 0,
	last_viewed TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_items_created_at ON history_items(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_history_items_brief_id ON history_items(brief_id);

CREATE TABLE IF NOT EXISTS saved_items (
	id TEXT PRIMARY KEY,
	brief_id TEXT NOT NULL REFERENCES briefs(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	saved_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_items_brief_id ON saved_items(brief_id);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	theme TEXT NOT NULL,
	default_audience TEXT NOT NULL,
	auto_save BOOLEAN NOT NULL,
	language TEXT NOT NULL,
	max_history_items INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	image TEXT NOT NULL,
	caption TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
