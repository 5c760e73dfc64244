package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order; the schema version is tracked via the
// SQLite user_version pragma.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scoring_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		threshold REAL NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		input_rows INTEGER NOT NULL DEFAULT 0,
		duplicates_dropped INTEGER NOT NULL DEFAULT 0,
		scored_rows INTEGER NOT NULL DEFAULT 0,
		suspicious_rows INTEGER NOT NULL DEFAULT 0,
		skipped_rows INTEGER NOT NULL DEFAULT 0,
		degraded_alignment BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scoring_runs_started_at
		ON scoring_runs(started_at)`,
}

// Migrate brings the database schema up to date.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to set schema version %d: %w", i+1, err)
		}
		slog.Debug("Applied migration", "version", i+1)
	}

	return nil
}
