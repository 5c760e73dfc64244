// Package storage implements the SQLite-backed scoring run history.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/riskline/riskline/internal/common"
	"github.com/riskline/riskline/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// RunStore persists scoring run records so partial or failed runs are never
// mistaken for complete ones.
type RunStore interface {
	CreateRun(ctx context.Context, run *model.ScoringRun) error
	FinishRun(ctx context.Context, run *model.ScoringRun) error
	GetRun(ctx context.Context, id int64) (*model.ScoringRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.ScoringRun, error)
	Migrate(ctx context.Context) error
	Close() error
}

// SQLiteStorage implements RunStore using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// CreateRun inserts a new run in RUNNING status and fills in its ID.
func (s *SQLiteStorage) CreateRun(ctx context.Context, run *model.ScoringRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = model.RunStatusRunning
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO scoring_runs (
			input_path, threshold, status, started_at,
			input_rows, duplicates_dropped, scored_rows,
			suspicious_rows, skipped_rows, degraded_alignment
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.InputPath, run.Threshold, run.Status, run.StartedAt,
		run.InputRows, run.DuplicatesDropped, run.ScoredRows,
		run.SuspiciousRows, run.SkippedRows, run.DegradedAlignment,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = id
	return nil
}

// FinishRun records the final counts and status of a run.
func (s *SQLiteStorage) FinishRun(ctx context.Context, run *model.ScoringRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if run.ID == 0 {
		return fmt.Errorf("run has no id")
	}

	if run.CompletedAt.IsZero() {
		run.CompletedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE scoring_runs SET
			status = ?, completed_at = ?,
			input_rows = ?, duplicates_dropped = ?, scored_rows = ?,
			suspicious_rows = ?, skipped_rows = ?, degraded_alignment = ?
		WHERE id = ?`,
		run.Status, run.CompletedAt,
		run.InputRows, run.DuplicatesDropped, run.ScoredRows,
		run.SuspiciousRows, run.SkippedRows, run.DegradedAlignment,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run %d: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*model.ScoringRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, input_path, threshold, status, started_at, completed_at,
		       input_rows, duplicates_dropped, scored_rows,
		       suspicious_rows, skipped_rows, degraded_alignment
		FROM scoring_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: run %d", common.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.ScoringRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_path, threshold, status, started_at, completed_at,
		       input_rows, duplicates_dropped, scored_rows,
		       suspicious_rows, skipped_rows, degraded_alignment
		FROM scoring_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.ScoringRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.ScoringRun, error) {
	var run model.ScoringRun
	var completedAt sql.NullTime
	err := row.Scan(
		&run.ID, &run.InputPath, &run.Threshold, &run.Status,
		&run.StartedAt, &completedAt,
		&run.InputRows, &run.DuplicatesDropped, &run.ScoredRows,
		&run.SuspiciousRows, &run.SkippedRows, &run.DegradedAlignment,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		run.CompletedAt = completedAt.Time
	}
	return &run, nil
}
