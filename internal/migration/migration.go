package migration

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createAssessmentRunsTable(ctx, db); err != nil {
		return fmt.Errorf("create assessment_runs table: %w", err)
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (r *MigrationRunner) createAssessmentRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS assessment_runs (
			id TEXT PRIMARY KEY,
			series_key TEXT NOT NULL,
			series_name TEXT NOT NULL,
			observations INTEGER NOT NULL DEFAULT 0,
			fingerprint JSONB NOT NULL,
			params JSONB NOT NULL,
			assessment JSONB,
			detailed_assessment JSONB,
			recommendations JSONB,
			status VARCHAR(20) NOT NULL DEFAULT 'running',
			error_message TEXT NOT NULL DEFAULT '',
			started_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMP WITH TIME ZONE
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_assessment_runs_series_key
			ON assessment_runs (series_key, started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_assessment_runs_started_at
			ON assessment_runs (started_at DESC)
	`)
	return err
}
