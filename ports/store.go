package ports

import (
	"context"

	"statclinic/domain/core"
	"statclinic/domain/run"
)

// AssessmentStorePort persists completed and failed assessment runs.
type AssessmentStorePort interface {
	// SaveRun upserts a run record keyed by its ID.
	SaveRun(ctx context.Context, rec *run.Record) error

	// GetRun loads one run. Returns core.ErrRunNotFound when absent.
	GetRun(ctx context.Context, id core.RunID) (*run.Record, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*run.Record, error)

	// ListRunsBySeries returns the most recent runs for one series key.
	ListRunsBySeries(ctx context.Context, key core.SeriesKey, limit int) ([]*run.Record, error)
}
