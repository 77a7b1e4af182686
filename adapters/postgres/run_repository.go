package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"statclinic/domain/core"
	"statclinic/domain/run"
	"statclinic/domain/stationarity"
	"statclinic/ports"
)

// RunRepository implements AssessmentStorePort for PostgreSQL.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL run repository.
func NewRunRepository(db *sqlx.DB) ports.AssessmentStorePort {
	return &RunRepository{db: db}
}

// SaveRun upserts a run record keyed by its ID.
func (r *RunRepository) SaveRun(ctx context.Context, rec *run.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	fingerprintJSON, err := json.Marshal(rec.Fingerprint)
	if err != nil {
		return fmt.Errorf("marshal fingerprint: %w", err)
	}
	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	recommendationsJSON, err := json.Marshal(rec.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	var assessmentJSON, detailedJSON []byte
	if rec.Assessment != nil {
		if assessmentJSON, err = json.Marshal(rec.Assessment); err != nil {
			return fmt.Errorf("marshal assessment: %w", err)
		}
	}
	if rec.Detailed != nil {
		if detailedJSON, err = json.Marshal(rec.Detailed); err != nil {
			return fmt.Errorf("marshal detailed assessment: %w", err)
		}
	}

	var completedAt *time.Time
	if rec.CompletedAt != nil {
		t := rec.CompletedAt.Time()
		completedAt = &t
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO assessment_runs (
			id, series_key, series_name, observations, fingerprint, params,
			assessment, detailed_assessment, recommendations,
			status, error_message, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			assessment = EXCLUDED.assessment,
			detailed_assessment = EXCLUDED.detailed_assessment,
			recommendations = EXCLUDED.recommendations,
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message,
			completed_at = EXCLUDED.completed_at`,
		rec.ID.String(), rec.SeriesKey.String(), rec.SeriesName, rec.Observations,
		fingerprintJSON, paramsJSON, assessmentJSON, detailedJSON, recommendationsJSON,
		string(rec.Status), rec.Error, rec.StartedAt.Time(), completedAt)

	return err
}

// GetRun loads one run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, series_key, series_name, observations, fingerprint, params,
			   assessment, detailed_assessment, recommendations,
			   status, error_message, started_at, completed_at
		FROM assessment_runs
		WHERE id = $1`, id.String())

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return rec, err
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*run.Record, error) {
	query := `
		SELECT id, series_key, series_name, observations, fingerprint, params,
			   assessment, detailed_assessment, recommendations,
			   status, error_message, started_at, completed_at
		FROM assessment_runs
		ORDER BY started_at DESC`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	return r.queryRecords(ctx, query, args...)
}

// ListRunsBySeries returns the most recent runs for one series key.
func (r *RunRepository) ListRunsBySeries(ctx context.Context, key core.SeriesKey, limit int) ([]*run.Record, error) {
	query := `
		SELECT id, series_key, series_name, observations, fingerprint, params,
			   assessment, detailed_assessment, recommendations,
			   status, error_message, started_at, completed_at
		FROM assessment_runs
		WHERE series_key = $1
		ORDER BY started_at DESC`

	args := []interface{}{key.String()}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return r.queryRecords(ctx, query, args...)
}

func (r *RunRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*run.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*run.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*run.Record, error) {
	var rec run.Record
	var id, seriesKey, status string
	var fingerprintJSON, paramsJSON, assessmentJSON, detailedJSON, recommendationsJSON []byte
	var startedAt time.Time
	var completedAt sql.NullTime

	err := row.Scan(
		&id, &seriesKey, &rec.SeriesName, &rec.Observations,
		&fingerprintJSON, &paramsJSON, &assessmentJSON, &detailedJSON, &recommendationsJSON,
		&status, &rec.Error, &startedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ID = core.RunID(id)
	rec.SeriesKey = core.SeriesKey(seriesKey)
	rec.Status = run.Status(status)
	rec.StartedAt = core.NewTimestamp(startedAt)
	if completedAt.Valid {
		t := core.NewTimestamp(completedAt.Time)
		rec.CompletedAt = &t
	}

	if err := json.Unmarshal(fingerprintJSON, &rec.Fingerprint); err != nil {
		return nil, fmt.Errorf("unmarshal fingerprint: %w", err)
	}
	if err := json.Unmarshal(paramsJSON, &rec.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	if len(recommendationsJSON) > 0 {
		if err := json.Unmarshal(recommendationsJSON, &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
	}
	if len(assessmentJSON) > 0 {
		var a stationarity.Assessment
		if err := json.Unmarshal(assessmentJSON, &a); err != nil {
			return nil, fmt.Errorf("unmarshal assessment: %w", err)
		}
		rec.Assessment = &a
	}
	if len(detailedJSON) > 0 {
		var d stationarity.DetailedAssessment
		if err := json.Unmarshal(detailedJSON, &d); err != nil {
			return nil, fmt.Errorf("unmarshal detailed assessment: %w", err)
		}
		rec.Detailed = &d
	}

	return &rec, nil
}
