package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"statclinic/domain/core"
	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/ports"
)

// defaultWorkers bounds concurrent column assessments of a frame.
const defaultWorkers = 4

// PipelineService drives the full assessment flow: load series from a
// catalog source, clean them, assess them and persist one run record per
// series. A failing series produces a failed record, it never aborts the
// rest of the frame.
type PipelineService struct {
	assessor *AssessmentService
	catalog  ports.SeriesCatalogPort
	store    ports.AssessmentStorePort
	workers  int64
}

// FrameReport is the outcome of assessing one source: a run record per
// assessed column, in column order.
type FrameReport struct {
	Source  string        `json:"source"`
	Records []*run.Record `json:"records"`
}

// Completed counts successfully assessed columns.
func (r FrameReport) Completed() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == run.StatusCompleted {
			n++
		}
	}
	return n
}

// Failed counts columns whose assessment failed.
func (r FrameReport) Failed() int {
	return len(r.Records) - r.Completed()
}

// NewPipelineService wires the assessment engine to a series catalog and a
// run store. workers bounds frame concurrency; values below 1 fall back to
// the default.
func NewPipelineService(assessor *AssessmentService, catalog ports.SeriesCatalogPort, store ports.AssessmentStorePort, workers int) *PipelineService {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &PipelineService{
		assessor: assessor,
		catalog:  catalog,
		store:    store,
		workers:  int64(workers),
	}
}

// AssessSeries loads one column from a source, assesses it and persists
// the run record. The record is returned even when the assessment itself
// failed; the error return covers load and persistence problems only.
func (p *PipelineService) AssessSeries(ctx context.Context, source, column string, params stationarity.Params) (*run.Record, error) {
	s, err := p.catalog.LoadSeries(ctx, source, column)
	if err != nil {
		return nil, fmt.Errorf("load series %q from %s: %w", column, source, err)
	}

	rec := p.assessOne(ctx, s, params)
	if err := p.store.SaveRun(ctx, rec); err != nil {
		return nil, fmt.Errorf("save run for %q: %w", column, err)
	}
	return rec, nil
}

// AssessFrame assesses the named columns of a source, or every column when
// columns is empty. Column assessments run concurrently, bounded by the
// worker budget; records are persisted and reported in column order.
func (p *PipelineService) AssessFrame(ctx context.Context, source string, columns []string, params stationarity.Params) (*FrameReport, error) {
	frame, err := p.catalog.LoadFrame(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load frame from %s: %w", source, err)
	}

	targets := frame.Columns
	if len(columns) > 0 {
		targets = make([]series.Series, 0, len(columns))
		for _, name := range columns {
			col, ok := frame.Column(name)
			if !ok {
				return nil, core.NewNotFoundError("column", name)
			}
			targets = append(targets, col)
		}
	}

	records := make([]*run.Record, len(targets))
	sem := semaphore.NewWeighted(p.workers)
	for i, col := range targets {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("acquire worker: %w", err)
		}
		go func(i int, s series.Series) {
			defer sem.Release(1)
			records[i] = p.assessOne(ctx, s, params)
		}(i, col)
	}
	if err := sem.Acquire(ctx, p.workers); err != nil {
		return nil, fmt.Errorf("wait for workers: %w", err)
	}

	for i, rec := range records {
		if err := p.store.SaveRun(ctx, rec); err != nil {
			return nil, fmt.Errorf("save run for %q: %w", targets[i].Name, err)
		}
	}

	return &FrameReport{Source: source, Records: records}, nil
}

// assessOne runs the engine over the cleaned observations and closes the
// record with whatever came out.
func (p *PipelineService) assessOne(ctx context.Context, s series.Series, params stationarity.Params) *run.Record {
	clean := s
	clean.Values = s.Clean()
	clean.Index = nil

	rec := run.NewRecord(clean, params)
	outcome, err := p.assessor.Assess(ctx, clean.Values, params)
	switch {
	case err != nil:
		rec.Fail(err)
	case outcome.Detailed != nil:
		rec.CompleteDetailed(*outcome.Detailed)
	default:
		rec.CompleteSimple(*outcome.Assessment, outcome.Recommendations)
	}
	return rec
}

// GetRun loads one persisted run.
func (p *PipelineService) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	return p.store.GetRun(ctx, id)
}

// ListRuns returns the most recent runs, newest first.
func (p *PipelineService) ListRuns(ctx context.Context, limit int) ([]*run.Record, error) {
	return p.store.ListRuns(ctx, limit)
}

// ListRunsBySeries returns the most recent runs for one series key.
func (p *PipelineService) ListRunsBySeries(ctx context.Context, key core.SeriesKey, limit int) ([]*run.Record, error) {
	return p.store.ListRunsBySeries(ctx, key, limit)
}
