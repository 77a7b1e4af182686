package testkit

import (
	"context"
	"sort"
	"sync"

	"statclinic/domain/core"
	"statclinic/domain/run"
)

// InMemoryStoreAdapter implements AssessmentStorePort with in-memory storage
type InMemoryStoreAdapter struct {
	runs map[core.RunID]*run.Record
	mu   sync.RWMutex
}

// NewInMemoryStoreAdapter creates an empty store.
func NewInMemoryStoreAdapter() *InMemoryStoreAdapter {
	return &InMemoryStoreAdapter{
		runs: make(map[core.RunID]*run.Record),
	}
}

func (s *InMemoryStoreAdapter) SaveRun(_ context.Context, rec *run.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *rec
	s.runs[rec.ID] = &stored
	return nil
}

func (s *InMemoryStoreAdapter) GetRun(_ context.Context, id core.RunID) (*run.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.runs[id]
	if !exists {
		return nil, core.NewNotFoundError("run", id.String())
	}

	out := *rec
	return &out, nil
}

func (s *InMemoryStoreAdapter) ListRuns(_ context.Context, limit int) ([]*run.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*run.Record, 0, len(s.runs))
	for _, rec := range s.runs {
		c := *rec
		out = append(out, &c)
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStoreAdapter) ListRunsBySeries(_ context.Context, key core.SeriesKey, limit int) ([]*run.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*run.Record, 0)
	for _, rec := range s.runs {
		if rec.SeriesKey == key {
			c := *rec
			out = append(out, &c)
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortNewestFirst(recs []*run.Record) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[j].StartedAt.Before(recs[i].StartedAt)
	})
}
