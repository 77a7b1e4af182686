package testkit

import (
	"context"
	"fmt"
	"sync"

	"statclinic/domain/core"
	"statclinic/domain/series"
)

// InMemoryCatalogAdapter serves frames registered by tests.
type InMemoryCatalogAdapter struct {
	mu     sync.RWMutex
	frames map[string]series.Frame
}

// NewInMemoryCatalogAdapter creates an empty catalog.
func NewInMemoryCatalogAdapter() *InMemoryCatalogAdapter {
	return &InMemoryCatalogAdapter{frames: make(map[string]series.Frame)}
}

// AddFrame registers a frame under a source name.
func (c *InMemoryCatalogAdapter) AddFrame(source string, frame series.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames[source] = frame
}

// LoadFrame returns the frame registered under source.
func (c *InMemoryCatalogAdapter) LoadFrame(_ context.Context, source string) (series.Frame, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	frame, ok := c.frames[source]
	if !ok {
		return series.Frame{}, core.NewNotFoundError("source", source)
	}
	return frame, nil
}

// LoadSeries returns one column of the frame registered under source.
func (c *InMemoryCatalogAdapter) LoadSeries(ctx context.Context, source, column string) (series.Series, error) {
	frame, err := c.LoadFrame(ctx, source)
	if err != nil {
		return series.Series{}, err
	}
	col, ok := frame.Column(column)
	if !ok {
		return series.Series{}, fmt.Errorf("%w: column %q in %s", core.ErrSeriesNotFound, column, source)
	}
	return col, nil
}
