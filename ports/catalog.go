package ports

import (
	"context"

	"statclinic/domain/series"
)

// SeriesCatalogPort provides read-only access to time series sources
// (CSV files, spreadsheets). Loaders keep values in row order, load empty
// cells as NaN for the caller to clean, and drop columns holding
// non-numeric text.
type SeriesCatalogPort interface {
	// LoadFrame reads every numeric column of a source.
	LoadFrame(ctx context.Context, source string) (series.Frame, error)

	// LoadSeries reads a single named column. Returns an error when the
	// column does not exist or holds no numeric data.
	LoadSeries(ctx context.Context, source, column string) (series.Series, error)
}
