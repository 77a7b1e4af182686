package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"statclinic/domain/core"
	"statclinic/domain/series"
)

// CatalogAdapter loads time series frames from CSV and Excel files.
// Numeric columns become series; empty cells load as NaN; columns holding
// non-numeric text are dropped, mirroring how a dataframe would select its
// numeric columns.
type CatalogAdapter struct{}

// NewCatalogAdapter creates a file-backed series catalog.
func NewCatalogAdapter() *CatalogAdapter {
	return &CatalogAdapter{}
}

// LoadFrame reads every numeric column of the source file.
func (a *CatalogAdapter) LoadFrame(_ context.Context, source string) (series.Frame, error) {
	rows, err := readRows(source)
	if err != nil {
		return series.Frame{}, err
	}
	return buildFrame(filepath.Base(source), rows)
}

// LoadSeries reads a single named column of the source file.
func (a *CatalogAdapter) LoadSeries(ctx context.Context, source, column string) (series.Series, error) {
	frame, err := a.LoadFrame(ctx, source)
	if err != nil {
		return series.Series{}, err
	}
	col, ok := frame.Column(column)
	if !ok {
		return series.Series{}, fmt.Errorf("%w: column %q in %s", core.ErrSeriesNotFound, column, source)
	}
	return col, nil
}

// readRows dispatches on the file extension.
func readRows(source string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		return readCSVRows(source)
	case ".xlsx", ".xlsm":
		return readExcelRows(source)
	}
	return nil, core.NewConfigurationError("source", fmt.Sprintf("unsupported file type %q", filepath.Ext(source)))
}

func readCSVRows(source string) ([][]string, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return rows, nil
}

func readExcelRows(source string) ([][]string, error) {
	f, err := excelize.OpenFile(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, source, err)
	}
	return rows, nil
}

// buildFrame turns raw string rows into the numeric columns of a frame.
// The first row is the header; a column survives only if every non-empty
// cell parses as a number.
func buildFrame(name string, rows [][]string) (series.Frame, error) {
	if len(rows) < 2 {
		return series.Frame{}, fmt.Errorf("%s: need a header row and at least one data row", name)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	frame := series.Frame{Name: name}
	for j, header := range headers {
		if header == "" {
			continue
		}

		values := make([]float64, 0, len(rows)-1)
		numeric := true
		for i := 1; i < len(rows); i++ {
			cell := ""
			if j < len(rows[i]) {
				cell = strings.TrimSpace(rows[i][j])
			}
			if cell == "" {
				values = append(values, math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}

		if numeric {
			frame.Add(series.New(header, values))
		}
	}

	return frame, nil
}
