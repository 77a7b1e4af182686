package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"statclinic/domain/series"
	"statclinic/internal/testkit"
)

func main() {
	out := flag.String("out", "demo_series.csv", "output file path")
	rows := flag.Int("rows", 500, "number of rows (days)")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	start := flag.String("start", "2025-01-01", "start date (YYYY-MM-DD)")
	missing := flag.Float64("missing", 0.0, "fraction of value cells left empty (0 to 0.5)")
	flag.Parse()

	if *rows < 20 {
		fmt.Fprintln(os.Stderr, "rows must be at least 20")
		os.Exit(2)
	}
	if *missing < 0 || *missing > 0.5 {
		fmt.Fprintln(os.Stderr, "missing must be between 0 and 0.5")
		os.Exit(2)
	}

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid start date: %v\n", err)
		os.Exit(2)
	}

	f := strings.ToLower(*format)
	if f == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".xlsx", ".xlsm":
			f = "xlsx"
		default:
			f = "csv"
		}
	}

	frame := buildFrame(*seed, *rows)
	gaps := rand.New(rand.NewSource(*seed))

	switch f {
	case "csv":
		err = writeCSV(*out, startDate, frame, *missing, gaps)
	case "xlsx":
		err = writeXLSX(*out, startDate, frame, *missing, gaps)
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (expected csv or xlsx)\n", f)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows x %d series to %s\n", *rows, len(frame.Columns), *out)
}

// buildFrame generates one column per stationarity class so the output
// file exercises every verdict the assessment can reach.
func buildFrame(seed int64, rows int) series.Frame {
	frame := series.Frame{Name: "demo"}
	frame.Add(testkit.WhiteNoise(seed, rows))
	frame.Add(testkit.RandomWalk(seed+1, rows))

	config := testkit.DefaultSeriesConfig()
	config.Name = "trend_stationary"
	config.Seed = seed + 2
	config.Length = rows
	frame.Add(testkit.NewSeriesGenerator(config).TrendStationary(0.5))

	return frame
}

func header(frame series.Frame) []string {
	return append([]string{"date"}, frame.ColumnNames()...)
}

// cell formats one observation, or returns empty when the gap generator
// drops it.
func cell(v float64, missing float64, gaps *rand.Rand) string {
	if missing > 0 && gaps.Float64() < missing {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeCSV(path string, start time.Time, frame series.Frame, missing float64, gaps *rand.Rand) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(header(frame)); err != nil {
		return err
	}

	rows := frame.Columns[0].Len()
	for i := 0; i < rows; i++ {
		record := make([]string, 0, len(frame.Columns)+1)
		record = append(record, start.AddDate(0, 0, i).Format("2006-01-02"))
		for _, col := range frame.Columns {
			record = append(record, cell(col.Values[i], missing, gaps))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeXLSX(path string, start time.Time, frame series.Frame, missing float64, gaps *rand.Rand) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for j, name := range header(frame) {
		cellName, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, name); err != nil {
			return err
		}
	}

	rows := frame.Columns[0].Len()
	for i := 0; i < rows; i++ {
		dateCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, dateCell, start.AddDate(0, 0, i).Format("2006-01-02")); err != nil {
			return err
		}

		for j, col := range frame.Columns {
			value := cell(col.Values[i], missing, gaps)
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cellName, col.Values[i]); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
