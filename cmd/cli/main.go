package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"statclinic/adapters/dataset"
	"statclinic/adapters/stattest"
	"statclinic/app"
	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/internal/profiling"
	"statclinic/internal/report"
	"statclinic/internal/testkit"
	"statclinic/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statclinic",
		Short: "StatClinic CLI for stationarity assessment of time series",
	}

	rootCmd.AddCommand(
		newAssessCmd(),
		newProfileCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// assessFlags collects the shared assessment configuration flags.
type assessFlags struct {
	alpha      float64
	regression string
	detailed   bool
	maxLags    int
	workers    int
}

func (f *assessFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.alpha, "alpha", stationarity.DefaultAlpha, "Significance threshold, strictly between 0 and 1")
	cmd.Flags().StringVar(&f.regression, "regression", "c", "Deterministic terms: n|c|ct|ctt")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "Sweep both constant and constant-trend configurations")
	cmd.Flags().IntVar(&f.maxLags, "max-lags", stationarity.AutoLags, "Lag order for the ADF regression (-1 selects automatically)")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "Concurrent column assessments")
}

func (f *assessFlags) params() (stationarity.Params, error) {
	reg, err := stationarity.ParseRegression(f.regression)
	if err != nil {
		return stationarity.Params{}, err
	}
	params := stationarity.Params{
		Alpha:      f.alpha,
		Regression: reg,
		Detailed:   f.detailed,
		MaxLags:    f.maxLags,
	}
	return params, params.Validate()
}

func newAssessCmd() *cobra.Command {
	var flags assessFlags
	var columns []string
	var reportFile string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "assess [data-file]",
		Short: "Assess the stationarity of every numeric column in a data file",
		Long: `Run the ADF, KPSS and Phillips-Perron tests against each numeric column
of a CSV or Excel file and report a majority verdict per column.

Example: statclinic assess sales.csv --columns demand,price --alpha 0.05 --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.params()
			if err != nil {
				return err
			}
			return runAssess(cmd.Context(), args[0], columns, params, flags.workers, reportFile, jsonOutput)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to assess (default: all numeric columns)")
	cmd.Flags().StringVar(&reportFile, "report", "", "Write a markdown report to this file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print run records as JSON instead of text")

	return cmd
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [data-file] [column]",
		Short: "Print descriptive statistics for a data file",
		Long: `Summarize columns before assessing them: central tendency, spread,
quartiles, shape and outlier count over the finite observations.
With no column argument every numeric column is profiled.

Example: statclinic profile sales.csv demand`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return runProfile(cmd.Context(), args[0], args[1])
			}
			return runProfileFrame(cmd.Context(), args[0])
		},
	}

	return cmd
}

func newDemoCmd() *cobra.Command {
	var flags assessFlags
	var seed int64
	var length int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Assess synthetic fixtures with known stationarity properties",
		Long: `Generate a white-noise, a random-walk and a trend-stationary series and
run each through the full assessment. White noise should come back
stationary and the drifting walk should not, so the demo doubles as a
quick sanity check of the test suite.

Example: statclinic demo --seed 42 --length 200 --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.params()
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), seed, length, params, flags.workers)
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the synthetic series")
	cmd.Flags().IntVar(&length, "length", 200, "Observations per synthetic series")

	return cmd
}

func runAssess(ctx context.Context, dataFile string, columns []string, params stationarity.Params, workers int, reportFile string, jsonOutput bool) error {
	catalog := dataset.NewCatalogAdapter()
	pipeline := newPipeline(catalog, workers)

	frame, err := pipeline.AssessFrame(ctx, dataFile, columns, params)
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(frame, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("\n=== STATIONARITY ASSESSMENT ===\n")
	fmt.Printf("Source: %s\n", frame.Source)
	fmt.Printf("Alpha: %g | Regression: %s | Detailed: %t\n", params.Alpha, params.Regression, params.Detailed)

	for i, rec := range frame.Records {
		printRecord(i+1, rec)
	}

	fmt.Printf("\nCompleted: %d | Failed: %d\n", frame.Completed(), frame.Failed())

	if reportFile != "" {
		if err := writeReport(ctx, catalog, frame, reportFile); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("💾 Report saved to: %s\n", reportFile)
	}

	return nil
}

func runProfile(ctx context.Context, dataFile, column string) error {
	catalog := dataset.NewCatalogAdapter()
	s, err := catalog.LoadSeries(ctx, dataFile, column)
	if err != nil {
		return fmt.Errorf("failed to load column: %w", err)
	}

	prof, err := profiling.Profile(s)
	if err != nil {
		return fmt.Errorf("failed to profile column: %w", err)
	}

	fmt.Printf("\n=== SERIES PROFILE ===\n")
	fmt.Printf("Column: %s\n", s.Name)
	fmt.Printf("Observations: %d (missing: %d)\n", prof.Count, prof.Missing)
	fmt.Printf("Mean: %.4f | Std Dev: %.4f | CV: %.4f\n", prof.Mean, prof.StdDev, prof.Spread())
	fmt.Printf("Min: %.4f | Q25: %.4f | Median: %.4f | Q75: %.4f | Max: %.4f\n",
		prof.Min, prof.Q25, prof.Median, prof.Q75, prof.Max)
	fmt.Printf("Skewness: %.4f | Kurtosis: %.4f\n", prof.Skewness, prof.Kurtosis)
	fmt.Printf("Outliers (1.5 IQR): %d\n", prof.Outliers)

	return nil
}

// runProfileFrame screens every numeric column of a source, flagging the
// ones too degenerate to assess.
func runProfileFrame(ctx context.Context, dataFile string) error {
	catalog := dataset.NewCatalogAdapter()
	frame, err := catalog.LoadFrame(ctx, dataFile)
	if err != nil {
		return fmt.Errorf("failed to load data file: %w", err)
	}

	fmt.Printf("\n=== DATA FILE PROFILE ===\n")
	fmt.Printf("Source: %s | Numeric columns: %d\n\n", frame.Name, len(frame.Columns))

	for i, col := range frame.Columns {
		prof, err := profiling.Profile(col)
		if err != nil {
			fmt.Printf("%d. %s: 💥 %v\n", i+1, col.Name, err)
			continue
		}
		fmt.Printf("%d. %s: n=%d missing=%d mean=%.4f sd=%.4f outliers=%d\n",
			i+1, col.Name, prof.Count, prof.Missing, prof.Mean, prof.StdDev, prof.Outliers)
	}

	return nil
}

func runDemo(ctx context.Context, seed int64, length int, params stationarity.Params, workers int) error {
	fmt.Printf("🔬 Assessing synthetic fixtures (seed %d, %d observations each)...\n", seed, length)

	catalog := testkit.NewInMemoryCatalogAdapter()
	frame := series.Frame{Name: "demo"}
	frame.Add(testkit.WhiteNoise(seed, length))
	frame.Add(testkit.RandomWalk(seed, length))

	config := testkit.DefaultSeriesConfig()
	config.Name = "trend_stationary"
	config.Seed = seed
	config.Length = length
	frame.Add(testkit.NewSeriesGenerator(config).TrendStationary(0.5))

	catalog.AddFrame("demo", frame)

	pipeline := newPipeline(catalog, workers)
	result, err := pipeline.AssessFrame(ctx, "demo", nil, params)
	if err != nil {
		return fmt.Errorf("demo assessment failed: %w", err)
	}

	fmt.Printf("\n=== DEMO RESULTS ===\n")
	for i, rec := range result.Records {
		printRecord(i+1, rec)
	}

	fmt.Printf("\nWhite noise should be stationary; the drifting walk should not be.\n")
	return nil
}

// newPipeline wires the assessment engine to an in-memory store, which is
// all a one-shot CLI invocation needs.
func newPipeline(catalog ports.SeriesCatalogPort, workers int) *app.PipelineService {
	assessor := app.NewAssessmentService(stattest.NewSuite(), nil)
	return app.NewPipelineService(assessor, catalog, testkit.NewInMemoryStoreAdapter(), workers)
}

// printRecord renders one run record as numbered console output.
func printRecord(n int, rec *run.Record) {
	if rec.Status == run.StatusFailed {
		fmt.Printf("%d. %s: 💥 failed: %s\n", n, rec.SeriesName, rec.Error)
		return
	}

	verdict := "❌ non-stationary"
	if rec.Stationary() {
		verdict = "✅ stationary"
	}
	fmt.Printf("%d. %s: %s (n=%d)\n", n, rec.SeriesName, verdict, rec.Observations)

	switch {
	case rec.Detailed != nil:
		for _, cfg := range stationarity.DetailedConfigs() {
			assessment, ok := rec.Detailed.Configurations[cfg.Label]
			if !ok {
				continue
			}
			fmt.Printf("   [%s] %s\n", cfg.Label, testLine(assessment))
		}
		summary := rec.Detailed.Summary
		fmt.Printf("   Stationary in %d of %d configurations\n", summary.StationaryCount, summary.TotalConfigurations)
	case rec.Assessment != nil:
		fmt.Printf("   %s\n", testLine(*rec.Assessment))
	}

	for _, r := range rec.Recommendations {
		fmt.Printf("   → %s\n", r)
	}
}

// testLine condenses an assessment's per-test results into one line.
func testLine(a stationarity.Assessment) string {
	parts := make([]string, 0, len(a.Results))
	for _, result := range a.Tests() {
		parts = append(parts, fmt.Sprintf("%s: stat=%.4f p=%.4f", result.Test.DisplayName(), result.TestStatistic, result.PValue))
	}
	return strings.Join(parts, " | ")
}

// writeReport renders the frame summary plus one full report per record.
func writeReport(ctx context.Context, catalog ports.SeriesCatalogPort, frame *app.FrameReport, path string) error {
	var b strings.Builder
	b.WriteString(report.FrameMarkdown(frame.Source, frame.Records))

	for _, rec := range frame.Records {
		b.WriteString("\n")
		b.WriteString(report.Markdown(rec, profileFor(ctx, catalog, frame.Source, rec)))
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// profileFor recomputes the descriptive profile of an assessed column.
// Reports render without one when the series cannot be reloaded.
func profileFor(ctx context.Context, catalog ports.SeriesCatalogPort, source string, rec *run.Record) *profiling.SeriesProfile {
	s, err := catalog.LoadSeries(ctx, source, rec.SeriesName)
	if err != nil {
		return nil
	}
	prof, err := profiling.Profile(s)
	if err != nil {
		return nil
	}
	return &prof
}
