package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statclinic/adapters/stattest"
	"statclinic/app"
	"statclinic/domain/core"
	"statclinic/domain/run"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
	"statclinic/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "statclinic-dev",
		Short: "StatClinic development tools",
	}

	rootCmd.AddCommand(
		newSmokeTestCmd(),
		newDeterminismTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSmokeTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run smoke tests against the assessment engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context())
		},
	}
	return cmd
}

func newDeterminismTestCmd() *cobra.Command {
	var seed int64
	var length int

	cmd := &cobra.Command{
		Use:   "determinism",
		Short: "Verify that repeated assessments are bit-identical",
		RunE: func(cmd *cobra.Command, args []string) error {
			return testDeterminism(cmd.Context(), seed, length)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for the fixture series")
	cmd.Flags().IntVar(&length, "length", 200, "Observations in the fixture series")

	return cmd
}

func runSmokeTests(ctx context.Context) error {
	fmt.Println("Running smoke tests...")

	assessor := app.NewAssessmentService(stattest.NewSuite(), nil)
	params := stationarity.DefaultParams()

	tests := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"white_noise_stationary", func(ctx context.Context) error {
			s := testkit.WhiteNoise(42, 200)
			assessment, err := assessor.RunAllTests(ctx, s.Values, params)
			if err != nil {
				return err
			}
			if !assessment.Stationary() {
				return fmt.Errorf("white noise judged non-stationary")
			}
			return nil
		}},
		{"random_walk_non_stationary", func(ctx context.Context) error {
			s := testkit.RandomWalk(42, 200)
			assessment, err := assessor.RunAllTests(ctx, s.Values, params)
			if err != nil {
				return err
			}
			if assessment.Stationary() {
				return fmt.Errorf("drifting walk judged stationary")
			}
			return nil
		}},
		{"constant_series_rejected", func(ctx context.Context) error {
			s := testkit.ConstantSeries(3.0, 100)
			_, err := assessor.RunAllTests(ctx, s.Values, params)
			if !core.IsComputationError(err) {
				return fmt.Errorf("expected computation error, got %v", err)
			}
			return nil
		}},
		{"kpss_regression_narrowing", func(ctx context.Context) error {
			s := testkit.WhiteNoise(42, 200)
			p := params
			p.Regression = stationarity.RegQuadraticTrend
			result, err := assessor.RunTest(ctx, stationarity.StationarityKPSS, s.Values, p)
			if err != nil {
				return err
			}
			if result.Regression != stationarity.RegConstant {
				return fmt.Errorf("expected narrowed regression c, got %s", result.Regression)
			}
			return nil
		}},
		{"detailed_sweep", func(ctx context.Context) error {
			s := testkit.WhiteNoise(42, 200)
			detailed, err := assessor.RunDetailed(ctx, s.Values, params)
			if err != nil {
				return err
			}
			if detailed.Summary.TotalConfigurations != 2 {
				return fmt.Errorf("expected 2 configurations, got %d", detailed.Summary.TotalConfigurations)
			}
			return nil
		}},
	}

	passed := 0
	for _, test := range tests {
		fmt.Printf("  Running %s...", test.name)
		if err := test.fn(ctx); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
		} else {
			fmt.Println(" PASSED")
			passed++
		}
	}

	fmt.Printf("\nSmoke tests: %d/%d passed\n", passed, len(tests))
	if passed < len(tests) {
		return fmt.Errorf("some smoke tests failed")
	}

	return nil
}

func testDeterminism(ctx context.Context, seed int64, length int) error {
	fmt.Printf("Testing determinism over a seed-%d fixture...\n", seed)

	catalog := testkit.NewInMemoryCatalogAdapter()
	frame := series.Frame{Name: "determinism"}
	frame.Add(testkit.WhiteNoise(seed, length))
	frame.Add(testkit.RandomWalk(seed, length))
	catalog.AddFrame("determinism", frame)

	assessor := app.NewAssessmentService(stattest.NewSuite(), nil)
	pipeline := app.NewPipelineService(assessor, catalog, testkit.NewInMemoryStoreAdapter(), 2)
	params := stationarity.DefaultParams()

	fmt.Println("Running assessment twice...")
	first, err := pipeline.AssessFrame(ctx, "determinism", nil, params)
	if err != nil {
		return fmt.Errorf("first run failed: %w", err)
	}
	second, err := pipeline.AssessFrame(ctx, "determinism", nil, params)
	if err != nil {
		return fmt.Errorf("second run failed: %w", err)
	}

	for i := range first.Records {
		if err := compareRecords(first.Records[i], second.Records[i]); err != nil {
			return fmt.Errorf("determinism test failed for %s: %w", first.Records[i].SeriesName, err)
		}
	}

	fmt.Println("✓ Determinism test passed, repeated runs are identical")
	return nil
}

// compareRecords checks that two runs over the same observations agree on
// everything except their identity and timing.
func compareRecords(a, b *run.Record) error {
	if a.Fingerprint.Digest != b.Fingerprint.Digest {
		return fmt.Errorf("fingerprints differ: %s vs %s", a.Fingerprint.Digest, b.Fingerprint.Digest)
	}
	if a.Status != b.Status {
		return fmt.Errorf("statuses differ: %s vs %s", a.Status, b.Status)
	}
	if a.Stationary() != b.Stationary() {
		return fmt.Errorf("verdicts differ: %t vs %t", a.Stationary(), b.Stationary())
	}
	if (a.Assessment == nil) != (b.Assessment == nil) {
		return fmt.Errorf("assessment shapes differ")
	}
	if a.Assessment == nil {
		return nil
	}

	for _, test := range stationarity.AllTests() {
		ra, ok := a.Assessment.Results[test]
		if !ok {
			continue
		}
		rb := b.Assessment.Results[test]
		if ra.TestStatistic != rb.TestStatistic || ra.PValue != rb.PValue {
			return fmt.Errorf("%s results differ: stat %v vs %v, p %v vs %v",
				test.DisplayName(), ra.TestStatistic, rb.TestStatistic, ra.PValue, rb.PValue)
		}
	}

	return nil
}
