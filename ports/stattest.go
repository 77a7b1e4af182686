package ports

import (
	"context"

	"statclinic/domain/stationarity"
)

// StatTestPort computes one stationarity test's raw numbers. The engine
// derives verdicts from them; implementations only produce the statistic,
// the p-value, and whatever critical values the routine publishes.
type StatTestPort interface {
	// Kind identifies which test this runner implements.
	Kind() stationarity.TestType

	// Compute runs the test against the observations in order. Passing
	// stationarity.AutoLags as lags lets the routine pick its own lag
	// order from the sample size. The slice is read-only to the routine.
	Compute(ctx context.Context, values []float64, reg stationarity.Regression, lags int) (stationarity.TestStats, error)
}
