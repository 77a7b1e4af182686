package stattest

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
)

// KPSS critical values, significance running 10% down to 1%.
var (
	kpssCritC  = []float64{0.347, 0.463, 0.574, 0.739}
	kpssCritCT = []float64{0.119, 0.146, 0.176, 0.216}
	kpssPVals  = []float64{0.10, 0.05, 0.025, 0.01}
)

// KPSSRunner implements the Kwiatkowski-Phillips-Schmidt-Shin test. The
// statistic accumulates partial sums of detrended residuals against a
// Newey-West long-run variance. Null hypothesis: the series is stationary.
// Only constant and constant-trend designs exist; anything else is
// narrowed per Regression.ForKPSS.
type KPSSRunner struct{}

// NewKPSSRunner creates the runner.
func NewKPSSRunner() *KPSSRunner {
	return &KPSSRunner{}
}

// Kind identifies the test.
func (r *KPSSRunner) Kind() stationarity.TestType {
	return stationarity.StationarityKPSS
}

// Compute runs the test. Lag count defaults to ceil(12*(n/100)^0.25) when
// automatic selection is requested.
func (r *KPSSRunner) Compute(_ context.Context, values []float64, reg stationarity.Regression, lags int) (stationarity.TestStats, error) {
	const op = "kpss"

	if err := checkFinite(op, values); err != nil {
		return stationarity.TestStats{}, err
	}
	n := len(values)
	if n < minObservations {
		return stationarity.TestStats{}, core.NewComputationError(op,
			fmt.Sprintf("need at least %d observations, got %d", minObservations, n), core.ErrInsufficientData)
	}

	reg = reg.ForKPSS()

	nlags := lags
	if nlags == stationarity.AutoLags {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals, err := detrend(values, reg)
	if err != nil {
		return stationarity.TestStats{}, core.NewComputationError(op, "detrending regression failed", err)
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	s2 := bartlettLongRunVariance(residuals, nlags)
	if s2 <= 0 {
		s2 = 1e-10 // Prevent division by zero
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	stat := etaSq / (float64(n) * float64(n) * s2)

	return stationarity.TestStats{
		Statistic:      stat,
		PValue:         kpssPValue(stat, reg),
		CriticalValues: kpssCriticalValues(reg),
		UsedLags:       nlags,
		NObs:           n,
	}, nil
}

// detrend regresses the series on its deterministic terms and returns the
// residuals: demeaning for a constant design, linear detrending for
// constant-trend.
func detrend(values []float64, reg stationarity.Regression) ([]float64, error) {
	n := len(values)
	det := detTerms(reg, 1)
	x := mat.NewDense(n, len(det), nil)
	for i := 0; i < n; i++ {
		x.SetRow(i, detTerms(reg, float64(i+1)))
	}

	coeffs, _, err := olsFit(x, values)
	if err != nil {
		return nil, err
	}

	residuals := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j, d := range detTerms(reg, float64(i+1)) {
			fitted += coeffs[j] * d
		}
		residuals[i] = values[i] - fitted
	}
	return residuals, nil
}

// kpssPValue interpolates the published critical value table. Statistics
// outside the table clamp to its ends, so the p-value always lies in
// [0.01, 0.10].
func kpssPValue(stat float64, reg stationarity.Regression) float64 {
	crit := kpssCritC
	if reg == stationarity.RegConstantTrend {
		crit = kpssCritCT
	}

	last := len(crit) - 1
	if stat <= crit[0] {
		return kpssPVals[0]
	}
	if stat >= crit[last] {
		return kpssPVals[last]
	}
	for i := 1; i <= last; i++ {
		if stat <= crit[i] {
			frac := (stat - crit[i-1]) / (crit[i] - crit[i-1])
			return kpssPVals[i-1] + frac*(kpssPVals[i]-kpssPVals[i-1])
		}
	}
	return kpssPVals[last]
}

func kpssCriticalValues(reg stationarity.Regression) map[string]float64 {
	crit := kpssCritC
	if reg == stationarity.RegConstantTrend {
		crit = kpssCritCT
	}
	return map[string]float64{
		"10%":  crit[0],
		"5%":   crit[1],
		"2.5%": crit[2],
		"1%":   crit[3],
	}
}
