package stattest

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
)

// PPRunner implements the Phillips-Perron unit-root test, Z-tau form. The
// base regression is
//
//	delta_y_t = rho*y_{t-1} + deterministic terms
//
// with no lag augmentation; serial correlation is absorbed by a
// nonparametric Newey-West correction of the t-ratio instead. Null
// hypothesis: unit root. Critical values are not published by this
// runner; the corrected statistic maps straight to a p-value.
type PPRunner struct{}

// NewPPRunner creates the runner.
func NewPPRunner() *PPRunner {
	return &PPRunner{}
}

// Kind identifies the test.
func (r *PPRunner) Kind() stationarity.TestType {
	return stationarity.UnitRootPP
}

// Compute runs the test. The correction bandwidth defaults to
// floor(4*(n/100)^0.25) when automatic selection is requested.
func (r *PPRunner) Compute(_ context.Context, values []float64, reg stationarity.Regression, lags int) (stationarity.TestStats, error) {
	const op = "pp"

	if err := checkFinite(op, values); err != nil {
		return stationarity.TestStats{}, err
	}
	n := len(values)
	if n < minObservations {
		return stationarity.TestStats{}, core.NewComputationError(op,
			fmt.Sprintf("need at least %d observations, got %d", minObservations, n), core.ErrInsufficientData)
	}

	nlags := lags
	if nlags == stationarity.AutoLags {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}

	diffs := diff(values)
	nObs := n - 1
	det := detTerms(reg, 1)
	k := 1 + len(det)
	if nObs <= k {
		return stationarity.TestStats{}, core.NewComputationError(op,
			fmt.Sprintf("only %d usable observations", nObs), core.ErrInsufficientData)
	}

	x := mat.NewDense(nObs, k, nil)
	for i := 0; i < nObs; i++ {
		col := 0
		x.Set(i, col, values[i])
		col++
		for _, d := range detTerms(reg, float64(i+1)) {
			x.Set(i, col, d)
			col++
		}
	}

	coeffs, se, err := olsFit(x, diffs)
	if err != nil {
		return stationarity.TestStats{}, core.NewComputationError(op, "auxiliary regression failed", err)
	}
	if se[0] == 0 || math.IsNaN(se[0]) {
		return stationarity.TestStats{}, core.NewComputationError(op, "degenerate standard error for the lagged level", core.ErrSingularDesign)
	}

	residuals := make([]float64, nObs)
	sse := 0.0
	for i := 0; i < nObs; i++ {
		fitted := 0.0
		for j := 0; j < k; j++ {
			fitted += coeffs[j] * x.At(i, j)
		}
		residuals[i] = diffs[i] - fitted
		sse += residuals[i] * residuals[i]
	}

	s2 := sse / float64(nObs-k)
	gamma0 := sse / float64(nObs)
	lambda2 := bartlettLongRunVariance(residuals, nlags)
	if lambda2 <= 0 || gamma0 <= 0 || s2 <= 0 {
		return stationarity.TestStats{}, core.NewComputationError(op, "degenerate residual variance", core.ErrSingularDesign)
	}

	// Z-tau: scale the t-ratio by the short-run to long-run variance
	// ratio, then subtract the serial correlation correction.
	tStat := coeffs[0] / se[0]
	correction := float64(nObs) * (lambda2 - gamma0) * se[0] / (2 * math.Sqrt(lambda2) * math.Sqrt(s2))
	z := math.Sqrt(gamma0/lambda2)*tStat - correction

	return stationarity.TestStats{
		Statistic:      z,
		PValue:         mackinnonPValue(z, reg),
		CriticalValues: map[string]float64{},
		UsedLags:       nlags,
		NObs:           nObs,
	}, nil
}
