package stattest

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
)

// ADFRunner implements the augmented Dickey-Fuller unit-root test. The
// auxiliary regression is
//
//	delta_y_t = rho*y_{t-1} + sum(gamma_i * delta_y_{t-i}) + deterministic terms
//
// and the statistic is the t-ratio of rho. Null hypothesis: unit root.
type ADFRunner struct{}

// NewADFRunner creates the runner.
func NewADFRunner() *ADFRunner {
	return &ADFRunner{}
}

// Kind identifies the test.
func (r *ADFRunner) Kind() stationarity.TestType {
	return stationarity.UnitRootADF
}

// Compute runs the test. Lag order defaults to floor((n-1)^(1/3)) when
// automatic selection is requested.
func (r *ADFRunner) Compute(_ context.Context, values []float64, reg stationarity.Regression, lags int) (stationarity.TestStats, error) {
	const op = "adf"

	if err := checkFinite(op, values); err != nil {
		return stationarity.TestStats{}, err
	}
	n := len(values)
	if n < minObservations {
		return stationarity.TestStats{}, core.NewComputationError(op,
			fmt.Sprintf("need at least %d observations, got %d", minObservations, n), core.ErrInsufficientData)
	}

	maxLag := lags
	if maxLag == stationarity.AutoLags {
		maxLag = int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	}
	if maxLag >= n-1 {
		maxLag = n - 2
	}

	diffs := diff(values)
	nObs := n - maxLag - 1
	det := detTerms(reg, 1)
	k := 1 + maxLag + len(det)
	if nObs < minObservations || nObs <= k {
		return stationarity.TestStats{}, core.NewComputationError(op,
			fmt.Sprintf("only %d usable observations after %d lags", nObs, maxLag), core.ErrInsufficientData)
	}

	// Column layout: lagged level first, then lagged differences, then
	// deterministic terms. The statistic always reads column 0.
	y := make([]float64, nObs)
	x := mat.NewDense(nObs, k, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y[i] = diffs[t]

		col := 0
		x.Set(i, col, values[t])
		col++
		for j := 1; j <= maxLag; j++ {
			x.Set(i, col, diffs[t-j])
			col++
		}
		for _, d := range detTerms(reg, float64(i+1)) {
			x.Set(i, col, d)
			col++
		}
	}

	coeffs, se, err := olsFit(x, y)
	if err != nil {
		return stationarity.TestStats{}, core.NewComputationError(op, "auxiliary regression failed", err)
	}
	if se[0] == 0 || math.IsNaN(se[0]) {
		return stationarity.TestStats{}, core.NewComputationError(op, "degenerate standard error for the lagged level", core.ErrSingularDesign)
	}

	tStat := coeffs[0] / se[0]

	return stationarity.TestStats{
		Statistic:      tStat,
		PValue:         mackinnonPValue(tStat, reg),
		CriticalValues: adfCriticalValues(reg),
		UsedLags:       maxLag,
		NObs:           nObs,
	}, nil
}
