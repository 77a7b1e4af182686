package stattest

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
)

// minObservations is the hard floor below which none of the auxiliary
// regressions can be estimated sensibly.
const minObservations = 10

// olsFit solves y = Xb by ordinary least squares through the normal
// equations, returning coefficients and their standard errors. A rank
// deficient design (collinear columns, constant series) surfaces as
// core.ErrSingularDesign.
func olsFit(x *mat.Dense, y []float64) (coeffs, stdErrors []float64, err error) {
	n, k := x.Dims()
	if n != len(y) || n == 0 {
		return nil, nil, core.ErrInsufficientData
	}
	if n <= k {
		return nil, nil, core.ErrInsufficientData
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if invErr := xtxInv.Inverse(&xtx); invErr != nil {
		return nil, nil, core.ErrSingularDesign
	}

	yVec := mat.NewVecDense(n, y)
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	var b mat.VecDense
	b.MulVec(&xtxInv, &xty)

	coeffs = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = b.AtVec(i)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &b)

	sse := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		sse += r * r
	}

	s2 := sse / float64(n-k)
	stdErrors = make([]float64, k)
	for i := 0; i < k; i++ {
		stdErrors[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}

	return coeffs, stdErrors, nil
}

// detTerms returns the deterministic regressors at (1-based) time index t.
func detTerms(reg stationarity.Regression, t float64) []float64 {
	switch reg {
	case stationarity.RegNone:
		return nil
	case stationarity.RegConstantTrend:
		return []float64{1, t}
	case stationarity.RegQuadraticTrend:
		return []float64{1, t, t * t}
	}
	return []float64{1}
}

// checkFinite rejects series carrying NaN or infinite observations.
func checkFinite(op string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewComputationError(op, "series contains NaN or infinite observations", core.ErrNonFiniteData)
		}
	}
	return nil
}

// diff returns the first differences of values.
func diff(values []float64) []float64 {
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}
