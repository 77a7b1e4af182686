package stattest

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statclinic/domain/stationarity"
)

// MacKinnon (1994) response surface approximation for Dickey-Fuller type
// p-values. The statistic is mapped through a regression-specific cubic
// polynomial and the standard normal CDF. Below tauStar the small-p
// surface applies, above it the large-p surface.

var tauStar = map[stationarity.Regression]float64{
	stationarity.RegNone:           -1.04,
	stationarity.RegConstant:       -1.61,
	stationarity.RegConstantTrend:  -2.89,
	stationarity.RegQuadraticTrend: -3.21,
}

var tauMin = map[stationarity.Regression]float64{
	stationarity.RegNone:           -19.04,
	stationarity.RegConstant:       -18.83,
	stationarity.RegConstantTrend:  -16.18,
	stationarity.RegQuadraticTrend: -17.17,
}

var tauMax = map[stationarity.Regression]float64{
	stationarity.RegNone:           math.Inf(1),
	stationarity.RegConstant:       2.74,
	stationarity.RegConstantTrend:  0.70,
	stationarity.RegQuadraticTrend: 0.54,
}

var tauSmallP = map[stationarity.Regression][]float64{
	stationarity.RegNone:           {0.6344, 1.2378, 0.032496},
	stationarity.RegConstant:       {2.1659, 1.4412, 0.038269},
	stationarity.RegConstantTrend:  {3.2512, 1.6047, 0.049588},
	stationarity.RegQuadraticTrend: {4.0003, 1.658, 0.048288},
}

var tauLargeP = map[stationarity.Regression][]float64{
	stationarity.RegNone:           {0.4797, 0.93557, -0.06999, 0.033066},
	stationarity.RegConstant:       {1.7339, 0.93202, -0.12745, -0.010368},
	stationarity.RegConstantTrend:  {2.5261, 0.61654, -0.37956, -0.060285},
	stationarity.RegQuadraticTrend: {3.0778, 0.49529, -0.41477, -0.059359},
}

// Asymptotic Dickey-Fuller critical values per regression specification.
var adfCritVals = map[stationarity.Regression]map[string]float64{
	stationarity.RegNone:           {"1%": -2.56574, "5%": -1.94100, "10%": -1.61682},
	stationarity.RegConstant:       {"1%": -3.43035, "5%": -2.86154, "10%": -2.56677},
	stationarity.RegConstantTrend:  {"1%": -3.95877, "5%": -3.41049, "10%": -3.12705},
	stationarity.RegQuadraticTrend: {"1%": -4.37113, "5%": -3.83239, "10%": -3.55326},
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// mackinnonPValue approximates the p-value of a Dickey-Fuller type
// statistic for the given regression specification.
func mackinnonPValue(stat float64, reg stationarity.Regression) float64 {
	if !reg.Valid() {
		reg = stationarity.RegConstant
	}
	if stat > tauMax[reg] {
		return 1.0
	}
	if stat < tauMin[reg] {
		return 0.0
	}
	coeffs := tauLargeP[reg]
	if stat <= tauStar[reg] {
		coeffs = tauSmallP[reg]
	}
	return stdNormal.CDF(polyval(coeffs, stat))
}

// polyval evaluates c[0] + c[1]*x + c[2]*x^2 + ... by Horner's rule.
func polyval(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// adfCriticalValues returns a fresh copy of the critical value table so
// results stay immutable.
func adfCriticalValues(reg stationarity.Regression) map[string]float64 {
	src, ok := adfCritVals[reg]
	if !ok {
		src = adfCritVals[stationarity.RegConstant]
	}
	out := make(map[string]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
