package stattest

// bartlettLongRunVariance estimates the long-run variance of residuals by
// the Newey-West estimator with Bartlett kernel weights. Both the KPSS
// statistic and the Phillips-Perron correction rest on it.
func bartlettLongRunVariance(residuals []float64, nlags int) float64 {
	n := float64(len(residuals))
	if n == 0 {
		return 0
	}

	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= n

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < len(residuals); i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= n
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}

	return s2
}
