package stationarity

// Recommendation strings returned to callers. The non-stationary set keeps
// a fixed order: differencing, log transform, seasonal adjustment,
// structural breaks.
const (
	RecommendStationary       = "Time series appears to be stationary."
	RecommendDifferencing     = "Consider differencing the time series."
	RecommendLogTransform     = "Log transformation may help stabilize variance."
	RecommendSeasonalAdjust   = "Seasonal adjustment might be necessary if seasonal patterns are present."
	RecommendStructuralBreaks = "Check for structural breaks or regime changes in the data."
)

func recommendFor(stationary bool) []string {
	if stationary {
		return []string{RecommendStationary}
	}
	return []string{
		RecommendDifferencing,
		RecommendLogTransform,
		RecommendSeasonalAdjust,
		RecommendStructuralBreaks,
	}
}

// Recommendations derives guidance from any assessment shape. A stationary
// verdict yields the single confirmation line; a non-stationary verdict
// yields the four remediation suggestions in fixed order.
func Recommendations(v Verdict) []string {
	return recommendFor(v.Stationary())
}
