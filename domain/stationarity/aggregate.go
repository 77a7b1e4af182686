package stationarity

// MajorityStationary applies the majority rule shared by both aggregation
// levels: stationary iff at least half the verdicts are stationary, so a
// tie counts as stationary.
func MajorityStationary(verdicts []bool) bool {
	count := 0
	for _, v := range verdicts {
		if v {
			count++
		}
	}
	return 2*count >= len(verdicts)
}

// NewAssessment assembles per-test results into an overall verdict.
func NewAssessment(alpha float64, reg Regression, results []TestResult) Assessment {
	byTest := make(map[TestType]TestResult, len(results))
	verdicts := make([]bool, 0, len(results))
	for _, r := range results {
		byTest[r.Test] = r
		verdicts = append(verdicts, r.Stationary)
	}
	return Assessment{
		Alpha:             alpha,
		Regression:        reg,
		Results:           byTest,
		OverallStationary: MajorityStationary(verdicts),
	}
}

// Summarize majority-votes across configuration verdicts and attaches the
// matching recommendations.
func Summarize(configs map[ConfigLabel]Assessment) Summary {
	verdicts := make([]bool, 0, len(configs))
	count := 0
	for _, cfg := range DetailedConfigs() {
		a, ok := configs[cfg.Label]
		if !ok {
			continue
		}
		verdicts = append(verdicts, a.OverallStationary)
		if a.OverallStationary {
			count++
		}
	}
	isStationary := MajorityStationary(verdicts)
	return Summary{
		IsStationary:        isStationary,
		StationaryCount:     count,
		TotalConfigurations: len(verdicts),
		Recommendations:     recommendFor(isStationary),
	}
}
