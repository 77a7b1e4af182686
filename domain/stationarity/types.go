package stationarity

// TestType identifies one of the supported stationarity tests. The set is
// closed; AllTests is the canonical ordering used everywhere results are
// assembled or rendered.
type TestType string

const (
	// UnitRootADF is the augmented Dickey-Fuller test. Null hypothesis:
	// the series has a unit root (non-stationary).
	UnitRootADF TestType = "unit-root-adf"
	// StationarityKPSS is the Kwiatkowski-Phillips-Schmidt-Shin test.
	// Null hypothesis: the series is stationary.
	StationarityKPSS TestType = "stationarity-kpss"
	// UnitRootPP is the Phillips-Perron test. Null hypothesis: the series
	// has a unit root (non-stationary).
	UnitRootPP TestType = "unit-root-pp"
)

// AllTests returns the test types in canonical order.
func AllTests() []TestType {
	return []TestType{UnitRootADF, StationarityKPSS, UnitRootPP}
}

// Valid reports whether t is one of the closed set of test types.
func (t TestType) Valid() bool {
	switch t {
	case UnitRootADF, StationarityKPSS, UnitRootPP:
		return true
	}
	return false
}

func (t TestType) String() string {
	return string(t)
}

// DisplayName returns the human-readable test name used in logs and reports.
func (t TestType) DisplayName() string {
	switch t {
	case UnitRootADF:
		return "ADF"
	case StationarityKPSS:
		return "KPSS"
	case UnitRootPP:
		return "Phillips-Perron"
	}
	return string(t)
}

// NullHypothesis is the assumption a test tries to reject.
type NullHypothesis string

const (
	NullUnitRoot   NullHypothesis = "unit root"
	NullStationary NullHypothesis = "stationary"
)

// Null returns the test's null hypothesis.
func (t TestType) Null() NullHypothesis {
	if t == StationarityKPSS {
		return NullStationary
	}
	return NullUnitRoot
}

// Verdict derives the per-test stationarity verdict from a p-value.
// Unit-root tests reject their null when p < alpha, and rejecting a
// unit-root null means stationary. KPSS has the opposite null, so the
// comparison inverts: p > alpha keeps the stationarity null alive.
// The two directions must never be unified.
func (t TestType) Verdict(pValue, alpha float64) bool {
	if t.Null() == NullStationary {
		return pValue > alpha
	}
	return pValue < alpha
}

// Regression selects the deterministic terms in a test's auxiliary
// regression. Canonical codes follow the usual econometrics shorthand.
type Regression string

const (
	// RegNone includes no deterministic terms.
	RegNone Regression = "n"
	// RegConstant includes a constant only.
	RegConstant Regression = "c"
	// RegConstantTrend includes a constant and a linear trend.
	RegConstantTrend Regression = "ct"
	// RegQuadraticTrend includes a constant, a linear and a quadratic trend.
	RegQuadraticTrend Regression = "ctt"
)

// Valid reports whether r is a recognized regression specification.
func (r Regression) Valid() bool {
	switch r {
	case RegNone, RegConstant, RegConstantTrend, RegQuadraticTrend:
		return true
	}
	return false
}

func (r Regression) String() string {
	return string(r)
}

// Describe returns the long-form label for the regression specification.
func (r Regression) Describe() string {
	switch r {
	case RegNone:
		return "no-constant-no-trend"
	case RegConstant:
		return "constant-only"
	case RegConstantTrend:
		return "constant-and-linear-trend"
	case RegQuadraticTrend:
		return "constant-linear-and-quadratic-trend"
	}
	return string(r)
}

// ForKPSS maps the requested regression onto what the KPSS routine
// supports. Only constant and constant-trend designs exist for KPSS;
// anything else silently becomes constant-only.
func (r Regression) ForKPSS() Regression {
	if r == RegConstant || r == RegConstantTrend {
		return r
	}
	return RegConstant
}

// AutoLags requests automatic lag selection from a test routine.
const AutoLags = -1

// TestStats is the raw numerical outcome of a test routine, before any
// verdict is applied.
type TestStats struct {
	Statistic      float64            `json:"statistic"`
	PValue         float64            `json:"p_value"`
	CriticalValues map[string]float64 `json:"critical_values"`
	UsedLags       int                `json:"used_lags"`
	NObs           int                `json:"nobs"`
}

// TestResult is one test's outcome with the verdict applied. Immutable
// once produced.
type TestResult struct {
	Test           TestType           `json:"test"`
	TestStatistic  float64            `json:"test_statistic"`
	PValue         float64            `json:"p_value"`
	CriticalValues map[string]float64 `json:"critical_values"`
	Stationary     bool               `json:"stationary"`
	Regression     Regression         `json:"regression"`
	UsedLags       int                `json:"used_lags"`
	NObs           int                `json:"nobs"`
}

// NewTestResult applies the test's verdict rule to raw stats.
func NewTestResult(test TestType, reg Regression, alpha float64, stats TestStats) TestResult {
	return TestResult{
		Test:           test,
		TestStatistic:  stats.Statistic,
		PValue:         stats.PValue,
		CriticalValues: stats.CriticalValues,
		Stationary:     test.Verdict(stats.PValue, alpha),
		Regression:     reg,
		UsedLags:       stats.UsedLags,
		NObs:           stats.NObs,
	}
}

// Assessment is the outcome of running every test once against a single
// (series, alpha, regression) combination.
type Assessment struct {
	Alpha             float64                 `json:"alpha"`
	Regression        Regression              `json:"regression"`
	Results           map[TestType]TestResult `json:"results"`
	OverallStationary bool                    `json:"overall_stationary"`
}

// Tests returns the per-test results in canonical order.
func (a Assessment) Tests() []TestResult {
	out := make([]TestResult, 0, len(a.Results))
	for _, t := range AllTests() {
		if r, ok := a.Results[t]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Stationary reports the overall verdict.
func (a Assessment) Stationary() bool {
	return a.OverallStationary
}

// ConfigLabel names one regression configuration of a detailed assessment.
type ConfigLabel string

const (
	ConfigConstant      ConfigLabel = "constant"
	ConfigConstantTrend ConfigLabel = "constant_trend"
)

// DetailedConfig pairs a configuration label with the regression it runs.
type DetailedConfig struct {
	Label      ConfigLabel
	Regression Regression
}

// DetailedConfigs returns the configurations of a detailed assessment in
// execution order.
func DetailedConfigs() []DetailedConfig {
	return []DetailedConfig{
		{Label: ConfigConstant, Regression: RegConstant},
		{Label: ConfigConstantTrend, Regression: RegConstantTrend},
	}
}

// Summary condenses a detailed assessment into one verdict with guidance.
type Summary struct {
	IsStationary        bool     `json:"is_stationary"`
	StationaryCount     int      `json:"stationary_count"`
	TotalConfigurations int      `json:"total_configurations"`
	Recommendations     []string `json:"recommendations"`
}

// DetailedAssessment is the outcome of running the full test suite under
// every detailed configuration.
type DetailedAssessment struct {
	Configurations map[ConfigLabel]Assessment `json:"configurations"`
	Summary        Summary                    `json:"summary"`
}

// Stationary reports the summary verdict.
func (d DetailedAssessment) Stationary() bool {
	return d.Summary.IsStationary
}

// Verdict is any assessment shape carrying an overall stationarity call.
// Both Assessment and DetailedAssessment satisfy it.
type Verdict interface {
	Stationary() bool
}
