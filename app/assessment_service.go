package app

import (
	"context"
	"fmt"

	"statclinic/domain/core"
	"statclinic/domain/stationarity"
	"statclinic/ports"
)

// AssessmentService runs the stationarity test battery over a value series
// and aggregates the per-test verdicts. It is deterministic: the same values
// and parameters always produce the same outcome.
type AssessmentService struct {
	runners  map[stationarity.TestType]ports.StatTestPort
	observer ports.AssessmentObserver
}

// AssessOutcome carries whichever assessment mode ran plus the guidance
// derived from its verdict. Exactly one of Assessment and Detailed is set.
type AssessOutcome struct {
	Assessment      *stationarity.Assessment         `json:"assessment,omitempty"`
	Detailed        *stationarity.DetailedAssessment `json:"detailed,omitempty"`
	Recommendations []string                         `json:"recommendations"`
}

// Stationary reports the overall verdict of whichever mode ran.
func (o AssessOutcome) Stationary() bool {
	if o.Detailed != nil {
		return o.Detailed.Stationary()
	}
	if o.Assessment != nil {
		return o.Assessment.Stationary()
	}
	return false
}

// NewAssessmentService wires the test runners and an optional observer.
// A nil observer is replaced by a no-op one.
func NewAssessmentService(runners map[stationarity.TestType]ports.StatTestPort, observer ports.AssessmentObserver) *AssessmentService {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &AssessmentService{
		runners:  runners,
		observer: observer,
	}
}

// RunTest executes a single test against the values. The KPSS procedure only
// supports constant and constant-plus-trend designs, so other regressions
// are narrowed before dispatch.
func (s *AssessmentService) RunTest(ctx context.Context, test stationarity.TestType, values []float64, params stationarity.Params) (stationarity.TestResult, error) {
	if err := params.Validate(); err != nil {
		return stationarity.TestResult{}, err
	}

	runner, ok := s.runners[test]
	if !ok {
		return stationarity.TestResult{}, core.NewConfigurationError("test", fmt.Sprintf("no runner registered for %s", test))
	}

	reg := params.Regression
	if test == stationarity.StationarityKPSS {
		reg = reg.ForKPSS()
	}

	stats, err := runner.Compute(ctx, values, reg, params.MaxLags)
	if err != nil {
		return stationarity.TestResult{}, err
	}

	result := stationarity.NewTestResult(test, reg, params.Alpha, stats)
	s.observer.TestEvaluated(result)
	return result, nil
}

// RunAllTests executes the whole battery in canonical order and majority
// votes the verdicts. Any single test failure fails the battery; no partial
// assessment is returned.
func (s *AssessmentService) RunAllTests(ctx context.Context, values []float64, params stationarity.Params) (stationarity.Assessment, error) {
	if err := params.Validate(); err != nil {
		return stationarity.Assessment{}, err
	}

	results := make([]stationarity.TestResult, 0, len(stationarity.AllTests()))
	for _, test := range stationarity.AllTests() {
		result, err := s.RunTest(ctx, test, values, params)
		if err != nil {
			return stationarity.Assessment{}, err
		}
		results = append(results, result)
	}

	assessment := stationarity.NewAssessment(params.Alpha, params.Regression, results)
	s.observer.AssessmentCompleted(assessment)
	return assessment, nil
}

// RunDetailed executes the battery once per detailed configuration and
// majority votes across the configuration verdicts.
func (s *AssessmentService) RunDetailed(ctx context.Context, values []float64, params stationarity.Params) (stationarity.DetailedAssessment, error) {
	if err := params.Validate(); err != nil {
		return stationarity.DetailedAssessment{}, err
	}

	configs := make(map[stationarity.ConfigLabel]stationarity.Assessment, 2)
	for _, cfg := range stationarity.DetailedConfigs() {
		p := params
		p.Regression = cfg.Regression
		p.Detailed = false

		assessment, err := s.RunAllTests(ctx, values, p)
		if err != nil {
			return stationarity.DetailedAssessment{}, err
		}
		configs[cfg.Label] = assessment
	}

	detailed := stationarity.DetailedAssessment{
		Configurations: configs,
		Summary:        stationarity.Summarize(configs),
	}
	s.observer.SummaryCompleted(detailed.Summary)
	return detailed, nil
}

// Assess dispatches on params.Detailed and attaches recommendations to the
// resulting verdict.
func (s *AssessmentService) Assess(ctx context.Context, values []float64, params stationarity.Params) (AssessOutcome, error) {
	if params.Detailed {
		detailed, err := s.RunDetailed(ctx, values, params)
		if err != nil {
			return AssessOutcome{}, err
		}
		return AssessOutcome{
			Detailed:        &detailed,
			Recommendations: detailed.Summary.Recommendations,
		}, nil
	}

	assessment, err := s.RunAllTests(ctx, values, params)
	if err != nil {
		return AssessOutcome{}, err
	}
	return AssessOutcome{
		Assessment:      &assessment,
		Recommendations: stationarity.Recommendations(assessment),
	}, nil
}
