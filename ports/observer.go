package ports

import (
	"statclinic/domain/stationarity"
)

// AssessmentObserver receives informational events as the engine works.
// It is a side channel only: no result or error flows through it, and a
// failing observer must not fail the assessment. Implementations must be
// safe for concurrent use.
type AssessmentObserver interface {
	// TestEvaluated fires after each test's verdict is derived.
	TestEvaluated(result stationarity.TestResult)

	// AssessmentCompleted fires after the per-test verdicts were combined.
	AssessmentCompleted(assessment stationarity.Assessment)

	// SummaryCompleted fires after a detailed assessment's configurations
	// were majority-voted.
	SummaryCompleted(summary stationarity.Summary)
}

// NopObserver discards all events. It stands in when the caller supplies
// no observer.
type NopObserver struct{}

func (NopObserver) TestEvaluated(stationarity.TestResult)       {}
func (NopObserver) AssessmentCompleted(stationarity.Assessment) {}
func (NopObserver) SummaryCompleted(stationarity.Summary)       {}
