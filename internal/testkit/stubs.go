package testkit

import (
	"context"
	"sync"

	"statclinic/domain/stationarity"
)

// StubRunner is a scripted stat test implementation for exercising the
// assessment engine without numerical routines.
type StubRunner struct {
	TestKind stationarity.TestType
	Stats    stationarity.TestStats
	Err      error

	mu    sync.Mutex
	calls []StubCall
}

// StubCall records one Compute invocation.
type StubCall struct {
	Values     []float64
	Regression stationarity.Regression
	Lags       int
}

// NewStubRunner returns a runner that always reports the given stats.
func NewStubRunner(kind stationarity.TestType, stats stationarity.TestStats) *StubRunner {
	return &StubRunner{TestKind: kind, Stats: stats}
}

// NewFailingRunner returns a runner that always fails with err.
func NewFailingRunner(kind stationarity.TestType, err error) *StubRunner {
	return &StubRunner{TestKind: kind, Err: err}
}

// Kind identifies the stubbed test.
func (s *StubRunner) Kind() stationarity.TestType {
	return s.TestKind
}

// Compute records the call and replays the scripted outcome.
func (s *StubRunner) Compute(_ context.Context, values []float64, reg stationarity.Regression, lags int) (stationarity.TestStats, error) {
	s.mu.Lock()
	s.calls = append(s.calls, StubCall{Values: values, Regression: reg, Lags: lags})
	s.mu.Unlock()

	if s.Err != nil {
		return stationarity.TestStats{}, s.Err
	}
	return s.Stats, nil
}

// Calls returns the recorded invocations in order.
func (s *StubRunner) Calls() []StubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StubCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// RecordingObserver captures engine events for assertions.
type RecordingObserver struct {
	mu          sync.Mutex
	Tests       []stationarity.TestResult
	Assessments []stationarity.Assessment
	Summaries   []stationarity.Summary
}

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (r *RecordingObserver) TestEvaluated(result stationarity.TestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tests = append(r.Tests, result)
}

func (r *RecordingObserver) AssessmentCompleted(a stationarity.Assessment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Assessments = append(r.Assessments, a)
}

func (r *RecordingObserver) SummaryCompleted(s stationarity.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summaries = append(r.Summaries, s)
}

// TestResults returns the captured per-test events in order.
func (r *RecordingObserver) TestResults() []stationarity.TestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]stationarity.TestResult, len(r.Tests))
	copy(out, r.Tests)
	return out
}
