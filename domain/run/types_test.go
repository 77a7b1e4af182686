package run

import (
	"errors"
	"testing"

	"statclinic/domain/core"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
)

func TestFingerprint_Deterministic(t *testing.T) {
	// Golden test - same inputs produce identical fingerprints
	seriesFP := core.ComputeSeriesFingerprint([]float64{1.5, 2.5, 3.5})
	params := stationarity.DefaultParams()

	// Generate fingerprint twice with identical inputs
	fp1 := NewFingerprint(seriesFP, params)
	fp2 := NewFingerprint(seriesFP, params)

	// Should be identical
	if fp1.Digest != fp2.Digest {
		t.Errorf("Digests not identical: %s vs %s", fp1.Digest, fp2.Digest)
	}

	// Should carry the reproducibility parameters
	if fp1.Series != seriesFP {
		t.Errorf("Series fingerprint mismatch: %s vs %s", fp1.Series, seriesFP)
	}
	if fp1.Params != params {
		t.Errorf("Params mismatch: %+v vs %+v", fp1.Params, params)
	}
}

func TestFingerprint_Unique(t *testing.T) {
	// Different inputs should produce different fingerprints
	baseSeries := core.ComputeSeriesFingerprint([]float64{1, 2, 3})
	base := NewFingerprint(baseSeries, stationarity.DefaultParams())

	// Change each parameter and verify the digest changes
	alphaChanged := stationarity.DefaultParams()
	alphaChanged.Alpha = 0.01
	regressionChanged := stationarity.DefaultParams()
	regressionChanged.Regression = stationarity.RegConstantTrend
	detailedChanged := stationarity.DefaultParams()
	detailedChanged.Detailed = true
	lagsChanged := stationarity.DefaultParams()
	lagsChanged.MaxLags = 4

	testCases := []struct {
		name string
		fp   Fingerprint
	}{
		{"different observations", NewFingerprint(core.ComputeSeriesFingerprint([]float64{1, 2, 4}), stationarity.DefaultParams())},
		{"different alpha", NewFingerprint(baseSeries, alphaChanged)},
		{"different regression", NewFingerprint(baseSeries, regressionChanged)},
		{"different detailed flag", NewFingerprint(baseSeries, detailedChanged)},
		{"different max lags", NewFingerprint(baseSeries, lagsChanged)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp.Digest == base.Digest {
				t.Errorf("Digest should be different for %s", tc.name)
			}
		})
	}
}

func TestRecordLifecycle(t *testing.T) {
	s := series.New("demand", []float64{1, 2, 3, 4, 5})
	rec := NewRecord(s, stationarity.DefaultParams())

	if rec.Status != StatusRunning {
		t.Errorf("Expected new record to be running, got %s", rec.Status)
	}
	if rec.Observations != 5 {
		t.Errorf("Expected 5 observations, got %d", rec.Observations)
	}
	if rec.CompletedAt != nil {
		t.Error("Expected no completion time on a running record")
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}
	if _, ok := rec.Verdict(); ok {
		t.Error("Expected no verdict on a running record")
	}

	a := stationarity.Assessment{OverallStationary: true}
	rec.CompleteSimple(a, stationarity.Recommendations(a))

	if rec.Status != StatusCompleted {
		t.Errorf("Expected completed status, got %s", rec.Status)
	}
	if rec.CompletedAt == nil {
		t.Error("Expected completion time to be set")
	}
	if !rec.Stationary() {
		t.Error("Expected stationary verdict")
	}
	if len(rec.Recommendations) != 1 {
		t.Errorf("Expected single recommendation, got %d", len(rec.Recommendations))
	}
}

func TestRecordFailure(t *testing.T) {
	s := series.New("flat", []float64{3, 3, 3})
	rec := NewRecord(s, stationarity.DefaultParams())

	rec.Fail(errors.New("regression design matrix is singular"))

	if rec.Status != StatusFailed {
		t.Errorf("Expected failed status, got %s", rec.Status)
	}
	if rec.Error == "" {
		t.Error("Expected error message to be recorded")
	}
	if rec.Stationary() {
		t.Error("Expected no stationary verdict on a failed run")
	}
}

func TestRecordDetailedVerdictWins(t *testing.T) {
	s := series.New("demand", []float64{1, 2, 3})
	rec := NewRecord(s, stationarity.DefaultParams())

	d := stationarity.DetailedAssessment{
		Summary: stationarity.Summary{
			IsStationary:        false,
			TotalConfigurations: 2,
			Recommendations:     stationarity.Recommendations(stationarity.Assessment{}),
		},
	}
	rec.CompleteDetailed(d)

	v, ok := rec.Verdict()
	if !ok {
		t.Fatal("Expected a verdict")
	}
	if v.Stationary() {
		t.Error("Expected non-stationary detailed verdict")
	}
	if len(rec.Recommendations) != 4 {
		t.Errorf("Expected four recommendations, got %d", len(rec.Recommendations))
	}
}
