package observer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"statclinic/domain/stationarity"
)

func TestTestEvaluatedEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewZerologObserver(zerolog.New(&buf))

	obs.TestEvaluated(stationarity.TestResult{
		Test:          stationarity.UnitRootADF,
		TestStatistic: -3.5,
		PValue:        0.008,
		Stationary:    true,
		Regression:    stationarity.RegConstant,
		UsedLags:      4,
		NObs:          95,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected a JSON log line, got %q: %v", buf.String(), err)
	}

	if entry["test"] != "ADF" {
		t.Errorf("Expected test ADF, got %v", entry["test"])
	}
	if entry["component"] != "assessment" {
		t.Errorf("Expected the assessment component tag, got %v", entry["component"])
	}
	if entry["p_value"] != 0.008 {
		t.Errorf("Expected p_value 0.008, got %v", entry["p_value"])
	}
	if entry["stationary"] != true {
		t.Errorf("Expected stationary true, got %v", entry["stationary"])
	}
}

func TestAssessmentAndSummaryEvents(t *testing.T) {
	var buf bytes.Buffer
	obs := NewZerologObserver(zerolog.New(&buf))

	obs.AssessmentCompleted(stationarity.Assessment{
		Alpha:             0.05,
		Regression:        stationarity.RegConstantTrend,
		OverallStationary: false,
	})
	obs.SummaryCompleted(stationarity.Summary{
		IsStationary:        true,
		StationaryCount:     1,
		TotalConfigurations: 2,
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}

	var assessment map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &assessment); err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if assessment["message"] != "assessment completed" {
		t.Errorf("Expected the assessment message, got %v", assessment["message"])
	}

	var summary map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &summary); err != nil {
		t.Fatalf("Unexpected parse error: %v", err)
	}
	if summary["total_configurations"] != float64(2) {
		t.Errorf("Expected 2 total configurations, got %v", summary["total_configurations"])
	}
}
