package stationarity

import "testing"

func TestRecommendationsStationary(t *testing.T) {
	recs := Recommendations(Assessment{OverallStationary: true})
	if len(recs) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d", len(recs))
	}
	if recs[0] != RecommendStationary {
		t.Errorf("Unexpected recommendation: %s", recs[0])
	}
}

func TestRecommendationsNonStationary(t *testing.T) {
	recs := Recommendations(Assessment{OverallStationary: false})

	expected := []string{
		"Consider differencing the time series.",
		"Log transformation may help stabilize variance.",
		"Seasonal adjustment might be necessary if seasonal patterns are present.",
		"Check for structural breaks or regime changes in the data.",
	}
	if len(recs) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %d", len(expected), len(recs))
	}
	for i, want := range expected {
		if recs[i] != want {
			t.Errorf("Recommendation %d: expected %q, got %q", i, want, recs[i])
		}
	}
}

// TestRecommendationsAcceptsBothShapes mirrors the downstream extraction
// step, which takes whichever assessment shape the run produced.
func TestRecommendationsAcceptsBothShapes(t *testing.T) {
	detailed := DetailedAssessment{Summary: Summary{IsStationary: false}}
	if got := Recommendations(detailed); len(got) != 4 {
		t.Errorf("Expected 4 recommendations from detailed shape, got %d", len(got))
	}

	simple := Assessment{OverallStationary: true}
	if got := Recommendations(simple); len(got) != 1 {
		t.Errorf("Expected 1 recommendation from simple shape, got %d", len(got))
	}
}
