package stationarity

import "testing"

func TestMajorityStationary(t *testing.T) {
	tests := []struct {
		name     string
		verdicts []bool
		expected bool
	}{
		{"all three stationary", []bool{true, true, true}, true},
		{"two of three", []bool{true, false, true}, true},
		{"one of three", []bool{false, true, false}, false},
		{"none of three", []bool{false, false, false}, false},
		{"tie of two favors stationary", []bool{true, false}, true},
		{"both of two", []bool{true, true}, true},
		{"neither of two", []bool{false, false}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := MajorityStationary(test.verdicts); got != test.expected {
				t.Errorf("Expected %v for %v, got %v", test.expected, test.verdicts, got)
			}
		})
	}
}

func TestNewAssessment(t *testing.T) {
	results := []TestResult{
		{Test: UnitRootADF, PValue: 0.01, Stationary: true},
		{Test: StationarityKPSS, PValue: 0.01, Stationary: false},
		{Test: UnitRootPP, PValue: 0.02, Stationary: true},
	}

	a := NewAssessment(0.05, RegConstant, results)
	if !a.OverallStationary {
		t.Error("Expected 2 of 3 stationary verdicts to carry the majority")
	}
	if len(a.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(a.Results))
	}

	ordered := a.Tests()
	want := []TestType{UnitRootADF, StationarityKPSS, UnitRootPP}
	for i, r := range ordered {
		if r.Test != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], r.Test)
		}
	}
}

func TestSummarize(t *testing.T) {
	stationary := Assessment{OverallStationary: true}
	nonStationary := Assessment{OverallStationary: false}

	tests := []struct {
		name            string
		configs         map[ConfigLabel]Assessment
		isStationary    bool
		stationaryCount int
	}{
		{
			name: "both configurations stationary",
			configs: map[ConfigLabel]Assessment{
				ConfigConstant:      stationary,
				ConfigConstantTrend: stationary,
			},
			isStationary:    true,
			stationaryCount: 2,
		},
		{
			name: "split configurations favor stationary",
			configs: map[ConfigLabel]Assessment{
				ConfigConstant:      stationary,
				ConfigConstantTrend: nonStationary,
			},
			isStationary:    true,
			stationaryCount: 1,
		},
		{
			name: "neither configuration stationary",
			configs: map[ConfigLabel]Assessment{
				ConfigConstant:      nonStationary,
				ConfigConstantTrend: nonStationary,
			},
			isStationary:    false,
			stationaryCount: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := Summarize(test.configs)
			if s.IsStationary != test.isStationary {
				t.Errorf("Expected is_stationary=%v, got %v", test.isStationary, s.IsStationary)
			}
			if s.StationaryCount != test.stationaryCount {
				t.Errorf("Expected stationary_count=%d, got %d", test.stationaryCount, s.StationaryCount)
			}
			if s.TotalConfigurations != 2 {
				t.Errorf("Expected total_configurations=2, got %d", s.TotalConfigurations)
			}
			if test.isStationary && len(s.Recommendations) != 1 {
				t.Errorf("Expected single recommendation when stationary, got %d", len(s.Recommendations))
			}
			if !test.isStationary && len(s.Recommendations) != 4 {
				t.Errorf("Expected four recommendations when non-stationary, got %d", len(s.Recommendations))
			}
		})
	}
}
