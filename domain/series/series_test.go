package series

import (
	"math"
	"testing"
)

func TestCleanDropsNonFinite(t *testing.T) {
	s := New("demand", []float64{1.0, math.NaN(), 2.0, math.Inf(1), 3.0, math.Inf(-1)})

	got := s.Clean()
	want := []float64{1.0, 2.0, 3.0}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Value %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	// original untouched
	if s.Len() != 6 {
		t.Errorf("Expected source length 6, got %d", s.Len())
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		order    int
		expected []float64
	}{
		{
			name:     "first difference of linear trend is constant",
			values:   []float64{1, 3, 5, 7, 9},
			order:    1,
			expected: []float64{2, 2, 2, 2},
		},
		{
			name:     "second difference of quadratic is constant",
			values:   []float64{0, 1, 4, 9, 16, 25},
			order:    2,
			expected: []float64{2, 2, 2, 2},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			diffed, err := New("x", test.values).Diff(test.order)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(diffed.Values) != len(test.expected) {
				t.Fatalf("Expected %d values, got %d", len(test.expected), len(diffed.Values))
			}
			for i, want := range test.expected {
				if math.Abs(diffed.Values[i]-want) > 1e-12 {
					t.Errorf("Value %d: expected %v, got %v", i, want, diffed.Values[i])
				}
			}
		})
	}
}

func TestDiffErrors(t *testing.T) {
	if _, err := New("x", []float64{1, 2, 3}).Diff(0); err == nil {
		t.Error("Expected error for order 0")
	}
	if _, err := New("x", []float64{1}).Diff(1); err == nil {
		t.Error("Expected error for series shorter than order")
	}
}

func TestLogTransform(t *testing.T) {
	s := New("x", []float64{1, math.E, math.E * math.E})
	logged, err := s.LogTransform()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []float64{0, 1, 2}
	for i := range want {
		if math.Abs(logged.Values[i]-want[i]) > 1e-12 {
			t.Errorf("Value %d: expected %v, got %v", i, want[i], logged.Values[i])
		}
	}

	if _, err := New("x", []float64{1, 0, 2}).LogTransform(); err == nil {
		t.Error("Expected error for non-positive values")
	}
}

func TestFrameColumnLookup(t *testing.T) {
	f := Frame{Name: "orders.csv"}
	f.Add(New("a", []float64{1, 2}))
	f.Add(New("b", []float64{3, 4}))

	if _, ok := f.Column("missing"); ok {
		t.Error("Expected lookup miss for unknown column")
	}
	col, ok := f.Column("b")
	if !ok || col.Values[0] != 3 {
		t.Errorf("Expected column b starting at 3, got %+v ok=%v", col, ok)
	}

	// replace keeps order
	f.Add(New("a", []float64{9}))
	names := f.ColumnNames()
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected order [a b], got %v", names)
	}
	col, _ = f.Column("a")
	if col.Values[0] != 9 {
		t.Errorf("Expected replaced column, got %+v", col)
	}
}
