package series

import (
	"math"

	"statclinic/domain/core"
)

// Series is an ordered univariate time series. Values keep their original
// order; index timestamps are optional and, when present, run parallel to
// Values.
type Series struct {
	Key    core.SeriesKey   `json:"key"`
	Name   string           `json:"name"`
	Values []float64        `json:"values"`
	Index  []core.Timestamp `json:"index,omitempty"`
}

// New creates a series with a key derived from its name.
func New(name string, values []float64) Series {
	return Series{
		Key:    core.SeriesKey(name),
		Name:   name,
		Values: values,
	}
}

// Len returns the number of observations, including non-finite ones.
func (s Series) Len() int {
	return len(s.Values)
}

// IsEmpty returns true when the series has no observations.
func (s Series) IsEmpty() bool {
	return len(s.Values) == 0
}

// Clean returns the finite observations in order, dropping NaN and
// infinite values the way upstream loaders leave them in.
func (s Series) Clean() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Fingerprint identifies the exact observations of the series.
func (s Series) Fingerprint() core.SeriesFingerprint {
	return core.ComputeSeriesFingerprint(s.Values)
}

// Diff applies first differencing the given number of times. The result
// is order observations shorter than the input.
func (s Series) Diff(order int) (Series, error) {
	if order < 1 {
		return Series{}, core.NewConfigurationError("order", "differencing order must be at least 1")
	}
	if len(s.Values) <= order {
		return Series{}, core.NewComputationError("diff", "series shorter than differencing order", core.ErrInsufficientData)
	}
	values := append([]float64(nil), s.Values...)
	for d := 0; d < order; d++ {
		next := make([]float64, len(values)-1)
		for i := 1; i < len(values); i++ {
			next[i-1] = values[i] - values[i-1]
		}
		values = next
	}
	out := Series{
		Key:    s.Key,
		Name:   s.Name,
		Values: values,
	}
	if len(s.Index) == len(s.Values) {
		out.Index = s.Index[order:]
	}
	return out, nil
}

// LogTransform applies the natural logarithm to every observation.
// All values must be strictly positive.
func (s Series) LogTransform() (Series, error) {
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v <= 0 {
			return Series{}, core.NewComputationError("log", "log transform requires strictly positive values", nil)
		}
		values[i] = math.Log(v)
	}
	return Series{
		Key:    s.Key,
		Name:   s.Name,
		Values: values,
		Index:  s.Index,
	}, nil
}
