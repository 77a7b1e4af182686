package profiling

import (
	"math"

	"github.com/montanaflynn/stats"

	"statclinic/domain/core"
	"statclinic/domain/series"
)

// SeriesProfile summarizes the distribution of a series before testing.
type SeriesProfile struct {
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`
}

// Profile computes summary statistics over the finite observations of s.
// Non-finite observations count as missing.
func Profile(s series.Series) (SeriesProfile, error) {
	values := s.Clean()
	if len(values) == 0 {
		return SeriesProfile{}, core.NewComputationError("profile", "no finite observations", core.ErrInsufficientData)
	}

	profile := SeriesProfile{
		Count:   len(values),
		Missing: s.Len() - len(values),
	}

	var err error
	if profile.Mean, err = stats.Mean(values); err != nil {
		return SeriesProfile{}, err
	}
	if profile.StdDev, err = stats.StandardDeviation(values); err != nil {
		return SeriesProfile{}, err
	}
	if profile.Min, err = stats.Min(values); err != nil {
		return SeriesProfile{}, err
	}
	if profile.Max, err = stats.Max(values); err != nil {
		return SeriesProfile{}, err
	}
	if profile.Median, err = stats.Median(values); err != nil {
		return SeriesProfile{}, err
	}
	if profile.Q25, err = stats.Percentile(values, 25); err != nil {
		return SeriesProfile{}, err
	}
	if profile.Q75, err = stats.Percentile(values, 75); err != nil {
		return SeriesProfile{}, err
	}

	profile.Skewness = skewness(values, profile.Mean, profile.StdDev)
	profile.Kurtosis = kurtosis(values, profile.Mean, profile.StdDev)
	profile.Outliers = countOutliers(values, profile.Q25, profile.Q75)

	return profile, nil
}

// skewness computes the sample skewness from standardized moments.
func skewness(values []float64, mean, stdDev float64) float64 {
	if len(values) < 3 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	return sum / float64(len(values))
}

// kurtosis computes the sample kurtosis. A normal distribution scores 3.
func kurtosis(values []float64, mean, stdDev float64) float64 {
	if len(values) < 4 || stdDev == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range values {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	return sum / float64(len(values))
}

// countOutliers applies the 1.5 IQR fence.
func countOutliers(values []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range values {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}

// Spread is the coefficient of variation, a scale-free noise measure.
func (p SeriesProfile) Spread() float64 {
	if p.Mean == 0 {
		return math.Inf(1)
	}
	return p.StdDev / math.Abs(p.Mean)
}
