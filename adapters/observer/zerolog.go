package observer

import (
	"github.com/rs/zerolog"

	"statclinic/domain/stationarity"
)

// ZerologObserver emits one structured log line per assessment event.
type ZerologObserver struct {
	log zerolog.Logger
}

// NewZerologObserver tags the logger with the assessment component.
func NewZerologObserver(log zerolog.Logger) *ZerologObserver {
	return &ZerologObserver{
		log: log.With().Str("component", "assessment").Logger(),
	}
}

func (o *ZerologObserver) TestEvaluated(r stationarity.TestResult) {
	o.log.Info().
		Str("test", r.Test.DisplayName()).
		Str("regression", r.Regression.String()).
		Float64("statistic", r.TestStatistic).
		Float64("p_value", r.PValue).
		Bool("stationary", r.Stationary).
		Int("lags", r.UsedLags).
		Int("nobs", r.NObs).
		Msg("test evaluated")
}

func (o *ZerologObserver) AssessmentCompleted(a stationarity.Assessment) {
	o.log.Info().
		Str("regression", a.Regression.String()).
		Float64("alpha", a.Alpha).
		Int("tests", len(a.Results)).
		Bool("stationary", a.OverallStationary).
		Msg("assessment completed")
}

func (o *ZerologObserver) SummaryCompleted(s stationarity.Summary) {
	o.log.Info().
		Bool("stationary", s.IsStationary).
		Int("stationary_configurations", s.StationaryCount).
		Int("total_configurations", s.TotalConfigurations).
		Msg("detailed assessment summarized")
}
