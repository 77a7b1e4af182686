package run

import (
	"fmt"

	"statclinic/domain/core"
	"statclinic/domain/series"
	"statclinic/domain/stationarity"
)

// Status of a recorded assessment run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Fingerprint ensures reproducible identity: bit-identical observations
// under an identical configuration always produce the same digest.
type Fingerprint struct {
	Series core.SeriesFingerprint `json:"series"`
	Params stationarity.Params    `json:"params"`
	Digest core.Hash              `json:"digest"` // Hash of all above
}

// NewFingerprint creates a fingerprint from the reproducibility parameters
func NewFingerprint(seriesFP core.SeriesFingerprint, params stationarity.Params) Fingerprint {
	// Create deterministic string representation
	data := fmt.Sprintf("series:%s|alpha:%g|regression:%s|detailed:%t|max_lags:%d",
		seriesFP, params.Alpha, params.Regression, params.Detailed, params.MaxLags)

	return Fingerprint{
		Series: seriesFP,
		Params: params,
		Digest: core.NewHash([]byte(data)),
	}
}

// Record is one persisted assessment run: which series was tested, how the
// run was configured, and what came out.
type Record struct {
	ID           core.RunID          `json:"id"`
	SeriesKey    core.SeriesKey      `json:"series_key"`
	SeriesName   string              `json:"series_name"`
	Observations int                 `json:"observations"`
	Fingerprint  Fingerprint         `json:"fingerprint"`
	Params       stationarity.Params `json:"params"`

	Assessment      *stationarity.Assessment         `json:"assessment,omitempty"`
	Detailed        *stationarity.DetailedAssessment `json:"detailed_assessment,omitempty"`
	Recommendations []string                         `json:"recommendations,omitempty"`

	Status      Status          `json:"status"`
	Error       string          `json:"error,omitempty"`
	StartedAt   core.Timestamp  `json:"started_at"`
	CompletedAt *core.Timestamp `json:"completed_at,omitempty"`
}

// NewRecord opens a running record for the given series and configuration.
func NewRecord(s series.Series, params stationarity.Params) *Record {
	return &Record{
		ID:           core.RunID(core.NewID()),
		SeriesKey:    s.Key,
		SeriesName:   s.Name,
		Observations: s.Len(),
		Fingerprint:  NewFingerprint(s.Fingerprint(), params),
		Params:       params,
		Status:       StatusRunning,
		StartedAt:    core.Now(),
	}
}

// CompleteSimple closes the record with a single-configuration assessment.
func (r *Record) CompleteSimple(a stationarity.Assessment, recommendations []string) {
	r.Assessment = &a
	r.Recommendations = recommendations
	r.close(StatusCompleted)
}

// CompleteDetailed closes the record with a detailed assessment.
func (r *Record) CompleteDetailed(d stationarity.DetailedAssessment) {
	r.Detailed = &d
	r.Recommendations = d.Summary.Recommendations
	r.close(StatusCompleted)
}

// Fail closes the record with the error that stopped the run.
func (r *Record) Fail(err error) {
	if err != nil {
		r.Error = err.Error()
	}
	r.close(StatusFailed)
}

func (r *Record) close(status Status) {
	r.Status = status
	now := core.Now()
	r.CompletedAt = &now
}

// Verdict returns whichever assessment shape the run produced.
func (r *Record) Verdict() (stationarity.Verdict, bool) {
	switch {
	case r.Detailed != nil:
		return *r.Detailed, true
	case r.Assessment != nil:
		return *r.Assessment, true
	}
	return nil, false
}

// Stationary reports the overall verdict of a completed run.
func (r *Record) Stationary() bool {
	v, ok := r.Verdict()
	return ok && v.Stationary()
}

// Validate checks if the record is complete enough to persist
func (r *Record) Validate() error {
	if core.ID(r.ID).IsEmpty() {
		return core.NewConfigurationError("run_record", "id cannot be empty")
	}
	if r.SeriesName == "" {
		return core.NewConfigurationError("run_record", "series_name cannot be empty")
	}
	if r.Fingerprint.Digest.IsEmpty() {
		return core.NewConfigurationError("run_record", "fingerprint cannot be empty")
	}
	return nil
}
