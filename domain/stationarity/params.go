package stationarity

import (
	"fmt"
	"strings"

	"statclinic/domain/core"
)

// DefaultAlpha is the significance threshold used when none is supplied.
const DefaultAlpha = 0.05

// Params configures one assessment call.
type Params struct {
	// Alpha is the significance threshold, strictly inside (0,1).
	Alpha float64 `json:"alpha"`
	// Regression selects the deterministic terms for the unit-root tests.
	// KPSS narrows it per Regression.ForKPSS.
	Regression Regression `json:"regression"`
	// Detailed switches from a single-configuration assessment to the
	// constant plus constant-trend sweep.
	Detailed bool `json:"detailed"`
	// MaxLags bounds the lag order of the ADF regression. AutoLags lets
	// the routine choose from the sample size.
	MaxLags int `json:"max_lags"`
}

// DefaultParams returns the standard configuration: alpha 0.05, constant
// only, single assessment, automatic lags.
func DefaultParams() Params {
	return Params{
		Alpha:      DefaultAlpha,
		Regression: RegConstant,
		Detailed:   false,
		MaxLags:    AutoLags,
	}
}

// Validate checks the configuration before any test executes, so an
// invalid setup never produces partial computation.
func (p Params) Validate() error {
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return core.NewConfigurationError("alpha", fmt.Sprintf("must be strictly between 0 and 1, got %v", p.Alpha))
	}
	if !p.Regression.Valid() {
		return core.NewConfigurationError("regression", fmt.Sprintf("unrecognized specification %q", p.Regression))
	}
	if p.MaxLags < AutoLags {
		return core.NewConfigurationError("max_lags", fmt.Sprintf("must be non-negative or auto, got %d", p.MaxLags))
	}
	return nil
}

// ParseRegression normalizes a caller-supplied regression label. Both the
// short econometrics codes and the long-form labels are accepted.
func ParseRegression(s string) (Regression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "nc", "no-constant-no-trend":
		return RegNone, nil
	case "c", "constant", "constant-only":
		return RegConstant, nil
	case "ct", "constant_trend", "constant-and-linear-trend":
		return RegConstantTrend, nil
	case "ctt", "constant-linear-and-quadratic-trend":
		return RegQuadraticTrend, nil
	}
	return "", core.NewConfigurationError("regression", fmt.Sprintf("unrecognized specification %q", s))
}
