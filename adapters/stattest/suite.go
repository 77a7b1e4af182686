package stattest

import (
	"statclinic/domain/stationarity"
	"statclinic/ports"
)

// NewSuite returns one runner per supported test type, keyed for the
// assessment engine.
func NewSuite() map[stationarity.TestType]ports.StatTestPort {
	return map[stationarity.TestType]ports.StatTestPort{
		stationarity.UnitRootADF:      NewADFRunner(),
		stationarity.StationarityKPSS: NewKPSSRunner(),
		stationarity.UnitRootPP:       NewPPRunner(),
	}
}
