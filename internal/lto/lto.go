package lto

import (
	"fmt"

	"github.com/curbz/flightimpact/internal/model"
)

// DwellTimes are the ICAO reference times in mode, in seconds.
var DwellTimes = model.ModeVector{
	model.Takeoff:  42,
	model.Climbout: 132,
	model.Approach: 240,
	model.Idle:     1560,
}

// Total integrates index × fuel flow × time in mode over the LTO cycle and
// multiplies by enginesPerAircraft. The result carries the index units
// times kg (fuel flow is kg/s). With model.Ones() as the index it is the
// LTO fuel burn in kg.
func Total(index, fuelFlow model.ModeVector, enginesPerAircraft int) (float64, error) {
	if enginesPerAircraft < 1 {
		return 0, fmt.Errorf("%w: engines per aircraft must be >= 1, got %d",
			model.ErrInvalidArgument, enginesPerAircraft)
	}

	var sum float64
	for _, m := range model.Modes {
		sum += fuelFlow.At(m) * index.At(m) * DwellTimes.At(m)
	}
	return sum * float64(enginesPerAircraft), nil
}

// Emissions returns the LTO fuel burn and pollutant totals for an engine
// installation.
func Emissions(e model.EngineProfile) (model.Emissions, error) {
	fuel, err := Total(model.Ones(), e.FuelFlow, e.EnginesPerAircraft)
	if err != nil {
		return model.Emissions{}, err
	}
	nox, err := Total(e.EINOx, e.FuelFlow, e.EnginesPerAircraft)
	if err != nil {
		return model.Emissions{}, err
	}
	mass, err := Total(e.EINvPMMass, e.FuelFlow, e.EnginesPerAircraft)
	if err != nil {
		return model.Emissions{}, err
	}
	number, err := Total(e.EINvPMNumber, e.FuelFlow, e.EnginesPerAircraft)
	if err != nil {
		return model.Emissions{}, err
	}

	return model.Emissions{
		Fuel:       fuel,
		NOx:        nox / 1000,  // g -> kg
		NvPMMass:   mass / 1000, // mg -> g
		NvPMNumber: number,
	}, nil
}
