package model

import (
	"fmt"

	"github.com/curbz/flightimpact/pkg/geometry"
)

// AircraftProfile describes the airframe. Masses are in kg.
type AircraftProfile struct {
	Name               string  `yaml:"name"`
	MaxTakeoffMass     float64 `yaml:"max_takeoff_weight"`
	FuelCapacity       float64 `yaml:"fuel_capacity"`
	CruiseMach         float64 `yaml:"cruise_mach"`
	RangeKm            float64 `yaml:"range_km"`
	CruiseCeilingFt    float64 `yaml:"cruise_ceiling_ft"`
	Seating            int     `yaml:"seating"`
	CruiseLtoD         float64 `yaml:"cruise_L_over_D"`
	OperatingEmptyMass float64 `yaml:"operating_empty_mass"`
	PassengerMass      float64 `yaml:"passenger_mass"`
}

// InitialMass is the operating empty mass plus a full passenger payload.
func (a AircraftProfile) InitialMass() float64 {
	return a.OperatingEmptyMass + float64(a.Seating)*a.PassengerMass
}

func (a AircraftProfile) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"max_takeoff_weight", a.MaxTakeoffMass},
		{"fuel_capacity", a.FuelCapacity},
		{"range_km", a.RangeKm},
		{"cruise_L_over_D", a.CruiseLtoD},
		{"operating_empty_mass", a.OperatingEmptyMass},
		{"cruise_ceiling_ft", a.CruiseCeilingFt},
	} {
		if !(f.v > 0) {
			return fmt.Errorf("%w: aircraft %s must be > 0, got %v", ErrInvalidArgument, f.name, f.v)
		}
	}
	if a.PassengerMass < 0 {
		return fmt.Errorf("%w: aircraft passenger_mass must be >= 0", ErrInvalidArgument)
	}
	if a.Seating < 0 {
		return fmt.Errorf("%w: aircraft seating must be >= 0", ErrInvalidArgument)
	}
	if !(a.CruiseMach > 0 && a.CruiseMach < 1) {
		return fmt.Errorf("%w: aircraft cruise_mach %v outside (0,1)", ErrInvalidArgument, a.CruiseMach)
	}
	return nil
}

// EngineProfile holds the ICAO certification data for one engine. Fuel
// flow is kg/s, EINOx g/kg, EI nvPM mass mg/kg and EI nvPM number #/kg.
type EngineProfile struct {
	Name               string     `yaml:"name"`
	EnginesPerAircraft int        `yaml:"engines_per_aircraft"`
	FuelFlow           ModeVector `yaml:"fuel_flow"`
	EINOx              ModeVector `yaml:"EI_NOx"`
	EINvPMMass         ModeVector `yaml:"EI_nvpm_mass"`
	EINvPMNumber       ModeVector `yaml:"EI_nvpm_number"`
}

func (e EngineProfile) Validate() error {
	if e.EnginesPerAircraft < 1 {
		return fmt.Errorf("%w: engines_per_aircraft must be >= 1, got %d", ErrInvalidArgument, e.EnginesPerAircraft)
	}
	for _, f := range []struct {
		name string
		v    ModeVector
	}{
		{"fuel_flow", e.FuelFlow},
		{"EI_NOx", e.EINOx},
		{"EI_nvpm_mass", e.EINvPMMass},
		{"EI_nvpm_number", e.EINvPMNumber},
	} {
		if err := f.v.Validate(f.name); err != nil {
			return err
		}
	}
	return nil
}

// Emissions for one flight phase. Fuel, CO2, H2O, SO2, H2SO4 and NOx are
// in kg, NvPMMass in g and NvPMNumber a particle count.
type Emissions struct {
	Fuel       float64
	CO2        float64
	H2O        float64
	SO2        float64
	H2SO4      float64
	NOx        float64
	NvPMMass   float64
	NvPMNumber float64
}

// MissionResult is the outcome of one mission run. It is not modified
// once returned.
type MissionResult struct {
	Name        string
	Origin      geometry.Point
	Destination geometry.Point

	CruiseDistance   float64 // m
	CruiseDistanceNM float64
	CruiseTime       float64 // s
	CruiseAltitude   float64 // m

	InitialMass float64
	TakeoffMass float64

	// cruise-average per-engine fuel flow and its BFFM2 corrected value, kg/s
	CruiseFuelFlow    float64
	CorrectedFuelFlow float64

	// altitude-corrected indices used for the cruise phase
	EINOx        float64
	EINvPMMass   float64
	EINvPMNumber float64

	LTO    Emissions
	Cruise Emissions

	Track []geometry.Point
}
