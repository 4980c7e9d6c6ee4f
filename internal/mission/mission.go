package mission

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/curbz/flightimpact/internal/atmosphere"
	"github.com/curbz/flightimpact/internal/bffm2"
	"github.com/curbz/flightimpact/internal/cruise"
	"github.com/curbz/flightimpact/internal/lto"
	"github.com/curbz/flightimpact/internal/model"
	"github.com/curbz/flightimpact/pkg/geometry"
)

// combustion products per kg of fuel burned
const (
	EICO2 = 3.16
	EIH2O = 1.24

	molarMassS     = 32.065
	molarMassSO2   = 64.066
	molarMassH2SO4 = 98.079
)

type BreakpointSource string

const (
	FuelFlowBreakpoints  BreakpointSource = "fuel_flow"
	DwellTimeBreakpoints BreakpointSource = "dwell_time"
)

type Options struct {
	CruiseAltitude   float64 // m
	Waypoints        int     // 0 disables the track
	FuelSulfurPPM    float64
	SulfurConversion float64 // fraction of fuel sulfur converted to H2SO4
	Breakpoints      BreakpointSource
}

func DefaultOptions() Options {
	return Options{
		CruiseAltitude:   11000,
		FuelSulfurPPM:    600,
		SulfurConversion: 0.02,
		Breakpoints:      FuelFlowBreakpoints,
	}
}

// Mission is a single point-to-point flight of one aircraft/engine pair.
type Mission struct {
	Name        string
	Aircraft    model.AircraftProfile
	Engine      model.EngineProfile
	Origin      geometry.Point
	Destination geometry.Point
	Options     Options
}

func (m Mission) Validate() error {
	if err := m.Aircraft.Validate(); err != nil {
		return err
	}
	if err := m.Engine.Validate(); err != nil {
		return err
	}
	o := m.Options
	if ceiling := m.Aircraft.CruiseCeilingFt * atmosphere.FeetToM; o.CruiseAltitude > ceiling {
		return fmt.Errorf("%w: cruise altitude %.0f m is above the %.0f ft service ceiling",
			model.ErrInvalidArgument, o.CruiseAltitude, m.Aircraft.CruiseCeilingFt)
	}
	if o.Waypoints != 0 && o.Waypoints < 2 {
		return fmt.Errorf("%w: waypoints must be 0 or >= 2, got %d", model.ErrInvalidArgument, o.Waypoints)
	}
	if o.FuelSulfurPPM < 0 || o.SulfurConversion < 0 || o.SulfurConversion > 1 {
		return fmt.Errorf("%w: fuel sulfur %v ppm / conversion %v out of range",
			model.ErrInvalidArgument, o.FuelSulfurPPM, o.SulfurConversion)
	}
	if _, err := m.breakpoints(); err != nil {
		return err
	}
	return nil
}

func (m Mission) breakpoints() (model.ModeVector, error) {
	switch m.Options.Breakpoints {
	case FuelFlowBreakpoints, "":
		return m.Engine.FuelFlow, nil
	case DwellTimeBreakpoints:
		return lto.DwellTimes, nil
	default:
		return model.ModeVector{}, fmt.Errorf("%w: unknown BFFM2 breakpoint source %q",
			model.ErrInvalidArgument, m.Options.Breakpoints)
	}
}

// Run computes the LTO and cruise emissions for m. Constraint violations
// (range, fuel capacity, takeoff weight) stop the run before any cruise
// emissions are computed.
func Run(m Mission, lg logrus.FieldLogger) (*model.MissionResult, error) {
	if lg == nil {
		lg = discard()
	}
	lg = lg.WithField("mission", m.Name)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	ac, eng := m.Aircraft, m.Engine

	ltoEmissions, err := lto.Emissions(eng)
	if err != nil {
		return nil, err
	}
	lg.WithFields(logrus.Fields{"fuel_kg": ltoEmissions.Fuel, "nox_kg": ltoEmissions.NOx}).Debug("LTO cycle totals")

	distance, duration, err := geometry.GreatCircleDistanceAndTime(m.Origin, m.Destination, ac.CruiseMach)
	if err != nil {
		return nil, err
	}
	lg.WithFields(logrus.Fields{"distance_m": distance, "time_s": duration}).Debug("great circle")

	if distance > ac.RangeKm*1000 {
		lg.WithField("distance_km", distance/1000).Warn("range exceeded")
		return nil, fmt.Errorf("%w: %s great-circle distance %.0f km exceeds certified range %.0f km",
			model.ErrRangeExceeded, ac.Name, distance/1000, ac.RangeKm)
	}

	initialMass := ac.InitialMass()
	cruiseFuel, err := cruise.FuelBurn(ac.CruiseLtoD, distance, initialMass)
	if err != nil {
		lg.WithError(err).Warn("cruise fuel")
		return nil, err
	}
	if cruiseFuel > ac.FuelCapacity {
		lg.WithField("cruise_fuel_kg", cruiseFuel).Warn("fuel capacity exceeded")
		return nil, fmt.Errorf("%w: %s needs %.0f kg of cruise fuel, tank capacity is %.0f kg",
			model.ErrFuelCapacityExceeded, ac.Name, cruiseFuel, ac.FuelCapacity)
	}

	takeoffMass := initialMass + ltoEmissions.Fuel + cruiseFuel
	if takeoffMass > ac.MaxTakeoffMass {
		lg.WithField("takeoff_mass_kg", takeoffMass).Warn("max takeoff weight exceeded")
		return nil, fmt.Errorf("%w: %s takeoff mass %.0f kg exceeds %.0f kg",
			model.ErrMaxTakeoffWeightExceeded, ac.Name, takeoffMass, ac.MaxTakeoffMass)
	}

	air, err := atmosphere.At(m.Options.CruiseAltitude)
	if err != nil {
		return nil, err
	}
	cond := bffm2.Conditions{Mach: ac.CruiseMach, Temperature: air.Temperature, Pressure: air.Pressure}

	var fuelFlow float64
	if duration > 0 {
		fuelFlow = cruiseFuel / duration / float64(eng.EnginesPerAircraft)
	}
	bp, _ := m.breakpoints()
	eiNOx, err := bffm2.NOxAtAltitude(eng.EINOx, bp, cond, fuelFlow)
	if err != nil {
		return nil, err
	}
	eiMass, eiNumber, err := bffm2.NvPMAtAltitude(eng.EINvPMMass, eng.EINvPMNumber, bp, cond, fuelFlow)
	if err != nil {
		return nil, err
	}

	res := &model.MissionResult{
		Name:              m.Name,
		Origin:            m.Origin,
		Destination:       m.Destination,
		CruiseDistance:    distance,
		CruiseDistanceNM:  geometry.DistNM(m.Origin.Lat, m.Origin.Lon, m.Destination.Lat, m.Destination.Lon),
		CruiseTime:        duration,
		CruiseAltitude:    air.Altitude,
		InitialMass:       initialMass,
		TakeoffMass:       takeoffMass,
		CruiseFuelFlow:    fuelFlow,
		CorrectedFuelFlow: bffm2.CorrectedFuelFlow(cond, fuelFlow),
		EINOx:             eiNOx,
		EINvPMMass:        eiMass,
		EINvPMNumber:      eiNumber,
		LTO:               ltoEmissions,
		Cruise:            cruiseEmissions(cruiseFuel, eiNOx, eiMass, eiNumber, m.Options),
	}

	if m.Options.Waypoints > 0 {
		res.Track, err = geometry.Waypoints(m.Origin, m.Destination, m.Options.Waypoints)
		if err != nil {
			return nil, err
		}
	}

	lg.WithFields(logrus.Fields{
		"cruise_fuel_kg":  cruiseFuel,
		"takeoff_mass_kg": takeoffMass,
		"ei_nox":          eiNOx,
	}).Info("mission complete")

	return res, nil
}

// cruiseEmissions converts indices to phase totals. EINOx is g/kg, nvPM
// mass mg/kg and nvPM number #/kg.
func cruiseEmissions(fuel, eiNOx, eiMass, eiNumber float64, o Options) model.Emissions {
	fsc := o.FuelSulfurPPM * 1e-6
	return model.Emissions{
		Fuel:       fuel,
		CO2:        EICO2 * fuel,
		H2O:        EIH2O * fuel,
		SO2:        fsc * (1 - o.SulfurConversion) * molarMassSO2 / molarMassS * fuel,
		H2SO4:      fsc * o.SulfurConversion * molarMassH2SO4 / molarMassS * fuel,
		NOx:        eiNOx * fuel / 1000,
		NvPMMass:   eiMass * fuel / 1000,
		NvPMNumber: eiNumber * fuel,
	}
}

// Outcome pairs a mission with its result or the error that stopped it.
type Outcome struct {
	Mission Mission
	Result  *model.MissionResult
	Err     error
}

// RunAll runs independent missions concurrently. Outcomes are returned in
// the order of missions; a failed mission does not stop the others.
func RunAll(ctx context.Context, missions []Mission, lg logrus.FieldLogger) []Outcome {
	out := make([]Outcome, len(missions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, m := range missions {
		i, m := i, m
		out[i].Mission = m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Result, out[i].Err = Run(m, lg)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
