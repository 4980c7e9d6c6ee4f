// Package bffm2 corrects sea-level emissions indices to cruise conditions
// with the Boeing Fuel Flow Method 2.
package bffm2

import (
	"fmt"
	"math"

	"github.com/curbz/flightimpact/internal/model"
)

const (
	ReferenceTemperature = 288.15   // K
	ReferencePressure    = 101325.0 // Pa

	// humidity correction exponent
	H = 19 * 0.0063
)

// Conditions are the flight conditions the indices are corrected to.
type Conditions struct {
	Mach        float64
	Temperature float64 // K
	Pressure    float64 // Pa
}

func (c Conditions) Theta() float64 {
	return c.Temperature / ReferenceTemperature
}

func (c Conditions) Delta() float64 {
	return c.Pressure / ReferencePressure
}

func (c Conditions) Validate() error {
	if !(c.Mach > 0 && c.Mach < 1) {
		return fmt.Errorf("%w: mach %v outside (0,1)", model.ErrInvalidArgument, c.Mach)
	}
	if !(c.Temperature > 0) || !(c.Pressure > 0) {
		return fmt.Errorf("%w: temperature %v K and pressure %v Pa must be > 0",
			model.ErrInvalidArgument, c.Temperature, c.Pressure)
	}
	return nil
}

// CorrectedFuelFlow maps an in-flight fuel flow (kg/s) to its sea-level
// equivalent.
func CorrectedFuelFlow(c Conditions, fuelFlow float64) float64 {
	return fuelFlow * (math.Pow(c.Theta(), 3.8) / c.Delta()) * math.Exp(0.2*c.Mach*c.Mach)
}

// NOxFactor scales a sea-level NOx index to altitude.
func NOxFactor(c Conditions) float64 {
	return math.Sqrt(math.Pow(c.Delta(), 1.02)/math.Pow(c.Theta(), 3.3)) * math.Exp(H)
}

// NvPMFactor scales sea-level nvPM mass and number indices to altitude.
// The exponents are inverted relative to NOxFactor.
func NvPMFactor(c Conditions) float64 {
	return math.Pow(c.Theta(), 3.3) / math.Pow(c.Delta(), 1.02)
}

// SeaLevelNOx undoes NOxFactor.
func SeaLevelNOx(c Conditions, ei float64) float64 {
	return ei / NOxFactor(c)
}

// SeaLevelNvPM undoes NvPMFactor.
func SeaLevelNvPM(c Conditions, ei float64) float64 {
	return ei / NvPMFactor(c)
}

// Interpolate linearly interpolates values at x against breakpoints.
// Breakpoints must be strictly monotonic in either direction; x outside
// their range is clamped to the nearest end.
func Interpolate(breakpoints, values model.ModeVector, x float64) (float64, error) {
	if math.IsNaN(x) {
		return 0, fmt.Errorf("%w: interpolation point is NaN", model.ErrInvalidArgument)
	}

	xs, ys := breakpoints, values
	switch {
	case increasing(xs):
	case increasing(reverse(xs)):
		xs, ys = reverse(xs), reverse(ys)
	default:
		return 0, fmt.Errorf("%w: breakpoints %v are not strictly monotonic", model.ErrInvalidArgument, breakpoints)
	}

	if x <= xs[0] {
		return ys[0], nil
	}
	last := model.NumModes - 1
	if x >= xs[last] {
		return ys[last], nil
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			f := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + f*(ys[i]-ys[i-1]), nil
		}
	}
	// unreachable: x < xs[last]
	return ys[last], nil
}

// NOxAtAltitude returns the NOx emissions index (same units as index) at
// the given conditions for an in-flight fuel flow in kg/s.
func NOxAtAltitude(index, breakpoints model.ModeVector, c Conditions, fuelFlow float64) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	ei, err := Interpolate(breakpoints, index, CorrectedFuelFlow(c, fuelFlow))
	if err != nil {
		return 0, err
	}
	return ei * NOxFactor(c), nil
}

// NvPMAtAltitude returns the nvPM mass and number indices at the given
// conditions for an in-flight fuel flow in kg/s.
func NvPMAtAltitude(mass, number, breakpoints model.ModeVector, c Conditions, fuelFlow float64) (float64, float64, error) {
	if err := c.Validate(); err != nil {
		return 0, 0, err
	}
	ff := CorrectedFuelFlow(c, fuelFlow)
	eiMass, err := Interpolate(breakpoints, mass, ff)
	if err != nil {
		return 0, 0, err
	}
	eiNumber, err := Interpolate(breakpoints, number, ff)
	if err != nil {
		return 0, 0, err
	}

	f := NvPMFactor(c)
	return eiMass * f, eiNumber * f, nil
}

func increasing(v model.ModeVector) bool {
	for i := 1; i < len(v); i++ {
		if !(v[i] > v[i-1]) {
			return false
		}
	}
	return true
}

func reverse(v model.ModeVector) model.ModeVector {
	var r model.ModeVector
	for i := range v {
		r[len(v)-1-i] = v[i]
	}
	return r
}
