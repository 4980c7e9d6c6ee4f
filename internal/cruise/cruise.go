package cruise

import (
	"fmt"
	"math"

	"github.com/curbz/flightimpact/internal/model"
)

const (
	Gravity = 9.81   // m/s^2
	LHV     = 43.1e6 // J/kg, fuel lower heating value
	Eta0    = 0.3    // overall propulsive efficiency
	Reserve = 0.10   // fraction of cruise fuel carried as reserve
)

// FuelBurn returns the fuel mass in kg needed to cruise distance metres
// at the given lift-to-drag ratio, starting from initialMass kg, using the
// Breguet range relation with a reserve-fuel correction.
//
// The required fuel grows without bound as the distance approaches the
// aircraft's theoretical range; past that point ErrRangeInfeasible is
// returned.
func FuelBurn(LtoD, distance, initialMass float64) (float64, error) {
	if !(LtoD > 0) {
		return 0, fmt.Errorf("%w: lift-to-drag ratio must be > 0, got %v", model.ErrInvalidArgument, LtoD)
	}
	if !(initialMass > 0) {
		return 0, fmt.Errorf("%w: initial mass must be > 0, got %v", model.ErrInvalidArgument, initialMass)
	}
	if distance < 0 || math.IsNaN(distance) {
		return 0, fmt.Errorf("%w: distance must be >= 0, got %v", model.ErrInvalidArgument, distance)
	}

	k := math.Expm1(Coefficient(LtoD) * distance)
	denom := 1 - Reserve*k
	if denom <= 0 || math.IsInf(k, 1) {
		return 0, fmt.Errorf("%w: %.0f km at L/D %v is beyond the theoretical range of %.0f km",
			model.ErrRangeInfeasible, distance/1000, LtoD, MaxDistance(LtoD)/1000)
	}
	return initialMass * k / denom, nil
}

// Coefficient is g / (L/D · LHV · η0), in 1/m.
func Coefficient(LtoD float64) float64 {
	return Gravity / (LtoD * LHV * Eta0)
}

// MaxDistance is the distance in metres at which FuelBurn's denominator
// reaches zero.
func MaxDistance(LtoD float64) float64 {
	return math.Log1p(1/Reserve) / Coefficient(LtoD)
}
