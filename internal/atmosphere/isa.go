package atmosphere

import (
	"fmt"
	"math"

	"github.com/curbz/flightimpact/internal/model"
)

// International Standard Atmosphere constants.
const (
	SeaLevelTemperature = 288.15   // K
	SeaLevelPressure    = 101325.0 // Pa
	LapseRate           = 0.0065   // K/m in the troposphere
	TropopauseAltitude  = 11000.0  // m
	TropopausePressure  = 22632.06 // Pa
	MaxAltitude         = 20000.0  // m, top of the isothermal layer

	R       = 287.053 // J/(kg·K), specific gas constant for dry air
	G0      = 9.80665
	FeetToM = 0.3048
)

// Conditions is the static air state at an altitude.
type Conditions struct {
	Altitude    float64 // m
	Temperature float64 // K
	Pressure    float64 // Pa
}

// At returns ISA conditions for an altitude between sea level and 20 km.
func At(altitude float64) (Conditions, error) {
	if altitude < 0 || altitude > MaxAltitude || math.IsNaN(altitude) {
		return Conditions{}, fmt.Errorf("%w: altitude %v m outside ISA model range [0, %v]",
			model.ErrInvalidArgument, altitude, MaxAltitude)
	}

	if altitude <= TropopauseAltitude {
		T := SeaLevelTemperature - LapseRate*altitude
		p := SeaLevelPressure * math.Pow(T/SeaLevelTemperature, G0/(LapseRate*R))
		return Conditions{Altitude: altitude, Temperature: T, Pressure: p}, nil
	}

	T := SeaLevelTemperature - LapseRate*TropopauseAltitude
	p := TropopausePressure * math.Exp(-G0*(altitude-TropopauseAltitude)/(R*T))
	return Conditions{Altitude: altitude, Temperature: T, Pressure: p}, nil
}
