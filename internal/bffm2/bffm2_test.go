package bffm2

import (
	"errors"
	"math"
	"testing"

	"github.com/curbz/flightimpact/internal/model"
)

var (
	fuelFlow = model.ModeVector{1.023, 0.839, 0.279, 0.099}
	eiNOx    = model.ModeVector{28.88, 22.01, 10.79, 5.74}
	eiMass   = model.ModeVector{37.7, 31.4, 0.4, 2.7}
	eiNumber = model.ModeVector{3.12e14, 4.01e14, 4.07e13, 3.25e14}

	// ISA 11,000 m, Mach 0.78
	cruise = Conditions{Mach: 0.78, Temperature: 216.65, Pressure: 22632.06}
)

func within(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}

func TestCorrectedFuelFlow(t *testing.T) {
	if got := CorrectedFuelFlow(cruise, 1); !within(got, 1.71068, 1e-4) {
		t.Errorf("got %.5f, expected 1.71068", got)
	}

	sl := Conditions{Mach: 0.5, Temperature: ReferenceTemperature, Pressure: ReferencePressure}
	if got := CorrectedFuelFlow(sl, 0.5); !within(got, 0.5*math.Exp(0.05), 1e-12) {
		t.Errorf("sea level: got %v", got)
	}
}

func TestFactors(t *testing.T) {
	if f := NOxFactor(cruise); !within(f, 0.84013, 1e-4) {
		t.Errorf("NOx factor %.5f", f)
	}
	if f := NvPMFactor(cruise); !within(f, 1.80001, 1e-4) {
		t.Errorf("nvPM factor %.5f", f)
	}
	// reference conditions leave nvPM unchanged and NOx scaled by the humidity term only
	ref := Conditions{Mach: 0.5, Temperature: ReferenceTemperature, Pressure: ReferencePressure}
	if f := NvPMFactor(ref); !within(f, 1, 1e-12) {
		t.Errorf("reference nvPM factor %v", f)
	}
	if f := NOxFactor(ref); !within(f, math.Exp(H), 1e-12) {
		t.Errorf("reference NOx factor %v", f)
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"at takeoff", 1.023, 28.88},
		{"at idle", 0.099, 5.74},
		{"at approach", 0.279, 10.79},
		{"midway approach-climbout", (0.279 + 0.839) / 2, (10.79 + 22.01) / 2},
		{"quarter climbout-takeoff", 0.839 + 0.25*(1.023-0.839), 22.01 + 0.25*(28.88-22.01)},
		{"above takeoff clamps", 5, 28.88},
		{"below idle clamps", 0.01, 5.74},
		{"negative clamps", -1, 5.74},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Interpolate(fuelFlow, eiNOx, tc.x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !within(got, tc.want, 1e-12) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInterpolateIncreasingBreakpoints(t *testing.T) {
	dwell := model.ModeVector{42, 132, 240, 1560}
	got, err := Interpolate(dwell, eiNOx, 87)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !within(got, (28.88+22.01)/2, 1e-12) {
		t.Errorf("got %v", got)
	}
	// any realistic fuel flow is far below the first dwell time
	if got, _ := Interpolate(dwell, eiNOx, 0.6); got != 28.88 {
		t.Errorf("got %v, expected clamp to takeoff value", got)
	}
}

func TestInterpolateInvalid(t *testing.T) {
	for _, bp := range []model.ModeVector{
		{1, 3, 2, 4},
		{1, 1, 2, 3},
		{0.5, 0.5, 0.5, 0.5},
		{4, 3, 3, 1},
	} {
		if _, err := Interpolate(bp, eiNOx, 2); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("breakpoints %v: expected ErrInvalidArgument, got %v", bp, err)
		}
	}
	if _, err := Interpolate(fuelFlow, eiNOx, math.NaN()); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("NaN x: expected ErrInvalidArgument, got %v", err)
	}
}

func TestNOxAtAltitude(t *testing.T) {
	ff := 0.35
	got, err := NOxAtAltitude(eiNOx, fuelFlow, cruise, ff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sl, _ := Interpolate(fuelFlow, eiNOx, CorrectedFuelFlow(cruise, ff))
	if !within(got, sl*NOxFactor(cruise), 1e-12) {
		t.Errorf("got %v, want %v", got, sl*NOxFactor(cruise))
	}

	// round trip back to the sea-level index
	if back := SeaLevelNOx(cruise, got); !within(back, sl, 1e-12) {
		t.Errorf("round trip: got %v, want %v", back, sl)
	}
}

func TestNvPMAtAltitude(t *testing.T) {
	ff := 0.35
	mass, number, err := NvPMAtAltitude(eiMass, eiNumber, fuelFlow, cruise, ff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cff := CorrectedFuelFlow(cruise, ff)
	slMass, _ := Interpolate(fuelFlow, eiMass, cff)
	slNumber, _ := Interpolate(fuelFlow, eiNumber, cff)

	if back := SeaLevelNvPM(cruise, mass); !within(back, slMass, 1e-12) {
		t.Errorf("mass round trip: got %v, want %v", back, slMass)
	}
	if back := SeaLevelNvPM(cruise, number); !within(back, slNumber, 1e-12) {
		t.Errorf("number round trip: got %v, want %v", back, slNumber)
	}
	if !(mass > slMass) {
		t.Errorf("nvPM mass index should grow at altitude: %v <= %v", mass, slMass)
	}
}

func TestInvalidConditions(t *testing.T) {
	for _, c := range []Conditions{
		{Mach: 0, Temperature: 216, Pressure: 22000},
		{Mach: 0.8, Temperature: 0, Pressure: 22000},
		{Mach: 0.8, Temperature: 216, Pressure: -1},
	} {
		if _, err := NOxAtAltitude(eiNOx, fuelFlow, c, 0.3); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("%+v: NOx expected ErrInvalidArgument, got %v", c, err)
		}
		if _, _, err := NvPMAtAltitude(eiMass, eiNumber, fuelFlow, c, 0.3); !errors.Is(err, model.ErrInvalidArgument) {
			t.Errorf("%+v: nvPM expected ErrInvalidArgument, got %v", c, err)
		}
	}
	if _, err := NOxAtAltitude(eiNOx, model.ModeVector{1, 2, 1, 2}, cruise, 0.3); !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("non-monotonic breakpoints: expected ErrInvalidArgument, got %v", err)
	}
}
