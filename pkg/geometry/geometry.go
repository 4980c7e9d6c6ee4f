package geometry

import (
	"errors"
	"fmt"
	"math"
)

const (
	EarthRadiusM = 6371000.0

	// cruise conditions used to turn Mach into true airspeed
	CruiseTemperatureK = 216.6
	gamma              = 1.4
	gasConstant        = 8.314
	molarMassAir       = 28.97e-3

	// MaxWaypoints bounds the size of a generated track.
	MaxWaypoints = 100000
)

var ErrInvalidArgument = errors.New("invalid argument")

// Point is a position on the Earth in decimal degrees.
type Point struct {
	Lat float64 `yaml:"lat" json:"lat" msgpack:"lat"`
	Lon float64 `yaml:"lon" json:"lon" msgpack:"lon"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidArgument, p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180,180]", ErrInvalidArgument, p.Lon)
	}
	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}

// --- Geometry Helpers ---

func DistNM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 3440.06
	r1, r2 := lat1*math.Pi/180, lat2*math.Pi/180

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	// --- handle dateline crossing ---
	for dLon > math.Pi {
		dLon -= 2 * math.Pi
	}
	for dLon < -math.Pi {
		dLon += 2 * math.Pi
	}

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(r1)*math.Cos(r2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return R * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CentralAngle returns the angular separation in radians between two points
// using the spherical law of cosines.
func CentralAngle(a, b Point) float64 {
	if a == b {
		return 0
	}
	phi0, phi1 := radians(a.Lat), radians(b.Lat)
	dLam := radians(b.Lon - a.Lon)

	c := math.Sin(phi0)*math.Sin(phi1) + math.Cos(phi0)*math.Cos(phi1)*math.Cos(dLam)
	// rounding can push identical or near-identical points just outside acos' domain
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// TrueAirspeed returns the true airspeed in m/s for the given Mach number at
// CruiseTemperatureK.
func TrueAirspeed(mach float64) float64 {
	return mach * math.Sqrt(gamma*gasConstant*CruiseTemperatureK/molarMassAir)
}

// GreatCircleDistanceAndTime returns the great-circle distance in metres
// between origin and destination and the time in seconds to fly it at the
// given cruise Mach number.
func GreatCircleDistanceAndTime(origin, destination Point, mach float64) (float64, float64, error) {
	if err := origin.Validate(); err != nil {
		return 0, 0, fmt.Errorf("origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return 0, 0, fmt.Errorf("destination: %w", err)
	}
	if !(mach > 0 && mach < 1) {
		return 0, 0, fmt.Errorf("%w: mach %v outside (0,1)", ErrInvalidArgument, mach)
	}

	d := EarthRadiusM * CentralAngle(origin, destination)
	return d, d / TrueAirspeed(mach), nil
}

// Waypoints returns n points evenly spaced by angular distance along the
// great circle from start to end, both endpoints included.
func Waypoints(start, end Point, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidArgument, n)
	}
	if n > MaxWaypoints {
		return nil, fmt.Errorf("%w: %d waypoints exceeds limit of %d", ErrInvalidArgument, n, MaxWaypoints)
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	pts := make([]Point, n)

	d := CentralAngle(start, end)
	sinD := math.Sin(d)
	if d < 1e-12 {
		for i := range pts {
			pts[i] = start
		}
		return pts, nil
	}
	if math.Abs(sinD) < 1e-12 {
		return nil, fmt.Errorf("%w: %v and %v are antipodal, great circle is not unique",
			ErrInvalidArgument, start, end)
	}

	phi0, lam0 := radians(start.Lat), radians(start.Lon)
	phi1, lam1 := radians(end.Lat), radians(end.Lon)

	for i := range pts {
		f := float64(i) / float64(n-1)
		A := math.Sin((1-f)*d) / sinD
		B := math.Sin(f*d) / sinD

		x := A*math.Cos(phi0)*math.Cos(lam0) + B*math.Cos(phi1)*math.Cos(lam1)
		y := A*math.Cos(phi0)*math.Sin(lam0) + B*math.Cos(phi1)*math.Sin(lam1)
		z := A*math.Sin(phi0) + B*math.Sin(phi1)

		pts[i] = Point{
			Lat: degrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
			Lon: degrees(math.Atan2(y, x)),
		}
	}
	// pin the endpoints exactly
	pts[0], pts[n-1] = start, end

	return pts, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
