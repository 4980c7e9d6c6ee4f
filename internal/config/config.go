package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/curbz/flightimpact/internal/mission"
	"github.com/curbz/flightimpact/internal/model"
	"github.com/curbz/flightimpact/pkg/geometry"
	"github.com/curbz/flightimpact/pkg/util"
)

type Config struct {
	Aircraft model.AircraftProfile `yaml:"aircraft"`
	Engine   model.EngineProfile   `yaml:"engine"`
	Airports map[string]Airport    `yaml:"airports"`
	Missions []MissionConfig       `yaml:"missions"`

	// single mission shorthand
	OriginLat      *float64 `yaml:"origin_lat"`
	OriginLon      *float64 `yaml:"origin_lon"`
	DestinationLat *float64 `yaml:"destination_lat"`
	DestinationLon *float64 `yaml:"destination_lon"`

	Cruise struct {
		AltitudeM float64 `yaml:"altitude_m"`
		Waypoints int     `yaml:"waypoints"`
	} `yaml:"cruise"`

	Emissions struct {
		FuelSulfurPPM    float64 `yaml:"fuel_sulfur_ppm"`
		SulfurConversion float64 `yaml:"sulfur_conversion_efficiency"`
		Breakpoints      string  `yaml:"bffm2_breakpoints"`
	} `yaml:"emissions"`
}

type Airport struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

func (a Airport) Point() geometry.Point {
	return geometry.Point{Lat: a.Lat, Lon: a.Lon}
}

type MissionConfig struct {
	Name        string   `yaml:"name"`
	Origin      Endpoint `yaml:"origin"`
	Destination Endpoint `yaml:"destination"`
}

// Endpoint is either an ICAO code from the airports table or an inline
// position.
type Endpoint struct {
	ICAO  string
	Point *geometry.Point
}

func (e *Endpoint) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.Point = nil
		return node.Decode(&e.ICAO)
	case yaml.MappingNode:
		var p geometry.Point
		if err := node.Decode(&p); err != nil {
			return err
		}
		e.ICAO, e.Point = "", &p
		return nil
	default:
		return fmt.Errorf("%w: line %d: endpoint must be an ICAO code or {lat, lon}",
			model.ErrInvalidArgument, node.Line)
	}
}

func (e Endpoint) String() string {
	if e.Point != nil {
		return e.Point.String()
	}
	return strings.ToUpper(e.ICAO)
}

var defaults = Config{
	Aircraft: model.AircraftProfile{
		Name:               "Airbus A321neo",
		MaxTakeoffMass:     97000,
		FuelCapacity:       26300,
		CruiseMach:         0.78,
		RangeKm:            7400,
		CruiseCeilingFt:    40000,
		Seating:            206,
		CruiseLtoD:         20,
		OperatingEmptyMass: 50100,
		PassengerMass:      100,
	},
	Engine: model.EngineProfile{
		Name:               "PW1133G-JM",
		EnginesPerAircraft: 2,
		FuelFlow: model.ModeVector{
			model.Takeoff: 1.023, model.Climbout: 0.839, model.Approach: 0.279, model.Idle: 0.099,
		},
		EINOx: model.ModeVector{
			model.Takeoff: 28.88, model.Climbout: 22.01, model.Approach: 10.79, model.Idle: 5.74,
		},
		EINvPMMass: model.ModeVector{
			model.Takeoff: 37.7, model.Climbout: 31.4, model.Approach: 0.4, model.Idle: 2.7,
		},
		EINvPMNumber: model.ModeVector{
			model.Takeoff: 3.12e14, model.Climbout: 4.01e14, model.Approach: 4.07e13, model.Idle: 3.25e14,
		},
	},
	Airports: map[string]Airport{
		"EGLL": {Name: "London Heathrow", Lat: 51.4775, Lon: -0.461389},
		"KBOS": {Name: "Boston Logan", Lat: 42.363056, Lon: -71.006389},
	},
}

func init() {
	o := mission.DefaultOptions()
	defaults.Cruise.AltitudeM = o.CruiseAltitude
	defaults.Cruise.Waypoints = o.Waypoints
	defaults.Emissions.FuelSulfurPPM = o.FuelSulfurPPM
	defaults.Emissions.SulfurConversion = o.SulfurConversion
	defaults.Emissions.Breakpoints = string(o.Breakpoints)
}

// DefaultMission is flown when the configuration names no missions.
var DefaultMission = MissionConfig{
	Name:        "EGLL-KBOS",
	Origin:      Endpoint{ICAO: "EGLL"},
	Destination: Endpoint{ICAO: "KBOS"},
}

// Defaults returns a fresh copy of the built-in configuration.
func Defaults() *Config {
	return util.Snapshot(&defaults)
}

// Load reads path over the built-in defaults; fields the file leaves out
// keep their default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	cfg, err := util.LoadConfigOver(path, &defaults)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Options() mission.Options {
	return mission.Options{
		CruiseAltitude:   c.Cruise.AltitudeM,
		Waypoints:        c.Cruise.Waypoints,
		FuelSulfurPPM:    c.Emissions.FuelSulfurPPM,
		SulfurConversion: c.Emissions.SulfurConversion,
		Breakpoints:      mission.BreakpointSource(c.Emissions.Breakpoints),
	}
}

// Validate checks the profiles and every mission the configuration
// describes.
func (c *Config) Validate() error {
	missions, err := c.Resolve()
	if err != nil {
		return err
	}
	for _, m := range missions {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mission %s: %w", m.Name, err)
		}
	}
	return nil
}

// Resolve turns the configuration into missions. The top-level
// origin/destination coordinates, when present, add one mission ahead of
// the list. With neither, DefaultMission is used. Mission names must be
// unique.
func (c *Config) Resolve() ([]mission.Mission, error) {
	var mcs []MissionConfig

	if sc, ok, err := c.shorthand(); err != nil {
		return nil, err
	} else if ok {
		mcs = append(mcs, sc)
	}
	mcs = append(mcs, c.Missions...)
	if len(mcs) == 0 {
		mcs = append(mcs, DefaultMission)
	}

	opts := c.Options()
	out := make([]mission.Mission, 0, len(mcs))
	names := make(map[string]int, len(mcs))
	for i, mc := range mcs {
		origin, err := c.resolve(mc.Origin)
		if err != nil {
			return nil, fmt.Errorf("mission %d origin: %w", i+1, err)
		}
		dest, err := c.resolve(mc.Destination)
		if err != nil {
			return nil, fmt.Errorf("mission %d destination: %w", i+1, err)
		}
		name := mc.Name
		if name == "" {
			name = mc.Origin.String() + "-" + mc.Destination.String()
		}
		if prev, ok := names[name]; ok {
			return nil, fmt.Errorf("%w: missions %d and %d are both named %q",
				model.ErrInvalidArgument, prev, i+1, name)
		}
		names[name] = i + 1
		out = append(out, mission.Mission{
			Name:        name,
			Aircraft:    c.Aircraft,
			Engine:      c.Engine,
			Origin:      origin,
			Destination: dest,
			Options:     opts,
		})
	}
	return out, nil
}

func (c *Config) shorthand() (MissionConfig, bool, error) {
	set := 0
	for _, f := range []*float64{c.OriginLat, c.OriginLon, c.DestinationLat, c.DestinationLon} {
		if f != nil {
			set++
		}
	}
	switch set {
	case 0:
		return MissionConfig{}, false, nil
	case 4:
		return MissionConfig{
			Origin:      Endpoint{Point: &geometry.Point{Lat: *c.OriginLat, Lon: *c.OriginLon}},
			Destination: Endpoint{Point: &geometry.Point{Lat: *c.DestinationLat, Lon: *c.DestinationLon}},
		}, true, nil
	default:
		return MissionConfig{}, false, fmt.Errorf("%w: origin_lat, origin_lon, destination_lat and destination_lon must be given together",
			model.ErrInvalidArgument)
	}
}

func (c *Config) resolve(e Endpoint) (geometry.Point, error) {
	if e.Point != nil {
		return *e.Point, e.Point.Validate()
	}
	if e.ICAO == "" {
		return geometry.Point{}, fmt.Errorf("%w: missing airport", model.ErrInvalidArgument)
	}
	ap, ok := c.Airports[e.ICAO]
	if !ok {
		ap, ok = c.Airports[strings.ToUpper(e.ICAO)]
	}
	if !ok {
		return geometry.Point{}, fmt.Errorf("%w: unknown airport %q", model.ErrInvalidArgument, e.ICAO)
	}
	p := ap.Point()
	if err := p.Validate(); err != nil {
		return geometry.Point{}, fmt.Errorf("airport %s: %w", e.ICAO, err)
	}
	return p, nil
}

// Route replaces the configured missions with a single flight between two
// airports from the airports table.
func (c *Config) Route(from, to string) {
	c.OriginLat, c.OriginLon, c.DestinationLat, c.DestinationLon = nil, nil, nil, nil
	c.Missions = []MissionConfig{{
		Origin:      Endpoint{ICAO: from},
		Destination: Endpoint{ICAO: to},
	}}
}
