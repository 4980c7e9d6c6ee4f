package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode is one of the four ICAO landing-and-takeoff operating modes.
type Mode int

const (
	Takeoff Mode = iota
	Climbout
	Approach
	Idle

	NumModes = 4
)

var Modes = [NumModes]Mode{Takeoff, Climbout, Approach, Idle}

func (m Mode) String() string {
	return [...]string{
		"takeoff",
		"climbout",
		"approach",
		"idle",
	}[m]
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown LTO mode %q", ErrInvalidArgument, s)
}

// ModeVector holds one value per LTO mode, indexed by Mode.
type ModeVector [NumModes]float64

func (v ModeVector) At(m Mode) float64 {
	return v[m]
}

func (v ModeVector) Validate(name string) error {
	for _, m := range Modes {
		if v[m] < 0 || v[m] != v[m] {
			return fmt.Errorf("%w: %s[%s] = %v must be >= 0", ErrInvalidArgument, name, m, v[m])
		}
	}
	return nil
}

// Ones is the unit index vector; LTO totals against it give fuel burned.
func Ones() ModeVector {
	return ModeVector{1, 1, 1, 1}
}

// UnmarshalYAML accepts either a mapping keyed by mode name
// ({takeoff: 1.0, climbout: ...}) or a four element sequence in
// takeoff, climbout, approach, idle order.
func (v *ModeVector) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var vals []float64
		if err := node.Decode(&vals); err != nil {
			return err
		}
		if len(vals) != NumModes {
			return fmt.Errorf("%w: line %d: expected %d values, got %d",
				ErrInvalidArgument, node.Line, NumModes, len(vals))
		}
		copy(v[:], vals)
		return nil

	case yaml.MappingNode:
		var vals map[string]float64
		if err := node.Decode(&vals); err != nil {
			return err
		}
		var seen [NumModes]bool
		for k, val := range vals {
			m, err := ParseMode(k)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			if seen[m] {
				return fmt.Errorf("%w: line %d: %s given more than once", ErrInvalidArgument, node.Line, m)
			}
			v[m] = val
			seen[m] = true
		}
		for _, m := range Modes {
			if !seen[m] {
				return fmt.Errorf("%w: line %d: missing %s value", ErrInvalidArgument, node.Line, m)
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: line %d: mode vector must be a mapping or a sequence",
			ErrInvalidArgument, node.Line)
	}
}
