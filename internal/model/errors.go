package model

import (
	"errors"

	"github.com/curbz/flightimpact/pkg/geometry"
)

var (
	// ErrInvalidArgument is shared with the geometry package so that
	// errors.Is matches malformed input from either layer.
	ErrInvalidArgument          = geometry.ErrInvalidArgument
	ErrRangeExceeded            = errors.New("range exceeded")
	ErrFuelCapacityExceeded     = errors.New("fuel capacity exceeded")
	ErrMaxTakeoffWeightExceeded = errors.New("max takeoff weight exceeded")
	ErrRangeInfeasible          = errors.New("range infeasible")
)
