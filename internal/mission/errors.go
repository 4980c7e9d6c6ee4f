package mission

import (
	"errors"

	"github.com/curbz/flightimpact/internal/model"
)

// Process exit statuses, one per failure kind.
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidArgument
	ExitRangeExceeded
	ExitFuelCapacityExceeded
	ExitMaxTakeoffWeightExceeded
	ExitRangeInfeasible
)

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, model.ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, model.ErrRangeExceeded):
		return ExitRangeExceeded
	case errors.Is(err, model.ErrFuelCapacityExceeded):
		return ExitFuelCapacityExceeded
	case errors.Is(err, model.ErrMaxTakeoffWeightExceeded):
		return ExitMaxTakeoffWeightExceeded
	case errors.Is(err, model.ErrRangeInfeasible):
		return ExitRangeInfeasible
	default:
		return ExitFailure
	}
}
