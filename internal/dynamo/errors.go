package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidParameters indicates a malformed sampling spec or a
	// non-finite coefficient, detected before integration begins.
	ErrInvalidParameters = errors.New("dynamo: invalid parameters")

	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum
	// while trying to meet tolerance.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates the step budget was exhausted before reaching
	// the end of the integration window.
	ErrStepBudget = errors.New("dynamo: step budget exhausted")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// IntegrationError wraps a solver failure with the point of failure.
// The partial trajectory is discarded; a truncated series would bias
// any downstream oscillation analysis.
type IntegrationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return e.Wrapped.Error()
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
