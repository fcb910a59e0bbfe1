package estimator

import (
	"fmt"
)

// CollaboratorUnavailableError is returned when the cost estimator cannot
// be located or loaded.
type CollaboratorUnavailableError struct {
	Cause error
}

func (e *CollaboratorUnavailableError) Error() string {
	return fmt.Sprintf("Failed to import estimator's noise distributions. "+
		"Ensure dependencies (e.g., Sage) are installed and importable. "+
		"Underlying error: %v", e.Cause)
}

func (e *CollaboratorUnavailableError) Unwrap() error {
	return e.Cause
}

// EstimationError wraps a failure raised by the cost estimator.
type EstimationError struct {
	Cause error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("estimation failed: %v", e.Cause)
}

func (e *EstimationError) Unwrap() error {
	return e.Cause
}
