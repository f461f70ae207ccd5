package marquee

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrCollectionNotFound is returned when a collection the frontend must
	// show has no directory under collections/.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrNoLauncher indicates the selected item's collection names no
	// launcher, or the launcher has no executable.
	ErrNoLauncher = errors.New("no launcher configured")
)

// InfrastructureError represents a frontend-level failure (SDL could not
// start, the window could not open, a required config file is missing).
// These errors end the run loop.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "init_sdl", "load_controls")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marquee: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("marquee: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
