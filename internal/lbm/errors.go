package lbm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports grid dimensions or options that cannot be run.
	ErrInvalidConfig = errors.New("lbm: invalid configuration")
	// ErrInvalidRelaxation reports a relaxation rate outside (0, 2).
	ErrInvalidRelaxation = errors.New("lbm: relaxation rate must lie in (0, 2)")
	// ErrNoDynamics reports an interior site without a collision operator.
	ErrNoDynamics = errors.New("lbm: site has no dynamics")
	// ErrNonPositiveDensity reports a site whose density is zero, negative or NaN.
	ErrNonPositiveDensity = errors.New("lbm: non-positive density")
)

// StepError pins a failure to the site and time step where it was detected.
type StepError struct {
	X, Y int
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d at (%d,%d): %v", e.Step, e.X, e.Y, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
