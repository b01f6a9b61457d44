package Boiling2D

import (
	"errors"
	"fmt"
)

var (
	ErrTimeLayers       = errors.New("Boiling2D: need at least two strictly increasing time layers")
	ErrInitialCondition = errors.New("Boiling2D: initial condition does not match the grid")
	ErrTimeOutOfRange   = errors.New("Boiling2D: time outside the solved range")
	ErrLayerReleased    = errors.New("Boiling2D: time layer is not retained")
	ErrUnknownPolicy    = errors.New("Boiling2D: unknown failure policy")
	ErrMissingInput     = errors.New("Boiling2D: missing grid, materials or solver")
	ErrBoundary         = errors.New("Boiling2D: unusable boundary condition")
)

// LayerError reports the time layer a run stopped at.
type LayerError struct {
	Layer    int
	Time     float64
	Residual float64
	Err      error
}

func (e *LayerError) Error() string {
	return fmt.Sprintf("Boiling2D: time layer %d (t = %g), residual %.3e: %v", e.Layer, e.Time, e.Residual, e.Err)
}

func (e *LayerError) Unwrap() error { return e.Err }
