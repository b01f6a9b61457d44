package FEM2D

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMaterial indicates an element material id with no provider entry.
	ErrUnknownMaterial = errors.New("FEM2D: unknown material id")
	// ErrDegenerateElement indicates a collapsed or inverted element (non-positive Jacobian).
	ErrDegenerateElement = errors.New("FEM2D: degenerate element Jacobian")
	// ErrUnsupportedComponent indicates a boundary condition component the real solver cannot use.
	ErrUnsupportedComponent = errors.New("FEM2D: unsupported boundary condition component")
	// ErrBadCondition indicates a boundary condition pointing outside the grid.
	ErrBadCondition = errors.New("FEM2D: boundary condition outside grid")
)

// ElementError ties an assembly failure to the offending element.
type ElementError struct {
	Element int
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Element, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
