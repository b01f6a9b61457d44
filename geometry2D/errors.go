package geometry2D

import "errors"

var (
	// ErrBadInterval indicates an interval whose end is not greater than its begin.
	ErrBadInterval = errors.New("geometry2D: interval end must exceed begin")
	// ErrBadSplit indicates a splitter with a non-positive step count or ratio.
	ErrBadSplit = errors.New("geometry2D: invalid axis splitter")
	// ErrAxisMismatch indicates an axis whose sections and splitters do not pair up.
	ErrAxisMismatch = errors.New("geometry2D: axis sections and splitters mismatch")
	// ErrMissingAxis indicates Build was called before both axes were set.
	ErrMissingAxis = errors.New("geometry2D: both axes must be set")
	// ErrPointOutside indicates a point not covered by the grid.
	ErrPointOutside = errors.New("geometry2D: point outside grid")
)
