package utils

import "errors"

var (
	// ErrTopology indicates an element referencing a node index outside the grid.
	ErrTopology = errors.New("utils: element references invalid node index")
	// ErrEmptyPortrait indicates a portrait requested for zero nodes.
	ErrEmptyPortrait = errors.New("utils: portrait needs at least one node")
	// ErrOutsidePortrait indicates a write to an entry the portrait does not hold.
	ErrOutsidePortrait = errors.New("utils: entry outside sparse portrait")
	// ErrPortraitMismatch indicates an operation between matrices of different portraits.
	ErrPortraitMismatch = errors.New("utils: matrices do not share a portrait")
)
