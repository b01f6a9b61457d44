package solvers

import "errors"

var (
	ErrNotConverged        = errors.New("solvers: iteration limit reached before convergence")
	ErrZeroPivot           = errors.New("solvers: zero pivot")
	ErrFactorization       = errors.New("solvers: factorization failed")
	ErrDimension           = errors.New("solvers: dimension mismatch")
	ErrUnknownSolver       = errors.New("solvers: unknown solver type")
	ErrUnknownPrecondition = errors.New("solvers: unknown preconditioner type")
)
