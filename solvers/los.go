package solvers

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/boiling/utils"
)

// LocalOptimalScheme is the preconditioned local optimal scheme (LOS), a minimal residual Krylov
// iteration for nonsymmetric systems. With A ~ L U it iterates on L^-1 A U^-1, the stopping test
// is ||L^-1 (b - A x)|| / ||L^-1 b|| < Tolerance.
type LocalOptimalScheme struct {
	MaxIterations       int
	Tolerance           float64
	Preconditioner      PreconditionerType
	ReusePreconditioner bool
	prec                Preconditioner
	r, z, p, ar, tmp    []float64
}

func NewLocalOptimalScheme(cfg Config) *LocalOptimalScheme {
	los := &LocalOptimalScheme{
		MaxIterations:       cfg.MaxIterations,
		Tolerance:           cfg.Tolerance,
		Preconditioner:      cfg.Preconditioner,
		ReusePreconditioner: cfg.ReusePreconditioner,
	}
	if los.MaxIterations <= 0 {
		los.MaxIterations = DefaultMaxIterations
	}
	if !(los.Tolerance > 0) {
		los.Tolerance = DefaultTolerance
	}
	return los
}

func (los *LocalOptimalScheme) preconditioner(A *utils.SparseMatrix) (err error) {
	switch los.Preconditioner {
	case Identity:
		los.prec = IdentityPreconditioner{}
	case ILU:
		if ilu, ok := los.prec.(*IncompleteLU); ok && ilu.Portrait.Equal(A.Portrait) {
			if los.ReusePreconditioner {
				return
			}
			if err = ilu.Factor(A); err != nil {
				los.prec = nil
			}
			return
		}
		var ilu *IncompleteLU
		if ilu, err = NewIncompleteLU(A); err != nil {
			los.prec = nil
			return
		}
		los.prec = ilu
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownPrecondition, los.Preconditioner)
	}
	return
}

func (los *LocalOptimalScheme) allocate(n int) {
	if len(los.r) == n {
		return
	}
	los.r = make([]float64, n)
	los.z = make([]float64, n)
	los.p = make([]float64, n)
	los.ar = make([]float64, n)
	los.tmp = make([]float64, n)
}

func (los *LocalOptimalScheme) Solve(eq *Equation) (res Result, err error) {
	var (
		n int
		A = eq.Matrix
	)
	if n, err = eq.check(); err != nil {
		return
	}
	if err = los.preconditioner(A); err != nil {
		return
	}
	los.allocate(n)
	var (
		x                = eq.Solution
		L, U             = los.prec.SolveLower, los.prec.SolveUpper
		r, z, p, ar, tmp = los.r, los.z, los.p, los.ar, los.tmp
	)
	L(tmp, eq.RightPart)
	norm0 := floats.Norm(tmp, 2)
	if norm0 == 0 {
		for i := range x {
			x[i] = 0
		}
		return
	}
	// r = L^-1 (b - A x), z = U^-1 r, p = L^-1 A z
	A.MulVec(tmp, x)
	floats.SubTo(tmp, eq.RightPart, tmp)
	L(r, tmp)
	U(z, r)
	A.MulVec(tmp, z)
	L(p, tmp)

	res.Residual = floats.Norm(r, 2) / norm0
	for !(res.Residual < los.Tolerance) && res.Iterations < los.MaxIterations {
		pp := floats.Dot(p, p)
		if pp == 0 {
			break
		}
		alpha := floats.Dot(p, r) / pp
		floats.AddScaled(x, alpha, z)
		floats.AddScaled(r, -alpha, p)

		U(tmp, r)
		A.MulVec(ar, tmp)
		L(ar, ar)
		beta := -floats.Dot(p, ar) / pp
		floats.AddScaledTo(z, tmp, beta, z)
		floats.AddScaledTo(p, ar, beta, p)

		res.Iterations++
		res.Residual = floats.Norm(r, 2) / norm0
	}
	res.TrueResidual = TrueResidual(A, x, eq.RightPart)
	if !finite(x) {
		err = fmt.Errorf("%w: solution diverged after %d iterations", ErrNotConverged, res.Iterations)
		return
	}
	if !(res.Residual < los.Tolerance) {
		err = fmt.Errorf("%w: %d iterations, relative residual %.3e, tolerance %.3e",
			ErrNotConverged, res.Iterations, res.Residual, los.Tolerance)
	}
	return
}
