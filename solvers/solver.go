package solvers

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/boiling/utils"
)

// Equation is one assembled linear system A x = b. Solution carries the initial guess on entry
// and the answer on return.
type Equation struct {
	Matrix    *utils.SparseMatrix
	RightPart []float64
	Solution  []float64
}

func NewEquation(A *utils.SparseMatrix) *Equation {
	return &Equation{
		Matrix:    A,
		RightPart: make([]float64, A.Portrait.N),
		Solution:  make([]float64, A.Portrait.N),
	}
}

func (eq *Equation) check() (n int, err error) {
	if eq.Matrix == nil {
		err = fmt.Errorf("%w: nil matrix", ErrDimension)
		return
	}
	n = eq.Matrix.Portrait.N
	if len(eq.RightPart) != n {
		err = fmt.Errorf("%w: N = %d, len(RightPart) = %d", ErrDimension, n, len(eq.RightPart))
		return
	}
	if eq.Solution == nil {
		eq.Solution = make([]float64, n)
	}
	if len(eq.Solution) != n {
		err = fmt.Errorf("%w: N = %d, len(Solution) = %d", ErrDimension, n, len(eq.Solution))
	}
	return
}

// Result reports the work done by one Solve. Residual is the quantity the stopping test was made
// on, TrueResidual is ||b - A x|| / ||b||.
type Result struct {
	Iterations   int
	Residual     float64
	TrueResidual float64
}

type Solver interface {
	Solve(eq *Equation) (Result, error)
}

type SolverType uint8

const (
	LOS SolverType = iota
	ProfileLU
	SparseLU
)

var SolverNameMap = map[string]SolverType{
	"los":     LOS,
	"profile": ProfileLU,
	"lu":      SparseLU,
}

func (st SolverType) String() string {
	for name, t := range SolverNameMap {
		if t == st {
			return name
		}
	}
	return "unknown"
}

func NewSolverType(label string) (st SolverType, err error) {
	var ok bool
	if st, ok = SolverNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownSolver, label)
	}
	return
}

type PreconditionerType uint8

const (
	Identity PreconditionerType = iota
	ILU
)

var PreconditionerNameMap = map[string]PreconditionerType{
	"identity": Identity,
	"ilu":      ILU,
}

func (pt PreconditionerType) String() string {
	for name, t := range PreconditionerNameMap {
		if t == pt {
			return name
		}
	}
	return "unknown"
}

func NewPreconditionerType(label string) (pt PreconditionerType, err error) {
	var ok bool
	if pt, ok = PreconditionerNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownPrecondition, label)
	}
	return
}

const (
	DefaultMaxIterations = 1000
	DefaultTolerance     = 1.e-10
)

type Config struct {
	Type                SolverType
	MaxIterations       int
	Tolerance           float64
	Preconditioner      PreconditionerType
	ReusePreconditioner bool
}

func DefaultConfig() Config {
	return Config{
		Type:           LOS,
		MaxIterations:  DefaultMaxIterations,
		Tolerance:      DefaultTolerance,
		Preconditioner: ILU,
	}
}

func NewSolver(cfg Config) (s Solver, err error) {
	switch cfg.Type {
	case LOS:
		if cfg.Preconditioner != Identity && cfg.Preconditioner != ILU {
			err = fmt.Errorf("%w: %d", ErrUnknownPrecondition, cfg.Preconditioner)
			return
		}
		s = NewLocalOptimalScheme(cfg)
	case ProfileLU:
		s = NewProfileLU()
	case SparseLU:
		s = NewSparseLU()
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownSolver, cfg.Type)
	}
	return
}

// TrueResidual returns ||b - A x|| / ||b||, or ||b - A x|| when b is zero.
func TrueResidual(A *utils.SparseMatrix, x, b []float64) float64 {
	var (
		r = make([]float64, len(b))
	)
	A.MulVec(r, x)
	floats.Sub(r, b)
	bNorm := floats.Norm(b, 2)
	if bNorm == 0 {
		return floats.Norm(r, 2)
	}
	return floats.Norm(r, 2) / bNorm
}

func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
