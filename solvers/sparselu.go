package solvers

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// SparseLUSolver hands the system to the Kundert sparse LU of github.com/edp1096/sparse, which
// reorders and pivots. It serves as the ground truth for the iterative solver.
type SparseLUSolver struct {
	config *sparse.Configuration
}

func NewSparseLU() *SparseLUSolver {
	return &SparseLUSolver{
		config: &sparse.Configuration{
			Real:                    true,
			Complex:                 false,
			SeparatedComplexVectors: false,
			Expandable:              true,
			Translate:               false,
			ModifiedNodal:           true,
			TiesMultiplier:          5,
			PrinterWidth:            140,
			Annotate:                0,
		},
	}
}

func (ss *SparseLUSolver) Solve(eq *Equation) (res Result, err error) {
	var (
		n int
	)
	if n, err = eq.check(); err != nil {
		return
	}
	m, err := sparse.Create(int64(n), ss.config)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrFactorization, err)
		return
	}
	defer m.Destroy()
	// The library is 1 based
	for i := 0; i < n; i++ {
		cols, vals := eq.Matrix.Row(i)
		for jj, j := range cols {
			if vals[jj] != 0 || i == j {
				m.GetElement(int64(i+1), int64(j+1)).Real += vals[jj]
			}
		}
	}
	if err = m.Factor(); err != nil {
		err = fmt.Errorf("%w: %v", ErrFactorization, err)
		return
	}
	rhs := make([]float64, n+1)
	copy(rhs[1:], eq.RightPart)
	var sol []float64
	if sol, err = m.Solve(rhs); err != nil {
		err = fmt.Errorf("%w: %v", ErrFactorization, err)
		return
	}
	if len(sol) < n+1 {
		err = fmt.Errorf("%w: solution length %d for N = %d", ErrDimension, len(sol), n)
		return
	}
	copy(eq.Solution, sol[1:n+1])
	res.Iterations = 1
	res.TrueResidual = TrueResidual(eq.Matrix, eq.Solution, eq.RightPart)
	res.Residual = res.TrueResidual
	if !finite(eq.Solution) {
		err = fmt.Errorf("%w: non finite solution from sparse LU", ErrFactorization)
	}
	return
}
