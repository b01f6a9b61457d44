package solvers

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/boiling/utils"
)

// latticeSystem assembles a nonsymmetric, strictly diagonally dominant M-matrix over the
// connectivity of an nx by ny quad lattice.
func latticeSystem(t *testing.T, nx, ny int) *utils.SparseMatrix {
	var conn [][]int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i
			conn = append(conn, []int{n0, n0 + 1, n0 + nx + 1, n0 + nx + 2})
		}
	}
	p, err := utils.BuildPortrait((nx+1)*(ny+1), conn)
	require.NoError(t, err)
	A := utils.NewSparseMatrix(p)
	for _, nodes := range conn {
		for _, i := range nodes {
			for _, j := range nodes {
				switch {
				case i == j:
					A.Add(i, j, 1.5)
				case i < j:
					A.Add(i, j, -0.35)
				default:
					A.Add(i, j, -0.15)
				}
			}
		}
	}
	return A
}

func manufactured(A *utils.SparseMatrix) (x, b []float64) {
	var (
		n = A.Portrait.N
		R = rand.New(rand.NewSource(1))
	)
	x, b = make([]float64, n), make([]float64, n)
	for i := range x {
		x[i] = R.Float64()*2 - 1
	}
	A.MulVec(b, x)
	return
}

func TestSolversAgree(t *testing.T) {
	A := latticeSystem(t, 6, 5)
	xTrue, b := manufactured(A)
	configs := map[string]Config{
		"los identity": {Type: LOS, MaxIterations: 1000, Tolerance: 1.e-12, Preconditioner: Identity},
		"los ilu":      {Type: LOS, MaxIterations: 1000, Tolerance: 1.e-12, Preconditioner: ILU},
		"profile":      {Type: ProfileLU},
		"sparse lu":    {Type: SparseLU},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			s, err := NewSolver(cfg)
			require.NoError(t, err)
			eq := &Equation{Matrix: A, RightPart: b}
			res, err := s.Solve(eq)
			require.NoError(t, err)
			assert.InDeltaSlice(t, xTrue, eq.Solution, 1.e-8)
			assert.Less(t, res.TrueResidual, 1.e-9)
		})
	}
}

func TestILUPreconditioning(t *testing.T) {
	A := latticeSystem(t, 8, 8)
	_, b := manufactured(A)
	var iterations [2]int
	for i, pt := range []PreconditionerType{Identity, ILU} {
		eq := &Equation{Matrix: A, RightPart: b}
		res, err := NewLocalOptimalScheme(Config{Preconditioner: pt}).Solve(eq)
		require.NoError(t, err)
		iterations[i] = res.Iterations
	}
	assert.Less(t, iterations[1], iterations[0])
}

func TestILUExactOnChain(t *testing.T) {
	// Without fill-in ILU(0) is the exact LU, so one step converges
	var (
		n    = 20
		conn [][]int
	)
	for i := 0; i < n-1; i++ {
		conn = append(conn, []int{i, i + 1})
	}
	p, err := utils.BuildPortrait(n, conn)
	require.NoError(t, err)
	A := utils.NewSparseMatrix(p)
	for i := 0; i < n; i++ {
		A.Add(i, i, 4)
		if i > 0 {
			A.Add(i, i-1, -1)
		}
		if i < n-1 {
			A.Add(i, i+1, -2)
		}
	}
	xTrue, b := manufactured(A)
	eq := &Equation{Matrix: A, RightPart: b}
	res, err := NewLocalOptimalScheme(Config{Preconditioner: ILU}).Solve(eq)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 2)
	assert.InDeltaSlice(t, xTrue, eq.Solution, 1.e-10)
}

func TestPreconditionerReuse(t *testing.T) {
	A := latticeSystem(t, 4, 4)
	xTrue, b := manufactured(A)
	los := NewLocalOptimalScheme(Config{Preconditioner: ILU, ReusePreconditioner: true})
	for i := 0; i < 3; i++ {
		eq := &Equation{Matrix: A, RightPart: b}
		_, err := los.Solve(eq)
		require.NoError(t, err)
		assert.InDeltaSlice(t, xTrue, eq.Solution, 1.e-8)
	}
}

func TestNotConverged(t *testing.T) {
	A := latticeSystem(t, 6, 6)
	_, b := manufactured(A)
	eq := &Equation{Matrix: A, RightPart: b}
	res, err := NewLocalOptimalScheme(Config{MaxIterations: 1, Tolerance: 1.e-14}).Solve(eq)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConverged))
	assert.Equal(t, 1, res.Iterations)
	assert.Greater(t, res.Residual, 1.e-14)
}

func TestZeroPivot(t *testing.T) {
	p, err := utils.BuildPortrait(2, [][]int{{0, 1}})
	require.NoError(t, err)
	A := utils.NewSparseMatrix(p)
	A.Set(0, 1, 1)
	A.Set(1, 0, 1)
	A.Set(1, 1, 1)
	eq := &Equation{Matrix: A, RightPart: []float64{1, 2}}

	_, err = NewProfileLU().Solve(eq)
	assert.True(t, errors.Is(err, ErrZeroPivot))
	_, err = NewLocalOptimalScheme(Config{Preconditioner: ILU}).Solve(eq)
	assert.True(t, errors.Is(err, ErrZeroPivot))

	// Pivoting handles the permuted system
	res, err := NewSparseLU().Solve(eq)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, eq.Solution, 1.e-14)
	assert.Less(t, res.TrueResidual, 1.e-14)
}

func TestSolveInputs(t *testing.T) {
	A := latticeSystem(t, 2, 2)
	for _, s := range []Solver{NewLocalOptimalScheme(DefaultConfig()), NewProfileLU(), NewSparseLU()} {
		_, err := s.Solve(&Equation{Matrix: A, RightPart: make([]float64, 3)})
		assert.True(t, errors.Is(err, ErrDimension))
	}

	eq := &Equation{Matrix: A, RightPart: make([]float64, 9), Solution: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}}
	res, err := NewLocalOptimalScheme(DefaultConfig()).Solve(eq)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 9), eq.Solution)
	assert.Equal(t, 0, res.Iterations)

	_, err = NewSolver(Config{Type: SolverType(9)})
	assert.True(t, errors.Is(err, ErrUnknownSolver))
	_, err = NewSolver(Config{Type: LOS, Preconditioner: PreconditionerType(9)})
	assert.True(t, errors.Is(err, ErrUnknownPrecondition))

	st, err := NewSolverType(" Profile ")
	require.NoError(t, err)
	assert.Equal(t, ProfileLU, st)
	_, err = NewSolverType("cg")
	assert.True(t, errors.Is(err, ErrUnknownSolver))
	assert.Equal(t, "ilu", ILU.String())
}
