package solvers

import (
	"fmt"

	"github.com/notargets/boiling/utils"
)

// Profile is a skyline copy of a matrix with a symmetric portrait. Row i of the lower triangle
// and column i of the upper triangle both span [first(i), i) and share the offsets in ia.
type Profile struct {
	N      int
	ia     []int
	al, au []float64
	di     []float64
}

func NewProfile(p *utils.Portrait) (pr *Profile) {
	pr = &Profile{
		N:  p.N,
		ia: make([]int, p.N+1),
		di: make([]float64, p.N),
	}
	for i := 0; i < p.N; i++ {
		pr.ia[i+1] = pr.ia[i] + i - p.Columns(i)[0]
	}
	pr.al = make([]float64, pr.ia[p.N])
	pr.au = make([]float64, pr.ia[p.N])
	return
}

func (pr *Profile) first(i int) int { return i - (pr.ia[i+1] - pr.ia[i]) }

// Load converts the CSR values of A into the profile, zero filling the envelope.
func (pr *Profile) Load(A *utils.SparseMatrix) {
	for _, v := range [][]float64{pr.al, pr.au, pr.di} {
		for i := range v {
			v[i] = 0
		}
	}
	for i := 0; i < pr.N; i++ {
		cols, vals := A.Row(i)
		for jj, j := range cols {
			switch {
			case j < i:
				pr.al[pr.ia[i]+j-pr.first(i)] = vals[jj]
			case j > i:
				pr.au[pr.ia[j]+i-pr.first(j)] = vals[jj]
			default:
				pr.di[i] = vals[jj]
			}
		}
	}
}

// Factor overwrites the profile with A = L U, L unit lower in al, U in au and di.
func (pr *Profile) Factor() (err error) {
	for i := 0; i < pr.N; i++ {
		var (
			i0 = pr.first(i)
			li = pr.al[pr.ia[i]:pr.ia[i+1]]
			ui = pr.au[pr.ia[i]:pr.ia[i+1]]
		)
		for j := i0; j < i; j++ {
			var (
				j0     = pr.first(j)
				lj     = pr.al[pr.ia[j]:pr.ia[j+1]]
				uj     = pr.au[pr.ia[j]:pr.ia[j+1]]
				k0     = max(i0, j0)
				sL, sU float64
			)
			for k := k0; k < j; k++ {
				sL += li[k-i0] * uj[k-j0]
				sU += lj[k-j0] * ui[k-i0]
			}
			li[j-i0] = (li[j-i0] - sL) / pr.di[j]
			ui[j-i0] -= sU
		}
		var sD float64
		for k := i0; k < i; k++ {
			sD += li[k-i0] * ui[k-i0]
		}
		pr.di[i] -= sD
		if pr.di[i] == 0 {
			return fmt.Errorf("%w: profile LU, row %d", ErrZeroPivot, i)
		}
	}
	return
}

// Solve computes x from L U x = b. x and b may alias.
func (pr *Profile) Solve(x, b []float64) {
	for i := 0; i < pr.N; i++ {
		var (
			i0  = pr.first(i)
			sum = b[i]
		)
		for k := i0; k < i; k++ {
			sum -= pr.al[pr.ia[i]+k-i0] * x[k]
		}
		x[i] = sum
	}
	for i := pr.N - 1; i >= 0; i-- {
		x[i] /= pr.di[i]
		i0 := pr.first(i)
		for k := i0; k < i; k++ {
			x[k] -= pr.au[pr.ia[i]+k-i0] * x[i]
		}
	}
}

// ProfileLUSolver is a direct solver going through a profile (skyline) conversion of the CSR matrix,
// factorized without pivoting.
type ProfileLUSolver struct {
	profile  *Profile
	portrait *utils.Portrait
}

func NewProfileLU() *ProfileLUSolver { return &ProfileLUSolver{} }

func (ps *ProfileLUSolver) Solve(eq *Equation) (res Result, err error) {
	if _, err = eq.check(); err != nil {
		return
	}
	if ps.portrait == nil || !ps.portrait.Equal(eq.Matrix.Portrait) {
		ps.portrait = eq.Matrix.Portrait
		ps.profile = NewProfile(ps.portrait)
	}
	ps.profile.Load(eq.Matrix)
	if err = ps.profile.Factor(); err != nil {
		return
	}
	ps.profile.Solve(eq.Solution, eq.RightPart)
	res.Iterations = 1
	res.TrueResidual = TrueResidual(eq.Matrix, eq.Solution, eq.RightPart)
	res.Residual = res.TrueResidual
	if !finite(eq.Solution) {
		err = fmt.Errorf("%w: non finite solution from profile LU", ErrFactorization)
	}
	return
}
