package solvers

import (
	"fmt"

	"github.com/notargets/boiling/utils"
)

// Preconditioner is a factorization A ~ L U applied as two triangular solves. dst and src may alias.
type Preconditioner interface {
	SolveLower(dst, src []float64)
	SolveUpper(dst, src []float64)
}

type IdentityPreconditioner struct{}

func (IdentityPreconditioner) SolveLower(dst, src []float64) { copy(dst, src) }
func (IdentityPreconditioner) SolveUpper(dst, src []float64) { copy(dst, src) }

// IncompleteLU is ILU(0): L and U keep exactly the portrait of A. L has a unit diagonal which is
// not stored, U owns the diagonal positions.
type IncompleteLU struct {
	Portrait *utils.Portrait
	lu       []float64
}

func NewIncompleteLU(A *utils.SparseMatrix) (ilu *IncompleteLU, err error) {
	ilu = &IncompleteLU{
		Portrait: A.Portrait,
		lu:       make([]float64, A.Portrait.NNZ()),
	}
	if err = ilu.Factor(A); err != nil {
		ilu = nil
	}
	return
}

// Factor recomputes the factorization for new values of a matrix with the same portrait.
func (ilu *IncompleteLU) Factor(A *utils.SparseMatrix) (err error) {
	var (
		p      = ilu.Portrait
		lu     = ilu.lu
		marker = make([]int, p.N)
	)
	if !p.Equal(A.Portrait) {
		return fmt.Errorf("%w: matrix portrait differs from preconditioner portrait", ErrDimension)
	}
	copy(lu, A.Data())
	for i := range marker {
		marker[i] = -1
	}
	for i := 0; i < p.N; i++ {
		var (
			base = p.RowPtr[i]
			cols = p.Columns(i)
		)
		for kk, j := range cols {
			marker[j] = base + kk
		}
		for kk, k := range cols {
			if k >= i {
				break
			}
			lu[base+kk] /= lu[p.DiagonalIndex(k)]
			lik := lu[base+kk]
			for jj := p.DiagonalIndex(k) + 1; jj < p.RowPtr[k+1]; jj++ {
				if pos := marker[p.ColIndex[jj]]; pos >= 0 {
					lu[pos] -= lik * lu[jj]
				}
			}
		}
		for _, j := range cols {
			marker[j] = -1
		}
		if lu[p.DiagonalIndex(i)] == 0 {
			return fmt.Errorf("%w: incomplete LU, row %d", ErrZeroPivot, i)
		}
	}
	return
}

func (ilu *IncompleteLU) SolveLower(dst, src []float64) {
	p := ilu.Portrait
	for i := 0; i < p.N; i++ {
		sum := src[i]
		for jj := p.RowPtr[i]; jj < p.DiagonalIndex(i); jj++ {
			sum -= ilu.lu[jj] * dst[p.ColIndex[jj]]
		}
		dst[i] = sum
	}
}

func (ilu *IncompleteLU) SolveUpper(dst, src []float64) {
	p := ilu.Portrait
	for i := p.N - 1; i >= 0; i-- {
		var (
			d   = p.DiagonalIndex(i)
			sum = src[i]
		)
		for jj := d + 1; jj < p.RowPtr[i+1]; jj++ {
			sum -= ilu.lu[jj] * dst[p.ColIndex[jj]]
		}
		dst[i] = sum / ilu.lu[d]
	}
}
