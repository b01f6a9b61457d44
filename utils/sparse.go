package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is a CSR matrix whose structure is fixed by a Portrait. Values are
// overwritten in place, the structure never changes after construction.
type SparseMatrix struct {
	M        *sparse.CSR
	Portrait *Portrait
	readOnly bool
	name     string
}

func NewSparseMatrix(p *Portrait) (R *SparseMatrix) {
	// The CSR shares the portrait index slices, only Data is owned by the matrix
	R = &SparseMatrix{
		M:        sparse.NewCSR(p.N, p.N, p.RowPtr, p.ColIndex, make([]float64, p.NNZ())),
		Portrait: p,
		name:     "unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m *SparseMatrix) Dims() (r, c int)              { return m.M.Dims() }
func (m *SparseMatrix) At(i, j int) float64           { return m.M.At(i, j) }
func (m *SparseMatrix) T() mat.Matrix                 { return m.M.T() }
func (m *SparseMatrix) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m *SparseMatrix) Data() []float64 {
	return m.RawMatrix().Data
}

func (m *SparseMatrix) SetReadOnly(name ...string) *SparseMatrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return m
}

func (m *SparseMatrix) SetWritable() *SparseMatrix {
	m.readOnly = false
	return m
}

func (m *SparseMatrix) Add(i, j int, val float64) { // Changes receiver
	m.checkWritable()
	m.Data()[m.position(i, j)] += val
}

func (m *SparseMatrix) Set(i, j int, val float64) { // Changes receiver
	m.checkWritable()
	m.Data()[m.position(i, j)] = val
}

// Reset zeroes all stored values, keeping the portrait.
func (m *SparseMatrix) Reset() {
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] = 0
	}
}

// Row returns the column indices and the values of row i, both aliasing the matrix storage.
func (m *SparseMatrix) Row(i int) (cols []int, vals []float64) {
	var (
		p    = m.Portrait
		a, b = p.RowPtr[i], p.RowPtr[i+1]
	)
	return p.ColIndex[a:b], m.Data()[a:b]
}

func (m *SparseMatrix) Diagonal(i int) float64 {
	return m.Data()[m.Portrait.DiagonalIndex(i)]
}

// MulVec computes dst = A*x.
func (m *SparseMatrix) MulVec(dst, x []float64) {
	if len(dst) != m.Portrait.N || len(x) != m.Portrait.N {
		panic(fmt.Errorf("dimension mismatch: N = %d, len(dst) = %d, len(x) = %d",
			m.Portrait.N, len(dst), len(x)))
	}
	for i := range dst {
		dst[i] = 0
	}
	m.M.MulVecTo(dst, false, x)
}

// CopyFrom overwrites the values of the receiver with the values of A, which must share the portrait.
func (m *SparseMatrix) CopyFrom(A *SparseMatrix) {
	m.checkWritable()
	m.checkSamePortrait(A)
	copy(m.Data(), A.Data())
}

// AddScaled computes m += alpha*A for a matrix sharing the portrait.
func (m *SparseMatrix) AddScaled(alpha float64, A *SparseMatrix) {
	m.checkWritable()
	m.checkSamePortrait(A)
	var (
		dst = m.Data()
	)
	for i, val := range A.Data() {
		dst[i] += alpha * val
	}
}

// Clone returns a writable matrix with the same portrait and a copy of the values.
func (m *SparseMatrix) Clone() (R *SparseMatrix) {
	R = NewSparseMatrix(m.Portrait)
	copy(R.Data(), m.Data())
	return
}

// ToDense is meant for diagnostics on small systems.
func (m *SparseMatrix) ToDense() (R *mat.Dense) {
	var (
		n = m.Portrait.N
	)
	R = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			R.Set(i, j, vals[k])
		}
	}
	return
}

func (m *SparseMatrix) position(i, j int) (pos int) {
	if pos = m.Portrait.Position(i, j); pos < 0 {
		panic(fmt.Errorf("%w: (%d,%d) in matrix named: \"%v\"", ErrOutsidePortrait, i, j, m.name))
	}
	return
}

func (m *SparseMatrix) checkSamePortrait(A *SparseMatrix) {
	if m.Portrait != A.Portrait && !m.Portrait.Equal(A.Portrait) {
		panic(fmt.Errorf("%w: \"%v\" and \"%v\"", ErrPortraitMismatch, m.name, A.name))
	}
}

func (m *SparseMatrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}
