package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseMatrix(t *testing.T) {
	p, err := BuildPortrait(6, twoQuads)
	require.NoError(t, err)
	A := NewSparseMatrix(p)
	nr, nc := A.Dims()
	assert.Equal(t, 6, nr)
	assert.Equal(t, 6, nc)
	for i := 0; i < 6; i++ {
		A.Add(i, i, 2)
	}
	A.Add(0, 1, -1)
	A.Add(1, 0, -1)
	A.Add(0, 1, -0.5)
	assert.Equal(t, -1.5, A.At(0, 1))
	assert.Equal(t, 2., A.Diagonal(3))
	assert.Equal(t, 0., A.At(0, 2))

	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{9, 9, 9, 9, 9, 9}
	A.MulVec(y, x)
	assert.InDeltaSlice(t, []float64{2 - 3, 4 - 1, 6, 8, 10, 12}, y, 1.e-14)

	B := A.Clone()
	B.AddScaled(2, A)
	assert.Equal(t, -4.5, B.At(0, 1))
	B.CopyFrom(A)
	assert.Equal(t, A.Data(), B.Data())

	cols, vals := A.Row(0)
	assert.Equal(t, []int{0, 1, 3, 4}, cols)
	assert.Equal(t, []float64{2, -1.5, 0, 0}, vals)

	D := A.ToDense()
	assert.Equal(t, -1.5, D.At(0, 1))

	A.Reset()
	assert.Equal(t, 0., A.At(0, 0))
	assert.Equal(t, p.NNZ(), len(A.Data()))

	assert.Panics(t, func() { A.Add(0, 2, 1) })
	A.SetReadOnly("A")
	assert.Panics(t, func() { A.Set(0, 0, 1) })
	A.SetWritable()
	assert.NotPanics(t, func() { A.Set(0, 0, 1) })
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite([]float64{1, 2}))
	assert.False(t, IsFinite([]float64{1, posInf()}))
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 2))
	assert.Equal(t, []float64{3, 3}, ConstArray(2, 3))
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}
