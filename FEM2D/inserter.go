package FEM2D

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boiling/utils"
)

// Inserter scatters local element blocks into global storage.
type Inserter struct{}

func (Inserter) InsertMatrix(A *utils.SparseMatrix, local mat.Matrix, indexes []int) {
	for i, gi := range indexes {
		for j, gj := range indexes {
			if val := local.At(i, j); val != 0 {
				A.Add(gi, gj, val)
			}
		}
	}
}

func (Inserter) InsertVector(b []float64, local []float64, indexes []int) {
	for i, gi := range indexes {
		b[gi] += local[i]
	}
}
