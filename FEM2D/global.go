package FEM2D

import (
	"runtime"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/utils"
)

// AssembleGlobal adds the local matrices of every grid element into A. With parallel set, the
// elements are split into one bucket per CPU, local matrices are computed concurrently and
// scattered afterwards in element order, so the result is identical to the serial pass. The
// first failing element, by index, is reported.
func AssembleGlobal(A *utils.SparseMatrix, grid *geometry2D.Grid, la LocalMatrixAssembler, parallelAssembly bool) (err error) {
	var (
		K        = len(grid.Elements)
		inserter Inserter
	)
	if !parallelAssembly {
		local := mat.NewDense(NodesPerElement, NodesPerElement, nil)
		for k, e := range grid.Elements {
			if err = la.AssembleLocal(k, local); err != nil {
				return
			}
			inserter.InsertMatrix(A, local, e.NodeIndexes[:])
		}
		return
	}
	var (
		pm     = utils.NewPartitionMap(runtime.NumCPU(), K)
		locals = make([]float64, K*NodesPerElement*NodesPerElement)
		errs   = make([]error, K)
	)
	parallel.Range(0, pm.ParallelDegree, pm.ParallelDegree, func(low, high int) {
		for bn := low; bn < high; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			for k := kMin; k < kMax; k++ {
				errs[k] = la.AssembleLocal(k, localView(locals, k))
			}
		}
	})
	for k, e := range grid.Elements {
		if errs[k] != nil {
			return errs[k]
		}
		inserter.InsertMatrix(A, localView(locals, k), e.NodeIndexes[:])
	}
	return
}

// localView wraps the k-th block of a flat backing store as a local matrix.
func localView(store []float64, k int) *mat.Dense {
	const size = NodesPerElement * NodesPerElement
	return mat.NewDense(NodesPerElement, NodesPerElement, store[k*size:(k+1)*size])
}
