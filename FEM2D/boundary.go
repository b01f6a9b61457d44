package FEM2D

import (
	"fmt"

	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/utils"
)

// FirstCondition prescribes the value at a node (Dirichlet).
type FirstCondition struct {
	NodeIndex int
	Value     float64
}

type ComponentType uint8

const (
	Real ComponentType = iota
	Imaginary
)

// SecondCondition prescribes the flux along one element side (Neumann); Values are the flux at
// the two side nodes, ordered like Element.BoundNodeIndexes.
type SecondCondition struct {
	ElementIndex int
	Bound        geometry2D.Bound
	Values       [2]float64
	Type         ComponentType
}

// ThirdCondition is convective exchange -lambda du/dn = Beta (u - Values) along one element side (Robin).
type ThirdCondition struct {
	ElementIndex int
	Bound        geometry2D.Bound
	Values       [2]float64 // ambient values at the two side nodes
	Beta         float64
}

// EdgeIntegrator integrates products of the 1D linear basis along element sides.
type EdgeIntegrator struct {
	Grid        *geometry2D.Grid
	Cylindrical bool
	x, w        []float64
}

func NewEdgeIntegrator(grid *geometry2D.Grid, cylindrical bool) *EdgeIntegrator {
	// 2 points are exact for the cubic r * psi_a * psi_b
	x, w := GaussLegendre(2)
	return &EdgeIntegrator{Grid: grid, Cylindrical: cylindrical, x: x, w: w}
}

// MassMatrix returns integral(psi_a * psi_b * r ds) over side b of element k, and the side's nodes.
func (ei *EdgeIntegrator) MassMatrix(k int, b geometry2D.Bound) (M [2][2]float64, nodes [2]int, err error) {
	if k < 0 || k >= len(ei.Grid.Elements) {
		err = fmt.Errorf("%w: element %d", ErrBadCondition, k)
		return
	}
	nodes = ei.Grid.Elements[k].BoundNodeIndexes(b)
	var (
		p0, p1 = ei.Grid.Nodes[nodes[0]], ei.Grid.Nodes[nodes[1]]
		L      = p0.Distance(p1)
	)
	if !(L > 0) {
		err = &ElementError{k, fmt.Errorf("%w: zero length %v side", ErrDegenerateElement, b)}
		return
	}
	for q, t := range ei.x {
		var (
			psi    = [2]float64{1 - t, t}
			weight = ei.w[q] * L
		)
		if ei.Cylindrical {
			weight *= psi[0]*p0.R() + psi[1]*p1.R()
		}
		for a := 0; a < 2; a++ {
			for c := 0; c < 2; c++ {
				M[a][c] += weight * psi[a] * psi[c]
			}
		}
	}
	return
}

// CylinderSecondApplier adds prescribed fluxes into the right part. The matrix is untouched.
type CylinderSecondApplier struct {
	Edges    *EdgeIntegrator
	Inserter Inserter
}

func NewCylinderSecondApplier(grid *geometry2D.Grid, inserter Inserter) *CylinderSecondApplier {
	return &CylinderSecondApplier{NewEdgeIntegrator(grid, true), inserter}
}

func (sa *CylinderSecondApplier) Apply(b []float64, conditions []SecondCondition) (err error) {
	for _, c := range conditions {
		if c.Type != Real {
			return fmt.Errorf("%w: %d on element %d", ErrUnsupportedComponent, c.Type, c.ElementIndex)
		}
		var (
			M     [2][2]float64
			nodes [2]int
			local [2]float64
		)
		if M, nodes, err = sa.Edges.MassMatrix(c.ElementIndex, c.Bound); err != nil {
			return
		}
		for a := 0; a < 2; a++ {
			local[a] = M[a][0]*c.Values[0] + M[a][1]*c.Values[1]
		}
		sa.Inserter.InsertVector(b, local[:], nodes[:])
	}
	return
}

// CylinderThirdApplier adds Beta * edge mass into the matrix and Beta * edge mass * ambient into
// the right part.
type CylinderThirdApplier struct {
	Edges    *EdgeIntegrator
	Inserter Inserter
}

func NewCylinderThirdApplier(grid *geometry2D.Grid, inserter Inserter) *CylinderThirdApplier {
	return &CylinderThirdApplier{NewEdgeIntegrator(grid, true), inserter}
}

func (ta *CylinderThirdApplier) Apply(A *utils.SparseMatrix, b []float64, conditions []ThirdCondition) (err error) {
	for _, c := range conditions {
		var (
			M     [2][2]float64
			nodes [2]int
			local [2]float64
		)
		if M, nodes, err = ta.Edges.MassMatrix(c.ElementIndex, c.Bound); err != nil {
			return
		}
		for a := 0; a < 2; a++ {
			for d := 0; d < 2; d++ {
				A.Add(nodes[a], nodes[d], c.Beta*M[a][d])
			}
			local[a] = c.Beta * (M[a][0]*c.Values[0] + M[a][1]*c.Values[1])
		}
		ta.Inserter.InsertVector(b, local[:], nodes[:])
	}
	return
}

// GaussExcluder enforces first conditions by Gauss exclusion: the row of a fixed node becomes the
// identity row, and its column moves into the right part of every other row. Entries are zeroed,
// never removed, so the portrait is preserved. Applying it twice gives the same system.
type GaussExcluder struct{}

func (GaussExcluder) Apply(A *utils.SparseMatrix, b []float64, conditions []FirstCondition) (err error) {
	var (
		p    = A.Portrait
		data = A.Data()
	)
	for _, c := range conditions {
		k := c.NodeIndex
		if k < 0 || k >= p.N {
			return fmt.Errorf("%w: node %d", ErrBadCondition, k)
		}
		// The portrait is symmetric: rows holding column k are the columns of row k
		for _, i := range p.Columns(k) {
			if i == k {
				continue
			}
			pos := p.Position(i, k)
			b[i] -= data[pos] * c.Value
			data[pos] = 0
		}
		cols, vals := A.Row(k)
		for jj, j := range cols {
			if j == k {
				vals[jj] = 1
			} else {
				vals[jj] = 0
			}
		}
		b[k] = c.Value
	}
	return
}
