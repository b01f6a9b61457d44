package FEM2D

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/utils"
)

// SourceFunc is a volumetric heat source q(p, t).
type SourceFunc func(p geometry2D.Point, t float64) float64

// RightPartAssembler builds the backward Euler load vector
//
//	b = (M/dt) x_prev + integral(q * phi_i * r)
type RightPartAssembler struct {
	*Integrator
	Source SourceFunc
	ips    []IntegrationPoint
}

func NewRightPartAssembler(in *Integrator, source SourceFunc) *RightPartAssembler {
	return &RightPartAssembler{Integrator: in, Source: source}
}

func (ra *RightPartAssembler) Assemble(b []float64, M *utils.SparseMatrix, previous []float64, dt, t float64) (err error) {
	if !(dt > 0) {
		return fmt.Errorf("time step must be positive, have %v", dt)
	}
	M.MulVec(b, previous)
	floats.Scale(1/dt, b)
	if ra.Source == nil {
		return
	}
	var (
		local    [NodesPerElement]float64
		inserter Inserter
	)
	for k, e := range ra.Grid.Elements {
		if ra.ips, err = ra.Element(k, ra.ips); err != nil {
			return
		}
		local = [NodesPerElement]float64{}
		for _, ip := range ra.ips {
			q := ra.Source(ip.Point, t)
			for i := range local {
				local[i] += q * ip.Weight * ip.Phi[i]
			}
		}
		inserter.InsertVector(b, local[:], e.NodeIndexes[:])
	}
	return
}
