package FEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/boiling/geometry2D"
)

// IntegrationPoint carries everything a local assembler needs at one quadrature point.
type IntegrationPoint struct {
	Point  geometry2D.Point     // physical location
	Phi    [4]float64           // basis values
	Grad   [4]geometry2D.Vector // physical basis gradients
	Weight float64              // quadrature weight * |J| * r
}

// Integrator maps the reference square onto grid elements.
type Integrator struct {
	Grid        *geometry2D.Grid
	Quadrature  Quadrature2D
	Cylindrical bool // multiply weights by r
}

func NewIntegrator(grid *geometry2D.Grid, order int, cylindrical bool) *Integrator {
	return &Integrator{
		Grid:        grid,
		Quadrature:  NewGaussQuadrature2D(order),
		Cylindrical: cylindrical,
	}
}

// Element fills ips (reallocated when too short) with the integration points of element k.
func (in *Integrator) Element(k int, ips []IntegrationPoint) (res []IntegrationPoint, err error) {
	var (
		pts  = in.Grid.ElementNodes(k)
		diag = pts[0].Distance(pts[3])
	)
	if cap(ips) < len(in.Quadrature) {
		ips = make([]IntegrationPoint, len(in.Quadrature))
	}
	res = ips[:len(in.Quadrature)]
	for q, qp := range in.Quadrature {
		var (
			ip         = &res[q]
			dXi, dEta  = BilinearDerivatives(qp.Xi, qp.Eta)
			a, b, c, d float64
		)
		ip.Phi = BilinearBasis(qp.Xi, qp.Eta)
		ip.Point = geometry2D.Point{}
		for i, p := range pts {
			ip.Point.X += ip.Phi[i] * p.X
			ip.Point.Y += ip.Phi[i] * p.Y
			a += dXi[i] * p.X
			b += dXi[i] * p.Y
			c += dEta[i] * p.X
			d += dEta[i] * p.Y
		}
		det := a*d - b*c
		if !(det > NODETOL*diag*diag) || math.IsInf(det, 0) {
			err = &ElementError{k, fmt.Errorf("%w: det(J) = %v", ErrDegenerateElement, det)}
			return
		}
		for i := range ip.Grad {
			ip.Grad[i] = geometry2D.Vector{
				X: (d*dXi[i] - b*dEta[i]) / det,
				Y: (-c*dXi[i] + a*dEta[i]) / det,
			}
		}
		ip.Weight = qp.Weight * det
		if in.Cylindrical {
			ip.Weight *= ip.Point.R()
		}
	}
	return
}

const NODETOL = 1.e-12
