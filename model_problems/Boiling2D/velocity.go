package Boiling2D

import (
	"math"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
)

// ConvectionVelocity is one axisymmetric circulation cell filling the bounding box of nodes: the
// fluid rises along the axis and sinks at the wall. It derives from the Stokes stream function
//
//	psi = s H r^2/R (1 - r/R) sin(pi z/H)
//
// so div(v) = 0 in cylindrical coordinates and v.n = 0 on the box. s scales the velocity.
func ConvectionVelocity(nodes []geometry2D.Point, scale float64) FEM2D.VelocityField {
	var (
		box  = geometry2D.NewBoundingBox(nodes)
		R, H = box.Width(), box.Height()
	)
	return FEM2D.VelocityFunc(func(p geometry2D.Point) geometry2D.Vector {
		var (
			r = (p.X - box.XMin.X) / R
			z = math.Pi * (p.Y - box.XMin.Y) / H
		)
		return geometry2D.Vector{
			X: -scale * math.Pi * r * (1 - r) * math.Cos(z),
			Y: scale * H / R * (2 - 3*r) * math.Sin(z),
		}
	})
}
