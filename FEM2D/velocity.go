package FEM2D

import "github.com/notargets/boiling/geometry2D"

// VelocityField returns the transport velocity (Vr, Vz) at a point.
type VelocityField interface {
	Velocity(p geometry2D.Point) geometry2D.Vector
}

type ConstantVelocity geometry2D.Vector

func (cv ConstantVelocity) Velocity(geometry2D.Point) geometry2D.Vector {
	return geometry2D.Vector(cv)
}

// VelocityFunc adapts a plain function to VelocityField.
type VelocityFunc func(p geometry2D.Point) geometry2D.Vector

func (f VelocityFunc) Velocity(p geometry2D.Point) geometry2D.Vector { return f(p) }
