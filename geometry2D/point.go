package geometry2D

import "math"

// Point is a node coordinate. In the axisymmetric setting X is the radius r and Y the height z.
type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) R() float64 { return pt.X }
func (pt Point) Z() float64 { return pt.Y }

func (pt Point) Minus(rhs Point) Point { return Point{pt.X - rhs.X, pt.Y - rhs.Y} }
func (pt Point) Plus(rhs Point) Point  { return Point{pt.X + rhs.X, pt.Y + rhs.Y} }
func (pt Point) Distance(rhs Point) float64 {
	return math.Hypot(pt.X-rhs.X, pt.Y-rhs.Y)
}

// Vector is a 2D vector quantity, e.g. a velocity (Vr, Vz).
type Vector struct {
	X, Y float64
}

func (v Vector) Dot(o Vector) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vector) Norm() float64        { return math.Hypot(v.X, v.Y) }

// BoundingBox is an axis aligned rectangle.
type BoundingBox struct {
	XMin, XMax Point
}

func NewBoundingBox(Geometry []Point) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = &BoundingBox{XMin: Geometry[0], XMax: Geometry[0]}
	for _, point := range Geometry {
		Box.XMin.X = math.Min(Box.XMin.X, point.X)
		Box.XMin.Y = math.Min(Box.XMin.Y, point.Y)
		Box.XMax.X = math.Max(Box.XMax.X, point.X)
		Box.XMax.Y = math.Max(Box.XMax.Y, point.Y)
	}
	return Box
}

func NewRectangle(x0, y0, x1, y1 float64) *BoundingBox {
	return NewBoundingBox([]Point{{x0, y0}, {x1, y1}})
}

func (bb *BoundingBox) Width() float64  { return bb.XMax.X - bb.XMin.X }
func (bb *BoundingBox) Height() float64 { return bb.XMax.Y - bb.XMin.Y }

func (bb *BoundingBox) Centroid() Point {
	return Point{
		0.5 * (bb.XMax.X + bb.XMin.X),
		0.5 * (bb.XMax.Y + bb.XMin.Y),
	}
}

// PointInside includes the boundary.
func (bb *BoundingBox) PointInside(point Point) (within bool) {
	return point.X >= bb.XMin.X && point.X <= bb.XMax.X &&
		point.Y >= bb.XMin.Y && point.Y <= bb.XMax.Y
}
