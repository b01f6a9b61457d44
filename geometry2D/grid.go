package geometry2D

import (
	"fmt"
	"sort"
)

// Bound names a side of a quadrilateral element, or of the whole structured grid.
type Bound uint8

const (
	Bottom Bound = iota
	Right
	Top
	Left
)

func (b Bound) String() string {
	switch b {
	case Bottom:
		return "Bottom"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Bound(%d)", uint8(b))
}

var BoundNameMap = map[string]Bound{
	"bottom": Bottom,
	"right":  Right,
	"top":    Top,
	"left":   Left,
}

/*
Element is a bilinear quadrilateral. Node order inside an element follows the lattice:

	2 --- 3
	|     |
	0 --- 1
*/
type Element struct {
	NodeIndexes [4]int
	MaterialID  int
}

// BoundNodeIndexes returns the two nodes of a side, ordered along increasing X or Y.
func (e Element) BoundNodeIndexes(b Bound) [2]int {
	n := e.NodeIndexes
	switch b {
	case Bottom:
		return [2]int{n[0], n[1]}
	case Right:
		return [2]int{n[1], n[3]}
	case Top:
		return [2]int{n[2], n[3]}
	case Left:
		return [2]int{n[0], n[2]}
	}
	panic(fmt.Errorf("unknown bound: %v", b))
}

// Grid is a structured lattice of XLength x YLength nodes, row-major over X, and the
// (XLength-1) x (YLength-1) elements between them. It is immutable after Build.
type Grid struct {
	Nodes            []Point
	Elements         []Element
	XLength, YLength int
	XValues, YValues []float64
}

func (g *Grid) TotalPoints() int { return len(g.Nodes) }

func (g *Grid) XElements() int { return g.XLength - 1 }
func (g *Grid) YElements() int { return g.YLength - 1 }

func (g *Grid) NodeIndex(i, j int) int { return i + j*g.XLength }

// Connectivity lists the node indexes of each element, the input the sparse portrait is built from.
func (g *Grid) Connectivity() (conn [][]int) {
	conn = make([][]int, len(g.Elements))
	for k, e := range g.Elements {
		conn[k] = e.NodeIndexes[:]
	}
	return
}

func (g *Grid) ElementNodes(k int) [4]Point { return g.CornerPoints(g.Elements[k]) }

func (g *Grid) CornerPoints(e Element) (pts [4]Point) {
	for i, n := range e.NodeIndexes {
		pts[i] = g.Nodes[n]
	}
	return
}

// Locate returns the element containing p and the local coordinates (xi, eta) in [0,1]^2.
func (g *Grid) Locate(p Point) (k int, xi, eta float64, err error) {
	var (
		i, j int
		ok   bool
	)
	if i, ok = locateInterval(g.XValues, p.X); !ok {
		err = fmt.Errorf("%w: %v", ErrPointOutside, p)
		return
	}
	if j, ok = locateInterval(g.YValues, p.Y); !ok {
		err = fmt.Errorf("%w: %v", ErrPointOutside, p)
		return
	}
	k = i + j*g.XElements()
	xi = (p.X - g.XValues[i]) / (g.XValues[i+1] - g.XValues[i])
	eta = (p.Y - g.YValues[j]) / (g.YValues[j+1] - g.YValues[j])
	return
}

func locateInterval(x []float64, v float64) (i int, ok bool) {
	var (
		n   = len(x)
		tol = NODETOL * (x[n-1] - x[0])
	)
	if !(v >= x[0]-tol && v <= x[n-1]+tol) {
		return
	}
	i = sort.SearchFloat64s(x, v) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i, true
}

const NODETOL = 1.e-12

// MaterialSetter assigns a material id to an element from its corner points.
type MaterialSetter interface {
	MaterialID(nodes [4]Point) int
}

// RectArea tags every element whose centroid lies in Rect with MaterialID.
type RectArea struct {
	Rect       *BoundingBox
	MaterialID int
}

func NewRectArea(rect *BoundingBox, materialID int) RectArea { return RectArea{rect, materialID} }

// AreasMaterialSetter picks the first area containing the element centroid, or the default id.
type AreasMaterialSetter struct {
	Areas             []RectArea
	DefaultMaterialID int
}

func NewAreasMaterialSetter(areas []RectArea, defaultMaterialID int) *AreasMaterialSetter {
	return &AreasMaterialSetter{areas, defaultMaterialID}
}

func (as *AreasMaterialSetter) MaterialID(nodes [4]Point) int {
	var c Point
	for _, p := range nodes {
		c.X += 0.25 * p.X
		c.Y += 0.25 * p.Y
	}
	for _, a := range as.Areas {
		if a.Rect.PointInside(c) {
			return a.MaterialID
		}
	}
	return as.DefaultMaterialID
}

type GridBuilder struct {
	xAxis, yAxis *AxisSplitParameter
	materials    MaterialSetter
}

func NewGridBuilder() *GridBuilder { return &GridBuilder{} }

func (gb *GridBuilder) SetXAxis(ap AxisSplitParameter) *GridBuilder {
	gb.xAxis = &ap
	return gb
}

func (gb *GridBuilder) SetYAxis(ap AxisSplitParameter) *GridBuilder {
	gb.yAxis = &ap
	return gb
}

func (gb *GridBuilder) SetMaterialSetter(ms MaterialSetter) *GridBuilder {
	gb.materials = ms
	return gb
}

func (gb *GridBuilder) Build() (g *Grid, err error) {
	var (
		xv, yv []float64
	)
	if gb.xAxis == nil || gb.yAxis == nil {
		err = ErrMissingAxis
		return
	}
	if xv, err = gb.xAxis.Values(); err != nil {
		return
	}
	if yv, err = gb.yAxis.Values(); err != nil {
		return
	}
	g = &Grid{
		XLength:  len(xv),
		YLength:  len(yv),
		XValues:  xv,
		YValues:  yv,
		Nodes:    make([]Point, len(xv)*len(yv)),
		Elements: make([]Element, (len(xv)-1)*(len(yv)-1)),
	}
	for j, y := range yv {
		for i, x := range xv {
			g.Nodes[g.NodeIndex(i, j)] = Point{x, y}
		}
	}
	var k int
	for j := 0; j < g.YElements(); j++ {
		for i := 0; i < g.XElements(); i++ {
			n0 := g.NodeIndex(i, j)
			e := Element{NodeIndexes: [4]int{n0, n0 + 1, n0 + g.XLength, n0 + g.XLength + 1}}
			if gb.materials != nil {
				e.MaterialID = gb.materials.MaterialID(g.CornerPoints(e))
			}
			g.Elements[k] = e
			k++
		}
	}
	return
}

