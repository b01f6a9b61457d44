package geometry2D

// Element indexes along each side of a structured grid. Elements are numbered row-major over X,
// so a side is a plain index range.

func BottomElements(g *Grid) (I []int) {
	var (
		nx = g.XElements()
	)
	I = make([]int, nx)
	for i := range I {
		I[i] = i
	}
	return
}

func TopElements(g *Grid) (I []int) {
	var (
		nx, ny = g.XElements(), g.YElements()
	)
	I = make([]int, nx)
	for i := range I {
		I[i] = nx*(ny-1) + i
	}
	return
}

func LeftElements(g *Grid) (I []int) {
	var (
		nx, ny = g.XElements(), g.YElements()
	)
	I = make([]int, ny)
	for j := range I {
		I[j] = j * nx
	}
	return
}

func RightElements(g *Grid) (I []int) {
	var (
		nx, ny = g.XElements(), g.YElements()
	)
	I = make([]int, ny)
	for j := range I {
		I[j] = (j+1)*nx - 1
	}
	return
}

func BoundElements(g *Grid, b Bound) []int {
	switch b {
	case Bottom:
		return BottomElements(g)
	case Right:
		return RightElements(g)
	case Top:
		return TopElements(g)
	default:
		return LeftElements(g)
	}
}

// BoundNodes returns the distinct nodes lying on side b, in increasing order along the side.
func BoundNodes(g *Grid, b Bound) (I []int) {
	for n, k := range BoundElements(g, b) {
		nodes := g.Elements[k].BoundNodeIndexes(b)
		if n == 0 {
			I = append(I, nodes[0])
		}
		I = append(I, nodes[1])
	}
	return
}
