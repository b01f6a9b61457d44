package Boiling2D

import (
	"fmt"
	"sort"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
)

// TimeSolution is the result of a run: the retained layers over the time axis.
type TimeSolution struct {
	Grid    *geometry2D.Grid
	times   []float64
	history *SolutionHistory
}

func (ts *TimeSolution) Times() []float64 { return append([]float64(nil), ts.times...) }

// Layer returns a copy of the nodal values of time layer i.
func (ts *TimeSolution) Layer(i int) (x []float64, err error) {
	if i < 0 || i >= len(ts.times) {
		err = fmt.Errorf("%w: layer %d of %d", ErrTimeOutOfRange, i, len(ts.times))
		return
	}
	v, ok := ts.history.Layer(i)
	if !ok {
		err = fmt.Errorf("%w: layer %d (t = %g)", ErrLayerReleased, i, ts.times[i])
		return
	}
	x = append([]float64(nil), v...)
	return
}

// Retained lists the layers Layer and Evaluate can read.
func (ts *TimeSolution) Retained() []int { return ts.history.Retained() }

// Evaluate interpolates the solution at p and t: bilinear inside the element holding p, linear in
// time between the two layers around t. Both layers must be retained.
func (ts *TimeSolution) Evaluate(p geometry2D.Point, t float64) (u float64, err error) {
	var (
		n = len(ts.times)
	)
	if !(t >= ts.times[0] && t <= ts.times[n-1]) {
		err = fmt.Errorf("%w: t = %g, range [%g, %g]", ErrTimeOutOfRange, t, ts.times[0], ts.times[n-1])
		return
	}
	i := sort.SearchFloat64s(ts.times, t)
	if ts.times[i] == t {
		return ts.evaluateLayer(p, i)
	}
	var u0, u1 float64
	if u0, err = ts.evaluateLayer(p, i-1); err != nil {
		return
	}
	if u1, err = ts.evaluateLayer(p, i); err != nil {
		return
	}
	w := (t - ts.times[i-1]) / (ts.times[i] - ts.times[i-1])
	u = (1-w)*u0 + w*u1
	return
}

func (ts *TimeSolution) evaluateLayer(p geometry2D.Point, i int) (u float64, err error) {
	x, ok := ts.history.Layer(i)
	if !ok {
		err = fmt.Errorf("%w: layer %d (t = %g)", ErrLayerReleased, i, ts.times[i])
		return
	}
	var (
		k       int
		xi, eta float64
		values  [FEM2D.NodesPerElement]float64
	)
	if k, xi, eta, err = ts.Grid.Locate(p); err != nil {
		return
	}
	for a, node := range ts.Grid.Elements[k].NodeIndexes {
		values[a] = x[node]
	}
	u = FEM2D.Interpolate(values, xi, eta)
	return
}
