package Boiling2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/solvers"
	"github.com/notargets/boiling/types"
	"github.com/notargets/boiling/utils"
)

var water = FEM2D.MaterialTable{{Lambda: 0.6, Density: 999.97, HeatCapacity: 4200}}

func vessel(t *testing.T, nr, nz int) *geometry2D.Grid {
	g, err := geometry2D.NewGridBuilder().
		SetXAxis(geometry2D.NewAxisSplitParameter([]float64{0, 0.07}, geometry2D.NewUniformSplitter(nr))).
		SetYAxis(geometry2D.NewAxisSplitParameter([]float64{0, 0.08}, geometry2D.NewUniformSplitter(nz))).
		Build()
	require.NoError(t, err)
	return g
}

func newLOS(t *testing.T) solvers.Solver {
	s, err := solvers.NewSolver(solvers.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestBoilingEndToEnd(t *testing.T) {
	var (
		g         = vessel(t, 14, 16)
		layers    = utils.Linspace(0, 10, 10)
		residuals []float64
		energies  []float64
	)
	b, err := NewBoiling(g, water, layers, newLOS(t),
		WithLayerObserver(func(layer int, tl float64, x []float64, res solvers.Result) {
			assert.True(t, utils.IsFinite(x), "layer %d", layer)
			residuals = append(residuals, res.Residual)
		}))
	require.NoError(t, err)
	initial := utils.ConstArray(g.TotalPoints(), 25)
	ts, err := b.Solve(initial)
	require.NoError(t, err)

	require.Equal(t, 10, len(residuals))
	for i, r := range residuals {
		assert.Less(t, r, solvers.DefaultTolerance, "layer %d", i+1)
	}
	assert.Equal(t, []int{9, 10}, ts.Retained())

	energies = append(energies, b.Energy(initial))
	for _, l := range []int{9, 10} {
		x, err := ts.Layer(l)
		require.NoError(t, err)
		energies = append(energies, b.Energy(x))
	}
	assert.Less(t, energies[0], energies[1])
	assert.Less(t, energies[1], energies[2])

	// The heater warms the bottom
	u, err := ts.Evaluate(geometry2D.Point{X: 0.035, Y: 0}, 10)
	require.NoError(t, err)
	assert.Greater(t, u, 25.)
}

func TestBoilingEnergyGrowth(t *testing.T) {
	var (
		g        = vessel(t, 7, 8)
		energies []float64
	)
	b, err := NewBoiling(g, water, utils.Linspace(0, 10, 10), newLOS(t))
	require.NoError(t, err)
	b.observer = func(layer int, tl float64, x []float64, res solvers.Result) {
		energies = append(energies, b.Energy(x))
	}
	initial := utils.ConstArray(g.TotalPoints(), 25)
	_, err = b.Solve(initial)
	require.NoError(t, err)
	prev := b.Energy(initial)
	for i, e := range energies {
		assert.Greater(t, e, prev, "layer %d", i+1)
		prev = e
	}
}

func TestBoilingDirichletExact(t *testing.T) {
	var (
		g      = vessel(t, 6, 6)
		layers = utils.Linspace(0, 5, 5)
		height = func(p geometry2D.Point, t float64) float64 { return p.Z() }
	)
	b, err := NewBoiling(g, water, layers, newLOS(t),
		WithVelocity(nil),
		WithExportLayers(2),
		WithFirstConditions(height, geometry2D.Bottom, geometry2D.Right, geometry2D.Top, geometry2D.Left))
	require.NoError(t, err)
	assert.Equal(t, 24, len(CreateFirstConditions(g, height, 0, geometry2D.Bottom, geometry2D.Right,
		geometry2D.Top, geometry2D.Left)))

	initial := make([]float64, g.TotalPoints())
	for i, p := range g.Nodes {
		initial[i] = p.Z()
	}
	ts, err := b.Solve(initial)
	require.NoError(t, err)
	for _, l := range []int{2, 4, 5} {
		x, err := ts.Layer(l)
		require.NoError(t, err)
		assert.InDeltaSlice(t, initial, x, 1.e-8)
	}
	p := geometry2D.Point{X: 0.031, Y: 0.047}
	for _, tl := range []float64{2, 4.5} {
		u, err := ts.Evaluate(p, tl)
		require.NoError(t, err)
		assert.InDelta(t, 0.047, u, 1.e-8)
	}
}

func TestTimeSolutionAccess(t *testing.T) {
	g := vessel(t, 4, 4)
	b, err := NewBoiling(g, water, utils.Linspace(0, 6, 6), newLOS(t), WithExportLayers(2))
	require.NoError(t, err)
	ts, err := b.Solve(utils.ConstArray(g.TotalPoints(), 25))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 6}, ts.Retained())
	assert.Equal(t, utils.Linspace(0, 6, 6), ts.Times())

	p := geometry2D.Point{X: 0.01, Y: 0.01}
	_, err = ts.Evaluate(p, 6.5)
	assert.True(t, errors.Is(err, ErrTimeOutOfRange))
	_, err = ts.Evaluate(p, -1)
	assert.True(t, errors.Is(err, ErrTimeOutOfRange))
	assert.NotPanics(t, func() {
		_, err = ts.Evaluate(p, math.NaN())
	})
	assert.True(t, errors.Is(err, ErrTimeOutOfRange))
	_, err = ts.Evaluate(p, 3)
	assert.True(t, errors.Is(err, ErrLayerReleased))
	_, err = ts.Evaluate(p, 4.5)
	assert.True(t, errors.Is(err, ErrLayerReleased))
	_, err = ts.Evaluate(geometry2D.Point{X: 0.1, Y: 0.01}, 6)
	assert.True(t, errors.Is(err, geometry2D.ErrPointOutside))
	for _, bad := range []geometry2D.Point{{X: math.NaN(), Y: 0.01}, {X: 0.01, Y: math.NaN()}, {X: math.Inf(1), Y: 0.01}} {
		_, err = ts.Evaluate(bad, 6)
		assert.True(t, errors.Is(err, geometry2D.ErrPointOutside), "%v", bad)
	}
	_, err = ts.Layer(3)
	assert.True(t, errors.Is(err, ErrLayerReleased))
	_, err = ts.Layer(7)
	assert.True(t, errors.Is(err, ErrTimeOutOfRange))

	// Linear in time between retained layers
	u5, err := ts.Evaluate(p, 5)
	require.NoError(t, err)
	u6, err := ts.Evaluate(p, 6)
	require.NoError(t, err)
	u, err := ts.Evaluate(p, 5.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.75*u5+0.25*u6, u, 1.e-12)

	// Bilinear in space: a node value is returned exactly
	x, err := ts.Layer(6)
	require.NoError(t, err)
	u, err = ts.Evaluate(g.Nodes[7], 6)
	require.NoError(t, err)
	assert.InDelta(t, x[7], u, 1.e-12)
}

func TestFailurePolicies(t *testing.T) {
	var (
		g        = vessel(t, 7, 8)
		layers   = utils.Linspace(0, 3, 3)
		initial  = utils.ConstArray(g.TotalPoints(), 25)
		crippled = func() solvers.Solver {
			return solvers.NewLocalOptimalScheme(solvers.Config{MaxIterations: 1, Tolerance: 1.e-14})
		}
	)
	b, err := NewBoiling(g, water, layers, crippled())
	require.NoError(t, err)
	_, err = b.Solve(initial)
	require.Error(t, err)
	var le *LayerError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 1, le.Layer)
	assert.Equal(t, 1., le.Time)
	assert.Greater(t, le.Residual, 1.e-14)
	assert.True(t, errors.Is(err, solvers.ErrNotConverged))

	b, err = NewBoiling(g, water, layers, solvers.NewSparseLU())
	require.NoError(t, err)
	direct, err := b.Solve(initial)
	require.NoError(t, err)
	want, err := direct.Layer(3)
	require.NoError(t, err)

	b, err = NewBoiling(g, water, layers, crippled(), WithFailurePolicy(Fallback))
	require.NoError(t, err)
	ts, err := b.Solve(initial)
	require.NoError(t, err)
	have, err := ts.Layer(3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, have, 1.e-9)

	b, err = NewBoiling(g, water, layers, crippled(), WithFailurePolicy(Continue))
	require.NoError(t, err)
	_, err = b.Solve(initial)
	assert.NoError(t, err)

	_, err = NewBoiling(g, water, layers, crippled(), WithFailurePolicy(FailurePolicy(7)))
	assert.True(t, errors.Is(err, ErrUnknownPolicy))
	fp, err := NewFailurePolicy("Fallback")
	require.NoError(t, err)
	assert.Equal(t, Fallback, fp)
}

func TestSolversAgreeOnLayers(t *testing.T) {
	var (
		g       = vessel(t, 7, 8)
		layers  = utils.Linspace(0, 4, 4)
		initial = utils.ConstArray(g.TotalPoints(), 25)
		final   [][]float64
	)
	for _, s := range []solvers.Solver{newLOS(t), solvers.NewProfileLU(), solvers.NewSparseLU()} {
		b, err := NewBoiling(g, water, layers, s, WithParallelAssembly(true))
		require.NoError(t, err)
		ts, err := b.Solve(initial)
		require.NoError(t, err)
		x, err := ts.Layer(4)
		require.NoError(t, err)
		final = append(final, x)
	}
	assert.InDeltaSlice(t, final[1], final[0], 1.e-7)
	assert.InDeltaSlice(t, final[1], final[2], 1.e-9)
}

func TestNewBoilingInputs(t *testing.T) {
	g := vessel(t, 2, 2)
	_, err := NewBoiling(g, water, []float64{0}, newLOS(t))
	assert.True(t, errors.Is(err, ErrTimeLayers))
	_, err = NewBoiling(g, water, []float64{0, 1, 1}, newLOS(t))
	assert.True(t, errors.Is(err, ErrTimeLayers))
	_, err = NewBoiling(g, nil, []float64{0, 1}, newLOS(t))
	assert.True(t, errors.Is(err, ErrMissingInput))

	_, err = NewBoiling(g, water, []float64{0, 1}, newLOS(t), WithBoundaries(map[geometry2D.Bound]types.BCFLAG{
		geometry2D.Top: types.BC_Dirichlet}))
	assert.True(t, errors.Is(err, ErrBoundary))
	_, err = NewBoiling(g, water, []float64{0, 1}, newLOS(t), WithBoundaries(map[geometry2D.Bound]types.BCFLAG{
		geometry2D.Top: types.BCFLAG(9)}))
	assert.True(t, errors.Is(err, ErrBoundary))

	b, err := NewBoiling(g, water, []float64{0, 1}, newLOS(t))
	require.NoError(t, err)
	assert.Equal(t, 2, len(b.Context.SecondConditions))
	assert.Equal(t, 4, len(b.Context.ThirdConditions))
	_, err = b.Solve([]float64{25})
	assert.True(t, errors.Is(err, ErrInitialCondition))

	// An unknown material fails the first layer on the offending element
	g.Elements[3].MaterialID = 5
	b, err = NewBoiling(g, water, []float64{0, 1}, newLOS(t))
	require.NoError(t, err)
	_, err = b.Solve(utils.ConstArray(g.TotalPoints(), 25))
	var ee *FEM2D.ElementError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 3, ee.Element)
	assert.True(t, errors.Is(err, FEM2D.ErrUnknownMaterial))
}

func TestSolutionHistory(t *testing.T) {
	h := NewSolutionHistory(1)
	for l := 0; l < 6; l++ {
		if l == 3 {
			h.Pin(3)
			h.Pin(0)
		}
		h.Store(l, []float64{float64(l)})
	}
	// Layer 0 was released before it got pinned
	assert.Equal(t, []int{1, 3, 4, 5}, h.Retained())
	assert.True(t, h.IsPinned(3))
	_, ok := h.Layer(2)
	assert.False(t, ok)
	x, ok := h.Layer(5)
	require.True(t, ok)
	assert.Equal(t, []float64{5}, x)
}

func TestConvectionVelocity(t *testing.T) {
	var (
		R, H  = 0.07, 0.08
		nodes = []geometry2D.Point{{X: 0, Y: 0}, {X: R, Y: H}}
		v     = ConvectionVelocity(nodes, 0.001)
		h     = 1.e-6
	)
	for _, p := range []geometry2D.Point{{X: 0.01, Y: 0.02}, {X: 0.05, Y: 0.07}, {X: 0.035, Y: 0.04}} {
		var (
			rur = func(r float64) float64 { return r * v.Velocity(geometry2D.Point{X: r, Y: p.Y}).X }
			uz  = func(z float64) float64 { return v.Velocity(geometry2D.Point{X: p.X, Y: z}).Y }
			div = (rur(p.X+h)-rur(p.X-h))/(2*h)/p.X + (uz(p.Y+h)-uz(p.Y-h))/(2*h)
		)
		assert.InDelta(t, 0, div, 1.e-8)
	}
	assert.InDelta(t, 0, v.Velocity(geometry2D.Point{X: 0, Y: 0.03}).X, 1.e-15)
	assert.InDelta(t, 0, v.Velocity(geometry2D.Point{X: R, Y: 0.03}).X, 1.e-15)
	assert.InDelta(t, 0, v.Velocity(geometry2D.Point{X: 0.02, Y: 0}).Y, 1.e-15)
	assert.InDelta(t, 0, v.Velocity(geometry2D.Point{X: 0.02, Y: H}).Y, 1.e-15)
	assert.Greater(t, v.Velocity(geometry2D.Point{X: 0, Y: H / 2}).Y, 0.)
	assert.Less(t, v.Velocity(geometry2D.Point{X: R, Y: H / 2}).Y, 0.)
}

func TestConditionFactories(t *testing.T) {
	g := vessel(t, 3, 3)
	assert.InDelta(t, 1, HeaterFlux(math.Pi, 1), 1.e-15)
	sc := CreateSecondConditions(g, geometry2D.Bottom, 5)
	require.Equal(t, 3, len(sc))
	assert.Equal(t, [2]float64{5, 5}, sc[0].Values)
	tc := CreateThirdConditions(g, geometry2D.Top, 24, 200)
	require.Equal(t, 3, len(tc))
	assert.Equal(t, []int{6, 7, 8}, []int{tc[0].ElementIndex, tc[1].ElementIndex, tc[2].ElementIndex})
	fc := CreateFirstConditions(g, func(p geometry2D.Point, t float64) float64 { return p.R() + t }, 2,
		geometry2D.Bottom, geometry2D.Left)
	assert.Equal(t, 7, len(fc))
	assert.Equal(t, FEM2D.FirstCondition{NodeIndex: 0, Value: 2}, fc[0])
	assert.Equal(t, []int{0, 2}, LayersAt(utils.Linspace(0, 10, 10), []float64{0.2, 2.4}))
}
