package Boiling2D

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/solvers"
	"github.com/notargets/boiling/types"
	"github.com/notargets/boiling/utils"
)

// FailurePolicy decides what happens to a run when the solver fails on a layer.
type FailurePolicy uint8

const (
	Abort    FailurePolicy = iota // stop the run with a LayerError
	Fallback                      // solve the same layer again with the fallback solver
	Continue                      // keep a finite, unconverged solution and go on
)

var FailurePolicyNameMap = map[string]FailurePolicy{
	"abort":    Abort,
	"fallback": Fallback,
	"continue": Continue,
}

func (fp FailurePolicy) String() string {
	for name, p := range FailurePolicyNameMap {
		if p == fp {
			return name
		}
	}
	return "unknown"
}

func NewFailurePolicy(label string) (fp FailurePolicy, err error) {
	var ok bool
	if fp, ok = FailurePolicyNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownPolicy, label)
	}
	return
}

// Parameters of the heated vessel: a heater of HeaterPower watts on the bottom, convective
// exchange with AmbientTemperature through the side wall and the top.
type Parameters struct {
	HeaterPower        float64
	AmbientTemperature float64
	HeatTransfer       float64 // coefficient of the third condition
	VelocityScale      float64
}

func DefaultParameters() Parameters {
	return Parameters{
		HeaterPower:        1000,
		AmbientTemperature: 24,
		HeatTransfer:       200,
		VelocityScale:      0.001,
	}
}

// LayerObserver is called after each solved layer. x must not be retained.
type LayerObserver func(layer int, t float64, x []float64, res solvers.Result)

type Option func(b *Boiling)

func WithLogger(l *log.Logger) Option { return func(b *Boiling) { b.logger = l } }

func WithLogFrequency(n int) Option { return func(b *Boiling) { b.logFrequency = n } }

func WithFailurePolicy(p FailurePolicy) Option { return func(b *Boiling) { b.policy = p } }

func WithFallbackSolver(s solvers.Solver) Option { return func(b *Boiling) { b.fallback = s } }

// WithExportLayers pins layers in the solution history so they survive the run.
func WithExportLayers(layers ...int) Option {
	return func(b *Boiling) { b.exportLayers = append(b.exportLayers, layers...) }
}

func WithParallelAssembly(parallel bool) Option { return func(b *Boiling) { b.parallel = parallel } }

func WithSource(q FEM2D.SourceFunc) Option { return func(b *Boiling) { b.source = q } }

func WithParameters(p Parameters) Option { return func(b *Boiling) { b.Params = p } }

// WithVelocity replaces the default circulation cell, nil turns convection off.
func WithVelocity(v FEM2D.VelocityField) Option {
	return func(b *Boiling) { b.velocity, b.velocitySet = v, true }
}

// WithFirstConditions prescribes u(p, t) on the nodes of the given sides, evaluated every layer.
func WithFirstConditions(u FirstConditionFunc, bounds ...geometry2D.Bound) Option {
	return func(b *Boiling) { b.firstFunc, b.firstBounds = u, bounds }
}

// WithBoundaries sets the condition kind of each side. Neuman sides carry the heater flux, Robin
// sides exchange with the ambient, Dirichlet sides need WithFirstConditions.
func WithBoundaries(bcs map[geometry2D.Bound]types.BCFLAG) Option {
	return func(b *Boiling) { b.boundaries = bcs }
}

// DefaultBoundaries heat the vessel from below and cool it through the wall and the top. The left
// side is the symmetry axis.
func DefaultBoundaries() map[geometry2D.Bound]types.BCFLAG {
	return map[geometry2D.Bound]types.BCFLAG{
		geometry2D.Bottom: types.BC_Neuman,
		geometry2D.Right:  types.BC_Robin,
		geometry2D.Top:    types.BC_Robin,
		geometry2D.Left:   types.BC_None,
	}
}

func WithLayerObserver(o LayerObserver) Option { return func(b *Boiling) { b.observer = o } }

// Boiling is the time stepping driver of the heated vessel model.
type Boiling struct {
	Grid       *geometry2D.Grid
	Materials  FEM2D.MaterialProvider
	TimeLayers []float64
	Solver     solvers.Solver
	Params     Parameters
	Context    *EquationContext
	Assembler  *EquationAssembler

	logger       *log.Logger
	logFrequency int
	policy       FailurePolicy
	fallback     solvers.Solver
	exportLayers []int
	parallel     bool
	source       FEM2D.SourceFunc
	velocity     FEM2D.VelocityField
	velocitySet  bool
	firstFunc    FirstConditionFunc
	firstBounds  []geometry2D.Bound
	boundaries   map[geometry2D.Bound]types.BCFLAG
	observer     LayerObserver
}

func NewBoiling(grid *geometry2D.Grid, materials FEM2D.MaterialProvider, timeLayers []float64,
	slae solvers.Solver, opts ...Option) (b *Boiling, err error) {
	if grid == nil || materials == nil || slae == nil {
		err = ErrMissingInput
		return
	}
	if len(timeLayers) < 2 {
		err = fmt.Errorf("%w: have %d", ErrTimeLayers, len(timeLayers))
		return
	}
	for i := 1; i < len(timeLayers); i++ {
		if !(timeLayers[i] > timeLayers[i-1]) {
			err = fmt.Errorf("%w: t[%d] = %g, t[%d] = %g", ErrTimeLayers, i-1, timeLayers[i-1], i, timeLayers[i])
			return
		}
	}
	b = &Boiling{
		Grid:         grid,
		Materials:    materials,
		TimeLayers:   timeLayers,
		Solver:       slae,
		Params:       DefaultParameters(),
		logger:       log.New(io.Discard, "", 0),
		logFrequency: 1,
		boundaries:   DefaultBoundaries(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard, "", 0)
	}
	if b.logFrequency < 1 {
		b.logFrequency = 1
	}
	switch b.policy {
	case Abort, Continue:
	case Fallback:
		if b.fallback == nil {
			b.fallback = solvers.NewSparseLU()
		}
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownPolicy, b.policy)
		b = nil
		return
	}
	if !b.velocitySet {
		b.velocity = ConvectionVelocity(grid.Nodes, b.Params.VelocityScale)
	}

	history := NewSolutionHistory(b.exportLayers...)
	if b.Context, err = NewEquationContext(grid, timeLayers, history); err != nil {
		b = nil
		return
	}
	var (
		ctx = b.Context
		// The heater covers the bottom out to the radius of the last node
		R = grid.Nodes[len(grid.Nodes)-1].R()
	)
	for _, side := range []geometry2D.Bound{geometry2D.Bottom, geometry2D.Right, geometry2D.Top, geometry2D.Left} {
		switch bc := b.boundaries[side]; bc {
		case types.BC_None:
		case types.BC_Neuman:
			ctx.SecondConditions = append(ctx.SecondConditions,
				CreateSecondConditions(grid, side, HeaterFlux(b.Params.HeaterPower, R))...)
		case types.BC_Robin:
			ctx.ThirdConditions = append(ctx.ThirdConditions,
				CreateThirdConditions(grid, side, b.Params.AmbientTemperature, b.Params.HeatTransfer)...)
		case types.BC_Dirichlet:
			if b.firstFunc == nil {
				err = fmt.Errorf("%w: %v side is Dirichlet without a prescribed function", ErrBoundary, side)
				b = nil
				return
			}
			b.firstBounds = appendBound(b.firstBounds, side)
		default:
			err = fmt.Errorf("%w: %v on %v side", ErrBoundary, bc, side)
			b = nil
			return
		}
	}
	b.Assembler = NewEquationAssembler(ctx, materials, b.velocity, b.source, b.parallel)
	return
}

func appendBound(bounds []geometry2D.Bound, b geometry2D.Bound) []geometry2D.Bound {
	for _, have := range bounds {
		if have == b {
			return bounds
		}
	}
	return append(bounds, b)
}

// Solve marches from the initial condition at TimeLayers[0] through every layer.
func (b *Boiling) Solve(initial []float64) (ts *TimeSolution, err error) {
	var (
		ctx     = b.Context
		eq      = ctx.Equation
		elapsed time.Duration
	)
	if len(initial) != b.Grid.TotalPoints() {
		err = fmt.Errorf("%w: %d values for %d nodes", ErrInitialCondition, len(initial), b.Grid.TotalPoints())
		return
	}
	if !utils.IsFinite(initial) {
		err = fmt.Errorf("%w: non finite values", ErrInitialCondition)
		return
	}
	ctx.History.Store(0, initial)
	b.logger.Printf("Boiling 2D: %d nodes, %d elements, %d time layers, t = [%g, %g]",
		b.Grid.TotalPoints(), len(b.Grid.Elements), len(b.TimeLayers), b.TimeLayers[0], b.TimeLayers[len(b.TimeLayers)-1])
	for layer := 1; layer < len(b.TimeLayers); layer++ {
		var (
			t     = b.TimeLayers[layer]
			res   solvers.Result
			start = time.Now()
		)
		if b.firstFunc != nil {
			ctx.FirstConditions = CreateFirstConditions(b.Grid, b.firstFunc, t, b.firstBounds...)
		}
		if err = b.Assembler.Assemble(layer); err != nil {
			err = &LayerError{Layer: layer, Time: t, Residual: math.NaN(), Err: err}
			return
		}
		if res, err = b.solveLayer(layer, t); err != nil {
			return
		}
		elapsed += time.Since(start)
		ctx.History.Store(layer, eq.Solution)
		if b.observer != nil {
			b.observer(layer, t, eq.Solution, res)
		}
		if layer%b.logFrequency == 0 || layer == len(b.TimeLayers)-1 {
			b.logger.Printf("%8d t = %10.5f iterations = %5d residual = %11.4e",
				layer, t, res.Iterations, res.Residual)
		}
	}
	b.logger.Printf("Solved %d layers in %v, %s", len(b.TimeLayers)-1, elapsed, utils.GetMemUsage())
	ts = &TimeSolution{Grid: b.Grid, times: b.TimeLayers, history: ctx.History}
	return
}

func (b *Boiling) solveLayer(layer int, t float64) (res solvers.Result, err error) {
	var (
		eq = b.Context.Equation
	)
	if res, err = b.Solver.Solve(eq); err == nil {
		return
	}
	switch b.policy {
	case Fallback:
		b.logger.Printf("layer %d: %v, retrying with the fallback solver", layer, err)
		var ferr error
		if res, ferr = b.fallback.Solve(eq); ferr != nil {
			err = &LayerError{Layer: layer, Time: t, Residual: res.Residual, Err: errors.Join(err, ferr)}
			return
		}
		err = nil
	case Continue:
		if errors.Is(err, solvers.ErrNotConverged) && utils.IsFinite(eq.Solution) {
			b.logger.Printf("layer %d: %v, continuing", layer, err)
			err = nil
			return
		}
		err = &LayerError{Layer: layer, Time: t, Residual: res.Residual, Err: err}
	default:
		err = &LayerError{Layer: layer, Time: t, Residual: res.Residual, Err: err}
	}
	return
}

// Energy is the heat content 1^T M x of a solution, up to the factor 2 pi.
func (b *Boiling) Energy(x []float64) (e float64) {
	Mx := make([]float64, len(x))
	b.Context.Mass.MulVec(Mx, x)
	for _, v := range Mx {
		e += v
	}
	return
}

// LayersAt maps each requested time to the index of the nearest time layer.
func LayersAt(timeLayers, times []float64) (layers []int) {
	for _, t := range times {
		best := 0
		for i, tl := range timeLayers {
			if math.Abs(tl-t) < math.Abs(timeLayers[best]-t) {
				best = i
			}
		}
		layers = append(layers, best)
	}
	return
}
