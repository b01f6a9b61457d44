package Boiling2D

import (
	"fmt"

	"github.com/notargets/boiling/FEM2D"
)

// EquationAssembler turns the context into the linear system of one time layer:
//
//	(M/dt + K + V) x_n = (M/dt) x_n-1 + source
//
// followed by the third, second and first boundary conditions, in that order.
type EquationAssembler struct {
	Context    *EquationContext
	Materials  FEM2D.MaterialProvider
	Velocity   FEM2D.VelocityField // nil disables convection
	Parallel   bool
	integrator *FEM2D.Integrator
	rightPart  *FEM2D.RightPartAssembler
	second     *FEM2D.CylinderSecondApplier
	third      *FEM2D.CylinderThirdApplier
	first      FEM2D.GaussExcluder
	assembled  bool
}

func NewEquationAssembler(ctx *EquationContext, materials FEM2D.MaterialProvider, velocity FEM2D.VelocityField,
	source FEM2D.SourceFunc, parallel bool) (ea *EquationAssembler) {
	var (
		in       = FEM2D.NewIntegrator(ctx.Grid, 2, true)
		inserter FEM2D.Inserter
	)
	ea = &EquationAssembler{
		Context:    ctx,
		Materials:  materials,
		Velocity:   velocity,
		Parallel:   parallel,
		integrator: in,
		rightPart:  FEM2D.NewRightPartAssembler(in, source),
		second:     FEM2D.NewCylinderSecondApplier(ctx.Grid, inserter),
		third:      FEM2D.NewCylinderThirdApplier(ctx.Grid, inserter),
	}
	return
}

// assembleOperators fills the time independent matrices on first use.
func (ea *EquationAssembler) assembleOperators() (err error) {
	if ea.assembled {
		return
	}
	var (
		ctx = ea.Context
		sv  = FEM2D.SumAssembler{FEM2D.NewStiffnessAssembler(ea.integrator, ea.Materials)}
	)
	if ea.Velocity != nil {
		sv = append(sv, FEM2D.NewVelocityAssembler(ea.integrator, ea.Materials, ea.Velocity))
	}
	ctx.StiffnessVelocity.Reset()
	if err = FEM2D.AssembleGlobal(ctx.StiffnessVelocity, ctx.Grid, sv, ea.Parallel); err != nil {
		return
	}
	ctx.Mass.Reset()
	if err = FEM2D.AssembleGlobal(ctx.Mass, ctx.Grid, FEM2D.NewMassAssembler(ea.integrator, ea.Materials), ea.Parallel); err != nil {
		return
	}
	ctx.StiffnessVelocity.SetReadOnly("StiffnessVelocity")
	ctx.Mass.SetReadOnly("Mass")
	ea.assembled = true
	return
}

// BuildEquation assembles the interior system of a layer from the retained previous layer. The
// previous layer is also the initial guess.
func (ea *EquationAssembler) BuildEquation(layer int) (err error) {
	var (
		ctx = ea.Context
		eq  = ctx.Equation
	)
	if layer < 1 || layer >= len(ctx.TimeLayers) {
		return fmt.Errorf("%w: layer %d of %d", ErrTimeOutOfRange, layer, len(ctx.TimeLayers))
	}
	previous, ok := ctx.History.Layer(layer - 1)
	if !ok {
		return fmt.Errorf("%w: layer %d", ErrLayerReleased, layer-1)
	}
	if err = ea.assembleOperators(); err != nil {
		return
	}
	var (
		t  = ctx.TimeLayers[layer]
		dt = t - ctx.TimeLayers[layer-1]
	)
	eq.Matrix.CopyFrom(ctx.StiffnessVelocity)
	eq.Matrix.AddScaled(1/dt, ctx.Mass)
	if err = ea.rightPart.Assemble(eq.RightPart, ctx.Mass, previous, dt, t); err != nil {
		return
	}
	copy(eq.Solution, previous)
	return
}

func (ea *EquationAssembler) ApplyThird() error {
	return ea.third.Apply(ea.Context.Equation.Matrix, ea.Context.Equation.RightPart, ea.Context.ThirdConditions)
}

func (ea *EquationAssembler) ApplySecond() error {
	return ea.second.Apply(ea.Context.Equation.RightPart, ea.Context.SecondConditions)
}

func (ea *EquationAssembler) ApplyFirst() error {
	return ea.first.Apply(ea.Context.Equation.Matrix, ea.Context.Equation.RightPart, ea.Context.FirstConditions)
}

// Assemble runs the full per layer sequence. The first conditions are skipped when none are set.
func (ea *EquationAssembler) Assemble(layer int) (err error) {
	if err = ea.BuildEquation(layer); err != nil {
		return
	}
	if err = ea.ApplyThird(); err != nil {
		return
	}
	if err = ea.ApplySecond(); err != nil {
		return
	}
	if len(ea.Context.FirstConditions) != 0 {
		err = ea.ApplyFirst()
	}
	return
}
