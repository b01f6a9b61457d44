package Boiling2D

import (
	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
	"github.com/notargets/boiling/solvers"
	"github.com/notargets/boiling/utils"
)

// EquationContext is the state of one run. It is owned by a single Boiling driver, stages only
// write the fields they are responsible for.
type EquationContext struct {
	Grid       *geometry2D.Grid
	Portrait   *utils.Portrait
	TimeLayers []float64
	// StiffnessVelocity and Mass are assembled once, both share Portrait
	StiffnessVelocity *utils.SparseMatrix
	Mass              *utils.SparseMatrix
	Equation          *solvers.Equation
	FirstConditions   []FEM2D.FirstCondition
	SecondConditions  []FEM2D.SecondCondition
	ThirdConditions   []FEM2D.ThirdCondition
	History           *SolutionHistory
}

func NewEquationContext(grid *geometry2D.Grid, timeLayers []float64, history *SolutionHistory) (ctx *EquationContext, err error) {
	var (
		p *utils.Portrait
	)
	if p, err = utils.BuildPortrait(grid.TotalPoints(), grid.Connectivity()); err != nil {
		return
	}
	ctx = &EquationContext{
		Grid:              grid,
		Portrait:          p,
		TimeLayers:        timeLayers,
		StiffnessVelocity: utils.NewSparseMatrix(p),
		Mass:              utils.NewSparseMatrix(p),
		Equation:          solvers.NewEquation(utils.NewSparseMatrix(p)),
		History:           history,
	}
	return
}
