package Boiling2D

import (
	"math"

	"github.com/notargets/boiling/FEM2D"
	"github.com/notargets/boiling/geometry2D"
)

// HeaterFlux spreads a heater power over the disk of radius R.
func HeaterFlux(power, R float64) float64 { return power / (math.Pi * R * R) }

func CreateSecondConditions(g *geometry2D.Grid, b geometry2D.Bound, flux float64) (conds []FEM2D.SecondCondition) {
	for _, k := range geometry2D.BoundElements(g, b) {
		conds = append(conds, FEM2D.SecondCondition{
			ElementIndex: k,
			Bound:        b,
			Values:       [2]float64{flux, flux},
			Type:         FEM2D.Real,
		})
	}
	return
}

func CreateThirdConditions(g *geometry2D.Grid, b geometry2D.Bound, ambient, beta float64) (conds []FEM2D.ThirdCondition) {
	for _, k := range geometry2D.BoundElements(g, b) {
		conds = append(conds, FEM2D.ThirdCondition{
			ElementIndex: k,
			Bound:        b,
			Values:       [2]float64{ambient, ambient},
			Beta:         beta,
		})
	}
	return
}

// FirstConditionFunc is a prescribed value u(p, t).
type FirstConditionFunc func(p geometry2D.Point, t float64) float64

// CreateFirstConditions evaluates u at time t on the nodes of the given sides, corners once.
func CreateFirstConditions(g *geometry2D.Grid, u FirstConditionFunc, t float64, bounds ...geometry2D.Bound) (conds []FEM2D.FirstCondition) {
	seen := make(map[int]struct{})
	for _, b := range bounds {
		for _, n := range geometry2D.BoundNodes(g, b) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			conds = append(conds, FEM2D.FirstCondition{NodeIndex: n, Value: u(g.Nodes[n], t)})
		}
	}
	return
}
