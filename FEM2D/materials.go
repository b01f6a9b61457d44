package FEM2D

import "fmt"

// Material holds the constant per-element coefficients of the heat equation.
type Material struct {
	Lambda       float64 // thermal conductivity, the diffusion coefficient
	Density      float64
	HeatCapacity float64
}

// Capacity is density times specific heat, the coefficient of the time derivative and convection terms.
func (m Material) Capacity() float64 { return m.Density * m.HeatCapacity }

type MaterialProvider interface {
	Material(id int) (Material, error)
}

// MaterialTable indexes materials by id.
type MaterialTable []Material

func (mt MaterialTable) Material(id int) (m Material, err error) {
	if id < 0 || id >= len(mt) {
		err = fmt.Errorf("%w: %d", ErrUnknownMaterial, id)
		return
	}
	return mt[id], nil
}
