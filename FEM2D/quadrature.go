package FEM2D

import "gonum.org/v1/gonum/integrate/quad"

type QuadraturePoint struct {
	Xi, Eta, Weight float64
}

// Quadrature2D is a tensor Gauss-Legendre rule on [0,1]^2.
type Quadrature2D []QuadraturePoint

// NewGaussQuadrature2D builds an n x n Gauss rule; n = 2 integrates the r-weighted bilinear
// products exactly on rectangles.
func NewGaussQuadrature2D(n int) (Q Quadrature2D) {
	x, w := GaussLegendre(n)
	Q = make(Quadrature2D, 0, n*n)
	for j := range x {
		for i := range x {
			Q = append(Q, QuadraturePoint{Xi: x[i], Eta: x[j], Weight: w[i] * w[j]})
		}
	}
	return
}

// GaussLegendre returns n nodes and weights on [0,1].
func GaussLegendre(n int) (x, w []float64) {
	x, w = make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	return
}
