package FEM2D

/*
Bilinear basis on the reference square [0,1]^2, ordered like the element nodes:

	phi2 = (1-xi)*eta    phi3 = xi*eta
	phi0 = (1-xi)(1-eta) phi1 = xi*(1-eta)
*/
const NodesPerElement = 4

func BilinearBasis(xi, eta float64) (phi [4]float64) {
	phi[0] = (1 - xi) * (1 - eta)
	phi[1] = xi * (1 - eta)
	phi[2] = (1 - xi) * eta
	phi[3] = xi * eta
	return
}

// BilinearDerivatives returns d(phi)/d(xi) and d(phi)/d(eta).
func BilinearDerivatives(xi, eta float64) (dXi, dEta [4]float64) {
	dXi = [4]float64{-(1 - eta), 1 - eta, -eta, eta}
	dEta = [4]float64{-(1 - xi), -xi, 1 - xi, xi}
	return
}

// Interpolate evaluates sum(values[i]*phi_i(xi, eta)).
func Interpolate(values [4]float64, xi, eta float64) (u float64) {
	phi := BilinearBasis(xi, eta)
	for i, val := range values {
		u += val * phi[i]
	}
	return
}
