package FEM2D

import (
	"gonum.org/v1/gonum/mat"
)

// LocalMatrixAssembler computes the 4x4 matrix of one element into dst, overwriting it.
type LocalMatrixAssembler interface {
	AssembleLocal(k int, dst *mat.Dense) error
}

func (in *Integrator) material(k int, mp MaterialProvider) (m Material, err error) {
	if m, err = mp.Material(in.Grid.Elements[k].MaterialID); err != nil {
		err = &ElementError{k, err}
	}
	return
}

// StiffnessAssembler integrates lambda * grad(phi_i) . grad(phi_j) * r.
type StiffnessAssembler struct {
	*Integrator
	Materials MaterialProvider
}

func NewStiffnessAssembler(in *Integrator, materials MaterialProvider) *StiffnessAssembler {
	return &StiffnessAssembler{in, materials}
}

func (sa *StiffnessAssembler) AssembleLocal(k int, dst *mat.Dense) (err error) {
	var (
		m   Material
		ips []IntegrationPoint
	)
	if m, err = sa.material(k, sa.Materials); err != nil {
		return
	}
	if ips, err = sa.Element(k, nil); err != nil {
		return
	}
	dst.Zero()
	for _, ip := range ips {
		for i := 0; i < NodesPerElement; i++ {
			for j := i; j < NodesPerElement; j++ {
				val := m.Lambda * ip.Weight * ip.Grad[i].Dot(ip.Grad[j])
				dst.Set(i, j, dst.At(i, j)+val)
			}
		}
	}
	for i := 0; i < NodesPerElement; i++ {
		for j := 0; j < i; j++ {
			dst.Set(i, j, dst.At(j, i))
		}
	}
	return
}

// MassAssembler integrates rho*c * phi_i * phi_j * r.
type MassAssembler struct {
	*Integrator
	Materials MaterialProvider
}

func NewMassAssembler(in *Integrator, materials MaterialProvider) *MassAssembler {
	return &MassAssembler{in, materials}
}

func (ma *MassAssembler) AssembleLocal(k int, dst *mat.Dense) (err error) {
	var (
		m   Material
		ips []IntegrationPoint
	)
	if m, err = ma.material(k, ma.Materials); err != nil {
		return
	}
	if ips, err = ma.Element(k, nil); err != nil {
		return
	}
	dst.Zero()
	for _, ip := range ips {
		for i := 0; i < NodesPerElement; i++ {
			for j := 0; j < NodesPerElement; j++ {
				dst.Set(i, j, dst.At(i, j)+m.Capacity()*ip.Weight*ip.Phi[i]*ip.Phi[j])
			}
		}
	}
	return
}

// VelocityAssembler integrates rho*c * phi_i * (v . grad(phi_j)) * r, with v sampled at the
// quadrature points. The result is not symmetric.
type VelocityAssembler struct {
	*Integrator
	Materials MaterialProvider
	Field     VelocityField
}

func NewVelocityAssembler(in *Integrator, materials MaterialProvider, field VelocityField) *VelocityAssembler {
	return &VelocityAssembler{in, materials, field}
}

func (va *VelocityAssembler) AssembleLocal(k int, dst *mat.Dense) (err error) {
	var (
		m   Material
		ips []IntegrationPoint
	)
	if m, err = va.material(k, va.Materials); err != nil {
		return
	}
	if ips, err = va.Element(k, nil); err != nil {
		return
	}
	dst.Zero()
	for _, ip := range ips {
		v := va.Field.Velocity(ip.Point)
		for j := 0; j < NodesPerElement; j++ {
			adv := m.Capacity() * ip.Weight * v.Dot(ip.Grad[j])
			if adv == 0 {
				continue
			}
			for i := 0; i < NodesPerElement; i++ {
				dst.Set(i, j, dst.At(i, j)+adv*ip.Phi[i])
			}
		}
	}
	return
}

// SumAssembler adds the local matrices of several assemblers, e.g. stiffness and convection
// sharing one global matrix.
type SumAssembler []LocalMatrixAssembler

func (sa SumAssembler) AssembleLocal(k int, dst *mat.Dense) (err error) {
	var (
		tmp = mat.NewDense(NodesPerElement, NodesPerElement, nil)
	)
	dst.Zero()
	for _, a := range sa {
		if err = a.AssembleLocal(k, tmp); err != nil {
			return
		}
		dst.Add(dst, tmp)
	}
	return
}
