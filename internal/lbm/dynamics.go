package lbm

import "fmt"

// Dynamics is the collision operator of a lattice site. Implementations
// rewrite the populations in place. A single instance is usually shared by
// many sites, so implementations must not keep per-site state.
type Dynamics interface {
	Collide(f *Populations)
}

// DynamicsFunc adapts a plain function to the Dynamics interface.
type DynamicsFunc func(f *Populations)

// Collide calls fn(f).
func (fn DynamicsFunc) Collide(f *Populations) { fn(f) }

// BGK is the single-relaxation-time collision operator.
type BGK struct {
	Omega float64
}

// NewBGK returns a BGK operator after checking that omega lies in (0, 2).
func NewBGK(omega float64) (*BGK, error) {
	if !(omega > 0 && omega < 2) {
		return nil, fmt.Errorf("%w: omega=%g", ErrInvalidRelaxation, omega)
	}
	return &BGK{Omega: omega}, nil
}

// OmegaFromViscosity converts a lattice kinematic viscosity into a
// relaxation rate.
func OmegaFromViscosity(nu float64) float64 {
	return 1. / (3*nu + 1./2.)
}

// Collide relaxes f toward the local equilibrium. The density of f must be
// positive; the simulation checks this before dispatching.
func (b *BGK) Collide(f *Populations) {
	rho, ux, uy := macroscopic(f)
	uSqr := ux*ux + uy*uy
	omega := b.Omega
	for i := range f {
		f[i] *= 1 - omega
		f[i] += omega * Equilibrium(i, rho, ux, uy, uSqr)
	}
}
