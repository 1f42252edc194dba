package boundary

import (
	"fmt"

	"lbm2d/internal/lbm"
)

// unknowns lists the populations that stream into the domain through each
// side and must be rebuilt by a boundary operator.
var unknowns = [...][3]int{
	Left:  {1, 5, 8},
	Right: {3, 6, 7},
	Lower: {2, 5, 6},
	Upper: {4, 7, 8},
}

// inwardNormal points from each side into the domain.
var inwardNormal = [...][2]float64{
	Left:  {1, 0},
	Right: {-1, 0},
	Lower: {0, 1},
	Upper: {0, -1},
}

func validSide(side Side) bool { return side <= Upper }

// knownSums splits the populations that survive streaming on side into those
// running along the wall and those leaving the domain through it.
func knownSums(f *lbm.Populations, side Side) (tangential, outgoing float64) {
	n := inwardNormal[side]
	for i := 0; i < lbm.Q; i++ {
		cn := float64(lbm.C[i][0])*n[0] + float64(lbm.C[i][1])*n[1]
		switch {
		case cn == 0:
			tangential += f[i]
		case cn < 0:
			outgoing += f[i]
		}
	}
	return tangential, outgoing
}

// RegularizedVelocity imposes a velocity on a straight boundary. Every
// population is rebuilt from the equilibrium plus the second-order
// non-equilibrium stress.
type RegularizedVelocity struct {
	Side   Side
	Ux, Uy float64
	Bulk   lbm.Dynamics
}

// NewRegularizedVelocity validates side and bulk.
func NewRegularizedVelocity(side Side, ux, uy float64, bulk lbm.Dynamics) (*RegularizedVelocity, error) {
	if err := checkOperator(side, bulk); err != nil {
		return nil, err
	}
	return &RegularizedVelocity{Side: side, Ux: ux, Uy: uy, Bulk: bulk}, nil
}

// Collide rebuilds the site and collides with Bulk.
func (r *RegularizedVelocity) Collide(f *lbm.Populations) {
	n := inwardNormal[r.Side]
	tangential, outgoing := knownSums(f, r.Side)
	rho := (tangential + 2*outgoing) / (1 - (r.Ux*n[0] + r.Uy*n[1]))
	regularize(f, r.Side, rho, r.Ux, r.Uy)
	r.Bulk.Collide(f)
}

// RegularizedPressure imposes a density and a tangential velocity on a
// straight boundary. The normal velocity follows from the known populations.
type RegularizedPressure struct {
	Side Side
	Rho  float64
	UPar float64
	Bulk lbm.Dynamics
}

// NewRegularizedPressure validates side, rho and bulk.
func NewRegularizedPressure(side Side, rho, uPar float64, bulk lbm.Dynamics) (*RegularizedPressure, error) {
	if err := checkOperator(side, bulk); err != nil {
		return nil, err
	}
	if !(rho > 0) {
		return nil, fmt.Errorf("%w: pressure boundary density %v", lbm.ErrInvalidConfig, rho)
	}
	return &RegularizedPressure{Side: side, Rho: rho, UPar: uPar, Bulk: bulk}, nil
}

// Collide rebuilds the site and collides with Bulk.
func (r *RegularizedPressure) Collide(f *lbm.Populations) {
	n := inwardNormal[r.Side]
	tangential, outgoing := knownSums(f, r.Side)
	un := 1 - (tangential+2*outgoing)/r.Rho
	// The tangent is (|n_y|, |n_x|), so UPar runs along +x or +y.
	ux := un*n[0] + r.UPar*n[1]*n[1]
	uy := un*n[1] + r.UPar*n[0]*n[0]
	regularize(f, r.Side, r.Rho, ux, uy)
	r.Bulk.Collide(f)
}

// regularize replaces f with feq(rho, u) plus the non-equilibrium part
// projected onto the second-order Hermite basis. The unknown populations get
// their non-equilibrium part from the opposite direction first.
func regularize(f *lbm.Populations, side Side, rho, ux, uy float64) {
	feq := lbm.EquilibriumPopulations(rho, ux, uy)
	for _, i := range unknowns[side] {
		o := lbm.Opposite[i]
		f[i] = feq[i] + f[o] - feq[o]
	}

	var pxx, pxy, pyy float64
	for i := 0; i < lbm.Q; i++ {
		neq := f[i] - feq[i]
		cx, cy := float64(lbm.C[i][0]), float64(lbm.C[i][1])
		pxx += cx * cx * neq
		pxy += cx * cy * neq
		pyy += cy * cy * neq
	}

	for i := 0; i < lbm.Q; i++ {
		cx, cy := float64(lbm.C[i][0]), float64(lbm.C[i][1])
		qxx := cx*cx - 1./3.
		qyy := cy*cy - 1./3.
		f[i] = feq[i] + 4.5*lbm.W[i]*(qxx*pxx+2*cx*cy*pxy+qyy*pyy)
	}
}

func checkOperator(side Side, bulk lbm.Dynamics) error {
	if !validSide(side) {
		return fmt.Errorf("%w: unknown boundary %s", lbm.ErrInvalidConfig, side)
	}
	if bulk == nil {
		return fmt.Errorf("%w: %s boundary has no bulk dynamics", lbm.ErrInvalidConfig, side)
	}
	return nil
}
