// Package boundary provides collision operators for obstacle and domain
// boundary sites. The Zou/He operators reconstruct the populations that
// streamed in from outside the domain and then hand the site to the bulk
// operator they wrap.
package boundary

import (
	"fmt"

	"lbm2d/internal/lbm"
)

// Side identifies the domain edge a boundary operator sits on.
type Side uint8

const (
	Left Side = iota
	Right
	Lower
	Upper
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// BounceBack reverses every population, modelling a no-slip solid site.
type BounceBack struct{}

// Collide swaps each population with its opposite.
func (BounceBack) Collide(f *lbm.Populations) {
	f[1], f[3] = f[3], f[1]
	f[2], f[4] = f[4], f[2]
	f[5], f[7] = f[7], f[5]
	f[6], f[8] = f[8], f[6]
}

// ZouHeVelocity imposes a velocity on a straight boundary.
type ZouHeVelocity struct {
	Side   Side
	Ux, Uy float64
	Bulk   lbm.Dynamics
}

// Collide completes the unknown populations and collides with Bulk.
func (z *ZouHeVelocity) Collide(f *lbm.Populations) {
	imposeVelocity(f, z.Side, z.Ux, z.Uy)
	z.Bulk.Collide(f)
}

// ZouHePressure imposes a density and a tangential velocity on a left or
// right boundary. The normal velocity follows from the known populations.
type ZouHePressure struct {
	Side Side
	Rho  float64
	UPar float64
	Bulk lbm.Dynamics
}

// NewZouHePressure validates the operator. Only the left and right sides
// are supported.
func NewZouHePressure(side Side, rho, uPar float64, bulk lbm.Dynamics) (*ZouHePressure, error) {
	if side != Left && side != Right {
		return nil, fmt.Errorf("%w: Zou/He pressure condition on %s side", lbm.ErrInvalidConfig, side)
	}
	if err := checkOperator(side, bulk); err != nil {
		return nil, err
	}
	if !(rho > 0) {
		return nil, fmt.Errorf("%w: pressure boundary density %v", lbm.ErrInvalidConfig, rho)
	}
	return &ZouHePressure{Side: side, Rho: rho, UPar: uPar, Bulk: bulk}, nil
}

// Collide completes the unknown populations and collides with Bulk. A
// literal built with a horizontal side panics here; use NewZouHePressure.
func (z *ZouHePressure) Collide(f *lbm.Populations) {
	var ux float64
	switch z.Side {
	case Left:
		ux = 1 - (f[0]+f[2]+f[4]+2*(f[3]+f[6]+f[7]))/z.Rho
	case Right:
		ux = (f[0]+f[2]+f[4]+2*(f[1]+f[5]+f[8]))/z.Rho - 1
	default:
		panic(fmt.Sprintf("boundary: pressure condition on %s side", z.Side))
	}
	imposeVelocity(f, z.Side, ux, z.UPar)
	z.Bulk.Collide(f)
}

// imposeVelocity rebuilds the three populations entering the domain through
// side so that the site carries velocity (ux, uy).
func imposeVelocity(f *lbm.Populations, side Side, ux, uy float64) {
	switch side {
	case Left:
		rho := (f[0] + f[2] + f[4] + 2*(f[3]+f[6]+f[7])) / (1 - ux)
		f[1] = f[3] + 2./3.*rho*ux
		f[5] = f[7] - 0.5*(f[2]-f[4]) + 1./6.*rho*ux + 0.5*rho*uy
		f[8] = f[6] + 0.5*(f[2]-f[4]) + 1./6.*rho*ux - 0.5*rho*uy
	case Right:
		rho := (f[0] + f[2] + f[4] + 2*(f[1]+f[5]+f[8])) / (1 + ux)
		f[3] = f[1] - 2./3.*rho*ux
		f[7] = f[5] + 0.5*(f[2]-f[4]) - 1./6.*rho*ux - 0.5*rho*uy
		f[6] = f[8] - 0.5*(f[2]-f[4]) - 1./6.*rho*ux + 0.5*rho*uy
	case Lower:
		rho := (f[0] + f[1] + f[3] + 2*(f[4]+f[7]+f[8])) / (1 - uy)
		f[2] = f[4] + 2./3.*rho*uy
		f[5] = f[7] - 0.5*(f[1]-f[3]) + 0.5*rho*ux + 1./6.*rho*uy
		f[6] = f[8] + 0.5*(f[1]-f[3]) - 0.5*rho*ux + 1./6.*rho*uy
	case Upper:
		rho := (f[0] + f[1] + f[3] + 2*(f[2]+f[5]+f[6])) / (1 + uy)
		f[4] = f[2] - 2./3.*rho*uy
		f[7] = f[5] + 0.5*(f[1]-f[3]) - 0.5*rho*ux - 1./6.*rho*uy
		f[8] = f[6] - 0.5*(f[1]-f[3]) + 0.5*rho*ux - 1./6.*rho*uy
	}
}
