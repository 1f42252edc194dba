package core

import (
	"math"

	"lbm2d/internal/lbm"
)

// FlowSim is a Sim backed by a lattice Boltzmann simulation. Drivers use it to
// reach the lattice for export and to run code right after collision.
type FlowSim interface {
	Sim
	Simulation() *lbm.Simulation
	SetAfterCollide(h lbm.Hook)
}

// PaintSpeed writes the quantized velocity magnitude of every interior site
// into g. Speeds at or above ref saturate.
func PaintSpeed(s *lbm.Simulation, g *ByteGrid, ref float64) error {
	lx, ly := s.Size()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			_, ux, uy, err := s.Velocity(x, y)
			if err != nil {
				return err
			}
			g.Set(x-1, y-1, Quantize(math.Hypot(ux, uy), ref))
		}
	}
	return nil
}
