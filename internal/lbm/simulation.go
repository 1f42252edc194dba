package lbm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// PeriodicAxes selects which pairs of domain edges MakePeriodic connects.
// Corners are only patched when both axes are periodic.
type PeriodicAxes struct {
	X bool
	Y bool
}

// Config describes the fixed shape of a run.
type Config struct {
	LX, LY   int
	Periodic PeriodicAxes
	// Workers splits the collision phase across goroutines when greater
	// than one. Zero and one collide sequentially.
	Workers int
}

// DefaultConfig returns a fully periodic configuration of the given size.
func DefaultConfig(lx, ly int) Config {
	return Config{LX: lx, LY: ly, Periodic: PeriodicAxes{X: true, Y: true}}
}

type runState uint8

const (
	stateUninitialized runState = iota
	stateReady
	stateRunning
)

// Simulation owns two lattices whose roles (current and scratch) swap after
// every propagation step.
type Simulation struct {
	cfg     Config
	buffers [2]*Lattice
	current int
	step    int
	state   runState
}

// New allocates both lattices. Every node starts with zero populations and
// no dynamics.
func New(cfg Config) (*Simulation, error) {
	if cfg.LX <= 0 || cfg.LY <= 0 {
		return nil, fmt.Errorf("%w: lattice %dx%d", ErrInvalidConfig, cfg.LX, cfg.LY)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: workers=%d", ErrInvalidConfig, cfg.Workers)
	}
	return &Simulation{
		cfg:     cfg,
		buffers: [2]*Lattice{newLattice(cfg.LX, cfg.LY), newLattice(cfg.LX, cfg.LY)},
	}, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Size returns the interior dimensions.
func (s *Simulation) Size() (lx, ly int) { return s.cfg.LX, s.cfg.LY }

// Lattice returns the current lattice.
func (s *Simulation) Lattice() *Lattice { return s.buffers[s.current] }

func (s *Simulation) scratch() *Lattice { return s.buffers[1-s.current] }

// StepCount returns the number of completed time steps.
func (s *Simulation) StepCount() int { return s.step }

// SetDynamics assigns d to the site on both buffers, since either may be
// current after the next swap.
func (s *Simulation) SetDynamics(x, y int, d Dynamics) {
	s.buffers[0].At(x, y).Dynamics = d
	s.buffers[1].At(x, y).Dynamics = d
}

// IniEquilibrium sets the populations of a site on the current lattice to the
// equilibrium for the given density and velocity.
func (s *Simulation) IniEquilibrium(x, y int, rho, ux, uy float64) {
	s.Lattice().At(x, y).F = EquilibriumPopulations(rho, ux, uy)
}

// Validate checks that every interior site has dynamics and a positive
// density. A successful call moves the simulation into the ready state.
func (s *Simulation) Validate() error {
	lat := s.Lattice()
	for y := 1; y <= s.cfg.LY; y++ {
		for x := 1; x <= s.cfg.LX; x++ {
			n := lat.At(x, y)
			if n.Dynamics == nil {
				return &StepError{X: x, Y: y, Step: s.step, Err: ErrNoDynamics}
			}
			if rho := n.F.Density(); !(rho > 0) {
				return &StepError{X: x, Y: y, Step: s.step, Err: ErrNonPositiveDensity}
			}
		}
	}
	if s.state == stateUninitialized {
		s.state = stateReady
	}
	return nil
}

// Mass returns the sum of all interior populations of the current lattice.
func (s *Simulation) Mass() float64 {
	lat := s.Lattice()
	row := make([]float64, 0, s.cfg.LX*Q)
	total := 0.0
	for y := 1; y <= s.cfg.LY; y++ {
		row = row[:0]
		for x := 1; x <= s.cfg.LX; x++ {
			f := &lat.At(x, y).F
			row = append(row, f[:]...)
		}
		total += floats.Sum(row)
	}
	return total
}

// Velocity returns the macroscopic state of an interior site of the current
// lattice.
func (s *Simulation) Velocity(x, y int) (rho, ux, uy float64, err error) {
	rho, ux, uy, err = Macroscopic(&s.Lattice().At(x, y).F)
	if err != nil {
		return rho, ux, uy, &StepError{X: x, Y: y, Step: s.step, Err: err}
	}
	return rho, ux, uy, nil
}
