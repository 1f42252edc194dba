package lbm

import (
	"context"
	"fmt"
)

// Hook runs between collision and propagation, when the current lattice
// holds freshly relaxed populations. Export belongs here.
type Hook func(s *Simulation) error

// collideRow applies each site's dynamics along interior row y.
func (s *Simulation) collideRow(lat *Lattice, y int) error {
	for x := 1; x <= s.cfg.LX; x++ {
		n := lat.At(x, y)
		if n.Dynamics == nil {
			return &StepError{X: x, Y: y, Step: s.step, Err: ErrNoDynamics}
		}
		if rho := n.F.Density(); !(rho > 0) {
			return &StepError{X: x, Y: y, Step: s.step, Err: ErrNonPositiveDensity}
		}
		n.Dynamics.Collide(&n.F)
	}
	return nil
}

// Collide applies the collision operator of every interior site in place.
func (s *Simulation) Collide() error {
	lat := s.Lattice()
	if s.cfg.Workers <= 1 {
		for y := 1; y <= s.cfg.LY; y++ {
			if err := s.collideRow(lat, y); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, s.cfg.LY+1)
	parallelRange(1, s.cfg.LY+1, s.cfg.Workers, func(y int) {
		errs[y] = s.collideRow(lat, y)
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Propagate streams every interior population one site along its velocity
// into the scratch lattice and then makes the scratch lattice current.
func (s *Simulation) Propagate() {
	lx, ly := s.cfg.LX, s.cfg.LY
	src, dst := s.Lattice(), s.scratch()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			f := &src.At(x, y).F
			for i := 0; i < Q; i++ {
				dst.At(x+C[i][0], y+C[i][1]).F[i] = f[i]
			}
		}
	}
	s.current = 1 - s.current
}

// MakePeriodic copies the populations that streamed into the ghost layer back
// onto the opposite edge of the interior. It must run after Propagate.
func (s *Simulation) MakePeriodic() {
	lx, ly := s.cfg.LX, s.cfg.LY
	lat := s.Lattice()

	if s.cfg.Periodic.Y {
		for x := 1; x <= lx; x++ {
			top, below := lat.At(x, ly), lat.At(x, 0)
			top.F[4] = below.F[4]
			top.F[7] = below.F[7]
			top.F[8] = below.F[8]

			bottom, above := lat.At(x, 1), lat.At(x, ly+1)
			bottom.F[2] = above.F[2]
			bottom.F[5] = above.F[5]
			bottom.F[6] = above.F[6]
		}
	}

	if s.cfg.Periodic.X {
		for y := 1; y <= ly; y++ {
			left, beyond := lat.At(1, y), lat.At(lx+1, y)
			left.F[1] = beyond.F[1]
			left.F[5] = beyond.F[5]
			left.F[8] = beyond.F[8]

			right, before := lat.At(lx, y), lat.At(0, y)
			right.F[3] = before.F[3]
			right.F[6] = before.F[6]
			right.F[7] = before.F[7]
		}
	}

	if s.cfg.Periodic.X && s.cfg.Periodic.Y {
		lat.At(1, 1).F[5] = lat.At(lx+1, ly+1).F[5]
		lat.At(lx, 1).F[6] = lat.At(0, ly+1).F[6]
		lat.At(lx, ly).F[7] = lat.At(0, 0).F[7]
		lat.At(1, ly).F[8] = lat.At(lx+1, 0).F[8]
	}
}

// Step advances the simulation by one time step.
func (s *Simulation) Step() error { return s.StepWith(nil) }

// StepWith advances the simulation by one time step, calling afterCollide (if
// non-nil) between collision and propagation.
func (s *Simulation) StepWith(afterCollide Hook) error {
	if s.state == stateUninitialized {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	s.state = stateRunning
	if err := s.Collide(); err != nil {
		return err
	}
	if afterCollide != nil {
		if err := afterCollide(s); err != nil {
			return fmt.Errorf("step %d: %w", s.step, err)
		}
	}
	s.Propagate()
	s.MakePeriodic()
	s.step++
	return nil
}

// Run performs steps time steps. The context is checked between steps only,
// so a cancelled run always stops on a completed step.
func (s *Simulation) Run(ctx context.Context, steps int, afterCollide Hook) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.StepWith(afterCollide); err != nil {
			return err
		}
	}
	return nil
}
