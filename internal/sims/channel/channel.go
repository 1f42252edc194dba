// Package channel simulates unsteady flow past a cylinder placed slightly off
// centre in a channel. A Poiseuille profile enters on the left, the right
// edge is a constant-pressure outlet and the upper and lower walls hold zero
// velocity. All four edges use regularized boundary operators. Around Re=100
// the wake sheds a Karman vortex street.
package channel

import (
	"fmt"

	"lbm2d/internal/core"
	"lbm2d/internal/lbm"
	"lbm2d/internal/lbm/boundary"
)

// outletRho is the reference density held on the outlet column.
const outletRho = 1.0

// Channel wires the engine to the channel geometry.
type Channel struct {
	cfg Config
	sim *lbm.Simulation

	bulk       *lbm.BGK
	bounceBack boundary.BounceBack
	lower      *boundary.RegularizedVelocity
	upper      *boundary.RegularizedVelocity
	inlet      []*boundary.RegularizedVelocity
	outlet     []*boundary.RegularizedPressure

	display      *core.ByteGrid
	afterCollide lbm.Hook
}

// New returns a channel of the provided size using default physics.
func New(w, h int) (*Channel, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and allocates the simulation. Call Reset to
// lay out the geometry before stepping.
func NewWithConfig(cfg Config) (*Channel, error) {
	if cfg.Width < 3 || cfg.Height < 3 {
		return nil, fmt.Errorf("%w: channel needs at least 3x3 sites, got %dx%d",
			lbm.ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	bulk, err := lbm.NewBGK(lbm.OmegaFromViscosity(cfg.Viscosity()))
	if err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}
	simCfg := lbm.DefaultConfig(cfg.Width, cfg.Height)
	simCfg.Workers = cfg.Workers
	sim, err := lbm.New(simCfg)
	if err != nil {
		return nil, err
	}

	c := &Channel{
		cfg:     cfg,
		sim:     sim,
		bulk:    bulk,
		inlet:   make([]*boundary.RegularizedVelocity, cfg.Height+2),
		outlet:  make([]*boundary.RegularizedPressure, cfg.Height+2),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
	}
	if c.lower, err = boundary.NewRegularizedVelocity(boundary.Lower, 0, 0, bulk); err != nil {
		return nil, err
	}
	if c.upper, err = boundary.NewRegularizedVelocity(boundary.Upper, 0, 0, bulk); err != nil {
		return nil, err
	}
	for y := 2; y <= cfg.Height-1; y++ {
		if c.inlet[y], err = boundary.NewRegularizedVelocity(boundary.Left, c.poiseuille(y), 0, bulk); err != nil {
			return nil, err
		}
		if c.outlet[y], err = boundary.NewRegularizedPressure(boundary.Right, outletRho, 0, bulk); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Name returns the simulation identifier.
func (c *Channel) Name() string { return "channel" }

// Size reports the interior dimensions.
func (c *Channel) Size() core.Size { return core.Size{W: c.cfg.Width, H: c.cfg.Height} }

// Cells exposes the speed display buffer, refreshed after every collision.
func (c *Channel) Cells() []uint8 { return c.display.Cells() }

// Simulation exposes the underlying engine.
func (c *Channel) Simulation() *lbm.Simulation { return c.sim }

// Omega returns the relaxation rate of the bulk fluid.
func (c *Channel) Omega() float64 { return c.bulk.Omega }

// SetAfterCollide installs a hook that runs after each collision, once the
// display buffer has been refreshed.
func (c *Channel) SetAfterCollide(h lbm.Hook) { c.afterCollide = h }

// poiseuille returns the parabolic inflow velocity for row y.
func (c *Channel) poiseuille(y int) float64 {
	fy := float64(y - 1)
	l := float64(c.cfg.Height - 1)
	return 4 * c.cfg.Params.UMax / (l * l) * (l*fy - fy*fy)
}

// Reset lays out the geometry and initialises every site at equilibrium with
// the Poiseuille profile. The channel is deterministic; seed is ignored.
func (c *Channel) Reset(seed int64) error {
	sim, err := lbm.New(c.sim.Config())
	if err != nil {
		return err
	}
	c.sim = sim

	w, h := c.cfg.Width, c.cfg.Height
	ox, oy, r := c.cfg.obstacle()
	for x := 1; x <= w; x++ {
		for y := 1; y <= h; y++ {
			sim.IniEquilibrium(x, y, 1, c.poiseuille(y), 0)
			dx, dy := x-ox, y-oy
			if dx*dx+dy*dy <= r*r {
				sim.SetDynamics(x, y, c.bounceBack)
			} else {
				sim.SetDynamics(x, y, c.bulk)
			}
		}
	}

	for x := 1; x <= w; x++ {
		sim.SetDynamics(x, 1, c.lower)
		sim.SetDynamics(x, h, c.upper)
	}

	for y := 2; y <= h-1; y++ {
		c.inlet[y].Ux = c.poiseuille(y)
		c.inlet[y].Uy = 0
		c.outlet[y].Rho = outletRho
		c.outlet[y].UPar = 0
		sim.SetDynamics(1, y, c.inlet[y])
		sim.SetDynamics(w, y, c.outlet[y])
	}

	if err := sim.Validate(); err != nil {
		return err
	}
	return core.PaintSpeed(sim, c.display, c.cfg.DisplayRef)
}

// Step advances the flow by one time step.
func (c *Channel) Step() error {
	return c.sim.StepWith(func(s *lbm.Simulation) error {
		if err := core.PaintSpeed(s, c.display, c.cfg.DisplayRef); err != nil {
			return err
		}
		if c.afterCollide != nil {
			return c.afterCollide(s)
		}
		return nil
	})
}

// Parameters reports the configured and derived physical parameters.
func (c *Channel) Parameters() core.ParameterSnapshot {
	ox, oy, r := c.cfg.obstacle()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.cfg.Width),
				core.IntParam("h", "Height", c.cfg.Height),
				core.IntParam("workers", "Collision workers", c.cfg.Workers),
			},
		},
		{
			Name: "Flow",
			Params: []core.Parameter{
				core.FloatParam("umax", "Peak inflow velocity", c.cfg.Params.UMax),
				core.FloatParam("re", "Reynolds number", c.cfg.Params.Re),
				core.FloatParam("nu", "Viscosity", c.cfg.Viscosity()),
				core.FloatParam("omega", "Relaxation rate", c.bulk.Omega),
			},
		},
		{
			Name: "Obstacle",
			Params: []core.Parameter{
				core.IntParam("obst_x", "Cylinder x", ox),
				core.IntParam("obst_y", "Cylinder y", oy),
				core.IntParam("obst_r", "Cylinder radius", r),
			},
		},
	}}
}

func init() {
	core.Register("channel", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
