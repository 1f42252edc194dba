// Package shear runs a decaying sinusoidal shear wave on a fully periodic
// lattice. Every site uses the same BGK operator, so the run exercises the
// bare engine: collision, streaming and periodic wrap with no boundaries.
package shear

import (
	"fmt"
	"math"
	"strconv"

	"lbm2d/internal/core"
	"lbm2d/internal/lbm"
	pkgcore "lbm2d/pkg/core"
)

// Config controls the shear wave.
type Config struct {
	Width  int
	Height int
	Seed   int64

	Workers int

	U0    float64
	Omega float64
	Noise float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:   128,
		Height:  128,
		Seed:    42,
		Workers: 1,
		U0:      0.05,
		Omega:   1.2,
		Noise:   0.001,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["u0"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.U0 = parsed
		}
	}
	if v, ok := cfg["omega"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Omega = parsed
		}
	}
	if v, ok := cfg["noise"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Noise = parsed
		}
	}
	return c
}

// Shear is the periodic shear-wave scenario.
type Shear struct {
	cfg  Config
	sim  *lbm.Simulation
	bulk *lbm.BGK

	display      *core.ByteGrid
	afterCollide lbm.Hook
}

// NewWithConfig validates cfg and allocates the simulation.
func NewWithConfig(cfg Config) (*Shear, error) {
	bulk, err := lbm.NewBGK(cfg.Omega)
	if err != nil {
		return nil, fmt.Errorf("shear: %w", err)
	}
	simCfg := lbm.DefaultConfig(cfg.Width, cfg.Height)
	simCfg.Workers = cfg.Workers
	sim, err := lbm.New(simCfg)
	if err != nil {
		return nil, err
	}
	return &Shear{
		cfg:     cfg,
		sim:     sim,
		bulk:    bulk,
		display: core.NewByteGrid(cfg.Width, cfg.Height),
	}, nil
}

// Name returns the simulation identifier.
func (s *Shear) Name() string { return "shear" }

// Size reports the interior dimensions.
func (s *Shear) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the speed display buffer.
func (s *Shear) Cells() []uint8 { return s.display.Cells() }

// Simulation exposes the underlying engine.
func (s *Shear) Simulation() *lbm.Simulation { return s.sim }

// SetAfterCollide installs a hook that runs after each collision.
func (s *Shear) SetAfterCollide(h lbm.Hook) { s.afterCollide = h }

// Profile returns the unperturbed initial x-velocity of row y.
func (s *Shear) Profile(y int) float64 {
	return s.cfg.U0 * math.Sin(2*math.Pi*float64(y-1)/float64(s.cfg.Height))
}

// Reset initialises the shear profile plus seeded noise. A zero seed falls
// back to the configured one.
func (s *Shear) Reset(seed int64) error {
	sim, err := lbm.New(s.sim.Config())
	if err != nil {
		return err
	}
	s.sim = sim

	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	rng := pkgcore.NewRNG(effective)
	for y := 1; y <= s.cfg.Height; y++ {
		for x := 1; x <= s.cfg.Width; x++ {
			ux := s.Profile(y) + rng.Jitter(s.cfg.Noise)
			uy := rng.Jitter(s.cfg.Noise)
			sim.IniEquilibrium(x, y, 1, ux, uy)
			sim.SetDynamics(x, y, s.bulk)
		}
	}
	if err := sim.Validate(); err != nil {
		return err
	}
	return core.PaintSpeed(sim, s.display, s.displayRef())
}

func (s *Shear) displayRef() float64 {
	ref := math.Abs(s.cfg.U0) + s.cfg.Noise
	if ref == 0 {
		return 1
	}
	return ref
}

// Step advances the wave by one time step.
func (s *Shear) Step() error {
	return s.sim.StepWith(func(sim *lbm.Simulation) error {
		if err := core.PaintSpeed(sim, s.display, s.displayRef()); err != nil {
			return err
		}
		if s.afterCollide != nil {
			return s.afterCollide(sim)
		}
		return nil
	})
}

// Parameters reports the configured parameters.
func (s *Shear) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.IntParam("workers", "Collision workers", s.cfg.Workers),
			},
		},
		{
			Name: "Wave",
			Params: []core.Parameter{
				core.FloatParam("u0", "Amplitude", s.cfg.U0),
				core.FloatParam("omega", "Relaxation rate", s.cfg.Omega),
				core.FloatParam("noise", "Noise amplitude", s.cfg.Noise),
			},
		},
	}}
}

func init() {
	core.Register("shear", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
