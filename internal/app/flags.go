package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim           string
	Scale         int
	TPS           int
	Seed          int64
	StepsPerFrame int
	HUDWidth      int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "channel", Scale: 3, TPS: 60, Seed: 42, StepsPerFrame: 10, HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.StepsPerFrame, "steps-per-frame", c.StepsPerFrame, "lattice time steps per tick")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
}
