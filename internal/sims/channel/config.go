package channel

import "strconv"

// Params holds the physical parameters of the channel flow.
type Params struct {
	UMax float64
	Re   float64

	// Cylinder placement; zero values select positions derived from the
	// channel size.
	ObstacleX int
	ObstacleY int
	ObstacleR int
}

// Config controls the channel dimensions and the physical setup.
type Config struct {
	Width  int
	Height int

	Workers    int
	DisplayRef float64

	Params Params
}

// DefaultConfig returns the standard Karman vortex street setup.
func DefaultConfig() Config {
	return Config{
		Width:      250,
		Height:     50,
		Workers:    1,
		DisplayRef: 0.03,
		Params: Params{
			UMax: 0.02,
			Re:   100,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
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
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["display_ref"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DisplayRef = parsed
		}
	}
	if v, ok := cfg["umax"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.UMax = parsed
		}
	}
	if v, ok := cfg["re"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Re = parsed
		}
	}
	if v, ok := cfg["obst_x"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ObstacleX = parsed
		}
	}
	if v, ok := cfg["obst_y"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ObstacleY = parsed
		}
	}
	if v, ok := cfg["obst_r"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ObstacleR = parsed
		}
	}
	return c
}

// obstacle returns the cylinder centre and radius, filling in derived
// defaults.
func (c Config) obstacle() (x, y, r int) {
	x, y, r = c.Params.ObstacleX, c.Params.ObstacleY, c.Params.ObstacleR
	if x == 0 {
		x = c.Width / 5
	}
	if y == 0 {
		y = c.Height / 2
	}
	if r == 0 {
		r = c.Height/10 + 1
	}
	return x, y, r
}

// Viscosity returns the lattice kinematic viscosity implied by Re.
func (c Config) Viscosity() float64 {
	_, _, r := c.obstacle()
	return c.Params.UMax * 2 * float64(r) / c.Params.Re
}
