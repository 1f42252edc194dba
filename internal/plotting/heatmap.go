// Package plotting renders lattice fields as images with gonum/plot.
package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"lbm2d/internal/lbm"
)

// SpeedGrid is a snapshot of the velocity magnitude on the interior of a
// lattice. Column c and row r correspond to site (c+1, r+1).
type SpeedGrid struct {
	speed *mat.Dense
}

var _ plotter.GridXYZ = (*SpeedGrid)(nil)

// NewSpeedGrid samples the current lattice of s.
func NewSpeedGrid(s *lbm.Simulation) (*SpeedGrid, error) {
	lx, ly := s.Size()
	speed := mat.NewDense(ly, lx, nil)
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			_, ux, uy, err := s.Velocity(x, y)
			if err != nil {
				return nil, err
			}
			speed.Set(y-1, x-1, math.Hypot(ux, uy))
		}
	}
	return &SpeedGrid{speed: speed}, nil
}

// Dims returns the number of columns and rows.
func (g *SpeedGrid) Dims() (c, r int) {
	r, c = g.speed.Dims()
	return c, r
}

// Z returns the speed at column c, row r.
func (g *SpeedGrid) Z(c, r int) float64 { return g.speed.At(r, c) }

// X returns the lattice x coordinate of column c.
func (g *SpeedGrid) X(c int) float64 { return float64(c + 1) }

// Y returns the lattice y coordinate of row r.
func (g *SpeedGrid) Y(r int) float64 { return float64(r + 1) }

// Max returns the largest sampled speed.
func (g *SpeedGrid) Max() float64 { return mat.Max(g.speed) }

// SaveSpeedHeatMap writes a heat map of the velocity magnitude to path. The
// image format follows the file extension (png, svg, pdf, ...).
func SaveSpeedHeatMap(path string, s *lbm.Simulation, title string) error {
	grid, err := NewSpeedGrid(s)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(grid, palette.Heat(64, 1))
	hm.Min, hm.Max = 0, grid.Max()
	if hm.Max <= 0 {
		hm.Max = 1
	}
	p.Add(hm)

	lx, ly := s.Size()
	width := 2 * vg.Millimeter * vg.Length(lx)
	height := 2*vg.Millimeter*vg.Length(ly) + 15*vg.Millimeter
	if width < 8*vg.Centimeter {
		width = 8 * vg.Centimeter
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("heat map %s: %w", path, err)
	}
	return nil
}
