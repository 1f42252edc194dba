//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"lbm2d/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws velocity arrows on top of the speed field. Press V to toggle.
type Overlay struct {
	sim   core.FlowSim
	scale int
	show  bool
	pixel *ebiten.Image

	samples    []arrowSample
	cache      core.Size
	cacheScale int
	span       float64
}

// NewOverlay constructs an overlay. Sims without a lattice get an overlay
// that never draws.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{scale: scale}
	if flow, ok := sim.(core.FlowSim); ok {
		o.sim = flow
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.show = !o.show
	}
}

// Draw renders the arrows onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.sim == nil {
		return
	}
	size := o.sim.Size()
	scale := max(o.scale, 1)
	if o.cache != size || o.cacheScale != scale {
		o.samples, o.span = sampleSites(size, scale)
		o.cache, o.cacheScale = size, scale
	}
	if len(o.samples) == 0 {
		return
	}

	s := o.sim.Simulation()
	type vec struct{ ux, uy float64 }
	vel := make([]vec, len(o.samples))
	peak := 0.0
	for i, sm := range o.samples {
		_, ux, uy, err := s.Velocity(sm.x, sm.y)
		if err != nil {
			continue
		}
		vel[i] = vec{ux, uy}
		peak = math.Max(peak, math.Hypot(ux, uy))
	}
	if peak == 0 {
		return
	}

	const (
		calmThreshold = 0.05
		headAngle     = math.Pi / 6
		minThickness  = 0.65
		maxThickness  = 1.05
	)
	minLength := o.span * 0.35
	maxLength := o.span * 0.7
	dot := math.Max(o.span*0.18, float64(scale)*0.75)

	for i, sm := range o.samples {
		speed := math.Hypot(vel[i].ux, vel[i].uy)
		norm := speed / peak
		if norm < calmThreshold {
			o.drawPoint(screen, sm.sx, sm.sy, dot, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}
		// Screen y points down.
		nx, ny := vel[i].ux/speed, -vel[i].uy/speed
		length := minLength + (maxLength-minLength)*math.Sqrt(norm)
		head := math.Min(length*0.3, float64(scale)*4.5)
		tail := length * 0.4
		tipX, tipY := sm.sx+nx*(length-tail), sm.sy+ny*(length-tail)
		tailX, tailY := sm.sx-nx*tail, sm.sy-ny*tail

		thickness := math.Max(float64(scale)*(minThickness+(maxThickness-minThickness)*norm), 1)
		r, g, b, a := arrowColor(norm)
		col := color.RGBA{R: r, G: g, B: b, A: a}
		o.drawLine(screen, tailX, tailY, tipX-nx*head, tipY-ny*head, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, thickness*0.85, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
