// Package ui draws the viewer's side panel and the velocity overlay.
package ui

import (
	"fmt"
	"math"
	"strings"

	"lbm2d/internal/core"
)

// panelLines returns the text shown in the HUD panel, top to bottom.
func panelLines(sim core.Sim) []string {
	name := sim.Name()
	if name == "" {
		name = "sim"
	}
	lines := []string{strings.ToUpper(name[:1]) + name[1:]}
	if flow, ok := sim.(core.FlowSim); ok {
		s := flow.Simulation()
		lines = append(lines,
			fmt.Sprintf("t = %d", s.StepCount()),
			fmt.Sprintf("mass = %.4f", s.Mass()),
		)
	}
	provider, ok := sim.(core.ParameterProvider)
	if !ok {
		return append(lines, "", "No parameters")
	}
	for _, group := range provider.Parameters().Groups {
		lines = append(lines, "", group.Name)
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}

// arrowSample is a lattice site picked for the velocity overlay along with
// its on-screen centre.
type arrowSample struct {
	x, y   int
	sx, sy float64
}

// sampleSites spreads roughly targetSamples arrows evenly over the lattice.
// Screen y grows downward while lattice y grows upward. The returned span is
// the pixel distance between neighbouring samples.
func sampleSites(size core.Size, scale int) ([]arrowSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}

	const (
		targetSamples = 360.0
		minSpacing    = 4
		maxSpacing    = 20
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max(0, (size.W-1-(countX-1)*spacing)/2)
	startY := max(0, (size.H-1-(countY-1)*spacing)/2)

	samples := make([]arrowSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		cellY := min(startY+yi*spacing, size.H-1)
		for xi := 0; xi < countX; xi++ {
			cellX := min(startX+xi*spacing, size.W-1)
			samples = append(samples, arrowSample{
				x:  cellX + 1,
				y:  cellY + 1,
				sx: (float64(cellX) + 0.5) * float64(scale),
				sy: (float64(size.H-1-cellY) + 0.5) * float64(scale),
			})
		}
	}
	return samples, float64(spacing * scale)
}

func arrowColor(t float64) (r, g, b, a uint8) {
	t = clamp01(t)
	return uint8(math.Round(80 + 170*t)),
		uint8(math.Round(200 - 120*t)),
		uint8(math.Round(230 - 150*t)),
		uint8(math.Round(150 + 90*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
