//go:build ebiten

package app

import (
	"fmt"
	"time"

	"lbm2d/internal/core"
	"lbm2d/internal/render"
	"lbm2d/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a flow simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale         int
	stepsPerFrame int
	paused        bool
	tickOnce      bool
	seed          int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	steps := cfg.StepsPerFrame
	if steps < 1 {
		steps = 1
	}
	return &Game{
		sim:           sim,
		painter:       render.NewGridPainter(sim.Size().W, sim.Size().H, render.SpeedPalette()),
		hud:           ui.NewHUD(sim, cfg.HUDWidth),
		overlay:       ui.NewOverlay(sim, cfg.Scale),
		scale:         cfg.Scale,
		stepsPerFrame: steps,
		seed:          cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) error {
	g.seed = seed
	g.tickOnce = false
	return g.sim.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}

	g.overlay.Update()

	steps := 0
	switch {
	case !g.paused:
		steps = g.stepsPerFrame
	case g.tickOnce:
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if err := g.sim.Step(); err != nil {
			return fmt.Errorf("%s: %w", g.sim.Name(), err)
		}
	}
	g.tickOnce = false
	g.hud.Update()
	return nil
}

// Draw renders the current speed field, the overlay and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
