//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lbm2d/internal/app"
	"lbm2d/internal/cli"
	"lbm2d/internal/core"
	_ "lbm2d/internal/sims/channel"
	_ "lbm2d/internal/sims/shear"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var overrides cli.KVList
	flag.Var(&overrides, "set", "simulation parameter in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.Names())
	}

	sim, err := factory(overrides.Map())
	if err != nil {
		log.Fatal(err)
	}
	if err := sim.Reset(cfg.Seed); err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("lbm2d: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
