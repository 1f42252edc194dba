package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"lbm2d/internal/cli"
	"lbm2d/internal/core"
	"lbm2d/internal/lbm"
	"lbm2d/internal/plotting"
	_ "lbm2d/internal/sims/channel"
	_ "lbm2d/internal/sims/shear"

	"github.com/google/uuid"
)

func main() {
	simName := flag.String("sim", "channel", "simulation to run")
	steps := flag.Int("steps", 100000, "number of time steps")
	saveEvery := flag.Int("save-every", 100, "export interval in time steps (0 disables export)")
	logEvery := flag.Int("log-every", 1000, "progress log interval in time steps")
	out := flag.String("out", "vel.dat", "text export path, overwritten on every save")
	pop := flag.Int("pop", -1, "export this population index instead of the velocity norm")
	png := flag.String("png", "", "also write a velocity heat map to this path on every save")
	seed := flag.Int64("seed", 42, "seed for simulation reset")
	workers := flag.Int("workers", -1, "collision goroutines; overrides -set workers when >= 0")
	var overrides cli.KVList
	flag.Var(&overrides, "set", "simulation parameter in key=value form (repeatable)")
	flag.Parse()

	factory, ok := core.Sims()[*simName]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", *simName, core.Names())
	}
	params := overrides.Map()
	if *workers >= 0 {
		if params == nil {
			params = map[string]string{}
		}
		params["workers"] = strconv.Itoa(*workers)
	}
	sim, err := factory(params)
	if err != nil {
		log.Fatal(err)
	}
	flow, ok := sim.(core.FlowSim)
	if !ok {
		log.Fatalf("sim %q does not expose a lattice", *simName)
	}
	if err := flow.Reset(*seed); err != nil {
		log.Fatal(err)
	}

	runID := uuid.New()
	size := flow.Size()
	log.Printf("run %s: %s lx=%d, ly=%d", runID, flow.Name(), size.W, size.H)
	if p, ok := sim.(core.ParameterProvider); ok {
		log.Printf("parameters:\n%s", p.Parameters())
	}

	flow.SetAfterCollide(func(s *lbm.Simulation) error {
		t := s.StepCount()
		if *saveEvery <= 0 || t == 0 || t%*saveEvery != 0 {
			return nil
		}
		if *pop >= 0 {
			if err := lbm.SavePopulationFile(*out, s, *pop); err != nil {
				return err
			}
		} else if err := lbm.SaveVelocityFile(*out, s); err != nil {
			return err
		}
		if *png != "" {
			return plotting.SaveSpeedHeatMap(*png, s, fmt.Sprintf("%s t=%d", flow.Name(), t))
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for t := 0; t < *steps; t++ {
		if ctx.Err() != nil {
			log.Printf("interrupted at t=%d", t)
			return
		}
		if *logEvery > 0 && t%*logEvery == 0 {
			log.Printf("t=%d mass=%.6f", t, flow.Simulation().Mass())
		}
		if err := flow.Step(); err != nil {
			var stepErr *lbm.StepError
			if errors.As(err, &stepErr) {
				log.Fatalf("run aborted at (%d,%d) after %d completed steps: %v",
					stepErr.X, stepErr.Y, stepErr.Step, stepErr.Err)
			}
			log.Fatal(err)
		}
	}
	log.Printf("run %s done after %d steps", runID, flow.Simulation().StepCount())
}
