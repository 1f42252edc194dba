package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"lbm2d/internal/lbm"
	"lbm2d/internal/plotting"
	"lbm2d/internal/sims/channel"
)

type paramSet struct {
	re   float64
	uMax float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("re=%.0f umax=%.3f", p.re, p.uMax)
}

type scenarioResult struct {
	params    paramSet
	omega     float64
	peakSpeed float64
	massDrift float64
	unstable  bool
	failStep  int
	err       error
}

func main() {
	steps := flag.Int("steps", 2000, "time steps to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 200, "channel length")
	height := flag.Int("height", 40, "channel height")
	flag.Parse()

	baseCfg := channel.DefaultConfig()
	baseCfg.Width = *width
	baseCfg.Height = *height

	reOptions := []float64{20, 50, 100, 200, 400, 1000}
	uMaxOptions := []float64{0.02, 0.05, 0.1}

	var sets []paramSet
	for _, re := range reOptions {
		for _, u := range uMaxOptions {
			sets = append(sets, paramSet{re: re, uMax: u})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		switch {
		case res.err != nil:
			fmt.Printf("%s: rejected: %v\n", res.params, res.err)
		case res.unstable:
			fmt.Printf("%s: unstable after %d steps (omega=%.4f)\n", res.params, res.failStep, res.omega)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].unstable != all[j].unstable {
			return !all[i].unstable
		}
		return all[i].params.re > all[j].params.re
	})

	fmt.Printf("\nResults (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		status := "stable"
		if res.err != nil {
			status = "rejected"
		} else if res.unstable {
			status = fmt.Sprintf("unstable@%d", res.failStep)
		}
		fmt.Printf("%2d) %-22s omega=%.4f peak=%.4f drift=%+.3e %s\n",
			i+1, res.params, res.omega, res.peakSpeed, res.massDrift, status)
	}
}

func runScenario(base channel.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Workers = 1
	cfg.Params.Re = params.re
	cfg.Params.UMax = params.uMax

	res := scenarioResult{params: params}
	ch, err := channel.NewWithConfig(cfg)
	if err != nil {
		res.err = err
		return res
	}
	res.omega = ch.Omega()
	if err := ch.Reset(0); err != nil {
		res.err = err
		return res
	}

	initial := ch.Simulation().Mass()
	for t := 0; t < steps; t++ {
		if err := ch.Step(); err != nil {
			var stepErr *lbm.StepError
			if errors.As(err, &stepErr) {
				res.unstable = true
				res.failStep = stepErr.Step
				return res
			}
			res.err = err
			return res
		}
	}

	grid, err := plotting.NewSpeedGrid(ch.Simulation())
	if err != nil {
		res.unstable = true
		res.failStep = steps
		return res
	}
	res.peakSpeed = grid.Max()
	final := ch.Simulation().Mass()
	res.massDrift = (final - initial) / initial
	if math.IsNaN(res.peakSpeed) || math.IsInf(res.peakSpeed, 0) {
		res.unstable = true
		res.failStep = steps
	}
	return res
}
