package lbm

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgcore "lbm2d/pkg/core"
)

// fillUnique gives every interior population a distinct positive value.
func fillUnique(s *Simulation) {
	lx, ly := s.Size()
	lat := s.Lattice()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			for i := 0; i < Q; i++ {
				lat.At(x, y).F[i] = float64(1 + i + Q*(x+lx*y))
			}
		}
	}
}

func wrap(v, n int) int { return (v-1+n)%n + 1 }

func TestPropagateMovesEachPopulationOneSite(t *testing.T) {
	s, err := New(DefaultConfig(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < Q; i++ {
		s.Lattice().At(2, 2).F[i] = float64(i + 1)
	}
	s.Propagate()
	lat := s.Lattice()
	for i := 0; i < Q; i++ {
		if got := lat.At(2+C[i][0], 2+C[i][1]).F[i]; got != float64(i+1) {
			t.Fatalf("population %d arrived as %v, want %v", i, got, float64(i+1))
		}
	}
}

func TestPropagateReachesGhostLayer(t *testing.T) {
	s, err := New(DefaultConfig(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	s.Lattice().At(1, 1).F[7] = 3
	s.Lattice().At(2, 2).F[5] = 4
	s.Propagate()
	if got := s.Lattice().At(0, 0).F[7]; got != 3 {
		t.Fatalf("south-west population did not reach ghost corner, got %v", got)
	}
	if got := s.Lattice().At(3, 3).F[5]; got != 4 {
		t.Fatalf("north-east population did not reach ghost corner, got %v", got)
	}
}

func TestPeriodicStreamingIsATorusShift(t *testing.T) {
	lx, ly := 5, 4
	s, err := New(DefaultConfig(lx, ly))
	if err != nil {
		t.Fatal(err)
	}
	fillUnique(s)
	before := make([]Populations, (lx+2)*(ly+2))
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			before[s.Lattice().index(x, y)] = s.Lattice().At(x, y).F
		}
	}

	s.Propagate()
	s.MakePeriodic()

	lat := s.Lattice()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			for i := 0; i < Q; i++ {
				sx, sy := wrap(x-C[i][0], lx), wrap(y-C[i][1], ly)
				want := before[lat.index(sx, sy)][i]
				if got := lat.At(x, y).F[i]; got != want {
					t.Fatalf("(%d,%d) population %d = %v, want %v from (%d,%d)", x, y, i, got, want, sx, sy)
				}
			}
		}
	}
}

func TestMakePeriodicCopiesGhostValues(t *testing.T) {
	lx, ly := 4, 3
	s, err := New(DefaultConfig(lx, ly))
	if err != nil {
		t.Fatal(err)
	}
	fillUnique(s)
	s.Propagate()
	lat := s.Lattice()
	ghost := func(x, y, i int) float64 { return lat.At(x, y).F[i] }

	type patch struct{ dx, dy, sx, sy, i int }
	var patches []patch
	for x := 2; x < lx; x++ {
		for _, i := range []int{4, 7, 8} {
			patches = append(patches, patch{x, ly, x, 0, i})
		}
		for _, i := range []int{2, 5, 6} {
			patches = append(patches, patch{x, 1, x, ly + 1, i})
		}
	}
	for y := 2; y < ly; y++ {
		for _, i := range []int{1, 5, 8} {
			patches = append(patches, patch{1, y, lx + 1, y, i})
		}
		for _, i := range []int{3, 6, 7} {
			patches = append(patches, patch{lx, y, 0, y, i})
		}
	}
	patches = append(patches,
		patch{1, 1, lx + 1, ly + 1, 5},
		patch{lx, 1, 0, ly + 1, 6},
		patch{lx, ly, 0, 0, 7},
		patch{1, ly, lx + 1, 0, 8},
	)
	want := make([]float64, len(patches))
	for k, p := range patches {
		want[k] = ghost(p.sx, p.sy, p.i)
		if want[k] == 0 {
			t.Fatalf("ghost (%d,%d) population %d was not written by streaming", p.sx, p.sy, p.i)
		}
	}

	s.MakePeriodic()

	for k, p := range patches {
		if got := lat.At(p.dx, p.dy).F[p.i]; got != want[k] {
			t.Fatalf("(%d,%d) population %d = %v, want ghost (%d,%d) value %v", p.dx, p.dy, p.i, got, p.sx, p.sy, want[k])
		}
	}
}

func TestMakePeriodicHonoursDisabledAxis(t *testing.T) {
	cfg := DefaultConfig(4, 4)
	cfg.Periodic.X = false
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	fillUnique(s)
	s.Propagate()
	s.MakePeriodic()
	lat := s.Lattice()
	for y := 1; y <= 4; y++ {
		if got := lat.At(1, y).F[1]; got != 0 {
			t.Fatalf("left edge patched with X disabled: (1,%d).F1=%v", y, got)
		}
		if got := lat.At(4, y).F[3]; got != 0 {
			t.Fatalf("right edge patched with X disabled: (4,%d).F3=%v", y, got)
		}
	}
	if got := lat.At(1, 1).F[5]; got != 0 {
		t.Fatalf("corner patched with X disabled: %v", got)
	}
	if got := lat.At(2, 1).F[2]; got == 0 {
		t.Fatal("lower edge must still be patched along Y")
	}
}

func TestStreamingConservesMassOnPeriodicDomain(t *testing.T) {
	s, err := New(DefaultConfig(7, 5))
	if err != nil {
		t.Fatal(err)
	}
	rng := pkgcore.NewRNG(7)
	lx, ly := s.Size()
	for y := 1; y <= ly; y++ {
		for x := 1; x <= lx; x++ {
			for i := 0; i < Q; i++ {
				s.Lattice().At(x, y).F[i] = rng.Uniform(0.01, 0.2)
			}
		}
	}
	before := s.Mass()
	for step := 0; step < 3; step++ {
		s.Propagate()
		s.MakePeriodic()
	}
	if after := s.Mass(); math.Abs(after-before) > 1e-12 {
		t.Fatalf("mass changed from %v to %v", before, after)
	}
}

func TestUniformFlowIsSteadyOnPeriodicDomain(t *testing.T) {
	bgk := &BGK{Omega: 1}
	s := newUniform(t, DefaultConfig(4, 4), bgk, 1, 0.01, 0)
	want := EquilibriumPopulations(1, 0.01, 0)

	if err := s.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for y := 1; y <= 4; y++ {
		for x := 1; x <= 4; x++ {
			if diff := cmp.Diff(want, s.Lattice().At(x, y).F, approx); diff != "" {
				t.Fatalf("(%d,%d) drifted from equilibrium (-want +got):\n%s", x, y, diff)
			}
		}
	}
	if s.StepCount() != 1 {
		t.Fatalf("StepCount = %d, want 1", s.StepCount())
	}
}

func TestCollideReportsNonPositiveDensity(t *testing.T) {
	for _, workers := range []int{0, 3} {
		cfg := DefaultConfig(4, 6)
		cfg.Workers = workers
		s := newUniform(t, cfg, &BGK{Omega: 1}, 1, 0, 0)
		s.Lattice().At(2, 5).F = Populations{}
		s.Lattice().At(3, 4).F[0] = -10

		err := s.Collide()
		var stepErr *StepError
		if !errors.As(err, &stepErr) || !errors.Is(err, ErrNonPositiveDensity) {
			t.Fatalf("workers=%d: expected density StepError, got %v", workers, err)
		}
		if stepErr.X != 3 || stepErr.Y != 4 {
			t.Fatalf("workers=%d: reported (%d,%d), want first failing row (3,4)", workers, stepErr.X, stepErr.Y)
		}
	}
}

func TestCollideReportsMissingDynamicsMidRun(t *testing.T) {
	s := newUniform(t, DefaultConfig(3, 3), &BGK{Omega: 1}, 1, 0, 0)
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	s.SetDynamics(2, 3, nil)
	err := s.Step()
	var stepErr *StepError
	if !errors.As(err, &stepErr) || !errors.Is(err, ErrNoDynamics) {
		t.Fatalf("expected ErrNoDynamics StepError, got %v", err)
	}
	if stepErr.Step != 1 {
		t.Fatalf("error should carry last completed step 1, got %d", stepErr.Step)
	}
}

func TestParallelCollideMatchesSequential(t *testing.T) {
	build := func(workers int) *Simulation {
		cfg := DefaultConfig(9, 7)
		cfg.Workers = workers
		s := newUniform(t, cfg, &BGK{Omega: 1.4}, 1, 0, 0)
		rng := pkgcore.NewRNG(11)
		for y := 1; y <= 7; y++ {
			for x := 1; x <= 9; x++ {
				s.IniEquilibrium(x, y, rng.Uniform(0.9, 1.1), rng.Jitter(0.05), rng.Jitter(0.05))
			}
		}
		return s
	}
	seq, par := build(1), build(4)
	for step := 0; step < 5; step++ {
		if err := seq.Step(); err != nil {
			t.Fatal(err)
		}
		if err := par.Step(); err != nil {
			t.Fatal(err)
		}
	}
	for y := 1; y <= 7; y++ {
		for x := 1; x <= 9; x++ {
			if seq.Lattice().At(x, y).F != par.Lattice().At(x, y).F {
				t.Fatalf("(%d,%d) differs between sequential and parallel collision", x, y)
			}
		}
	}
}

func TestStepWithRunsHookAfterCollision(t *testing.T) {
	s := newUniform(t, DefaultConfig(3, 3), &BGK{Omega: 1}, 1, 0, 0)
	s.Lattice().At(2, 2).F = Populations{0.4, 0.2, 0.1, 0.05, 0.1, 0.03, 0.01, 0.02, 0.04}

	called := false
	err := s.StepWith(func(sim *Simulation) error {
		called = true
		if sim.StepCount() != 0 {
			t.Fatalf("hook saw step %d, want 0", sim.StepCount())
		}
		f := sim.Lattice().At(2, 2).F
		rho, ux, uy, err := Macroscopic(&f)
		if err != nil {
			return err
		}
		if diff := cmp.Diff(EquilibriumPopulations(rho, ux, uy), f, approx); diff != "" {
			t.Fatalf("hook did not see the relaxed state:\n%s", diff)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("hook not called")
	}

	sentinel := errors.New("disk full")
	if err := s.StepWith(func(*Simulation) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("hook error not surfaced, got %v", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s := newUniform(t, DefaultConfig(3, 3), &BGK{Omega: 1}, 1, 0, 0)
	if err := s.Run(context.Background(), 4, nil); err != nil {
		t.Fatal(err)
	}
	if s.StepCount() != 4 {
		t.Fatalf("StepCount = %d, want 4", s.StepCount())
	}

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err := s.Run(ctx, 10, func(*Simulation) error {
		steps++
		if steps == 2 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.StepCount() != 6 {
		t.Fatalf("cancelled run should stop on a completed step, StepCount=%d", s.StepCount())
	}
}

func TestSwappingDynamicsTakesEffect(t *testing.T) {
	s := newUniform(t, DefaultConfig(2, 2), &BGK{Omega: 1}, 1, 0, 0)
	calls := 0
	s.SetDynamics(1, 1, DynamicsFunc(func(*Populations) { calls++ }))
	for i := 0; i < 3; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Fatalf("swapped dynamics ran %d times, want 3", calls)
	}
}

func BenchmarkStep(b *testing.B) {
	cfg := DefaultConfig(250, 50)
	s, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	bgk := &BGK{Omega: 1.6}
	for y := 1; y <= cfg.LY; y++ {
		for x := 1; x <= cfg.LX; x++ {
			s.SetDynamics(x, y, bgk)
			s.IniEquilibrium(x, y, 1, 0.02, 0)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
