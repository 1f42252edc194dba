package ui

import (
	"strings"
	"testing"

	"lbm2d/internal/core"
	"lbm2d/internal/sims/shear"
)

type bareSim struct{}

func (bareSim) Name() string      { return "" }
func (bareSim) Size() core.Size   { return core.Size{W: 2, H: 2} }
func (bareSim) Reset(int64) error { return nil }
func (bareSim) Step() error       { return nil }
func (bareSim) Cells() []uint8    { return make([]uint8, 4) }

func TestPanelLinesWithoutParameters(t *testing.T) {
	lines := panelLines(bareSim{})
	if lines[0] != "Sim" {
		t.Fatalf("title %q, want Sim", lines[0])
	}
	if lines[len(lines)-1] != "No parameters" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestPanelLinesForFlowSim(t *testing.T) {
	cfg := shear.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	s, err := shear.NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(1); err != nil {
		t.Fatal(err)
	}
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	text := strings.Join(panelLines(s), "\n")
	for _, want := range []string{"Shear", "t = 1", "mass = 16.0000", "Wave", "  Amplitude: 0.05"} {
		if !strings.Contains(text, want) {
			t.Fatalf("panel missing %q:\n%s", want, text)
		}
	}
}

func TestSampleSitesCoverLattice(t *testing.T) {
	size := core.Size{W: 250, H: 50}
	samples, span := sampleSites(size, 3)
	if len(samples) == 0 {
		t.Fatal("no samples")
	}
	if span <= 0 {
		t.Fatalf("span %v", span)
	}
	for _, s := range samples {
		if s.x < 1 || s.x > size.W || s.y < 1 || s.y > size.H {
			t.Fatalf("sample outside interior: %+v", s)
		}
		if s.sx < 0 || s.sx > float64(size.W*3) || s.sy < 0 || s.sy > float64(size.H*3) {
			t.Fatalf("sample outside screen: %+v", s)
		}
	}
}

func TestSampleSitesFlipY(t *testing.T) {
	samples, _ := sampleSites(core.Size{W: 4, H: 4}, 1)
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	s := samples[0]
	if want := float64(4-s.y) + 0.5; s.sy != want {
		t.Fatalf("screen y %v, want %v for lattice row %d", s.sy, want, s.y)
	}
	if none, _ := sampleSites(core.Size{}, 1); none != nil {
		t.Fatal("empty lattice should have no samples")
	}
}

func TestArrowColorRamp(t *testing.T) {
	r0, _, b0, a0 := arrowColor(0)
	r1, _, b1, a1 := arrowColor(2)
	if r0 >= r1 || b0 <= b1 || a0 >= a1 {
		t.Fatalf("ramp not monotonic: (%d,%d,%d) -> (%d,%d,%d)", r0, b0, a0, r1, b1, a1)
	}
}
