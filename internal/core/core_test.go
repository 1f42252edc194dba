package core

import (
	"strings"
	"testing"

	"lbm2d/internal/lbm"
)

func TestQuantize(t *testing.T) {
	cases := []struct {
		v, ref float64
		want   uint8
	}{
		{0, 1, 0},
		{-0.5, 1, 0},
		{0.5, 1, 127},
		{1, 1, 255},
		{3, 1, 255},
		{0.5, 0, 0},
	}
	for _, tc := range cases {
		if got := Quantize(tc.v, tc.ref); got != tc.want {
			t.Fatalf("Quantize(%v, %v) = %d, want %d", tc.v, tc.ref, got, tc.want)
		}
	}
}

func TestByteGridSetAndClear(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 9)
	if got := g.Cells()[g.Index(2, 1)]; got != 9 {
		t.Fatalf("cell (2,1) = %d, want 9", got)
	}
	g.Clear()
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not cleared", i)
		}
	}
	if small := NewByteGrid(0, -3); small.W != 1 || small.H != 1 {
		t.Fatalf("degenerate grid should clamp to 1x1, got %dx%d", small.W, small.H)
	}
}

func TestPaintSpeedMapsLatticeToDisplay(t *testing.T) {
	s, err := lbm.New(lbm.DefaultConfig(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	bgk := &lbm.BGK{Omega: 1}
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			s.SetDynamics(x, y, bgk)
			s.IniEquilibrium(x, y, 1, 0, 0)
		}
	}
	s.IniEquilibrium(2, 1, 1, 0.1, 0)

	g := NewByteGrid(2, 2)
	if err := PaintSpeed(s, g, 0.1); err != nil {
		t.Fatal(err)
	}
	if got := g.Cells()[g.Index(1, 0)]; got < 254 {
		t.Fatalf("fast site painted %d, want saturated", got)
	}
	if got := g.Cells()[g.Index(0, 1)]; got != 0 {
		t.Fatalf("resting site painted %d, want 0", got)
	}
}

func TestRegistry(t *testing.T) {
	Register("", nil)
	Register("zz-test", func(map[string]string) (Sim, error) { return nil, nil })
	defer delete(sims, "zz-test")
	if _, ok := Sims()["zz-test"]; !ok {
		t.Fatal("factory not registered")
	}
	names := Names()
	if names[len(names)-1] != "zz-test" {
		t.Fatalf("names not sorted: %v", names)
	}
}

func TestParameterSnapshotString(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Lattice", Params: []Parameter{IntParam("w", "Width", 8), BoolParam("periodic", "Periodic", true)}},
		{Name: "Flow", Params: []Parameter{FloatParam("re", "Reynolds", 100)}},
	}}
	want := "Lattice: w=8 periodic=true\nFlow: re=100"
	if got := snap.String(); got != want {
		t.Fatalf("snapshot %q, want %q", got, want)
	}
	if !strings.Contains(snap.String(), "re=100") {
		t.Fatal("float param not rendered")
	}
}
