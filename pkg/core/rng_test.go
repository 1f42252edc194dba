package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(5), NewRNG(5)
	for i := 0; i < 16; i++ {
		if x, y := a.Uniform(-1, 1), b.Uniform(-1, 1); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestJitterBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.Jitter(0.01)
		if v < -0.01 || v >= 0.01 {
			t.Fatalf("jitter %v out of range", v)
		}
	}
	if v := r.Jitter(0); v != 0 {
		t.Fatalf("zero amplitude jitter = %v", v)
	}
}
