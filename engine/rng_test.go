package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for equal seeds", i)
		}
	}
	if a.Position() != 100 {
		t.Errorf("position = %d, want 100", a.Position())
	}
}

func TestRNG_IntBetweenInclusive(t *testing.T) {
	r := NewRNG(1)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.IntBetween(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntBetween(3, 5) = %d", v)
		}
		seen[v] = true
	}
	for v := 3; v <= 5; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn in 1000 tries", v)
		}
	}

	if v := r.IntBetween(7, 7); v != 7 {
		t.Errorf("IntBetween(7, 7) = %d", v)
	}
}

func TestRestoreRNG(t *testing.T) {
	orig := NewRNG(99)
	for i := 0; i < 10; i++ {
		orig.Float64()
	}

	restored := RestoreRNG(orig.Seed(), orig.Position())
	if restored.Position() != orig.Position() {
		t.Fatalf("restored position = %d, want %d", restored.Position(), orig.Position())
	}
	for i := 0; i < 20; i++ {
		if orig.Float64() != restored.Float64() {
			t.Fatalf("restored stream diverged at draw %d", i)
		}
	}
}
