package resolve

import (
	"math/rand"
	"testing"

	"github.com/marisk/vantage/fun"
	"github.com/marisk/vantage/types"
)

// fixedRoller returns a preset sequence of rolls.
type fixedRoller struct {
	vals []float64
	i    int
}

func (r *fixedRoller) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func chancePtr(v float64) *float64 { return &v }

func TestPresent_NilSpec(t *testing.T) {
	if !Present(nil, 0, &fixedRoller{vals: []float64{0.99}}) {
		t.Error("nil presence spec must always be present")
	}
}

func TestPresent_ChanceExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	always := &types.Presence{Chance: chancePtr(1)}
	never := &types.Presence{Chance: chancePtr(0)}

	for i := 0; i < 1000; i++ {
		if !Present(always, 0, rng) {
			t.Fatal("chance=1 returned absent")
		}
		if Present(never, 0, rng) {
			t.Fatal("chance=0 returned present")
		}
	}
}

func TestPresent_FunValue(t *testing.T) {
	p := &types.Presence{FunValue: fun.Range{Low: 10, High: 20}}
	r := &fixedRoller{vals: []float64{0}}

	if !Present(p, 15, r) {
		t.Error("seed 15 in range 10..20 should be present")
	}
	if Present(p, 21, r) {
		t.Error("seed 21 outside range 10..20 should be absent")
	}
}

// Both gates set means both must pass.
func TestPresent_ChanceAndFunValueAreANDed(t *testing.T) {
	p := &types.Presence{
		Chance:   chancePtr(1),
		FunValue: fun.Compare{Op: fun.OpLT, Operand: 50},
	}
	r := &fixedRoller{vals: []float64{0}}

	if !Present(p, 10, r) {
		t.Error("passing chance and passing funvalue should be present")
	}
	if Present(p, 60, r) {
		t.Error("passing chance but failing funvalue should be absent")
	}

	p.Chance = chancePtr(0)
	if Present(p, 10, r) {
		t.Error("failing chance but passing funvalue should be absent")
	}
}

func TestDestination_Default(t *testing.T) {
	d := types.Destination{Default: "hall"}
	if got := Destination(d, 0, &fixedRoller{vals: []float64{0}}); got != "hall" {
		t.Errorf("got %q, want hall", got)
	}
}

func TestDestination_FunValueFirstMatchWins(t *testing.T) {
	d := types.Destination{
		Default: "hall",
		FunValue: []types.DestRule{
			{Rule: fun.Compare{Op: fun.OpGT, Operand: 90}, Room: "vault"},
			{Rule: fun.Range{Low: 0, High: 50}, Room: "cellar"},
			{Rule: fun.Range{Low: 40, High: 60}, Room: "attic"},
		},
	}
	r := &fixedRoller{vals: []float64{0}}

	if got := Destination(d, 95, r); got != "vault" {
		t.Errorf("seed 95: got %q, want vault", got)
	}
	// Seed 45 matches both later rules; the earlier one wins.
	if got := Destination(d, 45, r); got != "cellar" {
		t.Errorf("seed 45: got %q, want cellar", got)
	}
	if got := Destination(d, 70, r); got != "hall" {
		t.Errorf("seed 70: got %q, want default hall", got)
	}
}

// A matching funvalue rule wins regardless of the chance list.
func TestDestination_FunValueBeatsChance(t *testing.T) {
	d := types.Destination{
		Default: "hall",
		Chance: []types.ChanceEntry{
			{Weight: 1, Room: "cellar"},
		},
		FunValue: []types.DestRule{
			{Rule: fun.Range{Low: 0, High: 100}, Room: "vault"},
		},
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		if got := Destination(d, 50, rng); got != "vault" {
			t.Fatalf("got %q, want vault on every draw", got)
		}
	}
}

func TestDestination_WeightedChance(t *testing.T) {
	d := types.Destination{
		Default: "hall",
		Chance: []types.ChanceEntry{
			{Weight: 0.5, Room: "attic"},
			{Weight: 0.5, Room: "cellar"},
		},
	}
	rng := rand.New(rand.NewSource(3))

	counts := map[string]int{}
	const trials = 10000
	for i := 0; i < trials; i++ {
		counts[Destination(d, 0, rng)]++
	}
	if counts["hall"] != 0 {
		t.Errorf("default chosen %d times, want never", counts["hall"])
	}
	if counts["attic"]+counts["cellar"] != trials {
		t.Errorf("counts %v do not cover all trials", counts)
	}
	// Roughly 50/50: allow a generous band for a seeded RNG.
	if counts["attic"] < trials*4/10 || counts["attic"] > trials*6/10 {
		t.Errorf("attic chosen %d of %d times, want ~50%%", counts["attic"], trials)
	}
}

func TestDestination_RelativeWeights(t *testing.T) {
	d := types.Destination{
		Default: "hall",
		Chance: []types.ChanceEntry{
			{Weight: 3, Room: "attic"},
			{Weight: 1, Room: "cellar"},
		},
	}
	// Roll 0.5 lands at 2.0 of 4.0 total, inside attic's 0..3 band.
	if got := Destination(d, 0, &fixedRoller{vals: []float64{0.5}}); got != "attic" {
		t.Errorf("got %q, want attic", got)
	}
	// Roll 0.9 lands at 3.6, inside cellar's 3..4 band.
	if got := Destination(d, 0, &fixedRoller{vals: []float64{0.9}}); got != "cellar" {
		t.Errorf("got %q, want cellar", got)
	}
}

func TestDestination_ZeroWeightsFallThrough(t *testing.T) {
	d := types.Destination{
		Default: "hall",
		Chance: []types.ChanceEntry{
			{Weight: 0, Room: "attic"},
			{Weight: 0, Room: "cellar"},
		},
	}
	if got := Destination(d, 0, &fixedRoller{vals: []float64{0.2}}); got != "hall" {
		t.Errorf("got %q, want default hall", got)
	}
}

func TestExit(t *testing.T) {
	x := types.Exit{
		Presence:    &types.Presence{FunValue: fun.Compare{Op: fun.OpLT, Operand: 50}},
		Destination: types.Destination{Default: "attic"},
	}
	r := &fixedRoller{vals: []float64{0}}

	room, present := Exit(x, 10, r)
	if !present || room != "attic" {
		t.Errorf("got (%q, %v), want (attic, true)", room, present)
	}
	if _, present := Exit(x, 80, r); present {
		t.Error("exit should be absent for seed 80")
	}
}
