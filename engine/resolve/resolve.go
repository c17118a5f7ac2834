// Package resolve implements the presence and destination resolvers: the
// two-step decision of whether an exit or action exists this playthrough,
// and which room it leads to. Fun-value conditions read the fixed
// playthrough seed; chance gates take a fresh roll each call.
package resolve

import "github.com/marisk/vantage/types"

// Roller supplies uniform random values in [0, 1). The engine's RNG
// satisfies it; tests substitute fixed sequences.
type Roller interface {
	Float64() float64
}

// Present reports whether an exit or action gated by p exists this
// playthrough. A nil spec is always present. When both a chance and a
// funvalue gate are set, both must pass.
func Present(p *types.Presence, seed int, r Roller) bool {
	if p == nil {
		return true
	}
	if p.Chance != nil && r.Float64() >= *p.Chance {
		return false
	}
	if p.FunValue != nil && !p.FunValue.Eval(seed) {
		return false
	}
	return true
}

// Destination selects the target room id for a destination spec.
// Precedence is fixed: funvalue rules in declaration order, then the
// weighted chance list, then the default.
func Destination(d types.Destination, seed int, r Roller) string {
	for _, rule := range d.FunValue {
		if rule.Rule.Eval(seed) {
			return rule.Room
		}
	}
	if room, ok := weighted(d.Chance, r); ok {
		return room
	}
	return d.Default
}

// Exit applies the presence gate and, if it passes, resolves the exit's
// destination. The bool reports presence.
func Exit(x types.Exit, seed int, r Roller) (string, bool) {
	if !Present(x.Presence, seed, r) {
		return "", false
	}
	return Destination(x.Destination, seed, r), true
}

// weighted draws from a relative-weight list: a uniform roll in
// [0, sum) walks the entries cumulatively and the first entry whose
// cumulative weight exceeds the roll wins. An empty list or all-zero
// weights select nothing, so the caller falls through to the default.
func weighted(entries []types.ChanceEntry, r Roller) (string, bool) {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return "", false
	}
	roll := r.Float64() * total
	var cumulative float64
	for _, e := range entries {
		cumulative += e.Weight
		if roll < cumulative {
			return e.Room, true
		}
	}
	// Floating-point edge: roll landed on the top boundary.
	return entries[len(entries)-1].Room, true
}
