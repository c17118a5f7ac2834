// Package hotspot maps screen coordinates to a room's clickable action
// regions. Regions may overlap; the first-declared region containing the
// point wins, matching the declaration order in the room's action list.
package hotspot

import "github.com/marisk/vantage/types"

// Find returns the first action in declaration order whose rect contains
// the point, or nil when the click hits no region.
func Find(actions []types.Action, x, y int) *types.Action {
	for i := range actions {
		if actions[i].Rect.Contains(x, y) {
			return &actions[i]
		}
	}
	return nil
}

// Handler returns the action's handler for the given verb, or nil when
// the verb has no handler on this region (a no-op click).
func Handler(a *types.Action, verb types.Verb) *types.Handler {
	if a == nil {
		return nil
	}
	switch verb {
	case types.VerbLook:
		return a.Look
	case types.VerbUse:
		return a.Use
	case types.VerbGo:
		return a.Go
	}
	return nil
}

// DefaultVerb picks the verb a plain click triggers, in the fixed
// priority order look, use, go. Empty when the region has no handlers.
func DefaultVerb(a *types.Action) types.Verb {
	switch {
	case a == nil:
		return ""
	case a.Look != nil:
		return types.VerbLook
	case a.Use != nil:
		return types.VerbUse
	case a.Go != nil:
		return types.VerbGo
	}
	return ""
}

// SecondaryVerb picks the verb a secondary (right) click triggers: use
// when present, otherwise go. Look is never a secondary action.
func SecondaryVerb(a *types.Action) types.Verb {
	switch {
	case a == nil:
		return ""
	case a.Use != nil:
		return types.VerbUse
	case a.Go != nil:
		return types.VerbGo
	}
	return ""
}

// Icon names the indicator icon class a region shows, derived from which
// handlers it carries.
func Icon(a *types.Action) string {
	switch {
	case a == nil:
		return ""
	case a.Look != nil && a.Use != nil:
		return "lookuse"
	case a.Look != nil && a.Go != nil:
		return "lookgo"
	case a.Look != nil:
		return "look"
	case a.Use != nil:
		return "use"
	case a.Go != nil:
		return "go"
	}
	return ""
}
