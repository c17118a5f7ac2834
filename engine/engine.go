// Package engine orchestrates a playthrough: it owns the mutable state,
// draws the per-playthrough fun value, resolves exits and action regions
// against that state, and emits the effect stream the host renders.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/marisk/vantage/config"
	"github.com/marisk/vantage/engine/hotspot"
	"github.com/marisk/vantage/engine/overlay"
	"github.com/marisk/vantage/engine/resolve"
	"github.com/marisk/vantage/engine/state"
	"github.com/marisk/vantage/types"
)

// ScriptCaller runs a script handler spec of the form
// "file.lua:func,arg1,arg2". Wired in by the host after construction so
// the script runtime can call back into the engine.
type ScriptCaller interface {
	Call(spec string) (*types.Result, error)
}

// Engine holds the world graph and the mutable playthrough state.
type Engine struct {
	World    *state.World
	State    *state.State
	Config   *config.Config
	RNG      *RNG
	Overlays *overlay.Registry
	Scripts  ScriptCaller
	Log      *slog.Logger
}

// New starts a fresh playthrough: it seeds the RNG from the clock, draws
// the fun value from the world's range, and places the player in the
// first room.
func New(w *state.World, cfg *config.Config, log *slog.Logger) *Engine {
	return NewSeeded(w, cfg, log, time.Now().UnixNano())
}

// NewSeeded is New with a caller-chosen RNG seed, for reproducible runs.
func NewSeeded(w *state.World, cfg *config.Config, log *slog.Logger, seed int64) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	rng := NewRNG(seed)
	fv := rng.IntBetween(w.FunRange[0], w.FunRange[1])
	log.Info("new playthrough", "world", w.Name, "first_room", w.FirstRoom, "funvalue", fv)
	return &Engine{
		World:    w,
		State:    state.NewState(w, fv),
		Config:   cfg,
		RNG:      rng,
		Overlays: overlay.NewRegistry(),
		Log:      log,
	}
}

// Room returns the current room. The current room id always names a real
// room; a failed lookup here means the state was corrupted externally.
func (e *Engine) Room() types.Room {
	room, err := e.World.Room(e.State.CurrentRoom)
	if err != nil {
		panic(fmt.Sprintf("current room %q vanished from world", e.State.CurrentRoom))
	}
	return room
}

// TransitionTo moves the player to the given room. The move is atomic:
// on an unknown room id the state is untouched and the error returned.
// A successful move drops transient overlays and emits an enter_room
// effect, plus a music effect when the room defines one.
func (e *Engine) TransitionTo(id string) (*types.Result, error) {
	room, err := e.World.Room(id)
	if err != nil {
		e.Log.Warn("transition rejected", "room", id, "err", err)
		return nil, err
	}

	e.State.CurrentRoom = id
	e.Overlays.Cleanup()
	e.Log.Info("room entered", "room", id, "turn", e.State.TurnCount)

	res := &types.Result{}
	res.Effects = append(res.Effects, types.Effect{
		Type: types.EffectEnterRoom,
		Params: map[string]any{
			"room":  id,
			"image": room.Image,
			"title": room.Title,
		},
	})
	if room.Music.Defined {
		res.Effects = append(res.Effects, musicEffect(room.Music))
	}
	if room.Title != "" {
		res.Output = append(res.Output, room.Title)
	}
	return res, nil
}

// Navigate follows an exit of the current room. An undefined direction
// or an exit whose presence roll fails produces a no-move result rather
// than an error; the player simply does not go anywhere.
func (e *Engine) Navigate(direction string) (*types.Result, error) {
	exit, ok := e.Room().Exits[direction]
	if !ok {
		return noWay(), nil
	}
	dest, present := resolve.Exit(exit, e.State.FunValue, e.RNG)
	if !present {
		e.Log.Debug("exit absent this playthrough", "direction", direction)
		return noWay(), nil
	}
	e.State.TurnCount++
	return e.TransitionTo(dest)
}

func noWay() *types.Result {
	const msg = "You can't go that way."
	return &types.Result{
		Effects: []types.Effect{{Type: types.EffectText, Params: map[string]any{"text": msg}}},
		Output:  []string{msg},
	}
}

func musicEffect(m types.Music) types.Effect {
	params := map[string]any{}
	if m.Track != "" {
		params["track"] = m.Track
	} else {
		params["stop"] = true
		if m.Fade > 0 {
			params["fade"] = m.Fade
		}
	}
	return types.Effect{Type: types.EffectMusic, Params: params}
}

// Click dispatches a click at window coordinates. Action regions take
// priority; a click outside every region falls back to the navigation
// regions along the window edges and center. The secondary flag marks a
// secondary (right) click, which prefers use/go handlers and backward
// movement.
func (e *Engine) Click(x, y int, secondary bool) (*types.Result, error) {
	room := e.Room()
	if a := hotspot.Find(room.Actions, x, y); a != nil {
		verb := hotspot.DefaultVerb(a)
		if secondary {
			verb = hotspot.SecondaryVerb(a)
		}
		if verb == "" {
			return &types.Result{}, nil
		}
		return e.Interact(verb, x, y)
	}

	w, h := e.Config.Window.Size[0], e.Config.Window.Size[1]
	region := NavRegion(room, e.Config.Navigation, w, h, x, y)
	dir := NavDirection(region, secondary)
	if dir == "" {
		return &types.Result{}, nil
	}
	return e.Navigate(dir)
}

// Interact fires a specific verb at window coordinates. A miss, or a hit
// on a region without a handler for the verb, returns an empty result.
func (e *Engine) Interact(verb types.Verb, x, y int) (*types.Result, error) {
	a := hotspot.Find(e.Room().Actions, x, y)
	if a == nil {
		return &types.Result{}, nil
	}
	h := hotspot.Handler(a, verb)
	if h == nil {
		return &types.Result{}, nil
	}
	e.State.TurnCount++
	return e.Dispatch(h)
}
