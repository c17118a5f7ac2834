package save

import (
	"errors"
	"testing"

	"github.com/marisk/vantage/config"
	"github.com/marisk/vantage/engine"
	"github.com/marisk/vantage/engine/state"
	"github.com/marisk/vantage/logger"
	"github.com/marisk/vantage/types"
)

func testWorld() *state.World {
	return &state.World{
		Name:      "Test House",
		FirstRoom: "start",
		FunRange:  [2]int{0, 100},
		Rooms: map[string]types.Room{
			"start": {Image: "a.png", Exits: map[string]types.Exit{
				"forward": {Destination: types.Destination{Default: "end"}},
			}},
			"end": {Image: "b.png"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w := testWorld()
	e := engine.NewSeeded(w, config.Default(), logger.Discard(), 7)
	if _, err := e.Navigate("forward"); err != nil {
		t.Fatal(err)
	}
	e.State.Vars["lantern_lit"] = true
	e.Overlays.Insert("lamp.png", 10, 20, true)

	data, err := Save(e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored := engine.NewSeeded(w, config.Default(), logger.Discard(), 99)
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Apply(restored, sd); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if restored.State.CurrentRoom != "end" {
		t.Errorf("room = %q, want end", restored.State.CurrentRoom)
	}
	if restored.State.FunValue != e.State.FunValue {
		t.Errorf("fun value = %d, want %d", restored.State.FunValue, e.State.FunValue)
	}
	if restored.State.PlaythroughID != e.State.PlaythroughID {
		t.Error("playthrough id not restored")
	}
	if restored.State.TurnCount != e.State.TurnCount {
		t.Errorf("turn = %d, want %d", restored.State.TurnCount, e.State.TurnCount)
	}
	if v, ok := restored.State.Vars["lantern_lit"].(bool); !ok || !v {
		t.Errorf("vars = %+v, lantern_lit lost", restored.State.Vars)
	}
	overlays := restored.Overlays.List()
	if len(overlays) != 1 || overlays[0].Image != "lamp.png" {
		t.Errorf("overlays = %+v", overlays)
	}

	// The restored RNG must continue the original stream.
	for i := 0; i < 10; i++ {
		if e.RNG.Float64() != restored.RNG.Float64() {
			t.Fatalf("restored RNG diverged at draw %d", i)
		}
	}
}

func TestLoad_BadVersion(t *testing.T) {
	if _, err := Load([]byte(`{"version": "99", "room": "start"}`)); err == nil {
		t.Error("unsupported save version accepted")
	}
}

func TestLoad_NotJSON(t *testing.T) {
	if _, err := Load([]byte("not json")); err == nil {
		t.Error("non-JSON save accepted")
	}
}

func TestApply_UnknownRoom(t *testing.T) {
	e := engine.NewSeeded(testWorld(), config.Default(), logger.Discard(), 1)
	before := e.State.CurrentRoom

	err := Apply(e, &SaveData{Version: FormatVersion, Room: "demolished"})
	if err == nil {
		t.Fatal("Apply accepted a save pointing at an unknown room")
	}
	var ure *state.UnknownRoomError
	if !errors.As(err, &ure) {
		t.Fatalf("error type %T, want *state.UnknownRoomError", err)
	}
	if e.State.CurrentRoom != before {
		t.Error("state changed on failed Apply")
	}
}
