// Package save implements JSON serialization and deserialization of a
// playthrough. The fun value and the RNG stream position are part of the
// save so a restored game rolls exactly as the original would have.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/marisk/vantage/engine"
	"github.com/marisk/vantage/engine/overlay"
	"github.com/marisk/vantage/engine/state"
)

// FormatVersion is bumped on incompatible changes to SaveData.
const FormatVersion = "1"

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version       string            `json:"version"`
	World         string            `json:"world"`
	PlaythroughID string            `json:"playthrough_id"`
	Room          string            `json:"room"`
	FunValue      int               `json:"funvalue"`
	Turn          int               `json:"turn"`
	Vars          map[string]any    `json:"vars"`
	Overlays      []overlay.Overlay `json:"overlays"`
	RNGSeed       int64             `json:"rng_seed"`
	RNGPosition   int64             `json:"rng_position"`
}

// Save serializes the engine's playthrough to JSON bytes.
func Save(e *engine.Engine) ([]byte, error) {
	data := SaveData{
		Version:       FormatVersion,
		World:         e.World.Name,
		PlaythroughID: e.State.PlaythroughID,
		Room:          e.State.CurrentRoom,
		FunValue:      e.State.FunValue,
		Turn:          e.State.TurnCount,
		Vars:          e.State.Vars,
		Overlays:      e.Overlays.List(),
		RNGSeed:       e.RNG.Seed(),
		RNGPosition:   e.RNG.Position(),
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	if sd.Version != FormatVersion {
		return nil, fmt.Errorf("save format version %q not supported", sd.Version)
	}
	if sd.Vars == nil {
		sd.Vars = map[string]any{}
	}
	return &sd, nil
}

// Apply restores loaded save data onto an engine. The saved room must
// still exist in the world the engine was built with.
func Apply(e *engine.Engine, sd *SaveData) error {
	if !e.World.Has(sd.Room) {
		return &state.UnknownRoomError{ID: sd.Room}
	}
	e.State.PlaythroughID = sd.PlaythroughID
	e.State.CurrentRoom = sd.Room
	e.State.FunValue = sd.FunValue
	e.State.TurnCount = sd.Turn
	e.State.Vars = sd.Vars
	e.Overlays.Restore(sd.Overlays)
	e.RNG = engine.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	return nil
}
