// Package loader reads and validates the JSON world descriptors. Loading
// is a strict pipeline: schema gate first (every violation reported with
// a JSON-pointer path), then decoding into typed definitions (malformed
// fun-value rules fail here), then referential validation of every room
// reference. Only a world that passes all three stages reaches the
// engine.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marisk/vantage/engine/state"
	"github.com/marisk/vantage/types"
)

// Manifest is the world.json file at the root of a world directory.
type Manifest struct {
	Name      string
	FirstRoom string
	FunRange  [2]int
	RoomsFile string
}

// LoadWorld parses a room-map descriptor (top-level object mapping room
// ids to rooms) into a world graph. The caller supplies manifest-level
// fields; worlds loaded this way start with an open fun-value range of
// 0..100 and no first room.
func LoadWorld(data []byte) (*state.World, error) {
	if err := ValidateSchema("rooms", data); err != nil {
		return nil, err
	}

	var rooms map[string]types.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("decoding world descriptor: %w", err)
	}

	w := &state.World{
		FunRange: [2]int{0, 100},
		Rooms:    rooms,
	}
	if err := validate(w); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadManifest parses and validates a world.json manifest.
func LoadManifest(data []byte) (*Manifest, error) {
	if err := ValidateSchema("world", data); err != nil {
		return nil, err
	}

	var raw struct {
		Name          string `json:"name"`
		FirstRoom     string `json:"first_room"`
		FunvalueRange [2]int `json:"funvalue_range"`
		Rooms         string `json:"rooms"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding world manifest: %w", err)
	}
	if raw.FunvalueRange[0] > raw.FunvalueRange[1] {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf(
			"funvalue_range [%d, %d] has low above high",
			raw.FunvalueRange[0], raw.FunvalueRange[1])}}
	}

	m := &Manifest{
		Name:      raw.Name,
		FirstRoom: raw.FirstRoom,
		FunRange:  raw.FunvalueRange,
		RoomsFile: raw.Rooms,
	}
	if m.RoomsFile == "" {
		m.RoomsFile = "rooms.json"
	}
	return m, nil
}

// LoadWorldDir loads a complete world directory: the world.json manifest
// plus the rooms descriptor it names.
func LoadWorldDir(dir string) (*state.World, error) {
	manifestData, err := os.ReadFile(filepath.Join(dir, "world.json"))
	if err != nil {
		return nil, fmt.Errorf("reading world manifest: %w", err)
	}
	m, err := LoadManifest(manifestData)
	if err != nil {
		return nil, err
	}

	roomsData, err := os.ReadFile(filepath.Join(dir, m.RoomsFile))
	if err != nil {
		return nil, fmt.Errorf("reading rooms descriptor %s: %w", m.RoomsFile, err)
	}
	w, err := LoadWorld(roomsData)
	if err != nil {
		return nil, err
	}

	w.Name = m.Name
	w.FirstRoom = m.FirstRoom
	w.FunRange = m.FunRange
	if !w.Has(w.FirstRoom) {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf(
			"first_room %q not found in defined rooms", w.FirstRoom)}}
	}
	return w, nil
}
