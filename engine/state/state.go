// Package state holds the immutable world graph and the mutable
// playthrough state. The world is read-only after load and safe to share
// across readers; State is written only by the engine main loop.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/marisk/vantage/types"
)

// World is the full room graph loaded from a world descriptor.
type World struct {
	Name      string
	FirstRoom string
	FunRange  [2]int
	Rooms     map[string]types.Room
}

// UnknownRoomError reports a reference to a room id that is not in the
// world graph.
type UnknownRoomError struct {
	ID string
}

func (e *UnknownRoomError) Error() string {
	return fmt.Sprintf("unknown room %q", e.ID)
}

// Room looks up a room by id.
func (w *World) Room(id string) (types.Room, error) {
	room, ok := w.Rooms[id]
	if !ok {
		return types.Room{}, &UnknownRoomError{ID: id}
	}
	return room, nil
}

// Has reports whether a room id exists in the graph.
func (w *World) Has(id string) bool {
	_, ok := w.Rooms[id]
	return ok
}

// State is the mutable per-playthrough state. The fun value is drawn once
// at new-game start and stays fixed until the next new game; it is
// threaded explicitly into every resolver call rather than read globally.
type State struct {
	PlaythroughID string
	CurrentRoom   string
	FunValue      int
	Vars          map[string]any
	TurnCount     int
}

// NewState starts a fresh playthrough at the world's first room with the
// given fun value.
func NewState(w *World, funValue int) *State {
	return &State{
		PlaythroughID: uuid.NewString(),
		CurrentRoom:   w.FirstRoom,
		FunValue:      funValue,
		Vars:          map[string]any{},
	}
}
