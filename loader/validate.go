package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marisk/vantage/engine/state"
	"github.com/marisk/vantage/types"
)

// ValidationError collects every referential validation error in a world.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("world validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the decoded world for referential integrity: every room
// id referenced by an exit, destination list, or exit-type action handler
// must exist in the graph. All errors are collected before failing.
func validate(w *state.World) error {
	ve := &ValidationError{}

	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		room := w.Rooms[id]
		for _, dir := range types.Directions {
			exit, ok := room.Exits[dir]
			if !ok {
				continue
			}
			validateDestination(w, exit.Destination,
				fmt.Sprintf("room %q exit %q", id, dir), ve)
		}
		for i, action := range room.Actions {
			validateAction(w, action, fmt.Sprintf("room %q action %d", id, i), ve)
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateDestination(w *state.World, d types.Destination, where string, ve *ValidationError) {
	if !w.Has(d.Default) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"%s: default destination %q not defined", where, d.Default))
	}
	for _, entry := range d.Chance {
		if !w.Has(entry.Room) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: chance destination %q not defined", where, entry.Room))
		}
	}
	for _, rule := range d.FunValue {
		if !w.Has(rule.Room) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: funvalue destination %q not defined", where, rule.Room))
		}
	}
}

func validateAction(w *state.World, a types.Action, where string, ve *ValidationError) {
	handlers := []struct {
		verb string
		h    *types.Handler
	}{
		{"look", a.Look},
		{"use", a.Use},
		{"go", a.Go},
	}
	for _, hv := range handlers {
		if hv.h == nil {
			continue
		}
		switch hv.h.Result {
		case types.ResultExit:
			validateDestination(w, hv.h.Contents.Destination(),
				fmt.Sprintf("%s %s handler", where, hv.verb), ve)
		case types.ResultScript:
			if !strings.Contains(hv.h.Contents.Text, ":") {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s %s handler: script contents %q missing \"file:func\" separator",
					where, hv.verb, hv.h.Contents.Text))
			}
		}
	}
}
