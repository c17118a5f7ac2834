// Package types defines the shared data structures for the Vantage engine:
// the world's rooms, exits, destinations, presence gates, and clickable
// action regions, plus the effect stream the engine hands to its host.
// Decoding of the polymorphic JSON forms lives in decode.go; everything
// else is plain data.
package types

import "github.com/marisk/vantage/fun"

// Verb is one of the three interaction verbs an action region can handle.
type Verb string

const (
	VerbLook Verb = "look"
	VerbUse  Verb = "use"
	VerbGo   Verb = "go"
)

// Directions are the valid exit slots of a room.
var Directions = []string{"forward", "backward", "left", "right", "up", "down"}

// Rect is an action region's bounding box as [x, y, w, h] in pixel
// coordinates. Minimums are 1-indexed and both edges are inclusive:
// a point (px, py) is inside iff x <= px <= x+w and y <= py <= y+h.
type Rect [4]int

// Contains reports whether the point lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return r[0] <= x && x <= r[0]+r[2] && r[1] <= y && y <= r[1]+r[3]
}

// Room is one location in the world. Immutable after load.
type Room struct {
	Title    string          `json:"title,omitempty"`
	Image    string          `json:"image"`
	Music    Music           `json:"music,omitempty"`
	Cardinal string          `json:"cardinal,omitempty"`
	Exits    map[string]Exit `json:"exits,omitempty"`
	Actions  []Action        `json:"actions,omitempty"`
}

// Music is a room's music directive. Absent keys leave the zero value
// (Defined false), which means "keep whatever is playing". An explicit
// null stops the music; a number stops it with a fade time in seconds; a
// string names a track. Track identifiers are opaque to the engine core.
type Music struct {
	Defined bool
	Stop    bool
	Fade    float64
	Track   string
}

// Exit leads from a room to a destination, optionally gated by a
// presence spec. A bare-string exit in JSON decodes to an Exit whose
// destination has only a default, so it resolves without any rolls.
type Exit struct {
	Presence    *Presence
	Destination Destination
}

// Presence decides whether an exit or action exists at all this
// playthrough. Chance is an independent roll in [0,1); FunValue is a
// condition on the playthrough fun value. When both are set, both must
// pass.
type Presence struct {
	Chance   *float64
	FunValue fun.Rule
}

// Destination selects a target room id. FunValue rules are checked in
// declaration order first, then the weighted Chance list, then Default.
type Destination struct {
	Default  string
	Chance   []ChanceEntry
	FunValue []DestRule
}

// ChanceEntry is one weighted candidate, decoded from [weight, "room"].
// Weights are relative; they need not sum to 1.
type ChanceEntry struct {
	Weight float64
	Room   string
}

// DestRule is one fun-value destination rule, decoded from
// [op_or_range, operands..., "room"].
type DestRule struct {
	Rule fun.Rule
	Room string
}

// Action is a clickable region with up to three verb handlers.
type Action struct {
	Rect Rect     `json:"rect"`
	Look *Handler `json:"look,omitempty"`
	Use  *Handler `json:"use,omitempty"`
	Go   *Handler `json:"go,omitempty"`
}

// Handler describes what happens when a verb fires on an action region.
type Handler struct {
	Result   string   `json:"result"` // "text", "exit", or "script"
	Contents Contents `json:"contents"`
}

// Contents is a handler payload: literal text, a script call spec, or
// (for exit results) a bare room id or a full Destination object.
type Contents struct {
	Text string
	Dest *Destination
}

// Result types a handler may carry.
const (
	ResultText   = "text"
	ResultExit   = "exit"
	ResultScript = "script"
)

// Effect is a single instruction to the host (renderer, audio player).
type Effect struct {
	Type   string
	Params map[string]any
}

// Result is the output of one dispatched player interaction.
type Result struct {
	Effects []Effect
	Output  []string
}

// Effect types emitted by the engine core.
const (
	EffectText      = "text"       // params: text
	EffectEnterRoom = "enter_room" // params: room, image, title
	EffectMusic     = "music"      // params: track | stop, fade
	EffectError     = "error"      // params: message
)
