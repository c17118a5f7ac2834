package types

import (
	"encoding/json"
	"fmt"

	"github.com/marisk/vantage/fun"
)

// UnmarshalJSON decodes an exit from either a bare destination string or a
// structured {presence, destination} object.
func (e *Exit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Presence = nil
		e.Destination = Destination{Default: s}
		return nil
	}

	var raw struct {
		Presence    *Presence       `json:"presence"`
		Destination json.RawMessage `json:"destination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding exit: %w", err)
	}
	if len(raw.Destination) == 0 {
		return fmt.Errorf("decoding exit: missing destination")
	}
	e.Presence = raw.Presence
	return json.Unmarshal(raw.Destination, &e.Destination)
}

// UnmarshalJSON decodes a destination from either a bare room id string or
// a {default, chance, funvalue} object.
func (d *Destination) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Destination{Default: s}
		return nil
	}

	var raw struct {
		Default  string  `json:"default"`
		Chance   [][]any `json:"chance"`
		FunValue [][]any `json:"funvalue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding destination: %w", err)
	}
	d.Default = raw.Default
	d.Chance = nil
	d.FunValue = nil

	for _, entry := range raw.Chance {
		if len(entry) != 2 {
			return fmt.Errorf("decoding destination: chance entry %v must be [weight, room]", entry)
		}
		weight, ok := entry[0].(float64)
		if !ok {
			return fmt.Errorf("decoding destination: chance weight %v is not a number", entry[0])
		}
		room, ok := entry[1].(string)
		if !ok {
			return fmt.Errorf("decoding destination: chance room %v is not a string", entry[1])
		}
		d.Chance = append(d.Chance, ChanceEntry{Weight: weight, Room: room})
	}

	for _, entry := range raw.FunValue {
		rule, room, err := fun.ParseDest(entry)
		if err != nil {
			return err
		}
		d.FunValue = append(d.FunValue, DestRule{Rule: rule, Room: room})
	}
	return nil
}

// UnmarshalJSON decodes a presence gate, parsing the funvalue rule array
// into its AST so malformed expressions fail at load time.
func (p *Presence) UnmarshalJSON(data []byte) error {
	var raw struct {
		Chance   *float64 `json:"chance"`
		FunValue []any    `json:"funvalue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding presence: %w", err)
	}
	p.Chance = raw.Chance
	p.FunValue = nil
	if raw.FunValue != nil {
		rule, err := fun.Parse(raw.FunValue)
		if err != nil {
			return err
		}
		p.FunValue = rule
	}
	return nil
}

// UnmarshalJSON decodes a music directive from null, a number, or a string.
func (m *Music) UnmarshalJSON(data []byte) error {
	m.Defined = true
	if string(data) == "null" {
		m.Stop = true
		return nil
	}
	var fade float64
	if err := json.Unmarshal(data, &fade); err == nil {
		m.Stop = true
		m.Fade = fade
		return nil
	}
	var track string
	if err := json.Unmarshal(data, &track); err != nil {
		return fmt.Errorf("decoding music: %w", err)
	}
	m.Track = track
	return nil
}

// UnmarshalJSON decodes handler contents from a string or, for exit
// results, a Destination object.
func (c *Contents) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Text = s
		c.Dest = nil
		return nil
	}
	var d Destination
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decoding handler contents: %w", err)
	}
	c.Text = ""
	c.Dest = &d
	return nil
}

// Destination returns the contents as a destination spec, wrapping a bare
// room id string in a default-only Destination.
func (c Contents) Destination() Destination {
	if c.Dest != nil {
		return *c.Dest
	}
	return Destination{Default: c.Text}
}
