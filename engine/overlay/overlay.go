// Package overlay tracks images layered over the current room view.
// Scripts insert overlays; the host draws them in insertion order. Each
// overlay is either persistent (survives room changes) or transient
// (dropped when the room changes).
package overlay

import "github.com/google/uuid"

// Overlay is one layered image.
type Overlay struct {
	ID         string
	Image      string
	X, Y       int
	Persistent bool
}

// Registry holds the active overlays in insertion order.
type Registry struct {
	overlays []Overlay
}

// NewRegistry returns an empty overlay registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert adds an overlay and returns its generated id.
func (r *Registry) Insert(image string, x, y int, persistent bool) string {
	o := Overlay{
		ID:         uuid.NewString(),
		Image:      image,
		X:          x,
		Y:          y,
		Persistent: persistent,
	}
	r.overlays = append(r.overlays, o)
	return o.ID
}

// Remove deletes the overlay with the given id. It reports whether the
// id existed.
func (r *Registry) Remove(id string) bool {
	for i, o := range r.overlays {
		if o.ID == id {
			r.overlays = append(r.overlays[:i], r.overlays[i+1:]...)
			return true
		}
	}
	return false
}

// Reposition moves an overlay. It reports whether the id existed.
func (r *Registry) Reposition(id string, x, y int) bool {
	for i := range r.overlays {
		if r.overlays[i].ID == id {
			r.overlays[i].X = x
			r.overlays[i].Y = y
			return true
		}
	}
	return false
}

// Cleanup drops every non-persistent overlay. Called on room change.
func (r *Registry) Cleanup() {
	kept := r.overlays[:0]
	for _, o := range r.overlays {
		if o.Persistent {
			kept = append(kept, o)
		}
	}
	r.overlays = kept
}

// List returns the active overlays in insertion order. The returned
// slice is a copy.
func (r *Registry) List() []Overlay {
	out := make([]Overlay, len(r.overlays))
	copy(out, r.overlays)
	return out
}

// Restore replaces the registry contents, preserving the given order.
// Used by save restore.
func (r *Registry) Restore(overlays []Overlay) {
	r.overlays = make([]Overlay, len(overlays))
	copy(r.overlays, overlays)
}
