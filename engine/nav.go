package engine

import (
	"github.com/marisk/vantage/config"
	"github.com/marisk/vantage/types"
)

// Nav regions reported by NavRegion. Left, right, up, and down match the
// exit directions they trigger; forward, backward, and double come from
// the central region and depend on which depth exits the room defines.
const (
	NavLeft     = "left"
	NavRight    = "right"
	NavUp       = "up"
	NavDown     = "down"
	NavForward  = "forward"
	NavBackward = "backward"
	NavDouble   = "double"
)

// NavRegion maps a screen position to a navigation region of the given
// room, or "" when the position is in no region or the region's exit is
// not defined. Edge strips along the window borders trigger the four
// planar directions; a central region triggers depth movement. The
// central region reports "double" when the room has both a forward and a
// backward exit, since a click there is ambiguous until the button is
// known.
func NavRegion(room types.Room, cfg config.Navigation, width, height, x, y int) string {
	marginX := int(float64(width) * cfg.EdgeMarginWidth)
	marginY := int(float64(height) * cfg.EdgeMarginWidth)
	stripX := int(float64(width) * cfg.EdgeRegionBreadth)
	stripY := int(float64(height) * cfg.EdgeRegionBreadth)

	centerHalfW := int(float64(width)*cfg.ForwardRegionWidth) / 2
	centerHalfH := int(float64(height)*cfg.ForwardRegionWidth) / 2
	centerMinX, centerMaxX := width/2-centerHalfW, width/2+centerHalfW
	centerMinY, centerMaxY := height/2-centerHalfH, height/2+centerHalfH

	has := func(dir string) bool {
		_, ok := room.Exits[dir]
		return ok
	}

	switch {
	case x < stripX && marginY < y && y < height-marginY && has(NavLeft):
		return NavLeft
	case x > width-stripX && marginY < y && y < height-marginY && has(NavRight):
		return NavRight
	case y < stripY && marginX < x && x < width-marginX && has(NavUp):
		return NavUp
	case y > height-stripY && marginX < x && x < width-marginX && has(NavDown):
		return NavDown
	case centerMinX < x && x < centerMaxX && centerMinY < y && y < centerMaxY:
		switch {
		case has(NavForward) && has(NavBackward):
			return NavDouble
		case has(NavForward):
			return NavForward
		case has(NavBackward):
			return NavBackward
		}
	}
	return ""
}

// NavDirection resolves a nav region to the exit direction a click should
// follow. The ambiguous "double" region resolves to forward on a primary
// click and backward on a secondary click.
func NavDirection(region string, secondary bool) string {
	if region == NavDouble {
		if secondary {
			return NavBackward
		}
		return NavForward
	}
	if secondary && region != NavBackward {
		return ""
	}
	return region
}
