// Package pointer converts mouse and touch events into coordinates local to
// the drawing surface, independent of the input device that produced them.
package pointer

import (
	"image"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// Point is a coordinate in surface-local units.
type Point struct {
	X, Y float32
}

// Phase classifies a pointer event for the stroke renderer.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseDown
	PhaseMove
	PhaseUp
	PhaseLeave
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseLeave:
		return "leave"
	case PhaseCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Touch is a single contact of a TouchList.
type Touch struct {
	X, Y float32
}

// TouchList carries every active contact of a multi-touch source. Only the
// first entry is used for drawing.
type TouchList struct {
	Phase   Phase
	Touches []Touch
}

// Locate returns the event's client coordinates relative to the origin of
// rect. Events without coordinates, including an empty TouchList, map to
// (0,0).
func Locate(ev any, rect image.Rectangle) Point {
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)
	switch e := ev.(type) {
	case mouse.Event:
		return Point{X: e.X - ox, Y: e.Y - oy}
	case touch.Event:
		return Point{X: e.X - ox, Y: e.Y - oy}
	case TouchList:
		if len(e.Touches) > 0 {
			return Point{X: e.Touches[0].X - ox, Y: e.Touches[0].Y - oy}
		}
	case *TouchList:
		if e != nil && len(e.Touches) > 0 {
			return Point{X: e.Touches[0].X - ox, Y: e.Touches[0].Y - oy}
		}
	}
	return Point{}
}
