package pointer

import (
	"image"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// Sample is the result of tracking one event.
type Sample struct {
	Phase Phase
	Point Point
	// Consumed reports that the event belongs to the drawing surface and
	// must not reach any other handler (scrolling, toolbar hover, ...).
	Consumed bool
}

// Tracker follows a single pointer across events. Rect is where the surface
// is shown in client coordinates and Size is the surface's logical size; when
// the two differ the located point is scaled into surface units.
type Tracker struct {
	Rect image.Rectangle
	Size image.Point

	pressed  bool
	touching bool
	seq      touch.Sequence
}

// NewTracker returns a Tracker for a surface of the given logical size shown
// at rect.
func NewTracker(rect image.Rectangle, size image.Point) *Tracker {
	return &Tracker{Rect: rect, Size: size}
}

// Active reports whether a press or touch is currently held.
func (t *Tracker) Active() bool {
	return t.pressed || t.touching
}

// Reset forgets any held press, e.g. when the surface is hidden.
func (t *Tracker) Reset() {
	t.pressed = false
	t.touching = false
}

// Track classifies ev and converts it to surface coordinates. Events the
// tracker does not understand yield PhaseNone and are not consumed.
func (t *Tracker) Track(ev any) Sample {
	switch e := ev.(type) {
	case mouse.Event:
		return t.trackMouse(e)
	case touch.Event:
		return t.trackTouch(e)
	case TouchList:
		return t.trackList(e)
	case *TouchList:
		if e == nil {
			return Sample{}
		}
		return t.trackList(*e)
	}
	return Sample{}
}

func (t *Tracker) trackMouse(e mouse.Event) Sample {
	p := t.scale(Locate(e, t.Rect))
	inside := t.inside(e.X, e.Y)
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || !inside {
			return Sample{Point: p}
		}
		t.pressed = true
		return Sample{Phase: PhaseDown, Point: p, Consumed: true}
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !t.pressed {
			return Sample{Point: p}
		}
		t.pressed = false
		return Sample{Phase: PhaseUp, Point: p, Consumed: true}
	case mouse.DirNone:
		if !inside {
			if t.pressed {
				t.pressed = false
				return Sample{Phase: PhaseLeave, Point: p, Consumed: true}
			}
			return Sample{Point: p}
		}
		return Sample{Phase: PhaseMove, Point: p, Consumed: t.pressed}
	}
	return Sample{Point: p}
}

func (t *Tracker) trackTouch(e touch.Event) Sample {
	p := t.scale(Locate(e, t.Rect))
	switch e.Type {
	case touch.TypeBegin:
		if t.touching {
			// A second finger; keep following the first one.
			return Sample{Point: p, Consumed: t.inside(e.X, e.Y)}
		}
		if !t.inside(e.X, e.Y) {
			return Sample{Point: p}
		}
		t.touching = true
		t.seq = e.Sequence
		return Sample{Phase: PhaseDown, Point: p, Consumed: true}
	case touch.TypeMove:
		if !t.touching || e.Sequence != t.seq {
			return Sample{Point: p, Consumed: t.touching}
		}
		return Sample{Phase: PhaseMove, Point: p, Consumed: true}
	case touch.TypeEnd:
		if !t.touching || e.Sequence != t.seq {
			return Sample{Point: p, Consumed: t.touching}
		}
		t.touching = false
		return Sample{Phase: PhaseUp, Point: p, Consumed: true}
	}
	return Sample{Point: p}
}

func (t *Tracker) trackList(l TouchList) Sample {
	p := t.scale(Locate(l, t.Rect))
	switch l.Phase {
	case PhaseDown:
		t.touching = true
	case PhaseUp, PhaseLeave, PhaseCancel:
		if !t.touching {
			return Sample{Point: p}
		}
		t.touching = false
	case PhaseMove:
		if !t.touching {
			return Sample{Point: p}
		}
	default:
		return Sample{Point: p}
	}
	return Sample{Phase: l.Phase, Point: p, Consumed: true}
}

func (t *Tracker) inside(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(t.Rect)
}

func (t *Tracker) scale(p Point) Point {
	dx, dy := t.Rect.Dx(), t.Rect.Dy()
	if t.Size.X <= 0 || t.Size.Y <= 0 || dx <= 0 || dy <= 0 {
		return p
	}
	if dx == t.Size.X && dy == t.Size.Y {
		return p
	}
	return Point{
		X: p.X * float32(t.Size.X) / float32(dx),
		Y: p.Y * float32(t.Size.Y) / float32(dy),
	}
}
