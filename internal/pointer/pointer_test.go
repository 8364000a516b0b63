package pointer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

func TestLocateSubtractsOrigin(t *testing.T) {
	rect := image.Rect(40, 30, 320, 310)

	got := Locate(mouse.Event{X: 50, Y: 45}, rect)
	assert.Equal(t, Point{X: 10, Y: 15}, got)

	got = Locate(touch.Event{X: 41.5, Y: 30}, rect)
	assert.Equal(t, Point{X: 1.5, Y: 0}, got)
}

func TestLocateTouchListUsesFirstTouch(t *testing.T) {
	rect := image.Rect(10, 10, 290, 290)
	l := TouchList{Phase: PhaseMove, Touches: []Touch{{X: 20, Y: 30}, {X: 200, Y: 200}}}
	assert.Equal(t, Point{X: 10, Y: 20}, Locate(l, rect))
	assert.Equal(t, Point{X: 10, Y: 20}, Locate(&l, rect))
}

func TestLocateDegenerateEvents(t *testing.T) {
	rect := image.Rect(10, 10, 290, 290)
	assert.Equal(t, Point{}, Locate(TouchList{Phase: PhaseDown}, rect))
	assert.Equal(t, Point{}, Locate((*TouchList)(nil), rect))
	assert.Equal(t, Point{}, Locate("not an event", rect))
	assert.Equal(t, Point{}, Locate(nil, rect))
}

func TestTrackerMouseStroke(t *testing.T) {
	tr := NewTracker(image.Rect(0, 0, 280, 280), image.Pt(280, 280))

	s := tr.Track(mouse.Event{X: 10, Y: 10, Direction: mouse.DirNone})
	assert.Equal(t, PhaseMove, s.Phase)
	assert.False(t, s.Consumed, "hover is not consumed")

	s = tr.Track(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, PhaseDown, s.Phase)
	assert.True(t, s.Consumed)
	assert.True(t, tr.Active())

	s = tr.Track(mouse.Event{X: 20, Y: 25, Direction: mouse.DirNone})
	assert.Equal(t, PhaseMove, s.Phase)
	assert.Equal(t, Point{X: 20, Y: 25}, s.Point)
	assert.True(t, s.Consumed)

	s = tr.Track(mouse.Event{X: 20, Y: 25, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	assert.Equal(t, PhaseUp, s.Phase)
	assert.False(t, tr.Active())
}

func TestTrackerMouseLeave(t *testing.T) {
	tr := NewTracker(image.Rect(0, 0, 280, 280), image.Pt(280, 280))
	tr.Track(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})

	s := tr.Track(mouse.Event{X: 400, Y: 10, Direction: mouse.DirNone})
	assert.Equal(t, PhaseLeave, s.Phase)
	assert.True(t, s.Consumed)
	assert.False(t, tr.Active())

	s = tr.Track(mouse.Event{X: 500, Y: 10, Direction: mouse.DirNone})
	assert.Equal(t, PhaseNone, s.Phase)
}

func TestTrackerIgnoresPressOutsideAndOtherButtons(t *testing.T) {
	tr := NewTracker(image.Rect(100, 100, 380, 380), image.Pt(280, 280))
	s := tr.Track(mouse.Event{X: 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, PhaseNone, s.Phase)
	s = tr.Track(mouse.Event{X: 150, Y: 150, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	assert.Equal(t, PhaseNone, s.Phase)
	assert.False(t, tr.Active())
}

func TestTrackerScalesToSurface(t *testing.T) {
	tr := NewTracker(image.Rect(100, 100, 660, 660), image.Pt(280, 280))
	s := tr.Track(mouse.Event{X: 200, Y: 380, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, PhaseDown, s.Phase)
	assert.InDelta(t, 50, s.Point.X, 0.001)
	assert.InDelta(t, 140, s.Point.Y, 0.001)
}

func TestTrackerFollowsFirstTouch(t *testing.T) {
	tr := NewTracker(image.Rect(0, 0, 280, 280), image.Pt(280, 280))

	s := tr.Track(touch.Event{X: 5, Y: 5, Sequence: 1, Type: touch.TypeBegin})
	assert.Equal(t, PhaseDown, s.Phase)

	s = tr.Track(touch.Event{X: 50, Y: 50, Sequence: 2, Type: touch.TypeBegin})
	assert.Equal(t, PhaseNone, s.Phase)
	assert.True(t, s.Consumed)

	s = tr.Track(touch.Event{X: 60, Y: 60, Sequence: 2, Type: touch.TypeMove})
	assert.Equal(t, PhaseNone, s.Phase)

	s = tr.Track(touch.Event{X: 8, Y: 9, Sequence: 1, Type: touch.TypeMove})
	assert.Equal(t, PhaseMove, s.Phase)
	assert.Equal(t, Point{X: 8, Y: 9}, s.Point)

	s = tr.Track(touch.Event{X: 8, Y: 9, Sequence: 1, Type: touch.TypeEnd})
	assert.Equal(t, PhaseUp, s.Phase)
	assert.False(t, tr.Active())
}

func TestTrackerTouchListCancel(t *testing.T) {
	tr := NewTracker(image.Rect(0, 0, 280, 280), image.Pt(280, 280))
	s := tr.Track(TouchList{Phase: PhaseDown, Touches: []Touch{{X: 1, Y: 2}}})
	assert.Equal(t, PhaseDown, s.Phase)
	s = tr.Track(&TouchList{Phase: PhaseCancel})
	assert.Equal(t, PhaseCancel, s.Phase)
	assert.Equal(t, Point{}, s.Point)
	assert.False(t, tr.Active())

	s = tr.Track(TouchList{Phase: PhaseMove, Touches: []Touch{{X: 1, Y: 2}}})
	assert.Equal(t, PhaseNone, s.Phase)
}
