// Package canvas owns the raster drawing surface and renders freehand strokes
// onto it one line segment at a time.
package canvas

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
	"golang.org/x/image/vector"

	"github.com/example/glyphpad/internal/pointer"
)

// ErrNotInitialized is returned when the pixel buffer is read before
// Initialize has been called.
var ErrNotInitialized = errors.New("drawing surface not initialised")

// Surface is a fixed-size raster buffer with a persistent background. All
// pixel writes go through BeginStroke, ExtendStroke and Clear.
type Surface struct {
	size  int
	style Style

	img *image.RGBA
	z   *vector.Rasterizer

	// stroke session
	active bool
	last   *pointer.Point

	hasDrawing bool
	segments   int
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithSize sets the logical width and height of the surface.
func WithSize(n int) Option { return func(s *Surface) { s.size = n } }

// WithStyle sets the background and pen.
func WithStyle(st Style) Option { return func(s *Surface) { s.style = st } }

// New creates an uninitialised Surface. Call Initialize before drawing.
func New(opts ...Option) *Surface {
	s := &Surface{size: DefaultSize, style: DefaultStyle()}
	for _, o := range opts {
		o(s)
	}
	if s.size <= 0 {
		s.size = DefaultSize
	}
	return s
}

// Initialize fills the surface with the background and resets the stroke
// state. Calling it again yields the same blank surface.
func (s *Surface) Initialize() {
	if s.img == nil {
		s.img = image.NewRGBA(image.Rect(0, 0, s.size, s.size))
		s.z = vector.NewRasterizer(s.size, s.size)
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.style.Background), image.Point{}, draw.Src)
	s.hasDrawing = false
	s.segments = 0
	s.last = nil
}

// Initialized reports whether Initialize has been called.
func (s *Surface) Initialized() bool { return s.img != nil }

// Size returns the logical size of the surface.
func (s *Surface) Size() image.Point { return image.Pt(s.size, s.size) }

// Style returns the pen and background in use.
func (s *Surface) Style() Style { return s.style }

// Image returns the live pixel buffer for display. Callers must not write to
// it; use Snapshot for a copy.
func (s *Surface) Image() *image.RGBA { return s.img }

// HasDrawing reports whether a segment was drawn since the last clear.
func (s *Surface) HasDrawing() bool { return s.hasDrawing }

// Segments returns how many segments were drawn since the last clear.
func (s *Surface) Segments() int { return s.segments }

// Stroking reports whether a stroke session is open.
func (s *Surface) Stroking() bool { return s.active }

// BeginStroke opens a stroke session anchored at p. Nothing is drawn.
func (s *Surface) BeginStroke(p pointer.Point) {
	if s.img == nil {
		return
	}
	s.active = true
	anchor := p
	s.last = &anchor
}

// ExtendStroke draws a segment from the anchor to p and moves the anchor to
// p. Without an open session it does nothing; with a session but no anchor
// it only records p. It reports whether a segment was drawn.
func (s *Surface) ExtendStroke(p pointer.Point) bool {
	if s.img == nil || !s.active {
		return false
	}
	if s.last == nil {
		anchor := p
		s.last = &anchor
		return false
	}
	s.segment(*s.last, p)
	*s.last = p
	s.hasDrawing = true
	s.segments++
	return true
}

// EndStroke closes the stroke session.
func (s *Surface) EndStroke() {
	s.active = false
	s.last = nil
}

// Clear restores the blank background and resets HasDrawing. An open stroke
// session stays open but loses its anchor, so the next ExtendStroke starts
// afresh instead of drawing across the cleared surface.
func (s *Surface) Clear() {
	if s.img == nil {
		return
	}
	s.Initialize()
}

// Apply feeds a tracked pointer sample into the stroke session.
func (s *Surface) Apply(sample pointer.Sample) {
	switch sample.Phase {
	case pointer.PhaseDown:
		s.BeginStroke(sample.Point)
	case pointer.PhaseMove:
		s.ExtendStroke(sample.Point)
	case pointer.PhaseUp, pointer.PhaseLeave, pointer.PhaseCancel:
		s.EndStroke()
	}
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	if s.img == nil {
		return nil, ErrNotInitialized
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out, nil
}

func (s *Surface) segment(a, b pointer.Point) {
	s.z.Reset(s.size, s.size)
	if s.style.Cap == ShapeSquare {
		squareSegment(s.z, a, b, s.style.radius())
	} else {
		capsule(s.z, a, b, s.style.radius())
	}
	s.z.DrawOp = draw.Over
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(s.style.Stroke), image.Point{})
}
