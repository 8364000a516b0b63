package canvas

import (
	"image/color"
)

const (
	// DefaultSize is the logical width and height of the drawing surface.
	DefaultSize = 280
	// DefaultStrokeWidth matches a pen roughly a tenth of the surface.
	DefaultStrokeWidth = 28
)

// LineShape describes how stroke ends and corners are finished.
type LineShape int

const (
	ShapeRound LineShape = iota
	ShapeSquare
)

// Style holds the background fill and pen used by a Surface.
type Style struct {
	Background color.RGBA
	Stroke     color.RGBA
	Width      float32
	Cap        LineShape
	Join       LineShape
}

// DefaultStyle returns white round strokes on a black background, the
// polarity handwritten character classifiers are trained on.
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{0, 0, 0, 255},
		Stroke:     color.RGBA{255, 255, 255, 255},
		Width:      DefaultStrokeWidth,
		Cap:        ShapeRound,
		Join:       ShapeRound,
	}
}

func (s Style) radius() float32 {
	if s.Width <= 0 {
		return 0.5
	}
	return s.Width / 2
}
