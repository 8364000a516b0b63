package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/glyphpad/internal/pointer"
)

var black = color.RGBA{0, 0, 0, 255}

func newSurface(t *testing.T) *Surface {
	t.Helper()
	s := New()
	s.Initialize()
	return s
}

func lit(c color.RGBA) bool { return c.R >= 250 && c.G >= 250 && c.B >= 250 }
func dark(c color.RGBA) bool { return c.R <= 5 && c.G <= 5 && c.B <= 5 }

func allPixels(img *image.RGBA, want color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != want {
				return false
			}
		}
	}
	return true
}

func TestInitializeFillsBackground(t *testing.T) {
	s := New()
	assert.False(t, s.Initialized())
	s.Initialize()
	require.True(t, s.Initialized())
	assert.Equal(t, image.Rect(0, 0, DefaultSize, DefaultSize), s.Image().Bounds())
	assert.True(t, allPixels(s.Image(), black))
	assert.False(t, s.HasDrawing())

	s.Initialize()
	assert.True(t, allPixels(s.Image(), black))
}

func TestBeginStrokeDoesNotDraw(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 100, Y: 100})
	assert.True(t, s.Stroking())
	assert.False(t, s.HasDrawing())
	assert.True(t, allPixels(s.Image(), black))
}

func TestExtendStrokeDrawsRoundSegment(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 50, Y: 140})
	require.True(t, s.ExtendStroke(pointer.Point{X: 200, Y: 140}))
	assert.True(t, s.HasDrawing())
	assert.Equal(t, 1, s.Segments())

	img := s.Image()
	assert.True(t, lit(img.RGBAAt(125, 140)), "segment body")
	assert.True(t, lit(img.RGBAAt(125, 150)), "within half the pen width")
	assert.True(t, dark(img.RGBAAt(125, 160)), "outside the pen")
	assert.True(t, lit(img.RGBAAt(40, 140)), "round cap before the start")
	assert.True(t, dark(img.RGBAAt(30, 140)), "past the cap")
	assert.True(t, dark(img.RGBAAt(38, 128)), "cap corner stays round")
}

func TestExtendStrokeMovesAnchor(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 40, Y: 40})
	s.ExtendStroke(pointer.Point{X: 40, Y: 140})
	s.ExtendStroke(pointer.Point{X: 240, Y: 140})

	img := s.Image()
	assert.True(t, lit(img.RGBAAt(40, 90)))
	assert.True(t, lit(img.RGBAAt(140, 140)))
	assert.True(t, dark(img.RGBAAt(140, 40)), "no segment from the first anchor to the last point")
	assert.Equal(t, 2, s.Segments())
}

func TestExtendStrokeWithoutSessionIsNoop(t *testing.T) {
	s := newSurface(t)
	assert.False(t, s.ExtendStroke(pointer.Point{X: 10, Y: 10}))
	assert.False(t, s.HasDrawing())
	assert.True(t, allPixels(s.Image(), black))

	s.BeginStroke(pointer.Point{X: 10, Y: 10})
	s.EndStroke()
	assert.False(t, s.ExtendStroke(pointer.Point{X: 100, Y: 100}))
	assert.False(t, s.HasDrawing())
}

func TestExtendStrokeWithoutAnchorRecordsOnly(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 20, Y: 20})
	s.ExtendStroke(pointer.Point{X: 60, Y: 20})
	s.Clear()
	require.True(t, s.Stroking())

	assert.False(t, s.ExtendStroke(pointer.Point{X: 200, Y: 200}))
	assert.False(t, s.HasDrawing())
	assert.True(t, allPixels(s.Image(), black))

	assert.True(t, s.ExtendStroke(pointer.Point{X: 200, Y: 240}))
	assert.True(t, dark(s.Image().RGBAAt(60, 20)))
	assert.True(t, lit(s.Image().RGBAAt(200, 220)))
}

func TestClearRestoresBlankSurface(t *testing.T) {
	s := newSurface(t)
	for i := 0; i < 5; i++ {
		s.BeginStroke(pointer.Point{X: float32(20 + i*40), Y: 20})
		s.ExtendStroke(pointer.Point{X: float32(20 + i*40), Y: 260})
		s.EndStroke()
	}
	require.True(t, s.HasDrawing())

	s.Clear()
	assert.False(t, s.HasDrawing())
	assert.Equal(t, 0, s.Segments())
	assert.True(t, allPixels(s.Image(), black))
}

func TestHasDrawingStaysTrueUntilClear(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 10, Y: 10})
	s.ExtendStroke(pointer.Point{X: 20, Y: 20})
	s.EndStroke()
	s.BeginStroke(pointer.Point{X: 100, Y: 10})
	s.EndStroke()
	s.ExtendStroke(pointer.Point{X: 30, Y: 30})
	assert.True(t, s.HasDrawing())
}

func TestZeroLengthSegmentDrawsDot(t *testing.T) {
	s := newSurface(t)
	s.BeginStroke(pointer.Point{X: 140, Y: 140})
	require.True(t, s.ExtendStroke(pointer.Point{X: 140, Y: 140}))
	assert.True(t, lit(s.Image().RGBAAt(140, 140)))
	assert.True(t, lit(s.Image().RGBAAt(140, 150)))
	assert.True(t, dark(s.Image().RGBAAt(140, 160)))
}

func TestSquareCaps(t *testing.T) {
	st := DefaultStyle()
	st.Cap = ShapeSquare
	s := New(WithStyle(st))
	s.Initialize()
	s.BeginStroke(pointer.Point{X: 50, Y: 140})
	s.ExtendStroke(pointer.Point{X: 200, Y: 140})
	assert.True(t, lit(s.Image().RGBAAt(38, 128)), "square cap fills the corner")
}

func TestUninitializedSurface(t *testing.T) {
	s := New(WithSize(64))
	s.BeginStroke(pointer.Point{X: 1, Y: 1})
	assert.False(t, s.Stroking())
	assert.False(t, s.ExtendStroke(pointer.Point{X: 5, Y: 5}))
	s.Clear()
	_, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, image.Pt(64, 64), s.Size())
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newSurface(t)
	snap, err := s.Snapshot()
	require.NoError(t, err)
	s.BeginStroke(pointer.Point{X: 10, Y: 10})
	s.ExtendStroke(pointer.Point{X: 100, Y: 10})
	assert.True(t, dark(snap.RGBAAt(50, 10)))
	assert.True(t, lit(s.Image().RGBAAt(50, 10)))
}

func TestApplyFollowsPhases(t *testing.T) {
	s := newSurface(t)
	s.Apply(pointer.Sample{Phase: pointer.PhaseMove, Point: pointer.Point{X: 10, Y: 10}})
	assert.False(t, s.HasDrawing())

	s.Apply(pointer.Sample{Phase: pointer.PhaseDown, Point: pointer.Point{X: 10, Y: 10}})
	s.Apply(pointer.Sample{Phase: pointer.PhaseMove, Point: pointer.Point{X: 80, Y: 10}})
	assert.True(t, s.HasDrawing())

	s.Apply(pointer.Sample{Phase: pointer.PhaseLeave})
	assert.False(t, s.Stroking())
	s.Apply(pointer.Sample{Phase: pointer.PhaseMove, Point: pointer.Point{X: 200, Y: 200}})
	assert.Equal(t, 1, s.Segments())
}
