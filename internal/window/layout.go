package window

import "image"

const (
	toolbarHeight = 32
	statusHeight  = 24
	sideWidth     = 176
	margin        = 8
)

// Layout places the window's regions for a given window size.
type Layout struct {
	Toolbar image.Rectangle
	// Canvas is where the drawing surface (or the uploaded image) is shown.
	// It is square and may be scaled relative to the surface.
	Canvas  image.Rectangle
	Side    image.Rectangle
	Preview image.Rectangle
	Result  image.Rectangle
	Status  image.Rectangle
}

// DefaultSize is the window size that shows a surface of the given logical
// size at 1:1.
func DefaultSize(surface image.Point) image.Point {
	return image.Pt(
		surface.X+2*margin+sideWidth,
		surface.Y+2*margin+toolbarHeight+statusHeight,
	)
}

func computeLayout(width, height int) Layout {
	var l Layout
	l.Toolbar = image.Rect(0, 0, width, toolbarHeight)
	l.Status = image.Rect(0, max(toolbarHeight, height-statusHeight), width, height)

	availW := width - sideWidth - 2*margin
	availH := l.Status.Min.Y - toolbarHeight - 2*margin
	side := max(1, min(availW, availH))
	x0, y0 := margin, toolbarHeight+margin
	l.Canvas = image.Rect(x0, y0, x0+side, y0+side)

	l.Side = image.Rect(l.Canvas.Max.X+margin, toolbarHeight, width, l.Status.Min.Y)
	l.Preview = image.Rect(l.Side.Min.X+margin, l.Side.Min.Y+margin, l.Side.Min.X+margin+previewBox, l.Side.Min.Y+margin+previewBox)
	l.Result = image.Rect(l.Side.Min.X, l.Preview.Max.Y+margin, l.Side.Max.X, l.Side.Max.Y)
	return l
}

const previewBox = 128

// layoutButtons lays buttons out left to right inside the toolbar.
func layoutButtons(toolbar image.Rectangle, buttons []*TextButton) {
	x := toolbar.Min.X + 4
	for _, b := range buttons {
		w := buttonWidth(b.label)
		b.SetRect(image.Rect(x, toolbar.Min.Y+4, x+w, toolbar.Max.Y-4))
		x += w + 4
	}
}

// fit returns the largest rectangle with src's aspect ratio centred in box.
func fit(src image.Rectangle, box image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}
	bw, bh := box.Dx(), box.Dy()
	w, h := bw, sh*bw/sw
	if h > bh {
		w, h = sw*bh/sh, bh
	}
	x := box.Min.X + (bw-w)/2
	y := box.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
