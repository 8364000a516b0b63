package window

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/example/glyphpad/internal/session"
	"github.com/example/glyphpad/internal/theme"
)

// frameState is everything a frame is drawn from.
type frameState struct {
	width, height int
	layout        Layout
	theme         *theme.Theme
	state         session.State
	canvas        *image.RGBA
	buttons       []*TextButton
	hover         int
	pressed       int
}

// drawFrame renders one full frame into dst.
func drawFrame(dst *image.RGBA, st frameState) {
	if st.theme == nil {
		st.theme = theme.Default()
	}
	th := st.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	draw.Draw(dst, st.layout.Toolbar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i, b := range st.buttons {
		state := StateDefault
		switch i {
		case st.pressed:
			state = StatePressed
		case st.hover:
			state = StateHover
		}
		b.Draw(dst, state, th)
	}

	drawInput(dst, st)
	drawSide(dst, st)

	draw.Draw(dst, st.layout.Status, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	msg, col := statusLine(st.state, th)
	drawText(dst, basicfont.Face7x13, col, st.layout.Status.Min.X+margin, st.layout.Status.Min.Y+16, msg)
}

func drawInput(dst *image.RGBA, st frameState) {
	box := st.layout.Canvas
	th := st.theme
	switch st.state.Mode {
	case session.ModeDraw:
		if st.canvas != nil {
			xdraw.ApproxBiLinear.Scale(dst, box, st.canvas, st.canvas.Bounds(), draw.Src, nil)
		}
		drawRect(dst, box.Inset(-1), th.Border, 1)
	default:
		draw.Draw(dst, box, &image.Uniform{th.UploadBackground}, image.Point{}, draw.Src)
		drawRect(dst, box, th.Muted, 1)
		if pv := st.state.Preview; pv != nil {
			xdraw.CatmullRom.Scale(dst, fit(pv.Image.Bounds(), box.Inset(margin)), pv.Image, pv.Image.Bounds(), draw.Over, nil)
			return
		}
		hint := "Ctrl+V to paste an image"
		if st.state.File != nil {
			hint = "No preview for " + st.state.File.Name
		}
		drawText(dst, basicfont.Face7x13, th.Muted, box.Min.X+margin, box.Min.Y+box.Dy()/2, hint)
	}
}

func drawSide(dst *image.RGBA, st frameState) {
	l := st.layout
	th := st.theme
	drawRect(dst, l.Preview.Inset(-1), th.Muted, 1)
	if pv := st.state.Preview; pv != nil {
		xdraw.NearestNeighbor.Scale(dst, fit(pv.Image.Bounds(), l.Preview), pv.Image, pv.Image.Bounds(), draw.Over, nil)
	}

	x := l.Result.Min.X + margin
	y := l.Result.Min.Y + 14
	if f := st.state.File; f != nil {
		drawText(dst, basicfont.Face7x13, th.Muted, x, y, truncate(f.Name, 22))
		y += 16
	}
	if r := st.state.Result; r != nil {
		face := resultFace()
		asc := face.Metrics().Ascent.Ceil()
		drawText(dst, face, th.Foreground, x, y+asc, r.Char)
		drawText(dst, basicfont.Face7x13, th.Muted, x, y+asc+20, fmt.Sprintf("class index %d", r.Index))
	}
}

func statusLine(st session.State, th *theme.Theme) (string, color.Color) {
	switch {
	case st.Request == session.InFlight:
		return "Predicting...", th.Foreground
	case st.Message != "":
		return st.Message, th.Error
	case st.Result != nil:
		return fmt.Sprintf("Predicted %q (class %d)", st.Result.Char, st.Result.Index), th.Foreground
	case st.Mode == session.ModeDraw:
		return "Draw a character, then press Enter", th.Muted
	default:
		return "Paste or open an image, then press Enter", th.Muted
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
