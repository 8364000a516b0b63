package window

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/glyphpad/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button is an interactive toolbar element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// TextButton is a labelled button. Selected marks a toggle that is on, such
// as the active mode.
type TextButton struct {
	label    string
	action   func()
	selected func() bool
	enabled  func() bool
	rect     image.Rectangle
}

var _ Button = (*TextButton)(nil)

func (b *TextButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	if b.enabled != nil && !b.enabled() {
		state = StateDisabled
	}
	bg, fg := th.ButtonBackground, th.ButtonText
	switch {
	case state == StateDisabled:
		bg, fg = th.ButtonBackgroundDisabled, th.ButtonTextDisabled
	case b.selected != nil && b.selected():
		bg, fg = th.ButtonBackgroundSelected, th.ButtonTextSelected
	case state == StatePressed:
		bg = th.ButtonBackgroundPress
	case state == StateHover:
		bg = th.ButtonBackgroundHover
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.Border, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	w := d.MeasureString(b.label).Ceil()
	d.Dot = fixed.P(b.rect.Min.X+(b.rect.Dx()-w)/2, b.rect.Min.Y+(b.rect.Dy()+9)/2)
	d.DrawString(b.label)
}

func (b *TextButton) Rect() image.Rectangle { return b.rect }

func (b *TextButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *TextButton) Activate() {
	if b.enabled != nil && !b.enabled() {
		return
	}
	if b.action != nil {
		b.action()
	}
}

// buttonWidth fits label with padding.
func buttonWidth(label string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(label).Ceil() + 16
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

// drawText writes s with its baseline at (x, y).
func drawText(dst *image.RGBA, face font.Face, col color.Color, x, y int, s string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

var (
	glyphFaceOnce sync.Once
	glyphFace     font.Face = basicfont.Face7x13
)

// resultFace is the large face used for the predicted character. It falls
// back to the bitmap face if the embedded font cannot be loaded.
func resultFace() font.Face {
	glyphFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 72, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		glyphFace = face
	})
	return glyphFace
}
