// Package window is the desktop front end: it shows the drawing surface or
// the uploaded image, forwards pointer input in draw mode and runs
// submissions without blocking the event loop.
package window

import (
	"context"
	"image"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/glyphpad/internal/clipboard"
	"github.com/example/glyphpad/internal/notify"
	"github.com/example/glyphpad/internal/pointer"
	"github.com/example/glyphpad/internal/predict"
	"github.com/example/glyphpad/internal/session"
	"github.com/example/glyphpad/internal/theme"
)

// submitted is sent back to the event loop when a submission finishes.
type submitted struct {
	res *predict.Result
	err error
}

// Window runs the glyphpad UI for one session controller.
type Window struct {
	ctrl     *session.Controller
	logger   log.Logger
	notifier *notify.Notifier
	palette  *theme.Theme
	title    string

	// paste reads an image from the clipboard; copy and copyImage write to it.
	paste     func() ([]byte, error)
	copy      func(string) error
	copyImage func(image.Image) error
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option { return func(w *Window) { w.logger = l } }

// WithNotifier sets the notifier used when a prediction arrives.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// WithTheme sets the colour palette of the window chrome.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.palette = t } }

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(w *Window) { w.title = t } }

// New returns a Window over ctrl.
func New(ctrl *session.Controller, opts ...Option) *Window {
	w := &Window{
		ctrl:    ctrl,
		title:   "glyphpad",
		palette: theme.Default(),
		paste:   clipboard.ReadPNG,
		copy:    clipboard.WriteText,

		copyImage: clipboard.WriteImage,
	}
	for _, o := range opts {
		o(w)
	}
	if w.logger == nil {
		w.logger = log.NewNopLogger()
	}
	if w.palette == nil {
		w.palette = theme.Default()
	}
	w.logger = log.With(w.logger, "component", "window")
	return w
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// Main is the shiny entry point.
func (w *Window) Main(s screen.Screen) {
	sz := DefaultSize(w.ctrl.CanvasSize())
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: w.title})
	if err != nil {
		level.Error(w.logger).Log("msg", "new window", "err", err)
		return
	}
	defer win.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	width, height := sz.X, sz.Y
	lay := computeLayout(width, height)
	tracker := pointer.NewTracker(lay.Canvas, w.ctrl.CanvasSize())
	hover, pressed := -1, -1

	submit := func() {
		if !w.ctrl.CanSubmit() {
			// Still run it so the validation message is shown.
			_, err := w.ctrl.Submit(ctx)
			level.Debug(w.logger).Log("msg", "submit blocked", "err", err)
			return
		}
		go func() {
			res, err := w.ctrl.Submit(ctx)
			win.Send(submitted{res: res, err: err})
		}()
	}
	setMode := func(m session.Mode) {
		tracker.Reset()
		w.ctrl.SetMode(m)
	}
	buttons := []*TextButton{
		{label: "U: Upload", action: func() { setMode(session.ModeUpload) },
			selected: func() bool { return w.ctrl.State().Mode == session.ModeUpload }},
		{label: "D: Draw", action: func() { setMode(session.ModeDraw) },
			selected: func() bool { return w.ctrl.State().Mode == session.ModeDraw }},
		{label: "C: Clear", action: func() { w.clearDrawing() },
			enabled: func() bool { return w.ctrl.State().Mode == session.ModeDraw }},
		{label: "Ctrl+V: Paste", action: w.pasteImage,
			enabled: func() bool { return w.ctrl.State().Mode == session.ModeUpload }},
		{label: "Enter: Predict", action: submit,
			enabled: func() bool { return w.ctrl.State().Request == session.Idle }},
	}
	layoutButtons(lay.Toolbar, buttons)

	buttonAt := func(p image.Point) int {
		for i, b := range buttons {
			if p.In(b.Rect()) {
				return i
			}
		}
		return -1
	}

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			lay = computeLayout(width, height)
			layoutButtons(lay.Toolbar, buttons)
			tracker.Rect = lay.Canvas
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win, frameState{
				width:   width,
				height:  height,
				layout:  lay,
				theme:   w.palette,
				buttons: buttons,
				hover:   hover,
				pressed: pressed,
			})
		case submitted:
			w.announce(e.res, e.err)
			win.Send(paint.Event{})
		case touch.Event:
			if sample := tracker.Track(e); sample.Phase != pointer.PhaseNone {
				w.ctrl.Pointer(sample)
				win.Send(paint.Event{})
			}
		case mouse.Event:
			if !tracker.Active() {
				p := image.Pt(int(e.X), int(e.Y))
				idx := buttonAt(p)
				switch e.Direction {
				case mouse.DirPress:
					if idx >= 0 {
						pressed = idx
						win.Send(paint.Event{})
						continue
					}
				case mouse.DirRelease:
					if pressed >= 0 {
						if idx == pressed {
							buttons[idx].Activate()
						}
						pressed = -1
						win.Send(paint.Event{})
						continue
					}
				}
				if idx != hover {
					hover = idx
					win.Send(paint.Event{})
				}
			}
			sample := tracker.Track(e)
			if sample.Phase == pointer.PhaseNone {
				continue
			}
			if w.ctrl.Pointer(sample) || sample.Phase != pointer.PhaseMove {
				win.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			switch actionForKey(e) {
			case actUpload:
				setMode(session.ModeUpload)
			case actDraw:
				setMode(session.ModeDraw)
			case actClear:
				if !w.clearDrawing() {
					continue
				}
			case actSubmit:
				submit()
			case actPaste:
				w.pasteImage()
			case actCopy:
				w.copyResult()
			case actCopyDrawing:
				w.copyDrawing()
			case actQuit:
				return
			default:
				continue
			}
			win.Send(paint.Event{})
		case error:
			level.Warn(w.logger).Log("msg", "window event", "err", e)
		}
	}
}

func (w *Window) paint(s screen.Screen, win screen.Window, st frameState) {
	b, err := s.NewBuffer(image.Pt(st.width, st.height))
	if err != nil {
		level.Warn(w.logger).Log("msg", "new buffer", "err", err)
		return
	}
	defer b.Release()

	st.state = w.ctrl.State()
	if st.state.Mode == session.ModeDraw {
		if img, err := w.ctrl.Canvas(); err == nil {
			st.canvas = img
		}
	}
	drawFrame(b.RGBA(), st)
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

// clearDrawing blanks the canvas. Like the Clear button it only acts in draw
// mode, so an upload's result cannot be wiped from the keyboard.
func (w *Window) clearDrawing() bool {
	if w.ctrl.State().Mode != session.ModeDraw {
		return false
	}
	w.ctrl.Clear()
	return true
}

// pasteImage takes the clipboard image as the uploaded file and switches to
// upload mode.
func (w *Window) pasteImage() {
	data, err := w.paste()
	if err != nil {
		level.Info(w.logger).Log("msg", "paste", "err", err)
		return
	}
	w.ctrl.SetMode(session.ModeUpload)
	w.ctrl.SetFile(&session.File{Name: clipboard.PasteName, Data: data})
}

func (w *Window) copyResult() {
	st := w.ctrl.State()
	if st.Result == nil {
		return
	}
	if err := w.copy(st.Result.Char); err != nil {
		level.Info(w.logger).Log("msg", "copy", "err", err)
		return
	}
	w.notifier.Copy(st.Result.Char)
}

// copyDrawing puts the current drawing on the clipboard as an image.
func (w *Window) copyDrawing() {
	st := w.ctrl.State()
	if st.Mode != session.ModeDraw || !st.HasDrawing {
		return
	}
	img, err := w.ctrl.Canvas()
	if err != nil {
		level.Info(w.logger).Log("msg", "copy drawing", "err", err)
		return
	}
	if err := w.copyImage(img); err != nil {
		level.Info(w.logger).Log("msg", "copy drawing", "err", err)
		return
	}
	w.notifier.Copy("drawing")
}

func (w *Window) announce(res *predict.Result, err error) {
	if err != nil || res == nil {
		return
	}
	st := w.ctrl.State()
	var img image.Image
	if st.Preview != nil {
		img = st.Preview.Image
	}
	w.notifier.Prediction(res.Char, res.Index, img)
}

type action int

const (
	actNone action = iota
	actUpload
	actDraw
	actClear
	actSubmit
	actPaste
	actCopy
	actCopyDrawing
	actQuit
)

func actionForKey(e key.Event) action {
	ctrl := e.Modifiers&(key.ModControl|key.ModMeta) != 0
	switch {
	case ctrl && e.Code == key.CodeV:
		return actPaste
	case ctrl && e.Code == key.CodeC && e.Modifiers&key.ModShift != 0:
		return actCopyDrawing
	case ctrl && e.Code == key.CodeC:
		return actCopy
	case ctrl && (e.Code == key.CodeQ || e.Code == key.CodeW):
		return actQuit
	case ctrl:
		return actNone
	case e.Code == key.CodeReturnEnter || e.Code == key.CodeKeypadEnter:
		return actSubmit
	case e.Code == key.CodeU:
		return actUpload
	case e.Code == key.CodeD:
		return actDraw
	case e.Code == key.CodeC || e.Code == key.CodeDeleteBackspace:
		return actClear
	case e.Code == key.CodeEscape:
		return actQuit
	}
	return actNone
}
