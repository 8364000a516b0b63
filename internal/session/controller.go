// Package session holds the input state of one glyphpad form: which mode is
// active, what was uploaded or drawn, and the outcome of the last submission.
// Every transition goes through a Controller method so the invariants between
// those fields hold at all times.
package session

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/example/glyphpad/internal/canvas"
	"github.com/example/glyphpad/internal/payload"
	"github.com/example/glyphpad/internal/pointer"
	"github.com/example/glyphpad/internal/predict"
)

// Controller owns the form state and the drawing surface. It is safe for
// concurrent use; Submit is expected to run off the event loop.
type Controller struct {
	mu sync.Mutex

	surface   *canvas.Surface
	predictor predict.Predictor
	logger    log.Logger

	mode        Mode
	file        *File
	filePreview *payload.Preview
	drawPreview *payload.Preview
	request     RequestState
	inflight    Mode // mode of the submission in flight
	result      *predict.Result
	err         error

	// generation changes whenever the input a submission was built from
	// may have changed.
	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithMode sets the initial mode.
func WithMode(m Mode) Option { return func(c *Controller) { c.mode = m } }

// WithSurface replaces the default 280x280 drawing surface.
func WithSurface(s *canvas.Surface) Option { return func(c *Controller) { c.surface = s } }

// New returns a Controller in upload mode, Idle, with an initialised surface.
func New(p predict.Predictor, opts ...Option) *Controller {
	c := &Controller{predictor: p, mode: ModeUpload}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = log.NewNopLogger()
	}
	c.logger = log.With(c.logger, "component", "session")
	if c.surface == nil {
		c.surface = canvas.New()
	}
	if !c.surface.Initialized() {
		c.surface.Initialize()
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	st := State{
		Mode:       c.mode,
		HasDrawing: c.surface.HasDrawing(),
		Request:    c.request,
		Err:        c.err,
		Message:    Message(c.err),
	}
	if c.file != nil {
		f := *c.file
		st.File = &f
	}
	if c.result != nil {
		r := *c.result
		st.Result = &r
	}
	if c.mode == ModeUpload {
		st.Preview = c.filePreview
	} else {
		st.Preview = c.drawPreview
	}
	return st
}

// CanSubmit reports whether Submit would send a request right now.
func (c *Controller) CanSubmit() bool { return c.State().CanSubmit() }

// Canvas returns a copy of the drawing surface for display.
func (c *Controller) Canvas() (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.Snapshot()
}

// CanvasSize is the logical size of the drawing surface.
func (c *Controller) CanvasSize() image.Point { return c.surface.Size() }

// SetMode switches the input mode. Any open stroke ends, the result and error
// are cleared, and the uploaded file and drawing are kept.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m != ModeUpload && m != ModeDraw {
		return
	}
	c.surface.EndStroke()
	if m != c.mode {
		level.Debug(c.logger).Log("msg", "mode switch", "from", c.mode, "to", m)
	}
	c.mode = m
	c.result = nil
	c.err = nil
	c.generation++
}

// SetFile replaces the uploaded file; nil removes it. The preview is derived
// from the file when its format can be decoded.
func (c *Controller) SetFile(f *File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.err = nil
	c.generation++
	c.file = nil
	c.filePreview = nil
	if f == nil {
		return
	}
	cp := *f
	c.file = &cp
	pv, err := payload.NewPreview(f.Name, f.Data)
	if err != nil {
		level.Debug(c.logger).Log("msg", "no preview for upload", "file", f.Name, "err", err)
		return
	}
	c.filePreview = pv
}

// Clear blanks the drawing surface and drops the drawing preview. In draw
// mode the result and error go too; an upload's outcome is left alone.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface.Clear()
	c.drawPreview = nil
	if c.drawingInUse() {
		c.generation++
	}
	if c.mode == ModeDraw {
		c.result = nil
		c.err = nil
	}
}

// drawingInUse reports whether the drawing is the active input or the input
// of the submission in flight.
func (c *Controller) drawingInUse() bool {
	return c.mode == ModeDraw || (c.request == InFlight && c.inflight == ModeDraw)
}

// Pointer feeds a tracked sample to the surface. Outside draw mode it is
// ignored. It reports whether the event was consumed.
func (c *Controller) Pointer(s pointer.Sample) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeDraw {
		return false
	}
	before := c.surface.Segments()
	c.surface.Apply(s)
	if c.request == InFlight && c.inflight == ModeDraw && c.surface.Segments() != before {
		// The drawing no longer matches what was sent.
		c.generation++
	}
	return s.Consumed
}

// Submit validates the active input, builds the payload and sends it. It
// blocks until the predictor answers. The controller is InFlight for the
// whole call and back to Idle on every return path.
func (c *Controller) Submit(ctx context.Context) (res *predict.Result, err error) {
	p, mode, gen, err := c.begin()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		err = c.finish(mode, gen, p, res, err, time.Since(start))
		if err != nil {
			res = nil
		}
	}()
	return c.predictor.Predict(ctx, p)
}

func (c *Controller) begin() (*payload.Payload, Mode, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.request == InFlight {
		return nil, c.mode, c.generation, ErrBusy
	}
	var (
		p   *payload.Payload
		err error
	)
	switch c.mode {
	case ModeUpload:
		if c.file == nil {
			err = ErrNoFile
			break
		}
		p, err = payload.FromFile(c.file.Name, c.file.Data)
	case ModeDraw:
		if !c.surface.HasDrawing() {
			err = ErrNoDrawing
			break
		}
		p, err = payload.FromSurface(c.surface)
	}
	if err != nil {
		c.result = nil
		c.err = err
		level.Debug(c.logger).Log("msg", "submission blocked", "mode", c.mode, "err", err)
		return nil, c.mode, c.generation, err
	}
	c.request = InFlight
	c.inflight = c.mode
	c.result = nil
	c.err = nil
	level.Info(c.logger).Log("msg", "submitting", "mode", c.mode, "filename", p.Filename, "bytes", p.Size())
	return p, c.mode, c.generation, nil
}

func (c *Controller) finish(mode Mode, gen uint64, p *payload.Payload, res *predict.Result, err error, took time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = Idle
	if gen != c.generation {
		level.Info(c.logger).Log("msg", "discarding stale result", "mode", mode, "err", err, "took", took)
		return ErrStale
	}
	if err == nil && res == nil {
		err = &predict.TransportError{Err: errors.New("no result")}
	}
	if err != nil {
		c.err = err
		level.Warn(c.logger).Log("msg", "submission failed", "mode", mode, "err", err, "took", took)
		return err
	}
	r := *res
	c.result = &r
	if mode == ModeDraw {
		if pv, perr := payload.PreviewOf(p); perr == nil {
			c.drawPreview = pv
		}
	}
	level.Info(c.logger).Log("msg", "prediction", "mode", mode, "index", r.Index, "char", r.Char, "took", took)
	return nil
}
