package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/glyphpad/internal/payload"
	"github.com/example/glyphpad/internal/pointer"
	"github.com/example/glyphpad/internal/session"
)

// sketchCmd draws strokes given on the command line onto a fresh surface,
// then saves and/or submits the result.
type sketchCmd struct {
	*root
	fs          *flag.FlagSet
	output      string
	submit      bool
	toClipboard bool
	strokes     [][]pointer.Point
}

func (c *sketchCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *sketchCmd) Program() string {
	return c.root.subProgram("sketch")
}

func parseSketchCmd(args []string, r *root) (*sketchCmd, error) {
	fs := flag.NewFlagSet("sketch", flag.ExitOnError)
	c := &sketchCmd{root: r, fs: fs}
	fs.StringVar(&c.output, "output", "", "write the drawing to this PNG file")
	fs.BoolVar(&c.submit, "submit", false, "send the drawing for prediction")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the predicted character to the clipboard")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	strokes, err := parseStrokes(strings.Join(fs.Args(), " "))
	if err != nil {
		return nil, err
	}
	c.strokes = strokes
	if c.output == "" && !c.submit {
		return nil, errors.New("nothing to do: pass -output and/or -submit")
	}
	if c.toClipboard && !c.submit {
		return nil, errors.New("-to-clipboard requires -submit")
	}
	return c, nil
}

// parseStrokes reads "x,y x,y / x,y ..." where "/" separates strokes.
func parseStrokes(s string) ([][]pointer.Point, error) {
	var strokes [][]pointer.Point
	for _, part := range strings.Split(s, "/") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		stroke := make([]pointer.Point, 0, len(fields))
		for _, f := range fields {
			xs, ys, ok := strings.Cut(f, ",")
			if !ok {
				return nil, fmt.Errorf("point %q: want x,y", f)
			}
			x, err := strconv.ParseFloat(xs, 32)
			if err != nil {
				return nil, fmt.Errorf("point %q: %w", f, err)
			}
			y, err := strconv.ParseFloat(ys, 32)
			if err != nil {
				return nil, fmt.Errorf("point %q: %w", f, err)
			}
			stroke = append(stroke, pointer.Point{X: float32(x), Y: float32(y)})
		}
		strokes = append(strokes, stroke)
	}
	if len(strokes) == 0 {
		return nil, errors.New("no strokes given")
	}
	return strokes, nil
}

// replay feeds each stroke through a tracker as a left-button drag.
func replay(ctrl *session.Controller, strokes [][]pointer.Point) {
	size := ctrl.CanvasSize()
	tracker := pointer.NewTracker(image.Rectangle{Max: size}, size)
	for _, stroke := range strokes {
		for i, p := range stroke {
			ev := mouse.Event{X: p.X, Y: p.Y, Button: mouse.ButtonLeft}
			if i == 0 {
				ev.Direction = mouse.DirPress
			}
			ctrl.Pointer(tracker.Track(ev))
		}
		last := stroke[len(stroke)-1]
		ctrl.Pointer(tracker.Track(mouse.Event{X: last.X, Y: last.Y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}))
	}
}

func (c *sketchCmd) Run() error {
	ctrl, err := c.root.controller(session.ModeDraw)
	if err != nil {
		return err
	}
	replay(ctrl, c.strokes)

	if c.output != "" {
		img, err := ctrl.Canvas()
		if err != nil {
			return err
		}
		data, err := payload.EncodePNG(img)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		fmt.Fprintf(c.root.stderr, "saved %s\n", c.output)
		c.root.notifySave(c.output)
	}
	if !c.submit {
		return nil
	}
	res, err := ctrl.Submit(context.Background())
	if err != nil {
		return fmt.Errorf("%s: %w", session.Message(err), err)
	}
	var preview image.Image
	if pv := ctrl.State().Preview; pv != nil {
		preview = pv.Image
	}
	return c.root.report(res, preview, c.toClipboard)
}
