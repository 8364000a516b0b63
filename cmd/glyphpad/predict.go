package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/example/glyphpad/internal/clipboard"
	"github.com/example/glyphpad/internal/predict"
	"github.com/example/glyphpad/internal/session"
)

type predictCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	fromClipboard bool
	toClipboard   bool
}

func (c *predictCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *predictCmd) Program() string {
	return c.root.subProgram("predict")
}

func parsePredictCmd(args []string, r *root) (*predictCmd, error) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	c := &predictCmd{root: r, fs: fs}
	fs.StringVar(&c.file, "file", "", "image file to classify")
	fs.BoolVar(&c.fromClipboard, "from-clipboard", false, "classify the image on the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the predicted character to the clipboard")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.file != "" && c.fromClipboard {
		return nil, errors.New("cannot use -file with -from-clipboard")
	}
	if c.file == "" && !c.fromClipboard {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *predictCmd) readInput() (*session.File, error) {
	if c.fromClipboard {
		data, err := clipboard.ReadPNG()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return &session.File{Name: clipboard.PasteName, Data: data}, nil
	}
	data, err := os.ReadFile(c.file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.file, err)
	}
	return &session.File{Name: filepath.Base(c.file), Data: data}, nil
}

func (c *predictCmd) Run() error {
	f, err := c.readInput()
	if err != nil {
		return err
	}
	ctrl, err := c.root.controller(session.ModeUpload)
	if err != nil {
		return err
	}
	ctrl.SetFile(f)
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

// report prints res and optionally copies the character to the clipboard.
func (r *root) report(res *predict.Result, preview image.Image, copyChar bool) error {
	fmt.Fprintf(r.stdout, "%s %d\n", res.Char, res.Index)
	r.notifyPrediction(res, preview)
	if !copyChar {
		return nil
	}
	if err := clipboard.WriteText(res.Char); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	r.notifyCopy(res.Char)
	return nil
}
