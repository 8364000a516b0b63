package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/glyphpad/internal/session"
	"github.com/example/glyphpad/internal/window"
)

type windowCmd struct {
	*root
	fs   *flag.FlagSet
	mode string
	file string
}

func (c *windowCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *windowCmd) Program() string {
	return c.root.subProgram("window")
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	c := &windowCmd{root: r, fs: fs}
	fs.StringVar(&c.mode, "mode", r.config.Mode, "start in upload or draw mode")
	fs.StringVar(&c.file, "file", "", "image to preselect for upload")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *windowCmd) Run() error {
	mode, err := session.ParseMode(c.mode)
	if err != nil {
		return err
	}
	ctrl, err := c.root.controller(mode)
	if err != nil {
		return err
	}
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.file, err)
		}
		ctrl.SetFile(&session.File{Name: filepath.Base(c.file), Data: data})
	}
	window.New(ctrl,
		window.WithLogger(c.root.logger),
		window.WithNotifier(c.root.notifier),
		window.WithTheme(c.root.palette),
		window.WithTitle(c.root.program),
	).Run()
	return nil
}
