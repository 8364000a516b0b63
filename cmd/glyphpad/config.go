package main

import (
	"flag"
	"fmt"

	"github.com/example/glyphpad/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Program() string {
	return c.root.subProgram("config")
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.root.stdout, c.effective().String())
		return nil
	case "save":
		path, err := c.root.loader.Save(c.effective())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.root.stdout, "Configuration saved to %s\n", path)
		c.root.notifySave(path)
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective is the loaded config with command line overrides applied.
func (c *configCmd) effective() *config.Config {
	cfg := *c.root.config
	cfg.Endpoint = c.root.endpoint
	cfg.Timeout = c.root.timeout
	cfg.Theme = c.root.themeName
	cfg.Notify.Prediction = c.root.predictionAlerts
	cfg.Notify.Save = c.root.saveAlerts
	cfg.Notify.Copy = c.root.copyAlerts
	if c.root.debug {
		cfg.LogLevel = "debug"
	}
	return &cfg
}
