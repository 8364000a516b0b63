package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/example/glyphpad/internal/canvas"
	"github.com/example/glyphpad/internal/config"
	"github.com/example/glyphpad/internal/logging"
	"github.com/example/glyphpad/internal/notify"
	"github.com/example/glyphpad/internal/predict"
	"github.com/example/glyphpad/internal/session"
	"github.com/example/glyphpad/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	loader   *config.Loader
	config   *config.Config
	logger   log.Logger
	notifier *notify.Notifier
	palette  *theme.Theme
	stdout   io.Writer
	stderr   io.Writer

	endpoint         string
	timeout          time.Duration
	debug            bool
	configPath       string
	themeName        string
	predictionAlerts bool
	saveAlerts       bool
	copyAlerts       bool
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subProgram(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("glyphpad", flag.ExitOnError),
		program: "glyphpad",
		loader:  loader,
		config:  cfg,
		logger:  log.NewNopLogger(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	// Precedence: CLI > Env > Config > Default. The loader has already
	// folded env and file into cfg, so flag defaults come from it.
	r.fs.StringVar(&r.endpoint, "endpoint", cfg.Endpoint, "prediction endpoint URL")
	r.fs.DurationVar(&r.timeout, "timeout", cfg.Timeout, "HTTP timeout for one prediction")
	r.fs.BoolVar(&r.debug, "debug", false, "log at debug level")
	r.fs.StringVar(&r.configPath, "config", "", "read configuration from this file")
	r.fs.StringVar(&r.themeName, "theme", cfg.Theme, "window theme: default, dark, contrast or a .theme file")
	r.fs.BoolVar(&r.predictionAlerts, "notify-prediction", cfg.Notify.Prediction, "show a desktop notification when a prediction arrives")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

// reloadConfig re-reads configuration from -config and re-applies it to
// every flag the user did not set explicitly.
func (r *root) reloadConfig() error {
	if r.configPath == "" {
		return nil
	}
	r.loader.OverridePath = r.configPath
	if _, err := os.Stat(r.configPath); err != nil {
		return fmt.Errorf("config %s: %w", r.configPath, err)
	}
	cfg, err := r.loader.Load()
	if err != nil {
		return err
	}
	r.config = cfg
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["endpoint"] {
		r.endpoint = cfg.Endpoint
	}
	if !set["timeout"] {
		r.timeout = cfg.Timeout
	}
	if !set["theme"] {
		r.themeName = cfg.Theme
	}
	if !set["notify-prediction"] {
		r.predictionAlerts = cfg.Notify.Prediction
	}
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	return nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.reloadConfig(); err != nil {
		return err
	}

	lvl := r.config.LogLevel
	if r.debug {
		lvl = "debug"
	}
	r.logger = log.With(logging.New(r.stderr, lvl), "svc", r.program)
	r.notifier = notify.New(notify.LoadPreferences(), notify.WithLogger(r.logger))
	r.notifier.Enable(notify.EventPrediction, r.predictionAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	palette, err := theme.NewLoader().Load(r.themeName)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to load theme, using default", "theme", r.themeName, "err", err)
		palette = theme.Default()
	}
	r.palette = palette

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "predict":
		cmd, err = parsePredictCmd(subArgs, r)
	case "sketch":
		cmd, err = parseSketchCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	level.Debug(r.logger).Log("msg", "running", "command", cmdName, "endpoint", r.endpoint, "timeout", r.timeout)
	return cmd.Run()
}

// predictor builds the HTTP prediction client from the effective settings.
func (r *root) predictor() (*predict.Client, error) {
	return predict.NewClient(r.endpoint,
		predict.WithHTTPClient(&http.Client{Timeout: r.timeout}),
		predict.WithField(r.config.Field),
		predict.WithLogger(r.logger),
	)
}

// controller returns a session over a fresh surface styled from config.
func (r *root) controller(mode session.Mode) (*session.Controller, error) {
	p, err := r.predictor()
	if err != nil {
		return nil, err
	}
	surface := canvas.New(
		canvas.WithSize(r.config.Canvas.Size),
		canvas.WithStyle(r.config.Canvas.Style()),
	)
	return session.New(p,
		session.WithMode(mode),
		session.WithSurface(surface),
		session.WithLogger(r.logger),
	), nil
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyPrediction(res *predict.Result, img image.Image) {
	if r == nil || r.notifier == nil || res == nil {
		return
	}
	r.notifier.Prediction(res.Char, res.Index, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
