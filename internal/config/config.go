package config

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/example/glyphpad/internal/canvas"
	"github.com/example/glyphpad/internal/predict"
)

// Defaults for the root section.
const (
	DefaultTimeout = 30 * time.Second
	DefaultMode    = "upload"
)

// Notify holds notification settings.
type Notify struct {
	Prediction bool
	Save       bool
	Copy       bool
}

// Canvas holds the drawing surface settings.
type Canvas struct {
	Size        int
	StrokeWidth float32
	Background  color.RGBA
	Stroke      color.RGBA
}

// Style returns the canvas pen with round caps and joins.
func (c Canvas) Style() canvas.Style {
	st := canvas.DefaultStyle()
	st.Background = c.Background
	st.Stroke = c.Stroke
	if c.StrokeWidth > 0 {
		st.Width = c.StrokeWidth
	}
	return st
}

// Config holds the application configuration.
type Config struct {
	Endpoint string
	Field    string
	Timeout  time.Duration
	LogLevel string
	Mode     string
	Theme    string // window theme name or path, empty for the default
	Canvas   Canvas
	Notify   Notify
}

// New creates a new Config with defaults.
func New() *Config {
	st := canvas.DefaultStyle()
	return &Config{
		Endpoint: predict.DefaultEndpoint,
		Field:    predict.DefaultField,
		Timeout:  DefaultTimeout,
		Mode:     DefaultMode,
		Canvas: Canvas{
			Size:        canvas.DefaultSize,
			StrokeWidth: st.Width,
			Background:  st.Background,
			Stroke:      st.Stroke,
		},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "endpoint = %s\n", c.Endpoint)
	fmt.Fprintf(&sb, "field = %s\n", c.Field)
	fmt.Fprintf(&sb, "timeout = %s\n", c.Timeout)
	if c.LogLevel != "" {
		fmt.Fprintf(&sb, "log_level = %s\n", c.LogLevel)
	}
	fmt.Fprintf(&sb, "mode = %s\n", c.Mode)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "size = %d\n", c.Canvas.Size)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Canvas.StrokeWidth)
	fmt.Fprintf(&sb, "background = %s\n", toHex(c.Canvas.Background))
	fmt.Fprintf(&sb, "stroke = %s\n", toHex(c.Canvas.Stroke))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "prediction = %v\n", c.Notify.Prediction)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
