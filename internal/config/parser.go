package config

import (
	"bufio"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/example/glyphpad/internal/logging"
)

// Parse reads configuration from an io.Reader. Unknown keys and sections are
// ignored; malformed values are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "canvas":
			err = setCanvasField(&cfg.Canvas, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			name := section
			if name == "" {
				name = "root"
			}
			return nil, errors.Wrapf(err, "line %d [%s]", lineNo, name)
		}
	}

	return cfg, errors.Wrap(scanner.Err(), "read config")
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "endpoint":
		cfg.Endpoint = value
	case "field":
		if value == "" {
			return errors.New("field must not be empty")
		}
		cfg.Field = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "invalid duration for key %s", key)
		}
		cfg.Timeout = d
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		cfg.LogLevel = value
	case "mode":
		switch strings.ToLower(value) {
		case "upload", "draw":
			cfg.Mode = strings.ToLower(value)
		default:
			return errors.Errorf("invalid mode %q", value)
		}
	case "theme":
		cfg.Theme = value
	}
	return nil
}

func setCanvasField(c *Canvas, key, value string) error {
	switch key {
	case "size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return errors.Errorf("invalid size %q", value)
		}
		c.Size = n
	case "stroke_width":
		w, err := strconv.ParseFloat(value, 32)
		if err != nil || w <= 0 {
			return errors.Errorf("invalid stroke_width %q", value)
		}
		c.StrokeWidth = float32(w)
	case "background", "stroke":
		col, err := ParseColor(value)
		if err != nil {
			return errors.Wrapf(err, "invalid color for key %s", key)
		}
		if key == "background" {
			c.Background = col
		} else {
			c.Stroke = col
		}
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return errors.Wrapf(err, "invalid boolean for key %s", key)
	}
	switch key {
	case "prediction":
		n.Prediction = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// ParseColor accepts #RRGGBB, #RRGGBBAA or an SVG colour name such as
// "white".
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, errors.Errorf("unknown color %q", s)
	}
	hex := strings.TrimPrefix(s, "#")
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "color %q", s)
	}
	switch len(hex) {
	case 6:
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, errors.Errorf("color %q: invalid hex length", s)
}
