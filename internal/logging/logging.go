// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// ParseLevel maps a level name to a filter option.
func ParseLevel(s string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}
	return nil, errors.Errorf("unknown log level %q", s)
}

// New returns a logfmt logger writing to w (stderr when nil), filtered at the
// named level. An unknown level falls back to info and is reported.
func New(w io.Writer, lvl string) log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opt, lvlErr := ParseLevel(lvl)
	if lvlErr != nil {
		opt = level.AllowInfo()
	}
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(w)
		logger = log.NewSyncLogger(logger)
		logger = level.NewFilter(logger, opt)
		logger = log.With(logger,
			"ts", log.DefaultTimestampUTC,
			"caller", log.DefaultCaller,
		)
	}
	if lvlErr != nil {
		level.Warn(logger).Log("msg", "falling back to info level", "err", lvlErr)
	}
	return logger
}
