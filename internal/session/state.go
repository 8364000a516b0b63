package session

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/example/glyphpad/internal/payload"
	"github.com/example/glyphpad/internal/predict"
)

// Mode selects where the submitted image comes from.
type Mode int

const (
	ModeUpload Mode = iota
	ModeDraw
)

func (m Mode) String() string {
	switch m {
	case ModeUpload:
		return "upload"
	case ModeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// ParseMode accepts "upload" or "draw", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upload", "":
		return ModeUpload, nil
	case "draw":
		return ModeDraw, nil
	}
	return ModeUpload, errors.Errorf("unknown mode %q (want upload or draw)", s)
}

// RequestState tracks whether a submission is outstanding.
type RequestState int

const (
	Idle RequestState = iota
	InFlight
)

func (r RequestState) String() string {
	if r == InFlight {
		return "in-flight"
	}
	return "idle"
}

// File is an uploaded image as picked by the user.
type File struct {
	Name string
	Data []byte
}

// State is what the presentation layer renders. It is a copy; mutating it
// has no effect on the controller.
type State struct {
	Mode       Mode
	File       *File
	Preview    *payload.Preview
	HasDrawing bool
	Request    RequestState
	Result     *predict.Result
	Err        error
	// Message is the user-facing text for Err.
	Message string
}

// CanSubmit reports whether the active mode has valid input and nothing is
// in flight.
func (s State) CanSubmit() bool {
	if s.Request != Idle {
		return false
	}
	switch s.Mode {
	case ModeUpload:
		return s.File != nil
	case ModeDraw:
		return s.HasDrawing
	}
	return false
}
