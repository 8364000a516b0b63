package session

import (
	"github.com/pkg/errors"

	"github.com/example/glyphpad/internal/payload"
	"github.com/example/glyphpad/internal/predict"
)

// ValidationError blocks a submission locally; nothing is sent.
type ValidationError struct {
	Mode   Mode
	Reason string
}

func (e *ValidationError) Error() string { return e.Mode.String() + ": " + e.Reason }

var (
	// ErrNoFile is returned when submitting in upload mode without a file.
	ErrNoFile = &ValidationError{Mode: ModeUpload, Reason: "no file selected"}
	// ErrNoDrawing is returned when submitting in draw mode before any
	// segment was drawn.
	ErrNoDrawing = &ValidationError{Mode: ModeDraw, Reason: "nothing drawn"}
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("submission already in flight")
	// ErrStale is returned by Submit when the input changed while the request
	// was in flight and its outcome was discarded.
	ErrStale = errors.New("input changed during submission; result discarded")
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *predict.ServerError
	switch {
	case errors.Is(err, ErrNoFile):
		return "Please select an image first."
	case errors.Is(err, ErrNoDrawing):
		return "Please draw a character first."
	case errors.Is(err, ErrBusy), errors.Is(err, predict.ErrBusy):
		return "A prediction is already running."
	case errors.Is(err, payload.ErrUnavailable):
		return "Could not read drawing from canvas."
	case errors.As(err, &se):
		if se.Message != "" && !se.Malformed {
			return se.Message
		}
		return "Server error"
	}
	// transport failures and anything unexpected
	return "Could not reach backend."
}
