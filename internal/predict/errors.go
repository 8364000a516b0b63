package predict

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBusy is returned when a prediction is requested while another one is
// still in flight.
var ErrBusy = errors.New("prediction already in flight")

// ServerError means the endpoint answered but reported a failure, either via
// a non-2xx status or an "error" field in the body.
type ServerError struct {
	Status  int
	Message string
	// Malformed is set when a 2xx body lacked a usable prediction.
	Malformed bool
}

func (e *ServerError) Error() string {
	switch {
	case e.Malformed:
		return fmt.Sprintf("malformed prediction response (status %d)", e.Status)
	case e.Message != "":
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
}

// TransportError means no usable response was obtained: the endpoint was
// unreachable or its answer could not be parsed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error"
	}
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// encodeError marks failures building the request body, which happen before
// anything is sent.
type encodeError struct {
	err error
}

func (e *encodeError) Error() string { return "encode request: " + e.err.Error() }

func (e *encodeError) Unwrap() error { return e.err }
