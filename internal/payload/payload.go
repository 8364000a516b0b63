// Package payload builds the binary image submitted to the prediction
// endpoint from whichever input source is active.
package payload

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DrawingFilename names canvas snapshots, which have no user-supplied name.
const DrawingFilename = "drawing.png"

// ErrUnavailable reports that no payload could be produced, e.g. the canvas
// could not be encoded. Nothing is sent when it is returned.
var ErrUnavailable = errors.New("payload unavailable")

// Payload is a single image ready for transmission.
type Payload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (p *Payload) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// Snapshotter provides a copy of a raster surface.
type Snapshotter interface {
	Snapshot() (*image.RGBA, error)
}

// FromFile wraps an uploaded file verbatim under its original name.
func FromFile(name string, data []byte) (*Payload, error) {
	if data == nil {
		return nil, errors.Wrap(ErrUnavailable, "no file data")
	}
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return &Payload{
		Filename:    name,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// FromSurface encodes the current surface pixels as PNG.
func FromSurface(s Snapshotter) (*Payload, error) {
	if s == nil {
		return nil, errors.Wrap(ErrUnavailable, "no drawing surface")
	}
	img, err := s.Snapshot()
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "snapshot: %v", err)
	}
	data, err := EncodePNG(img)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "encode: %v", err)
	}
	return &Payload{
		Filename:    DrawingFilename,
		ContentType: "image/png",
		Data:        data,
	}, nil
}

// EncodePNG losslessly encodes img.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
