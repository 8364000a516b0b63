// Package clipboard reads uploaded images from the system clipboard and
// writes predictions and drawings to it.
package clipboard

import (
	"bytes"
	"image"
	"image/png"

	"github.com/pkg/errors"
)

// PasteName is the filename given to images pasted from the clipboard.
const PasteName = "clipboard.png"

// ErrEmpty is returned when the clipboard holds no data of the requested
// kind.
var ErrEmpty = errors.New("clipboard is empty")

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode clipboard image")
	}
	return buf.Bytes(), nil
}
