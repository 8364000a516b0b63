package payload

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PreviewSize bounds the thumbnail shown next to the input.
const PreviewSize = 128

// Preview is a display-only reference to the image the user supplied or
// submitted. It is never sent.
type Preview struct {
	Name   string
	Format string
	Image  image.Image
}

// NewPreview decodes data and scales it down to a thumbnail. Formats the
// decoders do not know yield an error; the file itself may still be
// submitted and left for the server to reject.
func NewPreview(name string, data []byte) (*Preview, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return &Preview{Name: name, Format: format, Image: thumbnail(img)}, nil
}

// PreviewOf returns a thumbnail of an already submitted payload.
func PreviewOf(p *Payload) (*Preview, error) {
	if p == nil {
		return nil, errors.New("nil payload")
	}
	return NewPreview(p.Filename, p.Data)
}

func thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= PreviewSize && b.Dy() <= PreviewSize {
		return img
	}
	return resize.Thumbnail(PreviewSize, PreviewSize, img, resize.Bilinear)
}
