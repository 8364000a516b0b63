//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import (
	"image"

	"github.com/pkg/errors"
)

var errUnsupported = errors.New("clipboard operations are not supported on this platform")

func ReadPNG() ([]byte, error) { return nil, errUnsupported }

func WriteImage(image.Image) error { return errUnsupported }

func WriteText(string) error { return errUnsupported }
