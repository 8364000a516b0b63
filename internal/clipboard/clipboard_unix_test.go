//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureInitWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil

	assert.ErrorIs(t, WriteText("7"), errNoDisplay)
	_, err := ReadPNG()
	assert.ErrorIs(t, err, errNoDisplay)
	assert.ErrorIs(t, WriteImage(image.NewGray(image.Rect(0, 0, 4, 4))), errNoDisplay)
}

func TestEncodePNG(t *testing.T) {
	data, err := encodePNG(image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	_, err = encodePNG(nil)
	assert.Error(t, err)
}
