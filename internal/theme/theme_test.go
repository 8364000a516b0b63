package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesDefaults(t *testing.T) {
	in := `Name: Mine
// comment
Background: #111111
ButtonText: #FF000080
Unknown: #000000
Canvas: not-a-color-but-ignored
`
	th, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Mine", th.Name)
	assert.Equal(t, color.RGBA{0x11, 0x11, 0x11, 0xFF}, th.Background)
	assert.Equal(t, color.RGBA{0xFF, 0, 0, 0x80}, th.ButtonText)
	assert.Equal(t, Default().Foreground, th.Foreground)
}

func TestParseBadColor(t *testing.T) {
	_, err := Parse(strings.NewReader("Name: x\nForeground: #12\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoaderSources(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir()}

	th, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), th)

	th, err = l.Load("dark")
	require.NoError(t, err)
	assert.Equal(t, "Dark", th.Name)

	th, err = l.Load("Contrast")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, th.ButtonBackgroundSelected)

	require.NoError(t, os.WriteFile(filepath.Join(l.ConfigDir, "mine.theme"), []byte("Name: Mine\n"), 0o644))
	th, err = l.Load("mine")
	require.NoError(t, err)
	assert.Equal(t, "Mine", th.Name)

	path := filepath.Join(t.TempDir(), "direct.theme")
	require.NoError(t, os.WriteFile(path, []byte("Name: Direct\nMuted: navy\n"), 0o644))
	th, err = l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Direct", th.Name)

	_, err = l.Load("missing")
	assert.Error(t, err)
}
