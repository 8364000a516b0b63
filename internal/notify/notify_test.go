package notify

import (
	"image"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/glyphpad/internal/platform"
)

type sent struct {
	title, body string
	icon        string
	iconExisted bool
}

func capture(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		*out = append(*out, sent{title: title, body: body, icon: opts.IconPath, iconExisted: opts.IconPath != "" && err == nil})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), WithSender(capture(&got)))
	n.Prediction("7", 7, nil)
	n.Copy("7")
	n.Save("drawing.png")
	assert.Empty(t, got)

	var nilNotifier *Notifier
	nilNotifier.Prediction("7", 7, nil)
	nilNotifier.Enable(EventCopy, true)
}

func TestPredictionWithPreview(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), WithSender(capture(&got)))
	n.Enable(EventPrediction, true)
	n.Prediction("A", 10, image.NewGray(image.Rect(0, 0, 8, 8)))

	require.Len(t, got, 1)
	assert.Equal(t, "glyphpad", got[0].title)
	assert.Equal(t, `Predicted "A" (class 10)`, got[0].body)
	assert.True(t, got[0].iconExisted)
	_, err := os.Stat(got[0].icon)
	assert.True(t, os.IsNotExist(err), "preview should be removed after sending")
}

func TestCustomTemplates(t *testing.T) {
	t.Setenv("GLYPHPAD_NOTIFY_TITLE", "Pad")
	t.Setenv("GLYPHPAD_NOTIFY_COPY_TEXT", "clip: %s")

	var got []sent
	n := New(LoadPreferences(), WithSender(capture(&got)))
	n.Enable(EventCopy, true)
	n.Copy("")

	require.Len(t, got, 1)
	assert.Equal(t, "Pad", got[0].title)
	assert.Equal(t, "clip: prediction", got[0].body)
}

func TestSendFailureIsLoggedNotReturned(t *testing.T) {
	n := New(DefaultPreferences(), WithSender(func(string, string, platform.Options) error {
		return errors.New("no bus")
	}))
	n.Enable(EventSave, true)
	assert.NotPanics(t, func() { n.Save("missing.png") })
}
