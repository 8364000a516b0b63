// Package notify raises desktop notifications for glyphpad events when the
// user has enabled them.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/example/glyphpad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventPrediction fires when the classifier answers.
	EventPrediction Event = "prediction"
	// EventSave fires when a drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a predicted character is copied to the clipboard.
	EventCopy Event = "copy"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "glyphpad",
		Events: map[Event]EventPreference{
			EventPrediction: {Template: "Predicted %s"},
			EventSave:       {Template: "Saved %s"},
			EventCopy:       {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences reads text overrides from the environment.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("GLYPHPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	apply("GLYPHPAD_NOTIFY_PREDICTION_TEXT", EventPrediction)
	apply("GLYPHPAD_NOTIFY_SAVE_TEXT", EventSave)
	apply("GLYPHPAD_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

// SendFunc delivers one notification.
type SendFunc func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    SendFunc
	logger  log.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithLogger sets the logger used for delivery failures.
func WithLogger(l log.Logger) Option { return func(n *Notifier) { n.logger = l } }

// WithSender replaces the platform notification backend.
func WithSender(s SendFunc) Option { return func(n *Notifier) { n.send = s } }

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences, opts ...Option) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	n := &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
	for _, o := range opts {
		o(n)
	}
	if n.logger == nil {
		n.logger = log.NewNopLogger()
	}
	n.logger = log.With(n.logger, "component", "notify")
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Prediction announces a predicted character, showing img as the icon when
// given.
func (n *Notifier) Prediction(char string, index int, img image.Image) {
	if !n.enabledFor(EventPrediction) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			level.Warn(n.logger).Log("msg", "notification preview", "err", err)
		} else {
			defer cleanup(n.logger)
			opts.IconPath = path
		}
	}
	n.dispatch(EventPrediction, fmt.Sprintf("%q (class %d)", char, index), opts)
}

// Save sends a save notification including the written filename.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "prediction"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		level.Warn(n.logger).Log("msg", "notification failed", "event", event, "err", err)
	}
}

func createPreview(img image.Image) (string, func(log.Logger), error) {
	f, err := os.CreateTemp("", "glyphpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func(logger log.Logger) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			level.Warn(logger).Log("msg", "remove preview", "err", err)
		}
	}
	return path, cleanup, nil
}
