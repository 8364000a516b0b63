// Package platform delivers desktop notifications through the host's native
// notification service.
package platform

import "time"

// DefaultAppName identifies glyphpad to the notification service.
const DefaultAppName = "glyphpad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName defaults to DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image shown with the
	// notification where the platform supports it.
	IconPath string
	// Expire is how long the notification stays up; zero leaves it to the
	// server.
	Expire time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

// expireMillis follows the freedesktop convention where -1 means the
// server default.
func (o Options) expireMillis() int32 {
	if o.Expire <= 0 {
		return -1
	}
	return int32(o.Expire / time.Millisecond)
}
