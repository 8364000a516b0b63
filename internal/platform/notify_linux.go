//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall  = notifyDest + ".Notify"
	urgencyHint = "urgency"
	urgencyLow  = byte(0)
)

// Notify sends a desktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return errors.Wrap(err, "session bus")
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{urgencyHint: dbus.MakeVariant(urgencyLow)}
	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyCall, 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, opts.expireMillis())
	return errors.Wrap(call.Err, "notify")
}
