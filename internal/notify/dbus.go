//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	appName      = "Tides"
	desktopEntry = "tides"

	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

// bus sends notifications over the session bus.
type bus struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one it returns a Nop notifier
// and no error, so callers need not special-case headless sessions.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Nop{}, nil //nolint:nilerr // no session bus means no notifications
	}
	return &bus{obj: conn.Object(busName, busPath)}, nil
}

func (b *bus) Notify(n Notification) (uint32, error) {
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := b.obj.Call(busMethod, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints(n), n.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	err := call.Store(&id)
	return id, err
}

func (b *bus) Dismiss(id uint32) error {
	return b.obj.Call(busClose, 0, id).Err
}

func hints(n Notification) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
}
