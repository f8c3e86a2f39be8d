// Package notify shows desktop notifications and announces track changes.
package notify

// Urgency is the notification priority. Values are fixed by the
// freedesktop.org notification protocol.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one desktop notification.
type Notification struct {
	Title string
	Body  string
	// Icon is an icon name or an image path.
	Icon string
	// Timeout in milliseconds; -1 lets the server decide, 0 never expires.
	Timeout int32
	// ReplacesID updates an existing notification in place when non-zero.
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns the server id, or 0 when nothing was shown.
	Notify(n Notification) (uint32, error)
	// Dismiss closes the notification with id.
	Dismiss(id uint32) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(Notification) (uint32, error) { return 0, nil }
func (Nop) Dismiss(uint32) error { return nil }
