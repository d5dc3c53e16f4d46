package browser

import "github.com/rs/xid"

// NotificationKind distinguishes informational toasts from destructive ones.
type NotificationKind string

const (
	NotificationInfo  NotificationKind = "info"
	NotificationError NotificationKind = "error"
)

// Notification is a user-facing toast message.
type Notification struct {
	ID      string
	Kind    NotificationKind
	Title   string
	Message string
}

// Notifier receives user-facing notifications. The terminal UI renders them
// as transient toasts; tests use a recording implementation.
type Notifier interface {
	Notify(n Notification)
}

// NotifyError is a convenience helper for destructive notifications.
func NotifyError(notifier Notifier, title, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify(Notification{
		ID:      xid.New().String(),
		Kind:    NotificationError,
		Title:   title,
		Message: message,
	})
}

// NotifyInfo is a convenience helper for informational notifications.
func NotifyInfo(notifier Notifier, title, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify(Notification{
		ID:      xid.New().String(),
		Kind:    NotificationInfo,
		Title:   title,
		Message: message,
	})
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
