package ports

// Notifier delivers user-facing alerts for timer events.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifySessionComplete is called when a countdown reaches zero.
	NotifySessionComplete(minutes int) error

	// NotifyDistraction is called when focus loss pauses the timer.
	NotifyDistraction(count int) error
}
