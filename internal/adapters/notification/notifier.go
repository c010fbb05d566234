// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    *config.NotificationConfig
	notify func(title, message, icon string) error
	beep   func(freq float64, duration int) error
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: func(title, message, icon string) error { return beeep.Notify(title, message, icon) },
		beep:   beeep.Beep,
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	if err := n.notify(title, message, ""); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if n.cfg.Sound {
		// A missing audio device is not worth surfacing.
		_ = n.beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}
	return nil
}

// NotifySessionComplete displays a notification when a countdown reaches zero.
func (n *Notifier) NotifySessionComplete(minutes int) error {
	title := "🎯 Focus Session Complete!"
	message := fmt.Sprintf("Great job! You stayed focused for %d min.", minutes)
	return n.Notify(title, message)
}

// NotifyDistraction displays a notification when losing focus paused the timer.
func (n *Notifier) NotifyDistraction(count int) error {
	title := "Session Paused"
	message := fmt.Sprintf("Focus session paused due to tab switch (%d this session).", count)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// Nop is a notifier that discards every event.
type Nop struct{}

var _ ports.Notifier = Nop{}

// NotifySessionComplete does nothing.
func (Nop) NotifySessionComplete(int) error { return nil }

// NotifyDistraction does nothing.
func (Nop) NotifyDistraction(int) error { return nil }
