package ports

import (
	"context"

	"github.com/xvierd/focus-cli/internal/domain"
)

// TimerCommand represents a user action during timer operation.
type TimerCommand string

const (
	// CmdStart starts or resumes the countdown.
	CmdStart TimerCommand = "start"

	// CmdPause pauses the countdown.
	CmdPause TimerCommand = "pause"

	// CmdReset ends the current cycle early.
	CmdReset TimerCommand = "reset"

	// CmdQuit exits the application.
	CmdQuit TimerCommand = "quit"
)

// FocusController is the event surface of the focus timer.
// This is a driving port (called by the TUI, the headless runner and MCP).
type FocusController interface {
	// Start begins or resumes the countdown.
	Start() domain.TimerSnapshot

	// Pause stops the countdown without ending the cycle.
	Pause() domain.TimerSnapshot

	// Reset ends the cycle early and returns the recorded session, if any.
	Reset(ctx context.Context) (*domain.FocusSession, error)

	// Tick advances the countdown by one second.
	Tick(ctx context.Context) (*domain.FocusSession, error)

	// VisibilityLost reports that the user left the timer while it ran.
	VisibilityLost() bool

	// SetDuration changes the cycle length in minutes while idle.
	SetDuration(minutes int) error

	// Snapshot returns the current timer state.
	Snapshot() domain.TimerSnapshot

	// History returns the sessions recorded by this process, oldest first.
	History() []*domain.FocusSession
}
