package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultFocusDuration is the countdown length of a fresh timer.
	DefaultFocusDuration = 45 * time.Minute

	// MinDurationMinutes and MaxDurationMinutes bound SetConfiguredDuration.
	MinDurationMinutes = 1
	MaxDurationMinutes = 120

	tickStep = time.Second
)

// TimerState is the observable state of a FocusTimer.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
)

// TimerSnapshot is a read-only copy of the timer state for rendering.
type TimerSnapshot struct {
	State          TimerState    `json:"state"`
	Configured     time.Duration `json:"configured"`
	Remaining      time.Duration `json:"remaining"`
	Running        bool          `json:"running"`
	Distractions   int           `json:"distractions"`
	CompletedCount int           `json:"completed_count"`
	Progress       float64       `json:"progress"`
}

// TimerOption customizes a FocusTimer.
type TimerOption func(*FocusTimer)

// WithClock sets the clock used to stamp FocusSession records.
func WithClock(now func() time.Time) TimerOption {
	return func(t *FocusTimer) {
		if now != nil {
			t.now = now
		}
	}
}

// newSessionID is the default FocusSession id generator.
func newSessionID() string {
	return uuid.NewString()
}

// WithIDGenerator sets the generator used for FocusSession ids.
func WithIDGenerator(gen func() string) TimerOption {
	return func(t *FocusTimer) {
		if gen != nil {
			t.newID = gen
		}
	}
}

// FocusTimer drives a single focus countdown and records finished cycles.
//
// It holds no scheduling primitive and no lock: callers deliver Tick once per
// elapsed second while running and must serialize all calls.
type FocusTimer struct {
	configured     time.Duration
	remaining      time.Duration
	running        bool
	distractions   int
	completedCount int
	history        []*FocusSession

	now   func() time.Time
	newID func() string
}

// NewFocusTimer creates an idle timer with the full duration remaining.
// A non-positive duration falls back to DefaultFocusDuration.
func NewFocusTimer(d time.Duration, opts ...TimerOption) *FocusTimer {
	if d <= 0 {
		d = DefaultFocusDuration
	}
	t := &FocusTimer{
		configured: d,
		remaining:  d,
		now:        time.Now,
		newID:      newSessionID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins or resumes the countdown.
func (t *FocusTimer) Start() {
	if t.running || t.remaining <= 0 {
		return
	}
	t.running = true
}

// Pause stops the countdown, keeping remaining time and distractions.
func (t *FocusTimer) Pause() {
	t.running = false
}

// Reset ends the current cycle early. It returns the appended record, or nil
// when the elapsed time rounds to zero minutes.
func (t *FocusTimer) Reset() *FocusSession {
	return t.finish(false)
}

// Tick advances the countdown by one second. When the countdown reaches zero
// the cycle completes and the appended record (if any) is returned.
func (t *FocusTimer) Tick() *FocusSession {
	if !t.running {
		return nil
	}
	t.remaining -= tickStep
	if t.remaining > 0 {
		return nil
	}
	t.remaining = 0
	t.completedCount++
	return t.finish(true)
}

// OnVisibilityLost pauses a running timer and counts a distraction.
// It reports whether a distraction was counted.
func (t *FocusTimer) OnVisibilityLost() bool {
	if !t.running {
		return false
	}
	t.running = false
	t.distractions++
	return true
}

// SetConfiguredDuration changes the countdown length. It is rejected while
// running or outside [MinDurationMinutes, MaxDurationMinutes]; a rejected
// call leaves the timer untouched.
func (t *FocusTimer) SetConfiguredDuration(minutes int) error {
	if t.running {
		return ErrTimerRunning
	}
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return fmt.Errorf("%w: %d minutes (must be %d-%d)", ErrInvalidDuration, minutes, MinDurationMinutes, MaxDurationMinutes)
	}
	d := time.Duration(minutes) * time.Minute
	t.configured = d
	t.remaining = d
	return nil
}

func (t *FocusTimer) finish(completed bool) *FocusSession {
	var record *FocusSession
	if minutes := studiedMinutes(t.configured - t.remaining); minutes > 0 {
		record = &FocusSession{
			ID:               t.newID(),
			CompletedAt:      t.now(),
			DurationMinutes:  minutes,
			Completed:        completed,
			DistractionCount: t.distractions,
		}
		t.history = append(t.history, record)
	}

	t.running = false
	t.remaining = t.configured
	t.distractions = 0
	return record
}

// Remaining returns the time left in the current cycle.
func (t *FocusTimer) Remaining() time.Duration { return t.remaining }

// Configured returns the full cycle length.
func (t *FocusTimer) Configured() time.Duration { return t.configured }

// IsRunning reports whether the countdown is active.
func (t *FocusTimer) IsRunning() bool { return t.running }

// Distractions returns the distraction count of the current cycle.
func (t *FocusTimer) Distractions() int { return t.distractions }

// CompletedCount returns how many cycles reached zero naturally.
func (t *FocusTimer) CompletedCount() int { return t.completedCount }

// State returns TimerRunning or TimerIdle.
func (t *FocusTimer) State() TimerState {
	if t.running {
		return TimerRunning
	}
	return TimerIdle
}

// Progress returns the elapsed fraction of the current cycle (0.0 to 1.0).
func (t *FocusTimer) Progress() float64 {
	if t.configured <= 0 {
		return 0
	}
	return float64(t.configured-t.remaining) / float64(t.configured)
}

// History returns the recorded sessions in chronological order.
// The slice is a copy; the records themselves must not be modified.
func (t *FocusTimer) History() []*FocusSession {
	out := make([]*FocusSession, len(t.history))
	copy(out, t.history)
	return out
}

// Snapshot captures the current state.
func (t *FocusTimer) Snapshot() TimerSnapshot {
	return TimerSnapshot{
		State:          t.State(),
		Configured:     t.configured,
		Remaining:      t.remaining,
		Running:        t.running,
		Distractions:   t.distractions,
		CompletedCount: t.completedCount,
		Progress:       t.Progress(),
	}
}

// GetStateLabel returns a human-readable label for the timer state.
func GetStateLabel(s TimerState) string {
	switch s {
	case TimerRunning:
		return "Focusing"
	case TimerIdle:
		return "Ready"
	default:
		return "Unknown"
	}
}
