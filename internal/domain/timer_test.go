package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// fixedTimer returns a timer with a deterministic clock and id sequence.
func fixedTimer(d time.Duration) *FocusTimer {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	ids := 0
	return NewFocusTimer(d,
		WithClock(func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Minute)
		}),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		}),
	)
}

func tickN(t *FocusTimer, n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

func TestNewFocusTimer(t *testing.T) {
	for _, d := range []time.Duration{5 * time.Second, 2 * time.Minute, 45 * time.Minute, 120 * time.Minute} {
		t.Run(d.String(), func(t *testing.T) {
			timer := NewFocusTimer(d)
			if timer.Remaining() != d {
				t.Errorf("Remaining() = %v, want %v", timer.Remaining(), d)
			}
			if timer.Configured() != d {
				t.Errorf("Configured() = %v, want %v", timer.Configured(), d)
			}
			if timer.IsRunning() {
				t.Error("new timer should not be running")
			}
			if timer.State() != TimerIdle {
				t.Errorf("State() = %v, want %v", timer.State(), TimerIdle)
			}
		})
	}
}

func TestNewFocusTimer_DefaultDuration(t *testing.T) {
	timer := NewFocusTimer(0)
	if timer.Configured() != DefaultFocusDuration {
		t.Errorf("Configured() = %v, want %v", timer.Configured(), DefaultFocusDuration)
	}
	if DefaultFocusDuration != 45*time.Minute {
		t.Errorf("DefaultFocusDuration = %v, want 45m", DefaultFocusDuration)
	}
}

func TestFocusTimer_StartAndTick(t *testing.T) {
	timer := fixedTimer(time.Minute)

	timer.Tick()
	if timer.Remaining() != time.Minute {
		t.Errorf("Tick() while idle changed remaining to %v", timer.Remaining())
	}

	timer.Start()
	if !timer.IsRunning() {
		t.Fatal("Start() should set running")
	}

	prev := timer.Remaining()
	for i := 0; i < 30; i++ {
		timer.Tick()
		if timer.Remaining() > prev {
			t.Fatalf("remaining increased from %v to %v", prev, timer.Remaining())
		}
		if timer.Remaining() < 0 {
			t.Fatalf("remaining went negative: %v", timer.Remaining())
		}
		prev = timer.Remaining()
	}
	if timer.Remaining() != 30*time.Second {
		t.Errorf("Remaining() = %v, want 30s", timer.Remaining())
	}
}

func TestFocusTimer_StartIsIdempotent(t *testing.T) {
	timer := fixedTimer(time.Minute)
	timer.Start()
	timer.Start()
	timer.Tick()
	if timer.Remaining() != 59*time.Second {
		t.Errorf("Remaining() = %v, want 59s", timer.Remaining())
	}
}

func TestFocusTimer_NaturalCompletionBelowOneMinute(t *testing.T) {
	timer := fixedTimer(5 * time.Second)
	timer.Start()

	var record *FocusSession
	for i := 0; i < 5; i++ {
		if r := timer.Tick(); r != nil {
			record = r
		}
	}

	if record != nil {
		t.Errorf("5 seconds rounds to 0 minutes, got record %+v", record)
	}
	if len(timer.History()) != 0 {
		t.Errorf("History() len = %d, want 0", len(timer.History()))
	}
	if timer.IsRunning() {
		t.Error("timer should stop after natural completion")
	}
	if timer.Remaining() != 5*time.Second {
		t.Errorf("Remaining() = %v, want full 5s after completion", timer.Remaining())
	}
	if timer.CompletedCount() != 1 {
		t.Errorf("CompletedCount() = %d, want 1", timer.CompletedCount())
	}
}

func TestFocusTimer_NaturalCompletion(t *testing.T) {
	timer := fixedTimer(2 * time.Minute)
	timer.Start()
	tickN(timer, 30)
	timer.OnVisibilityLost()
	timer.Start()

	var record *FocusSession
	for i := 0; i < 90; i++ {
		if r := timer.Tick(); r != nil {
			record = r
		}
	}

	if record == nil {
		t.Fatal("expected a record on natural completion")
	}
	if !record.Completed {
		t.Error("Completed = false, want true")
	}
	if record.DurationMinutes != 2 {
		t.Errorf("DurationMinutes = %d, want 2", record.DurationMinutes)
	}
	if record.DistractionCount != 1 {
		t.Errorf("DistractionCount = %d, want 1", record.DistractionCount)
	}
	if record.ID != "session-1" {
		t.Errorf("ID = %q, want session-1", record.ID)
	}
	if timer.IsRunning() || timer.Distractions() != 0 {
		t.Error("completion should fold back into an idle, clean cycle")
	}

	timer.Tick()
	if len(timer.History()) != 1 {
		t.Errorf("tick after completion appended a record")
	}
}

func TestFocusTimer_ResetRecordsIncompleteSession(t *testing.T) {
	timer := fixedTimer(2 * time.Minute)
	timer.Start()
	tickN(timer, 90)

	record := timer.Reset()
	if record == nil {
		t.Fatal("Reset() should append a record after 90 seconds")
	}
	if record.Completed {
		t.Error("Completed = true, want false")
	}
	if record.DurationMinutes != 2 {
		t.Errorf("DurationMinutes = %d, want 2 (90s rounds up)", record.DurationMinutes)
	}
	if timer.Remaining() != 2*time.Minute {
		t.Errorf("Remaining() = %v, want 2m", timer.Remaining())
	}
	if timer.IsRunning() {
		t.Error("Reset() should stop the timer")
	}
	if timer.CompletedCount() != 0 {
		t.Errorf("CompletedCount() = %d, want 0", timer.CompletedCount())
	}
}

func TestFocusTimer_ResetRounding(t *testing.T) {
	tests := []struct {
		ticks int
		want  int
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{89, 1},
		{150, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%ds", tt.ticks), func(t *testing.T) {
			timer := fixedTimer(10 * time.Minute)
			timer.Start()
			tickN(timer, tt.ticks)
			record := timer.Reset()

			got := 0
			if record != nil {
				got = record.DurationMinutes
			}
			if got != tt.want {
				t.Errorf("DurationMinutes = %d, want %d", got, tt.want)
			}
			if (record == nil) != (tt.want == 0) {
				t.Errorf("record presence mismatch: %+v", record)
			}
		})
	}
}

func TestFocusTimer_ResetWhilePaused(t *testing.T) {
	timer := fixedTimer(10 * time.Minute)
	timer.Start()
	tickN(timer, 120)
	timer.Pause()

	record := timer.Reset()
	if record == nil || record.DurationMinutes != 2 {
		t.Fatalf("Reset() while paused = %+v, want 2 minute record", record)
	}
}

func TestFocusTimer_OnVisibilityLost(t *testing.T) {
	timer := fixedTimer(10 * time.Minute)

	if timer.OnVisibilityLost() {
		t.Error("OnVisibilityLost() while idle should not count")
	}
	if timer.Distractions() != 0 {
		t.Errorf("Distractions() = %d, want 0", timer.Distractions())
	}

	timer.Start()
	tickN(timer, 10)
	if !timer.OnVisibilityLost() {
		t.Error("OnVisibilityLost() while running should count")
	}
	if timer.Distractions() != 1 {
		t.Errorf("Distractions() = %d, want 1", timer.Distractions())
	}
	if timer.IsRunning() {
		t.Error("OnVisibilityLost() should pause the timer")
	}
	if timer.Remaining() != 10*time.Minute-10*time.Second {
		t.Errorf("Remaining() = %v, should be kept", timer.Remaining())
	}

	timer.OnVisibilityLost()
	if timer.Distractions() != 1 {
		t.Errorf("Distractions() = %d after second call while paused, want 1", timer.Distractions())
	}
	if len(timer.History()) != 0 {
		t.Error("OnVisibilityLost() should not write history")
	}
}

func TestFocusTimer_DistractionsResetEachCycle(t *testing.T) {
	timer := fixedTimer(10 * time.Minute)
	timer.Start()
	tickN(timer, 60)
	timer.OnVisibilityLost()
	timer.Start()
	timer.OnVisibilityLost()
	timer.Reset()

	if timer.Distractions() != 0 {
		t.Errorf("Distractions() = %d after reset, want 0", timer.Distractions())
	}
	history := timer.History()
	if len(history) != 1 || history[0].DistractionCount != 2 {
		t.Errorf("history = %+v, want one record with 2 distractions", history)
	}
}

func TestFocusTimer_SetConfiguredDuration(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		wantErr error
	}{
		{"zero", 0, ErrInvalidDuration},
		{"negative", -5, ErrInvalidDuration},
		{"above max", 121, ErrInvalidDuration},
		{"min", 1, nil},
		{"max", 120, nil},
		{"typical", 25, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := fixedTimer(45 * time.Minute)
			err := timer.SetConfiguredDuration(tt.minutes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetConfiguredDuration(%d) error = %v, want %v", tt.minutes, err, tt.wantErr)
			}
			want := 45 * time.Minute
			if tt.wantErr == nil {
				want = time.Duration(tt.minutes) * time.Minute
			}
			if timer.Configured() != want || timer.Remaining() != want {
				t.Errorf("Configured/Remaining = %v/%v, want %v", timer.Configured(), timer.Remaining(), want)
			}
		})
	}
}

func TestFocusTimer_SetConfiguredDurationWhileRunning(t *testing.T) {
	timer := fixedTimer(45 * time.Minute)
	timer.Start()
	tickN(timer, 3)

	err := timer.SetConfiguredDuration(30)
	if !errors.Is(err, ErrTimerRunning) {
		t.Fatalf("SetConfiguredDuration() error = %v, want ErrTimerRunning", err)
	}
	if timer.Configured() != 45*time.Minute {
		t.Errorf("Configured() = %v, want unchanged 45m", timer.Configured())
	}
	if timer.Remaining() != 45*time.Minute-3*time.Second {
		t.Errorf("Remaining() = %v, want unchanged", timer.Remaining())
	}
}

func TestFocusTimer_PauseIsIdempotent(t *testing.T) {
	once := fixedTimer(10 * time.Minute)
	twice := fixedTimer(10 * time.Minute)
	for _, timer := range []*FocusTimer{once, twice} {
		timer.Start()
		tickN(timer, 7)
		timer.OnVisibilityLost()
		timer.Start()
	}

	once.Pause()
	twice.Pause()
	twice.Pause()

	if once.Snapshot() != twice.Snapshot() {
		t.Errorf("snapshots differ: %+v vs %+v", once.Snapshot(), twice.Snapshot())
	}
}

func TestFocusTimer_HistoryOrdering(t *testing.T) {
	timer := fixedTimer(3 * time.Minute)

	// cycle 1: reset after 1 minute
	timer.Start()
	tickN(timer, 60)
	timer.Reset()

	// cycle 2: reset immediately, nothing recorded
	timer.Start()
	timer.Reset()

	// cycle 3: natural completion
	timer.Start()
	tickN(timer, 180)

	// cycle 4: reset after 2 minutes
	timer.Start()
	tickN(timer, 120)
	timer.Reset()

	history := timer.History()
	if len(history) != 3 {
		t.Fatalf("History() len = %d, want 3", len(history))
	}

	want := []struct {
		minutes   int
		completed bool
	}{{1, false}, {3, true}, {2, false}}
	for i, w := range want {
		if history[i].DurationMinutes != w.minutes || history[i].Completed != w.completed {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], w)
		}
		if i > 0 && !history[i].CompletedAt.After(history[i-1].CompletedAt) {
			t.Errorf("history[%d] is not after history[%d]", i, i-1)
		}
	}
}

func TestFocusTimer_HistoryIsCopy(t *testing.T) {
	timer := fixedTimer(time.Minute)
	timer.Start()
	tickN(timer, 60)

	h := timer.History()
	h[0] = nil
	if timer.History()[0] == nil {
		t.Error("History() must return a copy")
	}
}

func TestFocusTimer_Progress(t *testing.T) {
	timer := fixedTimer(100 * time.Second)
	if timer.Progress() != 0 {
		t.Errorf("Progress() at start = %v, want 0", timer.Progress())
	}
	timer.Start()
	tickN(timer, 25)
	if timer.Progress() != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", timer.Progress())
	}
}

func TestGetStateLabel(t *testing.T) {
	if GetStateLabel(TimerRunning) != "Focusing" {
		t.Errorf("GetStateLabel(running) = %q", GetStateLabel(TimerRunning))
	}
	if GetStateLabel(TimerIdle) != "Ready" {
		t.Errorf("GetStateLabel(idle) = %q", GetStateLabel(TimerIdle))
	}
	if GetStateLabel("bogus") != "Unknown" {
		t.Errorf("GetStateLabel(bogus) = %q", GetStateLabel("bogus"))
	}
}
