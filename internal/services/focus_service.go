package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
)

// FocusService serializes timer events, archives finished sessions and
// fans out notifications. It implements ports.MCPStateProvider.
type FocusService struct {
	mu       sync.Mutex
	timer    *domain.FocusTimer
	storage  ports.Storage
	notifier ports.Notifier
	logger   zerolog.Logger
	changes  chan struct{}
}

var _ ports.MCPStateProvider = (*FocusService)(nil)

// FocusOption configures a FocusService.
type FocusOption func(*focusOptions)

type focusOptions struct {
	storage   ports.Storage
	notifier  ports.Notifier
	logger    zerolog.Logger
	timerOpts []domain.TimerOption
}

// WithStorage archives every recorded session to storage.
func WithStorage(storage ports.Storage) FocusOption {
	return func(o *focusOptions) { o.storage = storage }
}

// WithNotifier sends completion and distraction alerts through notifier.
func WithNotifier(notifier ports.Notifier) FocusOption {
	return func(o *focusOptions) { o.notifier = notifier }
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) FocusOption {
	return func(o *focusOptions) { o.logger = logger }
}

// WithTimerOptions forwards options to the underlying domain timer.
func WithTimerOptions(opts ...domain.TimerOption) FocusOption {
	return func(o *focusOptions) { o.timerOpts = append(o.timerOpts, opts...) }
}

// NewFocusService creates an idle focus service with the given cycle length.
func NewFocusService(duration time.Duration, opts ...FocusOption) *FocusService {
	o := focusOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &FocusService{
		timer:    domain.NewFocusTimer(duration, o.timerOpts...),
		storage:  o.storage,
		notifier: o.notifier,
		logger:   o.logger.With().Str("component", "focus").Logger(),
		changes:  make(chan struct{}, 1),
	}
}

// Changes delivers a signal after every state change. Signals coalesce:
// a receiver that falls behind sees one pending signal, not one per event.
func (s *FocusService) Changes() <-chan struct{} {
	return s.changes
}

func (s *FocusService) signal() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Start implements ports.FocusController.
func (s *FocusService) Start() domain.TimerSnapshot {
	s.mu.Lock()
	s.timer.Start()
	snap := s.timer.Snapshot()
	s.mu.Unlock()

	s.logger.Debug().Dur("remaining", snap.Remaining).Msg("timer started")
	s.signal()
	return snap
}

// Pause implements ports.FocusController.
func (s *FocusService) Pause() domain.TimerSnapshot {
	s.mu.Lock()
	s.timer.Pause()
	snap := s.timer.Snapshot()
	s.mu.Unlock()

	s.logger.Debug().Dur("remaining", snap.Remaining).Msg("timer paused")
	s.signal()
	return snap
}

// Reset implements ports.FocusController. The returned session is nil when
// the elapsed time rounded to zero minutes. A non-nil error means the
// session was recorded but could not be archived.
func (s *FocusService) Reset(ctx context.Context) (*domain.FocusSession, error) {
	s.mu.Lock()
	record := s.timer.Reset()
	s.mu.Unlock()

	s.logger.Debug().Bool("recorded", record != nil).Msg("timer reset")
	s.signal()
	return record, s.archive(ctx, record)
}

// Tick implements ports.FocusController. It advances the countdown by one
// second and handles natural completion.
func (s *FocusService) Tick(ctx context.Context) (*domain.FocusSession, error) {
	s.mu.Lock()
	if !s.timer.IsRunning() {
		s.mu.Unlock()
		return nil, nil
	}
	before := s.timer.CompletedCount()
	record := s.timer.Tick()
	completed := s.timer.CompletedCount() > before
	s.mu.Unlock()

	if !completed {
		s.signal()
		return nil, nil
	}

	minutes := 0
	if record != nil {
		minutes = record.DurationMinutes
	}
	s.logger.Info().Int("minutes", minutes).Bool("recorded", record != nil).Msg("focus session completed")
	if s.notifier != nil {
		if err := s.notifier.NotifySessionComplete(minutes); err != nil {
			s.logger.Warn().Err(err).Msg("completion notification failed")
		}
	}

	s.signal()
	return record, s.archive(ctx, record)
}

// VisibilityLost implements ports.FocusController. It reports whether a
// running timer was paused and a distraction counted.
func (s *FocusService) VisibilityLost() bool {
	s.mu.Lock()
	counted := s.timer.OnVisibilityLost()
	count := s.timer.Distractions()
	s.mu.Unlock()

	if !counted {
		return false
	}

	s.logger.Info().Int("distractions", count).Msg("focus lost, timer paused")
	if s.notifier != nil {
		if err := s.notifier.NotifyDistraction(count); err != nil {
			s.logger.Warn().Err(err).Msg("distraction notification failed")
		}
	}
	s.signal()
	return true
}

// SetDuration implements ports.FocusController.
func (s *FocusService) SetDuration(minutes int) error {
	s.mu.Lock()
	err := s.timer.SetConfiguredDuration(minutes)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.logger.Debug().Int("minutes", minutes).Msg("duration changed")
	s.signal()
	return nil
}

// Snapshot implements ports.FocusController.
func (s *FocusService) Snapshot() domain.TimerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Snapshot()
}

// History implements ports.FocusController. Sessions are in chronological
// order and cover only this process.
func (s *FocusService) History() []*domain.FocusSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.History()
}

// IsRunning reports whether the countdown is active.
func (s *FocusService) IsRunning() bool {
	return s.Snapshot().Running
}

// ArchivedSessions implements ports.MCPStateProvider. Without a configured
// archive it falls back to the in-process history. A non-positive limit
// returns everything.
func (s *FocusService) ArchivedSessions(ctx context.Context, limit int) ([]*domain.FocusSession, error) {
	var sessions []*domain.FocusSession
	if s.storage == nil {
		sessions = s.History()
	} else {
		all, err := s.storage.Sessions().FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		sessions = all
	}

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[len(sessions)-limit:]
	}
	return sessions, nil
}

// Stats implements ports.MCPStateProvider. A zero since covers every session.
func (s *FocusService) Stats(ctx context.Context, since time.Time) (domain.FocusStats, error) {
	if s.storage == nil {
		var sessions []*domain.FocusSession
		for _, session := range s.History() {
			if !session.CompletedAt.Before(since) {
				sessions = append(sessions, session)
			}
		}
		return domain.ComputeStats(sessions), nil
	}

	var (
		sessions []*domain.FocusSession
		err      error
	)
	if since.IsZero() {
		sessions, err = s.storage.Sessions().FindAll(ctx)
	} else {
		sessions, err = s.storage.Sessions().FindSince(ctx, since)
	}
	if err != nil {
		return domain.FocusStats{}, fmt.Errorf("failed to load sessions: %w", err)
	}
	return domain.ComputeStats(sessions), nil
}

// archive stores record when an archive is configured. Failures never roll
// back the timer.
func (s *FocusService) archive(ctx context.Context, record *domain.FocusSession) error {
	if record == nil || s.storage == nil {
		return nil
	}
	if err := s.storage.Sessions().Append(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("session_id", record.ID).Msg("failed to archive focus session")
		return fmt.Errorf("failed to archive session: %w", err)
	}
	s.logger.Debug().Str("session_id", record.ID).Int("minutes", record.DurationMinutes).Msg("focus session archived")
	return nil
}
