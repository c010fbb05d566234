package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/xvierd/focus-cli/internal/domain"
)

// tickSource is the part of FocusService the Ticker drives.
type tickSource interface {
	Tick(ctx context.Context) (*domain.FocusSession, error)
	Snapshot() domain.TimerSnapshot
	Changes() <-chan struct{}
}

// Ticker delivers one Tick per interval while the timer runs. It holds a
// live time.Ticker only while running, so a paused or idle timer costs
// nothing and a stopped Ticker can never tick.
type Ticker struct {
	source   tickSource
	interval time.Duration
	logger   zerolog.Logger
	onTick   func(domain.TimerSnapshot, *domain.FocusSession)
}

// NewTicker creates a headless scheduler for svc.
func NewTicker(svc *FocusService, logger zerolog.Logger) *Ticker {
	return newTicker(svc, time.Second, logger)
}

func newTicker(source tickSource, interval time.Duration, logger zerolog.Logger) *Ticker {
	return &Ticker{
		source:   source,
		interval: interval,
		logger:   logger.With().Str("component", "ticker").Logger(),
	}
}

// SetOnTick registers fn to be called from Run after every tick with the
// resulting snapshot and the session recorded by that tick, if any.
// It must be set before Run.
func (t *Ticker) SetOnTick(fn func(domain.TimerSnapshot, *domain.FocusSession)) {
	t.onTick = fn
}

// Run schedules ticks until ctx is cancelled. It must be the only reader of
// the service's Changes channel.
func (t *Ticker) Run(ctx context.Context) error {
	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
	)

	rearm := func() {
		running := t.source.Snapshot().Running
		switch {
		case running && ticker == nil:
			ticker = time.NewTicker(t.interval)
			tickC = ticker.C
			t.logger.Debug().Msg("armed")
		case !running && ticker != nil:
			ticker.Stop()
			ticker, tickC = nil, nil
			t.logger.Debug().Msg("disarmed")
		}
	}
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	rearm()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.source.Changes():
			rearm()
		case <-tickC:
			record, err := t.source.Tick(ctx)
			if err != nil {
				t.logger.Warn().Err(err).Msg("tick failed")
			}
			if t.onTick != nil {
				t.onTick(t.source.Snapshot(), record)
			}
			rearm()
		}
	}
}
