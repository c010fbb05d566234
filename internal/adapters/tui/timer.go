package tui

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/ports"
	"github.com/xvierd/focus-cli/internal/preset"
)

// Timer runs the full-screen focus timer.
type Timer struct {
	controller ports.FocusController
	theme      *config.ThemeConfig
	presets    []preset.Preset
	program    *tea.Program
	mu         sync.Mutex
	wg         sync.WaitGroup
}

// NewTimer creates a new TUI timer adapter for controller.
func NewTimer(controller ports.FocusController, theme *config.ThemeConfig) *Timer {
	return &Timer{
		controller: controller,
		theme:      theme,
	}
}

// SetPresets sets the presets offered by the c key.
func (t *Timer) SetPresets(presets []preset.Preset) {
	t.presets = presets
}

// Run starts the timer interface and blocks until the user quits or ctx
// is cancelled.
func (t *Timer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, t.controller, t.theme)
	model.presets = t.presets

	t.mu.Lock()
	t.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	program := t.program
	t.mu.Unlock()

	// Handle context cancellation
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	cancel()
	t.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop gracefully stops the timer interface.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		t.program.Quit()
	}
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}
