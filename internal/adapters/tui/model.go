// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
	"github.com/xvierd/focus-cli/internal/preset"
)

const (
	historyRows      = 5
	historyTimestamp = "Jan 2, 2006 - 3:04 PM"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent once per second while the countdown runs.
type tickMsg time.Time

// Model represents the TUI state.
type Model struct {
	ctx        context.Context
	controller ports.FocusController
	snapshot   domain.TimerSnapshot
	history    []*domain.FocusSession
	theme      config.ThemeConfig

	width  int
	height int

	// ticking is true while a tickMsg is in flight. At most one is pending.
	ticking bool

	editing       bool
	durationInput textinput.Model

	// presets are cycled with the c key.
	presets []preset.Preset

	message    string
	messageErr bool
}

// NewModel creates a new TUI model driving controller.
func NewModel(ctx context.Context, controller ports.FocusController, theme *config.ThemeConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "minutes"
	ti.CharLimit = 3
	ti.Width = 6
	ti.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}

	snapshot := controller.Snapshot()
	return Model{
		ctx:           ctx,
		controller:    controller,
		snapshot:      snapshot,
		history:       controller.History(),
		theme:         resolveTheme(theme),
		width:         getTerminalWidth(),
		ticking:       snapshot.Running,
		durationInput: ti,
	}
}

// Init initializes the TUI. A timer that is already running gets its first tick.
func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tickCmd()
	}
	return nil
}

func (m *Model) refresh() {
	m.snapshot = m.controller.Snapshot()
	m.history = m.controller.History()
}

func (m *Model) setMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// scheduleTick starts the tick chain if the timer runs and none is pending.
func (m *Model) scheduleTick() tea.Cmd {
	if !m.snapshot.Running || m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

// apply runs a timer command against the controller.
func (m *Model) apply(cmd ports.TimerCommand) tea.Cmd {
	switch cmd {
	case ports.CmdStart:
		m.controller.Start()
		m.refresh()
		m.setMessage("", false)
		return m.scheduleTick()
	case ports.CmdPause:
		m.controller.Pause()
		m.refresh()
	case ports.CmdReset:
		record, err := m.controller.Reset(m.ctx)
		m.refresh()
		switch {
		case err != nil:
			m.setMessage(fmt.Sprintf("Session kept for this run, archive failed: %v", err), true)
		case record != nil:
			m.setMessage(fmt.Sprintf("Session recorded: %d min (%s)", record.DurationMinutes, record.StatusLabel()), false)
		default:
			m.setMessage("Timer reset. Under a minute, nothing recorded.", false)
		}
	case ports.CmdQuit:
		return tea.Quit
	}
	return nil
}

// keyCommand maps a key to a timer command.
func (m Model) keyCommand(key string) (ports.TimerCommand, bool) {
	switch key {
	case "ctrl+c", "q":
		return ports.CmdQuit, true
	case " ", "p":
		if m.snapshot.Running {
			return ports.CmdPause, true
		}
		return ports.CmdStart, true
	case "s":
		return ports.CmdStart, true
	case "r":
		return ports.CmdReset, true
	}
	return "", false
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// A tick already in flight must still clear ticking while the editor is open.
	if _, isTick := msg.(tickMsg); m.editing && !isTick {
		return m.updateDurationInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, ok := m.keyCommand(msg.String()); ok {
			teaCmd := m.apply(cmd)
			return m, teaCmd
		}
		if msg.String() == "c" && len(m.presets) > 0 {
			m.cyclePreset()
			return m, nil
		}
		if msg.String() == "d" {
			if m.snapshot.Running {
				m.setMessage("Pause the timer to change the duration", true)
				return m, nil
			}
			m.editing = true
			m.durationInput.SetValue(strconv.Itoa(int(m.snapshot.Configured / time.Minute)))
			m.durationInput.CursorEnd()
			m.setMessage("", false)
			blink := m.durationInput.Focus()
			return m, blink
		}

	case tea.BlurMsg:
		if m.controller.VisibilityLost() {
			m.refresh()
			m.setMessage("Session Paused: focus session paused due to window switch", true)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.ticking = false
		if !m.controller.Snapshot().Running {
			m.refresh()
			return m, nil
		}
		before := m.snapshot.CompletedCount
		record, err := m.controller.Tick(m.ctx)
		m.refresh()
		if m.snapshot.CompletedCount > before {
			switch {
			case err != nil:
				m.setMessage(fmt.Sprintf("Session complete, archive failed: %v", err), true)
			case record != nil:
				m.setMessage(fmt.Sprintf("Session complete! %d min recorded.", record.DurationMinutes), false)
			default:
				m.setMessage("Session complete!", false)
			}
		}
		next := m.scheduleTick()
		return m, next
	}

	return m, nil
}

// cyclePreset switches the cycle length to the next preset.
func (m *Model) cyclePreset() {
	if m.snapshot.Running {
		m.setMessage("Pause the timer to change the preset", true)
		return
	}
	next := preset.Next(m.presets, m.snapshot.Configured)
	if err := m.controller.SetDuration(next.Minutes); err != nil {
		m.setMessage(durationError(err), true)
		return
	}
	m.refresh()
	m.setMessage("Preset: "+next.Label(), false)
}

// updateDurationInput handles input while editing the cycle length.
func (m Model) updateDurationInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.editing = false
			m.durationInput.Blur()
			return m, nil
		case "enter":
			minutes, err := strconv.Atoi(strings.TrimSpace(m.durationInput.Value()))
			if err != nil {
				m.setMessage("Enter a whole number of minutes", true)
				return m, nil
			}
			if err := m.controller.SetDuration(minutes); err != nil {
				m.setMessage(durationError(err), true)
				return m, nil
			}
			m.editing = false
			m.durationInput.Blur()
			m.refresh()
			m.setMessage(fmt.Sprintf("Focus duration set to %d min", minutes), false)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.durationInput, cmd = m.durationInput.Update(msg)
	return m, cmd
}

func durationError(err error) string {
	switch {
	case errors.Is(err, domain.ErrTimerRunning):
		return "Pause the timer to change the duration"
	case errors.Is(err, domain.ErrInvalidDuration):
		return fmt.Sprintf("Duration must be between %d and %d minutes", domain.MinDurationMinutes, domain.MaxDurationMinutes)
	default:
		return err.Error()
	}
}

// getTimerColor returns the color for the timer, accounting for pause state.
func (m Model) getTimerColor() lipgloss.Color {
	if !m.snapshot.Running {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return lipgloss.Color(m.theme.ColorFocus)
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Focus", m.theme.IconApp)))

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))
	sections = append(sections, statusStyle.Render(fmt.Sprintf("Status: %s · %d min cycle",
		domain.GetStateLabel(m.snapshot.State), int(m.snapshot.Configured/time.Minute))))

	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatDuration(m.snapshot.Remaining), m.getTimerColor(), m.width))

	if !m.snapshot.Running && m.snapshot.Remaining < m.snapshot.Configured {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	sections = append(sections, "")
	var pbar progress.Model
	if m.snapshot.Running {
		pbar = progress.New(progress.WithGradient(m.theme.FocusGradientStart, m.theme.FocusGradientEnd))
	} else {
		pbar = progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	}
	pbar.Width = max(m.width-4, 10)
	sections = append(sections, pbar.ViewAs(m.snapshot.Progress))

	sections = append(sections, helpStyle.Render(fmt.Sprintf("Distractions: %d   Completed: %d",
		m.snapshot.Distractions, m.snapshot.CompletedCount)))

	if m.message != "" {
		color := m.theme.ColorFocus
		if m.messageErr {
			color = m.theme.ColorWarning
		}
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.message))
	}

	if m.editing {
		sections = append(sections, "")
		sections = append(sections, helpStyle.Render("Focus duration: ")+m.durationInput.View())
		sections = append(sections, helpStyle.Render(fmt.Sprintf("enter save · esc cancel (%d-%d min)",
			domain.MinDurationMinutes, domain.MaxDurationMinutes)))
	}

	if len(m.history) > 0 {
		sections = append(sections, "")
		sections = append(sections, statusStyle.Render(fmt.Sprintf("%s Recent sessions", m.theme.IconHistory)))
		sections = append(sections, m.viewHistory(helpStyle)...)
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(m.helpText()))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// viewHistory lists recorded sessions newest first.
func (m Model) viewHistory(style lipgloss.Style) []string {
	var lines []string
	for i := len(m.history) - 1; i >= 0 && len(lines) < historyRows; i-- {
		lines = append(lines, style.Render(formatHistoryEntry(m.history[i])))
	}
	return lines
}

func (m Model) helpText() string {
	startAction := "[space] start"
	if m.snapshot.Running {
		startAction = "[space] pause"
	} else if m.snapshot.Remaining < m.snapshot.Configured {
		startAction = "[space] resume"
	}
	if m.snapshot.Running {
		return startAction + "  [r]eset  [q]uit"
	}
	if len(m.presets) > 0 {
		return startAction + "  [r]eset  [d]uration  [c] preset  [q]uit"
	}
	return startAction + "  [r]eset  [d]uration  [q]uit"
}

// formatHistoryEntry renders one session line.
func formatHistoryEntry(s *domain.FocusSession) string {
	line := fmt.Sprintf("%s  Duration: %d min (%s)",
		s.CompletedAt.Format(historyTimestamp), s.DurationMinutes, s.StatusLabel())
	if s.DistractionCount > 0 {
		line += fmt.Sprintf("  Distractions: %d", s.DistractionCount)
	}
	return line
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// formatDuration formats a duration as MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
