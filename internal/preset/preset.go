// Package preset resolves the named focus cycle lengths offered by the timer.
// The TUI cycles through them and the start and run commands pick one by name.
package preset

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/domain"
)

var (
	// ErrNotFound is returned when a query matches no preset.
	ErrNotFound = errors.New("preset not found")
	// ErrNoPresets is returned when every configured preset is hidden.
	ErrNoPresets = errors.New("no presets configured")
)

// Preset is a validated named cycle length.
type Preset struct {
	Name        string
	Minutes     int
	Description string
}

// Duration returns the cycle length.
func (p Preset) Duration() time.Duration {
	return time.Duration(p.Minutes) * time.Minute
}

// Label renders the preset as shown in menus, e.g. "Default 45m".
func (p Preset) Label() string {
	return fmt.Sprintf("%s %dm", p.Name, p.Minutes)
}

// FromConfig converts the configured presets, skipping hidden ones. Every
// preset must be a whole number of minutes the timer accepts.
func FromConfig(configured []config.SessionPreset) ([]Preset, error) {
	presets := make([]Preset, 0, len(configured))
	for i, c := range configured {
		if c.Hidden {
			continue
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("preset %d has no name", i+1)
		}

		d := time.Duration(c.Duration)
		if d%time.Minute != 0 {
			return nil, fmt.Errorf("preset %q: %w: %v is not a whole number of minutes", name, domain.ErrInvalidDuration, d)
		}
		minutes := int(d / time.Minute)
		if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
			return nil, fmt.Errorf("preset %q: %w: %d minutes (must be %d-%d)",
				name, domain.ErrInvalidDuration, minutes, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}

		presets = append(presets, Preset{Name: name, Minutes: minutes, Description: c.Description})
	}

	if len(presets) == 0 {
		return nil, ErrNoPresets
	}
	return presets, nil
}

// Defaults returns the built-in presets.
func Defaults() []Preset {
	defaults := config.DefaultPresets()
	presets := make([]Preset, 0, len(defaults))
	for _, c := range defaults {
		presets = append(presets, Preset{
			Name:        c.Name,
			Minutes:     int(time.Duration(c.Duration) / time.Minute),
			Description: c.Description,
		})
	}
	return presets
}

// Find returns the preset best matching query. An exact case-insensitive
// name wins, otherwise the best fuzzy match is used.
func Find(query string, presets []Preset) (Preset, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Preset{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	names := make([]string, len(presets))
	for i, p := range presets {
		if strings.EqualFold(p.Name, query) {
			return p, nil
		}
		names[i] = p.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return presets[matches[0].Index], nil
}

// Next returns the preset after the one matching current. When current
// matches none, the first preset is returned.
func Next(presets []Preset, current time.Duration) Preset {
	for i, p := range presets {
		if p.Duration() == current {
			return presets[(i+1)%len(presets)]
		}
	}
	return presets[0]
}
