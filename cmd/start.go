package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/adapters/tui"
	"github.com/xvierd/focus-cli/internal/ports"
	"github.com/xvierd/focus-cli/internal/preset"
)

var (
	startDuration int
	startPreset   string
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Long: `Open the timer and start counting down immediately.
Use --duration or --preset to change the cycle length for this run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyCycleLength(app.focus, app.presets, startDuration, startPreset); err != nil {
			return err
		}
		return launchTUI(true)
	},
}

func init() {
	startCmd.Flags().IntVarP(&startDuration, "duration", "d", 0, "Cycle length in minutes (1-120)")
	startCmd.Flags().StringVarP(&startPreset, "preset", "p", "", "Named preset to use, e.g. Default or Deep")
}

// applyCycleLength sets the cycle length from --duration or --preset.
// Neither flag keeps the configured length.
func applyCycleLength(focus ports.FocusController, presets []preset.Preset, minutes int, presetName string) error {
	switch {
	case minutes != 0 && presetName != "":
		return errors.New("use either --duration or --preset, not both")
	case presetName != "":
		p, err := preset.Find(presetName, presets)
		if err != nil {
			return fmt.Errorf("invalid --preset: %w", err)
		}
		if err := focus.SetDuration(p.Minutes); err != nil {
			return fmt.Errorf("invalid --preset: %w", err)
		}
	case minutes != 0:
		if err := focus.SetDuration(minutes); err != nil {
			return fmt.Errorf("invalid --duration: %w", err)
		}
	}
	return nil
}

// launchTUI opens the full-screen timer, optionally already running.
func launchTUI(running bool) error {
	ctx := setupSignalHandler()

	if running {
		app.focus.Start()
	}

	timer := tui.NewTimer(app.focus, &app.config.Theme)
	timer.SetPresets(app.presets)
	if err := timer.Run(ctx); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}

	if n := len(app.focus.History()); n > 0 {
		fmt.Printf("Recorded %d focus session(s) this run.\n", n)
	}
	return nil
}
