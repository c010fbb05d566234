package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/services"
)

var (
	runDuration int
	runPreset   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a focus session without the full-screen timer",
	Long: `Count down in the terminal, printing the remaining time each second.
Press Ctrl+C to end the session early; the minutes studied are recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyCycleLength(app.focus, app.presets, runDuration, runPreset); err != nil {
			return err
		}
		return runHeadless(setupSignalHandler(), app.focus, services.NewTicker(app.focus, app.logger), cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().IntVarP(&runDuration, "duration", "d", 0, "Cycle length in minutes (1-120)")
	runCmd.Flags().StringVarP(&runPreset, "preset", "p", "", "Named preset to use, e.g. Default or Deep")
}

// runHeadless drives one focus cycle until it completes or ctx is
// cancelled, printing the countdown to out. Cancelling ends the cycle
// early and records the minutes studied.
func runHeadless(ctx context.Context, focus *services.FocusService, ticker *services.Ticker, out io.Writer) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	startCount := focus.Snapshot().CompletedCount
	finished := make(chan *domain.FocusSession, 1)
	ticker.SetOnTick(func(snap domain.TimerSnapshot, record *domain.FocusSession) {
		if snap.CompletedCount > startCount {
			select {
			case finished <- record:
			default:
			}
			return
		}
		fmt.Fprintf(out, "\r%s ", formatClock(snap.Remaining))
	})

	snap := focus.Start()
	fmt.Fprintf(out, "🎯 Focus started: %s\n", formatMinutes(snap.Configured))
	fmt.Fprintf(out, "\r%s ", formatClock(snap.Remaining))

	done := make(chan error, 1)
	go func() {
		done <- ticker.Run(runCtx)
	}()

	select {
	case record := <-finished:
		cancel()
		<-done
		fmt.Fprintln(out)
		if record != nil {
			fmt.Fprintf(out, "Session complete! %d min recorded.\n", record.DurationMinutes)
		} else {
			fmt.Fprintln(out, "Session complete!")
		}
		return nil
	case <-ctx.Done():
		cancel()
		<-done
	}

	fmt.Fprintln(out)
	record, err := focus.Reset(context.WithoutCancel(ctx))
	if record == nil {
		fmt.Fprintln(out, "Session ended. Under a minute, nothing recorded.")
		return nil
	}
	fmt.Fprintf(out, "Session recorded: %d min (%s)\n", record.DurationMinutes, record.StatusLabel())
	if err != nil {
		return fmt.Errorf("session was not archived: %w", err)
	}
	return nil
}
