package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/domain"
)

var statsSince int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a summary of recorded focus sessions",
	Long:  `Display session counts, minutes studied and distraction averages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var since time.Time
		label := "All sessions"
		if statsSince > 0 {
			since = time.Now().AddDate(0, 0, -statsSince)
			label = fmt.Sprintf("Last %d days", statsSince)
		} else if statsSince < 0 {
			return fmt.Errorf("--since must be positive, got %d", statsSince)
		}

		stats, err := app.focus.Stats(context.Background(), since)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if jsonOutput {
			jsonData, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout())
		renderDashboard(cmd.OutOrStdout(), label, stats, storageHint(app.driver))
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsSince, "since", "s", 0, "Only include sessions from the last N days")
}

func renderDashboard(w io.Writer, label string, stats domain.FocusStats, hint string) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))

	// Header
	fmt.Fprintf(w, "  %s\n", titleStyle.Render(label))
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	fmt.Fprintf(w, "  Total: %s sessions, %s studied\n\n",
		valueStyle.Render(fmt.Sprintf("%d", stats.Total)),
		valueStyle.Render(formatMinutes(time.Duration(stats.TotalMinutes)*time.Minute)),
	)

	if stats.Total == 0 {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("No focus sessions in this period."))
		if hint != "" {
			fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(hint))
		}
		return
	}

	fmt.Fprintf(w, "  %s\n", dimStyle.Render("Sessions by outcome"))
	rows := []struct {
		label string
		count int
	}{
		{"Completed", stats.Completed},
		{"Incomplete", stats.Total - stats.Completed},
	}
	maxBarWidth := 30
	for _, r := range rows {
		barWidth := int(math.Round(float64(r.count) / float64(stats.Total) * float64(maxBarWidth)))
		if barWidth < 1 && r.count > 0 {
			barWidth = 1
		}
		fmt.Fprintf(w, "  %s %s %d\n",
			dimStyle.Render(fmt.Sprintf("%-10s", r.label)),
			barColor.Render(buildBar(barWidth)),
			r.count,
		)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s  %s\n",
		dimStyle.Render("Avg duration:"),
		valueStyle.Render(fmt.Sprintf("%d min", stats.AverageMinutes)),
	)
	fmt.Fprintf(w, "  %s  %s  %s\n",
		dimStyle.Render("Distractions:"),
		valueStyle.Render(fmt.Sprintf("%d", stats.TotalDistractions)),
		dimStyle.Render(fmt.Sprintf("(%.1f per session)", stats.AverageDistractions)),
	)
	fmt.Fprintln(w)
	if hint != "" {
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(hint))
	}
}

// buildBar returns a bar of the given width.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}
