package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/domain"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded focus sessions",
	Long: `List recorded focus sessions, newest first.
Sessions outlive the process only with --storage sqlite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := app.focus.ArchivedSessions(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if jsonOutput {
			return writeHistoryJSON(cmd.OutOrStdout(), sessions)
		}
		writeHistory(cmd.OutOrStdout(), sessions, storageHint(app.driver))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of sessions to show (0 for all)")
}

func writeHistoryJSON(w io.Writer, sessions []*domain.FocusSession) error {
	list := make([]map[string]interface{}, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		list = append(list, map[string]interface{}{
			"id":                s.ID,
			"completed_at":      s.CompletedAt.Format(time.RFC3339),
			"duration_minutes":  s.DurationMinutes,
			"completed":         s.Completed,
			"distraction_count": s.DistractionCount,
		})
	}
	data := map[string]interface{}{
		"sessions": list,
		"count":    len(list),
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

func writeHistory(w io.Writer, sessions []*domain.FocusSession, hint string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No focus sessions recorded yet.")
	} else {
		fmt.Fprintf(w, "📜 Focus history (%d)\n\n", len(sessions))
		for i := len(sessions) - 1; i >= 0; i-- {
			fmt.Fprintf(w, "  %s\n", historyLine(sessions[i]))
		}
	}
	if hint != "" {
		fmt.Fprintf(w, "\n💡 %s\n", hint)
	}
}

// historyLine renders one session the way the timer lists it.
func historyLine(s *domain.FocusSession) string {
	return fmt.Sprintf("%s  Duration: %d min (%s)  Distractions: %d",
		s.CompletedAt.Local().Format("Jan 2, 2006 - 3:04 PM"),
		s.DurationMinutes, s.StatusLabel(), s.DistractionCount)
}
