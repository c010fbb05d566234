package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the focus settings",
	Long:  `Show the current configuration, or change the cycle length and notifications.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showConfig(cmd.OutOrStdout(), app.config)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		showConfig(cmd.OutOrStdout(), app.config)
		return nil
	},
}

var configSetDurationCmd = &cobra.Command{
	Use:   "set-duration <minutes>",
	Short: "Set the default focus cycle length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := parseMinutes(args[0])
		if err != nil {
			return err
		}

		app.config.Focus.Duration = config.Duration(time.Duration(minutes) * time.Minute)
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: focus cycle is now %s\n", formatMinutes(time.Duration(app.config.Focus.Duration)))
		return nil
	},
}

var configNotificationsCmd = &cobra.Command{
	Use:       "notifications <on|off>",
	Short:     "Turn desktop notifications on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(args[0]) {
		case "on":
			app.config.Notifications.Enabled = true
		case "off":
			app.config.Notifications.Enabled = false
		default:
			return fmt.Errorf("invalid choice %q (want on or off)", args[0])
		}

		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: notifications %s\n", notificationStatus(&app.config.Notifications))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDurationCmd)
	configCmd.AddCommand(configNotificationsCmd)
}

// parseMinutes validates a cycle length typed on the command line.
func parseMinutes(raw string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", raw, err)
	}
	if minutes < domain.MinDurationMinutes || minutes > domain.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: %d minutes (must be %d-%d)",
			domain.ErrInvalidDuration, minutes, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return minutes, nil
}

func notificationStatus(cfg *config.NotificationConfig) string {
	if !cfg.Enabled {
		return "off"
	}
	if cfg.Sound {
		return "on (with sound)"
	}
	return "on"
}

func showConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Current configuration:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    Focus cycle:     %s\n", formatMinutes(cfg.FocusDuration()))
	fmt.Fprintf(w, "    Notifications:   %s\n", notificationStatus(&cfg.Notifications))
	fmt.Fprintf(w, "    Storage:         %s\n", cfg.Storage.Driver)
	fmt.Fprintf(w, "    Data directory:  %s\n", cfg.Storage.DataDir)
	fmt.Fprintf(w, "    Log level:       %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
	fmt.Fprintf(w, "    Subjects:        %d\n", len(cfg.Subjects))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Session presets:")
	for i, p := range cfg.Presets {
		line := fmt.Sprintf("    [%d] %-8s  %s", i+1, p.Name, formatMinutes(time.Duration(p.Duration)))
		if p.Description != "" {
			line += "  " + p.Description
		}
		if p.Hidden {
			line += " (hidden)"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
