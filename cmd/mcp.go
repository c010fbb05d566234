package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/adapters/mcp"
	"github.com/xvierd/focus-cli/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes the focus timer and its session history as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return errors.New("MCP server is disabled in config (set mcp.enabled = true)")
		}

		// Stdout carries the protocol, so status goes to stderr.
		fmt.Fprintln(os.Stderr, "🚀 Starting MCP server...")
		fmt.Fprintln(os.Stderr, "   The server will communicate via stdio")
		fmt.Fprintln(os.Stderr, "   Press Ctrl+C to stop")

		ctx := setupSignalHandler()

		// Tools can start the timer, so something has to drive it.
		ticker := services.NewTicker(app.focus, app.logger)
		go func() {
			if err := ticker.Run(ctx); err != nil {
				app.logger.Error().Err(err).Msg("ticker stopped")
			}
		}()

		server := mcp.NewServer(app.focus, Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
