package ports

import (
	"context"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider provides timer control and history to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	FocusController

	// ArchivedSessions returns up to limit archived sessions, most recent last.
	ArchivedSessions(ctx context.Context, limit int) ([]*domain.FocusSession, error)

	// Stats aggregates archived sessions completed since the given time.
	Stats(ctx context.Context, since time.Time) (domain.FocusStats, error)
}
