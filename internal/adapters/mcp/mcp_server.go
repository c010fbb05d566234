// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/ports"
)

const defaultHistoryLimit = 10

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, version string) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"focus-timer",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the focus timer state: remaining time, running flag, distractions and completed sessions"),
		),
		s.handleGetTimerState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_focus",
			mcp.WithDescription("Start or resume the focus countdown"),
		),
		s.handleStartFocus,
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_focus",
			mcp.WithDescription("Pause the focus countdown, keeping the remaining time"),
		),
		s.handlePauseFocus,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_focus",
			mcp.WithDescription("End the current focus cycle early and record the minutes studied"),
		),
		s.handleResetFocus,
	)

	setDurationTool := mcp.NewTool(
		"set_focus_duration",
		mcp.WithDescription("Change the focus cycle length. Rejected while the timer is running"),
		mcp.WithNumber(
			"minutes",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Cycle length in minutes (%d-%d)", domain.MinDurationMinutes, domain.MaxDurationMinutes)),
		),
	)
	s.server.AddTool(setDurationTool, s.handleSetFocusDuration)

	s.server.AddTool(
		mcp.NewTool(
			"report_visibility_lost",
			mcp.WithDescription("Report that the user switched away. Pauses a running timer and counts a distraction"),
		),
		s.handleReportVisibilityLost,
	)

	historyTool := mcp.NewTool(
		"list_focus_history",
		mcp.WithDescription("List recorded focus sessions, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of sessions to return (default: 10)"),
		),
	)
	s.server.AddTool(historyTool, s.handleListFocusHistory)

	statsTool := mcp.NewTool(
		"get_focus_stats",
		mcp.WithDescription("Summarize recorded focus sessions: totals, averages and distractions"),
		mcp.WithNumber(
			"since_days",
			mcp.Description("Only include sessions from the last N days (default: all)"),
		),
	)
	s.server.AddTool(statsTool, s.handleGetFocusStats)
}

// Start serves MCP requests over stdio until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	stdio := server.NewStdioServer(s.server)
	err := stdio.Listen(s.ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func snapshotData(snap domain.TimerSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"state":              string(snap.State),
		"label":              domain.GetStateLabel(snap.State),
		"running":            snap.Running,
		"configured_minutes": int(snap.Configured / time.Minute),
		"remaining":          formatClock(snap.Remaining),
		"remaining_seconds":  int(snap.Remaining / time.Second),
		"progress":           snap.Progress,
		"distractions":       snap.Distractions,
		"completed_count":    snap.CompletedCount,
	}
}

func sessionData(session *domain.FocusSession) map[string]interface{} {
	return map[string]interface{}{
		"id":                session.ID,
		"completed_at":      session.CompletedAt.Format(time.RFC3339),
		"duration_minutes":  session.DurationMinutes,
		"completed":         session.Completed,
		"status":            session.StatusLabel(),
		"distraction_count": session.DistractionCount,
	}
}

func jsonResult(v interface{}, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// formatClock renders d as MM:SS.
func formatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// intArg reads a whole-number argument sent as a JSON number or a numeric
// string. present is false when the argument is missing.
func intArg(request mcp.CallToolRequest, name string) (value int, present bool, err error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, true, fmt.Errorf("%s must be a whole number, got %v", name, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, true, fmt.Errorf("%s must be a whole number, got %q", name, v)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("%s must be a number, got %T", name, raw)
	}
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(snapshotData(s.stateProvider.Snapshot()), "timer state")
}

// handleStartFocus handles the start_focus tool.
func (s *Server) handleStartFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(snapshotData(s.stateProvider.Start()), "timer state")
}

// handlePauseFocus handles the pause_focus tool.
func (s *Server) handlePauseFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(snapshotData(s.stateProvider.Pause()), "timer state")
}

// handleResetFocus handles the reset_focus tool.
func (s *Server) handleResetFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := s.stateProvider.Reset(ctx)

	result := map[string]interface{}{
		"recorded": record != nil,
		"timer":    snapshotData(s.stateProvider.Snapshot()),
	}
	if record != nil {
		result["session"] = sessionData(record)
	}
	if err != nil {
		result["archive_error"] = err.Error()
	}

	return jsonResult(result, "reset result")
}

// handleSetFocusDuration handles the set_focus_duration tool.
func (s *Server) handleSetFocusDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes, present, err := intArg(request, "minutes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !present {
		return mcp.NewToolResultError("minutes is required"), nil
	}

	if err := s.stateProvider.SetDuration(minutes); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set duration: %v", err)), nil
	}

	return jsonResult(snapshotData(s.stateProvider.Snapshot()), "timer state")
}

// handleReportVisibilityLost handles the report_visibility_lost tool.
func (s *Server) handleReportVisibilityLost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	counted := s.stateProvider.VisibilityLost()

	result := map[string]interface{}{
		"distraction_counted": counted,
		"timer":               snapshotData(s.stateProvider.Snapshot()),
	}
	if counted {
		result["message"] = "Focus session paused due to tab switch"
	}

	return jsonResult(result, "visibility result")
}

// handleListFocusHistory handles the list_focus_history tool.
func (s *Server) handleListFocusHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := defaultHistoryLimit
	n, present, err := intArg(request, "limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if present {
		if n <= 0 {
			return mcp.NewToolResultError("limit must be positive"), nil
		}
		limit = n
	}

	sessions, err := s.stateProvider.ArchivedSessions(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}

	list := make([]map[string]interface{}, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		list = append(list, sessionData(sessions[i]))
	}

	return jsonResult(map[string]interface{}{
		"sessions": list,
		"count":    len(list),
	}, "focus history")
}

// handleGetFocusStats handles the get_focus_stats tool.
func (s *Server) handleGetFocusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var since time.Time
	days, present, err := intArg(request, "since_days")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if present {
		if days <= 0 {
			return mcp.NewToolResultError("since_days must be positive"), nil
		}
		since = time.Now().AddDate(0, 0, -days)
	}

	stats, err := s.stateProvider.Stats(ctx, since)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute stats: %v", err)), nil
	}

	return jsonResult(stats, "focus stats")
}
