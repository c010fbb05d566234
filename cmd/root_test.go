package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func TestRootCmd_BareExecution(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "focus" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "focus")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !bytes.Contains([]byte(stdout), []byte("focus")) {
		t.Error("help output should contain 'focus'")
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"db", "json", "storage"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"start", "run", "history", "stats", "config", "plan", "mcp"}

	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			found, _, err := rootCmd.Find([]string{name})
			if err != nil || found == rootCmd {
				t.Errorf("subcommand %q should be registered", name)
			}
		})
	}
}

// TestFormatMinutes tests the formatMinutes helper function
func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration int64 // minutes
		want     string
	}{
		{"25 minutes", 25, "25m"},
		{"45 minutes", 45, "45m"},
		{"60 minutes", 60, "1h"},
		{"90 minutes", 90, "1h30m"},
		{"120 minutes", 120, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := time.Duration(tt.duration) * time.Minute
			got := formatMinutes(d)
			if got != tt.want {
				t.Errorf("formatMinutes(%d min) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

// TestFormatClock tests the formatClock helper
func TestFormatClock(t *testing.T) {
	tests := []struct {
		minutes  int
		seconds  int
		expected string
	}{
		{45, 0, "45:00"},
		{5, 30, "05:30"},
		{0, 45, "00:45"},
		{120, 0, "120:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			d := time.Duration(tt.minutes)*time.Minute + time.Duration(tt.seconds)*time.Second
			got := formatClock(d)
			if got != tt.expected {
				t.Errorf("formatClock() = %q, want %q", got, tt.expected)
			}
		})
	}

	if got := formatClock(-time.Second); got != "00:00" {
		t.Errorf("formatClock(negative) = %q, want 00:00", got)
	}
}

// TestGetDir tests the getDir helper function
func TestGetDir(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/home/user/focus.db", "/home/user"},
		{"/home/user/", "/home/user"},
		{"focus.db", "."},
		{"/focus.db", "."}, // Root case returns "."
		{"C:\\Users\\focus.db", "C:\\Users"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := getDir(tt.path)
			if got != tt.expected {
				t.Errorf("getDir(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
