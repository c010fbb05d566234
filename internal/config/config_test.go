package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/focus-cli/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Focus.Duration) != 45*time.Minute {
		t.Errorf("expected default focus duration 45m, got %v", cfg.Focus.Duration)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected default storage driver 'memory', got %q", cfg.Storage.Driver)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default log level 'warn', got %q", cfg.Logging.Level)
	}
	if len(cfg.Subjects) == 0 {
		t.Error("expected default subjects")
	}
	if len(cfg.Presets) != 3 || cfg.Presets[0].Name != "Default" || time.Duration(cfg.Presets[0].Duration) != 45*time.Minute {
		t.Errorf("expected Default 45m as first preset, got %+v", cfg.Presets)
	}
}

func TestDuration_TextRoundTrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("25m")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 25*time.Minute {
		t.Errorf("expected 25m, got %v", time.Duration(d))
	}
	text, _ := d.MarshalText()
	if string(text) != "25m0s" {
		t.Errorf("MarshalText() = %q, want %q", text, "25m0s")
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
	if cfg.FocusDuration() != domain.DefaultFocusDuration {
		t.Errorf("FocusDuration() = %v, want %v", cfg.FocusDuration(), domain.DefaultFocusDuration)
	}
	if cfg.Storage.DataDir == "~/.focus" {
		t.Error("expected ~ to be expanded in data_dir")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Focus.Duration = Duration(30 * time.Minute)
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DataDir = t.TempDir()
	cfg.Logging.Format = "json"
	cfg.Subjects = []SubjectConfig{{Name: "Economics", Chapters: []string{"Demand", "Supply"}}}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.FocusDuration() != 30*time.Minute {
		t.Errorf("FocusDuration() = %v, want 30m", loaded.FocusDuration())
	}
	if loaded.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want sqlite", loaded.Storage.Driver)
	}
	if loaded.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", loaded.Logging.Format)
	}
	if len(loaded.Subjects) != 1 || loaded.Subjects[0].Name != "Economics" {
		t.Fatalf("Subjects = %+v, want one Economics entry", loaded.Subjects)
	}
	if len(loaded.Subjects[0].Chapters) != 2 {
		t.Errorf("expected 2 chapters, got %d", len(loaded.Subjects[0].Chapters))
	}
	if len(loaded.Presets) != len(DefaultPresets()) {
		t.Fatalf("Presets = %+v, want the defaults", loaded.Presets)
	}
	if time.Duration(loaded.Presets[2].Duration) != 90*time.Minute {
		t.Errorf("Deep preset = %v, want 90m", loaded.Presets[2].Duration)
	}
}

func TestLoadFrom_PresetTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[focus]
duration = "45m"

[[presets]]
name = "Exam"
duration = "60m"
description = "Mock paper"

[[presets]]
name = "Sprint"
duration = "15m"
hidden = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if len(cfg.Presets) != 2 {
		t.Fatalf("Presets = %+v, want 2 entries", cfg.Presets)
	}
	exam := cfg.Presets[0]
	if exam.Name != "Exam" || time.Duration(exam.Duration) != time.Hour || exam.Description != "Mock paper" || exam.Hidden {
		t.Errorf("first preset = %+v", exam)
	}
	if !cfg.Presets[1].Hidden {
		t.Error("second preset should be hidden")
	}
}

func TestFocusDuration_OutOfRangeFallsBack(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want time.Duration
	}{
		{"within range", 90 * time.Minute, 90 * time.Minute},
		{"minimum", time.Minute, time.Minute},
		{"maximum", 120 * time.Minute, 120 * time.Minute},
		{"too short", 30 * time.Second, domain.DefaultFocusDuration},
		{"too long", 3 * time.Hour, domain.DefaultFocusDuration},
		{"zero", 0, domain.DefaultFocusDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Focus: FocusConfig{Duration: Duration(tt.d)}}
			if got := cfg.FocusDuration(); got != tt.want {
				t.Errorf("FocusDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetDBPath(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{DataDir: "/tmp/focus-data"}}
	if got := GetDBPath(cfg); got != filepath.Join("/tmp/focus-data", "focus.db") {
		t.Errorf("GetDBPath() = %q", got)
	}
}
