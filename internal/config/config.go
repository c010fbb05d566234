// Package config provides configuration management for Focus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/focus-cli/internal/domain"
)

// Config holds all configuration for the Focus application.
type Config struct {
	Focus         FocusConfig        `mapstructure:"focus"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Theme         ThemeConfig        `mapstructure:"theme"`
	Subjects      []SubjectConfig    `mapstructure:"subjects"`
	Presets       []SessionPreset    `mapstructure:"presets"`
}

// FocusConfig holds focus timer settings.
type FocusConfig struct {
	Duration Duration `mapstructure:"duration"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	Driver  string `mapstructure:"driver"`
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SubjectConfig is a study subject and its chapters, used by the planner.
type SubjectConfig struct {
	Name     string   `mapstructure:"name"`
	Chapters []string `mapstructure:"chapters"`
}

// SessionPreset is a named focus cycle length.
type SessionPreset struct {
	Name        string   `mapstructure:"name"`
	Duration    Duration `mapstructure:"duration"`
	Description string   `mapstructure:"description"`

	// Hidden presets stay in the file but are not offered.
	Hidden bool `mapstructure:"hidden"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFocus          string `mapstructure:"color_focus"`
	ColorPaused         string `mapstructure:"color_paused"`
	ColorTitle          string `mapstructure:"color_title"`
	ColorHelp           string `mapstructure:"color_help"`
	ColorWarning        string `mapstructure:"color_warning"`
	FocusGradientStart  string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd    string `mapstructure:"focus_gradient_end"`
	PausedGradientStart string `mapstructure:"paused_gradient_start"`
	PausedGradientEnd   string `mapstructure:"paused_gradient_end"`
	IconApp             string `mapstructure:"icon_app"`
	IconPaused          string `mapstructure:"icon_paused"`
	IconHistory         string `mapstructure:"icon_history"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:          "#7C6FE0",
		ColorPaused:         "#6B7280",
		ColorTitle:          "#6B7280",
		ColorHelp:           "#95A5A6",
		ColorWarning:        "#E67E22",
		FocusGradientStart:  "#7C6FE0",
		FocusGradientEnd:    "#4ECDC4",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",
		IconApp:             "🎯",
		IconPaused:          "⏸",
		IconHistory:         "🕒",
	}
}

// DefaultSubjects returns the subjects offered by the planner out of the box.
func DefaultSubjects() []SubjectConfig {
	return []SubjectConfig{
		{Name: "Financial Accounting", Chapters: []string{"AS-1 Disclosure", "AS-2 Valuation"}},
		{Name: "Cost Accounting", Chapters: []string{"Process Costing", "Marginal Costing"}},
		{Name: "Taxation", Chapters: []string{"Income Tax", "GST Basics"}},
		{Name: "Auditing", Chapters: []string{"Internal Controls", "Audit Evidence"}},
		{Name: "Advanced Accounting", Chapters: []string{"Consolidation", "Amalgamation"}},
		{Name: "Strategic Management", Chapters: []string{"Business Strategy", "Corporate Strategy"}},
	}
}

// DefaultPresets returns the focus presets offered out of the box.
func DefaultPresets() []SessionPreset {
	return []SessionPreset{
		{Name: "Default", Duration: Duration(45 * time.Minute), Description: "Standard study cycle"},
		{Name: "Short", Duration: Duration(25 * time.Minute), Description: "Quick revision"},
		{Name: "Deep", Duration: Duration(90 * time.Minute), Description: "Long uninterrupted block"},
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Focus: FocusConfig{
			Duration: Duration(domain.DefaultFocusDuration),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			Driver:  "memory",
			DataDir: "~/.focus",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Theme:    DefaultThemeConfig(),
		Subjects: DefaultSubjects(),
		Presets:  DefaultPresets(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from the given file, creating it with
// defaults when it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(cfg.Subjects) == 0 {
		cfg.Subjects = DefaultSubjects()
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.focus" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".focus")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to the given file.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("focus.duration", cfg.Focus.Duration.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("storage.driver", cfg.Storage.Driver)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("theme", themeMap(cfg.Theme))

	subjects := make([]map[string]any, 0, len(cfg.Subjects))
	for _, s := range cfg.Subjects {
		subjects = append(subjects, map[string]any{"name": s.Name, "chapters": s.Chapters})
	}
	v.Set("subjects", subjects)

	presets := make([]map[string]any, 0, len(cfg.Presets))
	for _, p := range cfg.Presets {
		presets = append(presets, map[string]any{
			"name":        p.Name,
			"duration":    p.Duration.String(),
			"description": p.Description,
			"hidden":      p.Hidden,
		})
	}
	v.Set("presets", presets)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".focus", "config.toml"), nil
}

// GetDBPath returns the path to the archive database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "focus.db")
}

// FocusDuration returns the configured cycle length, falling back to the
// default when it is outside the timer's accepted range.
func (c *Config) FocusDuration() time.Duration {
	d := time.Duration(c.Focus.Duration)
	if d < domain.MinDurationMinutes*time.Minute || d > domain.MaxDurationMinutes*time.Minute {
		return domain.DefaultFocusDuration
	}
	return d
}

func themeMap(t ThemeConfig) map[string]any {
	return map[string]any{
		"color_focus":           t.ColorFocus,
		"color_paused":          t.ColorPaused,
		"color_title":           t.ColorTitle,
		"color_help":            t.ColorHelp,
		"color_warning":         t.ColorWarning,
		"focus_gradient_start":  t.FocusGradientStart,
		"focus_gradient_end":    t.FocusGradientEnd,
		"paused_gradient_start": t.PausedGradientStart,
		"paused_gradient_end":   t.PausedGradientEnd,
		"icon_app":              t.IconApp,
		"icon_paused":           t.IconPaused,
		"icon_history":          t.IconHistory,
	}
}

// decodeHook lets viper decode Duration fields through their TextUnmarshaler.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("focus.duration", "45m0s")
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.data_dir", "~/.focus")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("mcp.enabled", true)

	for key, value := range themeMap(DefaultThemeConfig()) {
		v.SetDefault("theme."+key, value)
	}
}
