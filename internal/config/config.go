// Package config provides configuration types and defaults for opdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/opdeck/internal/log"
)

// Config holds all configuration options for opdeck.
type Config struct {
	Hardware HardwareConfig `mapstructure:"hardware"`
	UI       UIConfig       `mapstructure:"ui"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Hotplug  HotplugConfig  `mapstructure:"hotplug"`
}

// HardwareConfig describes the two units the console drives.
type HardwareConfig struct {
	Motor    MotorConfig    `mapstructure:"motor"`
	Joystick JoystickConfig `mapstructure:"joystick"`
}

// MotorConfig configures the encoder/motor board.
type MotorConfig struct {
	Name     string  `mapstructure:"name"`
	Device   string  `mapstructure:"device"`    // device node probed at startup
	Simulate bool    `mapstructure:"simulate"`  // report open without a device node
	MaxSpeed float64 `mapstructure:"max_speed"` // velocity at full deflection
}

// JoystickConfig configures the joystick.
type JoystickConfig struct {
	Name     string  `mapstructure:"name"`
	Device   string  `mapstructure:"device"`
	Simulate bool    `mapstructure:"simulate"`
	Deadzone float64 `mapstructure:"deadzone"` // 0.0 to <1.0
	Axes     int     `mapstructure:"axes"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar" yaml:"show_status_bar"`
	Fullscreen    bool   `mapstructure:"fullscreen" yaml:"fullscreen"`
	Layout        string `mapstructure:"layout" yaml:"layout"`                 // "tabbed" (default) or "tiled"
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds the few colors the console uses.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Error     string `mapstructure:"error"`
	Success   string `mapstructure:"success"`
}

// JournalConfig controls the session journal.
type JournalConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Path is the sqlite database file.
	// Default: ~/.config/opdeck/journal.db
	Path string `mapstructure:"path"`
}

// TracingConfig holds tracing configuration for console actions.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/opdeck/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// HotplugConfig controls the device directory watcher.
type HotplugConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Layout values.
const (
	LayoutTabbed = "tabbed"
	LayoutTiled  = "tiled"
)

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "opdeck")
}

// DefaultJournalPath returns ~/.config/opdeck/journal.db or empty string if
// the home dir is unavailable.
func DefaultJournalPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "journal.db")
}

// DefaultTracesFilePath returns ~/.config/opdeck/traces/traces.jsonl or
// empty string if the home dir is unavailable.
func DefaultTracesFilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Hardware: HardwareConfig{
			Motor: MotorConfig{
				Name:     "Motor Board",
				Device:   "/dev/ttyUSB0",
				MaxSpeed: 1.0,
			},
			Joystick: JoystickConfig{
				Name:     "Joystick",
				Device:   "/dev/input/js0",
				Deadzone: 0.05,
				Axes:     2,
			},
		},
		UI: UIConfig{
			ShowStatusBar: true,
			Fullscreen:    true,
			Layout:        LayoutTabbed,
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{
			Highlight: "#54A0FF",
			Error:     "#FF8787",
			Success:   "#73F59F",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "", // Derived from config dir at runtime
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Hotplug: HotplugConfig{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateHardware(cfg.Hardware); err != nil {
		return err
	}
	if err := ValidateUI(cfg.UI); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if cfg.Journal.Path != "" && !filepath.IsAbs(cfg.Journal.Path) {
		return fmt.Errorf("journal.path must be an absolute path, got %q", cfg.Journal.Path)
	}
	if cfg.Hotplug.Debounce < 0 {
		return fmt.Errorf("hotplug.debounce must not be negative, got %v", cfg.Hotplug.Debounce)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateHardware checks unit names and joystick tuning.
func ValidateHardware(hw HardwareConfig) error {
	if strings.TrimSpace(hw.Motor.Name) == "" {
		return fmt.Errorf("hardware.motor.name is required")
	}
	if strings.TrimSpace(hw.Joystick.Name) == "" {
		return fmt.Errorf("hardware.joystick.name is required")
	}
	if hw.Motor.Name == hw.Joystick.Name {
		return fmt.Errorf("hardware unit names must differ, both are %q", hw.Motor.Name)
	}
	if hw.Motor.MaxSpeed <= 0 {
		return fmt.Errorf("hardware.motor.max_speed must be positive, got %v", hw.Motor.MaxSpeed)
	}
	if hw.Joystick.Deadzone < 0 || hw.Joystick.Deadzone >= 1 {
		return fmt.Errorf("hardware.joystick.deadzone must be in [0.0, 1.0), got %v", hw.Joystick.Deadzone)
	}
	if hw.Joystick.Axes < 1 {
		return fmt.Errorf("hardware.joystick.axes must be at least 1, got %d", hw.Joystick.Axes)
	}
	return nil
}

// ValidateUI checks layout and markdown style.
func ValidateUI(ui UIConfig) error {
	switch ui.Layout {
	case "", LayoutTabbed, LayoutTiled:
	default:
		return fmt.Errorf("ui.layout must be %q or %q, got %q", LayoutTabbed, LayoutTiled, ui.Layout)
	}
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	return nil
}

// ValidateTheme checks that theme colors are hex values.
func ValidateTheme(theme ThemeConfig) error {
	for key, value := range map[string]string{
		"highlight": theme.Highlight,
		"error":     theme.Error,
		"success":   theme.Success,
	} {
		if value != "" && !isHexColor(value) {
			return fmt.Errorf("theme.%s must be a hex color like \"#RRGGBB\", got %q", key, value)
		}
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 && len(s) != 4 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// ResolvePaths fills runtime-derived paths left empty in the file.
func (c *Config) ResolvePaths() {
	if c.Journal.Path == "" {
		c.Journal.Path = DefaultJournalPath()
	}
	if c.Tracing.FilePath == "" {
		c.Tracing.FilePath = DefaultTracesFilePath()
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# opdeck configuration

# Hardware units. A unit is connected when its device node exists at
# startup (or simulate is true). Connectivity is not re-probed while running.
hardware:
  motor:
    name: Motor Board
    device: /dev/ttyUSB0
    # simulate: true      # Treat the motor board as present
    max_speed: 1.0        # Velocity commanded at full stick deflection
  joystick:
    name: Joystick
    device: /dev/input/js0
    # simulate: true      # Drive a virtual stick with the arrow keys
    deadzone: 0.05        # Axis values below this magnitude read as 0
    axes: 2

# UI settings
ui:
  show_status_bar: true   # Show the latest log line at the bottom
  fullscreen: true        # Use the alternate screen
  layout: tabbed          # Panel layout: "tabbed" (default) or "tiled"
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"

# Theme colors
theme:
  highlight: "#54A0FF"
  error: "#FF8787"
  success: "#73F59F"

# Session journal (run 'opdeck journal' to list past runs)
journal:
  enabled: true
  # path: ~/.config/opdeck/journal.db

# Device hot-plug notices
hotplug:
  enabled: true
  debounce: 500ms

# Tracing of console actions
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/opdeck/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
