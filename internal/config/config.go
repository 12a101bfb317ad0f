// Package config handles configuration loading and validation for restrokey.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"restrokey/internal/synth"
	"restrokey/internal/translit"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete application configuration. It is read
// once at startup; runtime changes made in the panel are never
// written back.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Input configures interception and transliteration behavior.
	Input InputConfig `toml:"input" json:"input" yaml:"input"`

	// Synth configures synthetic input injection.
	Synth SynthConfig `toml:"synth" json:"synth" yaml:"synth"`

	// Layout configures the transliteration layout source.
	Layout LayoutConfig `toml:"layout" json:"layout" yaml:"layout"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// UI configures the settings panel.
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`
}

// InputConfig holds interception and engine configuration.
type InputConfig struct {
	// Enabled is the master switch at startup.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// ActiveScript is the startup script: "bengali" or "latin".
	ActiveScript string `toml:"active_script" json:"active_script" yaml:"active_script"`

	// HotkeyEnabled controls the Ctrl+Space script toggle.
	HotkeyEnabled bool `toml:"hotkey_enabled" json:"hotkey_enabled" yaml:"hotkey_enabled"`

	// InterceptAll controls whether letters and digits are
	// transliterated while the Bengali script is active.
	InterceptAll bool `toml:"intercept_all" json:"intercept_all" yaml:"intercept_all"`

	// OverflowThreshold is the pending-cluster length that forces a
	// reset. Zero selects the built-in default.
	OverflowThreshold int `toml:"overflow_threshold" json:"overflow_threshold" yaml:"overflow_threshold"`
}

// SynthConfig holds the injection delays in milliseconds.
type SynthConfig struct {
	// EraseDelayMs follows each synthetic backspace.
	EraseDelayMs int `toml:"erase_delay_ms" json:"erase_delay_ms" yaml:"erase_delay_ms"`

	// PreInsertDelayMs separates erasures from insertions.
	PreInsertDelayMs int `toml:"pre_insert_delay_ms" json:"pre_insert_delay_ms" yaml:"pre_insert_delay_ms"`

	// InsertDelayMs follows each injected codepoint.
	InsertDelayMs int `toml:"insert_delay_ms" json:"insert_delay_ms" yaml:"insert_delay_ms"`
}

// LayoutConfig holds the layout file configuration.
type LayoutConfig struct {
	// Path is a layout file to load instead of the built-in table.
	// Empty selects the built-in Bengali layout.
	Path string `toml:"path" json:"path" yaml:"path"`

	// WatchReload enables live reload of the layout file into the
	// panel preview.
	WatchReload bool `toml:"watch_reload" json:"watch_reload" yaml:"watch_reload"`

	// DebounceMs is how long the file must stay quiet before a
	// reload is attempted.
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is the log format: "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is the log output: "stdout", "stderr", or "file".
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the path to the log file (when Output is "file").
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// UIConfig holds settings panel configuration.
type UIConfig struct {
	// FontSize is the panel font size in points.
	FontSize float64 `toml:"font_size" json:"font_size" yaml:"font_size"`

	// DarkTheme selects the dark palette.
	DarkTheme bool `toml:"dark_theme" json:"dark_theme" yaml:"dark_theme"`

	// ShowSuggestions shows the per-prefix suggestion column.
	ShowSuggestions bool `toml:"show_suggestions" json:"show_suggestions" yaml:"show_suggestions"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Input: InputConfig{
			Enabled:           true,
			ActiveScript:      "bengali",
			HotkeyEnabled:     true,
			InterceptAll:      true,
			OverflowThreshold: translit.DefaultOverflowThreshold,
		},
		Synth: SynthConfig{
			EraseDelayMs:     5,
			PreInsertDelayMs: 5,
			InsertDelayMs:    1,
		},
		Layout: LayoutConfig{
			Path:        "",
			WatchReload: true,
			DebounceMs:  500,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "file",
			FilePath: filepath.Join(PlatformLogDir(), "restrokey.log"),
		},
		UI: UIConfig{
			FontSize:        14,
			DarkTheme:       false,
			ShowSuggestions: true,
		},
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(PlatformConfigDir(), "config.toml")
}

// Load reads configuration from the specified path. A missing file is
// not an error; defaults are returned. The format follows the file
// extension, with TOML, JSON and YAML supported.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		// Try TOML by default.
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode config (unknown format): %w", err)
		}
	}

	cfg.ApplyEnvOverrides()

	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides. Variables
// are prefixed with RESTROKEY_.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RESTROKEY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("RESTROKEY_LOG_PATH"); v != "" {
		c.Logging.Output = "file"
		c.Logging.FilePath = v
	}
	if v := os.Getenv("RESTROKEY_LAYOUT_PATH"); v != "" {
		c.Layout.Path = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{PlatformConfigDir()}
	if c.Logging.Output == "file" && c.Logging.FilePath != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.FilePath))
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SynthOptions converts the configured delays into injector options.
func (c *Config) SynthOptions() synth.Options {
	return synth.Options{
		EraseDelay:     time.Duration(c.Synth.EraseDelayMs) * time.Millisecond,
		PreInsertDelay: time.Duration(c.Synth.PreInsertDelayMs) * time.Millisecond,
		InsertDelay:    time.Duration(c.Synth.InsertDelayMs) * time.Millisecond,
	}
}

// LayoutDebounce returns the layout watcher debounce interval.
func (c *Config) LayoutDebounce() time.Duration {
	return time.Duration(c.Layout.DebounceMs) * time.Millisecond
}
