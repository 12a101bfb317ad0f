package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Input.ActiveScript != "bengali" {
		t.Errorf("ActiveScript = %q, want bengali", cfg.Input.ActiveScript)
	}
	if !cfg.Input.Enabled || !cfg.Input.HotkeyEnabled || !cfg.Input.InterceptAll {
		t.Error("interception defaults should all be on")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Synth.EraseDelayMs != 5 {
		t.Errorf("EraseDelayMs = %d, want default 5", cfg.Synth.EraseDelayMs)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = 1

[input]
enabled = false
active_script = "latin"
overflow_threshold = 8

[synth]
erase_delay_ms = 10

[logging]
level = "debug"
output = "stderr"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.Enabled {
		t.Error("Enabled not overridden")
	}
	if cfg.Input.ActiveScript != "latin" {
		t.Errorf("ActiveScript = %q", cfg.Input.ActiveScript)
	}
	if cfg.Input.OverflowThreshold != 8 {
		t.Errorf("OverflowThreshold = %d", cfg.Input.OverflowThreshold)
	}
	if cfg.Synth.EraseDelayMs != 10 {
		t.Errorf("EraseDelayMs = %d", cfg.Synth.EraseDelayMs)
	}
	// Untouched sections keep their defaults.
	if cfg.Synth.InsertDelayMs != 1 {
		t.Errorf("InsertDelayMs = %d, want default 1", cfg.Synth.InsertDelayMs)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Output != "stderr" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"version": 1, "ui": {"font_size": 18, "dark_theme": true, "show_suggestions": false}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.FontSize != 18 || !cfg.UI.DarkTheme || cfg.UI.ShowSuggestions {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "version: 1\nlayout:\n  watch_reload: false\n  debounce_ms: 250\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.WatchReload {
		t.Error("WatchReload not overridden")
	}
	if got := cfg.LayoutDebounce(); got != 250*time.Millisecond {
		t.Errorf("LayoutDebounce = %v", got)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[input\nbroken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad script", func(c *Config) { c.Input.ActiveScript = "klingon" }, "input.active_script"},
		{"negative threshold", func(c *Config) { c.Input.OverflowThreshold = -1 }, "input.overflow_threshold"},
		{"negative delay", func(c *Config) { c.Synth.EraseDelayMs = -5 }, "synth.erase_delay_ms"},
		{"huge delay", func(c *Config) { c.Synth.InsertDelayMs = 5000 }, "synth.insert_delay_ms"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"file output without path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }, "logging.file_path"},
		{"tiny font", func(c *Config) { c.UI.FontSize = 2 }, "ui.font_size"},
		{"bad version", func(c *Config) { c.Version = 99 }, "version"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error %q does not mention %q", err, tc.field)
			}
		})
	}
}

func TestValidateLayoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Path = filepath.Join(t.TempDir(), "missing.toml")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing layout file")
	}

	path := filepath.Join(t.TempDir(), "layout.csv")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg = DefaultConfig()
	cfg.Layout.Path = path
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "layout.path") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RESTROKEY_LOG_LEVEL", "warn")
	t.Setenv("RESTROKEY_LAYOUT_PATH", "/tmp/alt-layout.toml")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Layout.Path != "/tmp/alt-layout.toml" {
		t.Errorf("Layout.Path = %q", cfg.Layout.Path)
	}
}

func TestSynthOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.SynthOptions()
	if opts.EraseDelay != 5*time.Millisecond ||
		opts.PreInsertDelay != 5*time.Millisecond ||
		opts.InsertDelay != time.Millisecond {
		t.Errorf("options = %+v", opts)
	}
}
