// Package config handles configuration loading and validation for restrokey.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateConfig performs validation of the whole configuration.
func ValidateConfig(c *Config) error {
	var errs ValidationErrors

	if c.Version < 1 || c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}

	errs = append(errs, validateInput(&c.Input)...)
	errs = append(errs, validateSynth(&c.Synth)...)
	errs = append(errs, validateLayout(&c.Layout)...)
	errs = append(errs, validateLogging(&c.Logging)...)
	errs = append(errs, validateUI(&c.UI)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateInput(c *InputConfig) ValidationErrors {
	var errs ValidationErrors
	switch c.ActiveScript {
	case "bengali", "latin":
	default:
		errs = append(errs, ValidationError{
			Field:   "input.active_script",
			Message: fmt.Sprintf("must be %q or %q, got %q", "bengali", "latin", c.ActiveScript),
		})
	}
	if c.OverflowThreshold < 0 {
		errs = append(errs, ValidationError{
			Field:   "input.overflow_threshold",
			Message: "must not be negative",
		})
	}
	return errs
}

func validateSynth(c *SynthConfig) ValidationErrors {
	var errs ValidationErrors
	for _, d := range []struct {
		field string
		value int
	}{
		{"synth.erase_delay_ms", c.EraseDelayMs},
		{"synth.pre_insert_delay_ms", c.PreInsertDelayMs},
		{"synth.insert_delay_ms", c.InsertDelayMs},
	} {
		if d.value < 0 {
			errs = append(errs, ValidationError{Field: d.field, Message: "must not be negative"})
		}
		// An overlong delay makes typing feel broken long before it
		// breaks anything else.
		if d.value > 1000 {
			errs = append(errs, ValidationError{Field: d.field, Message: "must be at most 1000"})
		}
	}
	return errs
}

func validateLayout(c *LayoutConfig) ValidationErrors {
	var errs ValidationErrors
	if c.Path != "" {
		switch strings.ToLower(filepath.Ext(c.Path)) {
		case ".toml", ".json", ".yaml", ".yml":
		default:
			errs = append(errs, ValidationError{
				Field:   "layout.path",
				Message: fmt.Sprintf("unsupported layout format %q", filepath.Ext(c.Path)),
			})
		}
		if _, err := os.Stat(c.Path); err != nil {
			errs = append(errs, ValidationError{
				Field:   "layout.path",
				Message: fmt.Sprintf("not readable: %v", err),
			})
		}
	}
	if c.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "layout.debounce_ms",
			Message: "must not be negative",
		})
	}
	return errs
}

func validateLogging(c *LoggingConfig) ValidationErrors {
	var errs ValidationErrors
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", c.Level),
		})
	}
	switch c.Format {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be %q or %q, got %q", "text", "json", c.Format),
		})
	}
	switch c.Output {
	case "stdout", "stderr":
	case "file":
		if c.FilePath == "" {
			errs = append(errs, ValidationError{
				Field:   "logging.file_path",
				Message: "required when output is \"file\"",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.output",
			Message: fmt.Sprintf("must be stdout, stderr or file; got %q", c.Output),
		})
	}
	return errs
}

func validateUI(c *UIConfig) ValidationErrors {
	var errs ValidationErrors
	if c.FontSize < 8 || c.FontSize > 72 {
		errs = append(errs, ValidationError{
			Field:   "ui.font_size",
			Message: fmt.Sprintf("must be between 8 and 72, got %g", c.FontSize),
		})
	}
	return errs
}
