package config

import (
	"strings"

	"github.com/mvaneijk/tidycat/pkg/models"
)

// Config represents the application configuration. Only the sibling
// cleanup operations read it; the duplicate and transfer engines are
// driven entirely by the run parameters.
type Config struct {
	Access    AccessConfig    `yaml:"access"`
	Tricky    TrickyConfig    `yaml:"tricky"`
	Temporary TemporaryConfig `yaml:"temporary"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AccessConfig holds settings for permission normalization
type AccessConfig struct {
	// Mode is the permission bits applied by the access operation,
	// e.g. 0o644
	Mode uint32 `yaml:"mode"`
}

// TrickyConfig holds settings for tricky-character renaming
type TrickyConfig struct {
	// Characters is the set of characters replaced in filenames
	Characters string `yaml:"characters"`
	// Substitute is the replacement character
	Substitute string `yaml:"substitute"`
}

// TemporaryConfig holds settings for temporary-file removal
type TemporaryConfig struct {
	// Patterns are glob patterns matched against basenames
	Patterns []string `yaml:"patterns"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar while hashing
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	File   string `yaml:"file"`   // Log file path (empty = logging disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Access: AccessConfig{
			Mode: 0o644,
		},
		Tricky: TrickyConfig{
			Characters: " '\"`&()[]{};!#$~",
			Substitute: "_",
		},
		Temporary: TemporaryConfig{
			Patterns: []string{"*~", "*.tmp", "*.bak", "#*#"},
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
			File:   "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Access.Mode == 0 || c.Access.Mode > 0o777 {
		return &models.ValidationError{
			Field:   "access.mode",
			Message: "must be permission bits between 0o001 and 0o777",
		}
	}

	if c.Tricky.Characters == "" {
		return &models.ValidationError{
			Field:   "tricky.characters",
			Message: "character set must not be empty",
		}
	}

	if len([]rune(c.Tricky.Substitute)) != 1 {
		return &models.ValidationError{
			Field:   "tricky.substitute",
			Message: "substitute must be a single character",
		}
	}

	if strings.ContainsRune(c.Tricky.Characters, []rune(c.Tricky.Substitute)[0]) {
		return &models.ValidationError{
			Field:   "tricky.substitute",
			Message: "substitute must not be part of the replaced character set",
		}
	}

	if len(c.Temporary.Patterns) == 0 {
		return &models.ValidationError{
			Field:   "temporary.patterns",
			Message: "at least one pattern is required",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'text' or 'json'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
