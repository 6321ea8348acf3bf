package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported report formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// Config holds all runtime configuration
type Config struct {
	// Evaluation settings
	Concurrency int
	Timeout     time.Duration

	// Output settings
	OutputDir string
	Format    string
	ShowHuman bool

	// Baseline settings
	BaselinePath   string
	UpdateBaseline bool

	// Exit behaviour
	FailOnInvalid bool

	// Operational flags
	Verbose bool
	DryRun  bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Concurrency:    4,
		Timeout:        30 * time.Second,
		OutputDir:      "./report",
		Format:         FormatText,
		ShowHuman:      true,
		BaselinePath:   "",
		UpdateBaseline: false,
		FailOnInvalid:  true,
		Verbose:        false,
		DryRun:         false,
	}
}

// Validate checks values that flags and config files cannot constrain on their own.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case FormatText, FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("invalid --format value %q: must be one of text, json, sarif", c.Format)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("invalid --concurrency value %d: must be at least 1", c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid --timeout value %s: must not be negative", c.Timeout)
	}
	if c.UpdateBaseline && strings.TrimSpace(c.BaselinePath) == "" {
		return fmt.Errorf("--update-baseline requires --baseline")
	}

	return nil
}
