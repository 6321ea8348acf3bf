package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".durparse.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".durparse.yml"
)

// FileConfig represents values loaded from a .durparse.yaml file.
type FileConfig struct {
	Format        string `yaml:"format"`
	Output        string `yaml:"output"`
	Concurrency   *int   `yaml:"concurrency"`
	Timeout       string `yaml:"timeout"`
	Baseline      string `yaml:"baseline"`
	FailOnInvalid *bool  `yaml:"fail_on_invalid"`
	Human         *bool  `yaml:"human"`
}

// Normalize trims string fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.Format = strings.ToLower(strings.TrimSpace(fc.Format))
	fc.Output = strings.TrimSpace(fc.Output)
	fc.Timeout = strings.TrimSpace(fc.Timeout)
	fc.Baseline = strings.TrimSpace(fc.Baseline)
}

// ApplyFile copies file values into c for every setting the caller did not
// set explicitly. isSet reports whether a flag was given on the command line.
func (c *Config) ApplyFile(fc *FileConfig, isSet func(flag string) bool) error {
	if c == nil || fc == nil {
		return nil
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if fc.Format != "" && !isSet("format") {
		c.Format = fc.Format
	}
	if fc.Output != "" && !isSet("output") {
		c.OutputDir = fc.Output
	}
	if fc.Concurrency != nil && !isSet("concurrency") {
		c.Concurrency = *fc.Concurrency
	}
	if fc.Timeout != "" && !isSet("timeout") {
		timeout, err := ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in config file: %w", fc.Timeout, err)
		}
		c.Timeout = timeout
	}
	if fc.Baseline != "" && !isSet("baseline") {
		c.BaselinePath = fc.Baseline
	}
	if fc.FailOnInvalid != nil && !isSet("fail-on-invalid") {
		c.FailOnInvalid = *fc.FailOnInvalid
	}
	if fc.Human != nil && !isSet("human") {
		c.ShowHuman = *fc.Human
	}

	return nil
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}
