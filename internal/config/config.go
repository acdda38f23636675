package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Graylog2/reviewbot/internal/usecase/annotate"
)

// Config represents the full application configuration. It is resolved
// once at startup and immutable for the run.
type Config struct {
	// Prefix is the subdirectory under which lintable files live. Required.
	Prefix string `yaml:"prefix"`

	// WorkingDirectory is the root relative to which output file paths
	// are normalized. Defaults to the current directory.
	WorkingDirectory string `yaml:"workingDirectory"`

	ESLint      ESLintConfig      `yaml:"eslint"`
	Annotations AnnotationsConfig `yaml:"annotations"`
	Summary     SummaryConfig     `yaml:"summary"`
	Server      ServerConfig      `yaml:"server"`
	Store       StoreConfig       `yaml:"store"`
}

// ESLintConfig configures the external linter invocation.
type ESLintConfig struct {
	Binary  string `yaml:"binary"`
	Timeout string `yaml:"timeout"`
}

// AnnotationsConfig selects the annotation formatting style.
type AnnotationsConfig struct {
	Style string `yaml:"style"`
}

// SummaryConfig configures the job summary destination. When Path is
// empty the GITHUB_STEP_SUMMARY environment variable is used.
type SummaryConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the webhook server mode.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig configures the optional run-history store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Validate checks the configuration before any work starts.
func (c Config) Validate() error {
	if c.Prefix == "" {
		return errors.New("prefix is required")
	}
	if _, err := time.ParseDuration(c.ESLint.Timeout); err != nil {
		return fmt.Errorf("invalid eslint timeout %q: %w", c.ESLint.Timeout, err)
	}
	if !annotate.Style(c.Annotations.Style).Valid() {
		return fmt.Errorf("invalid annotation style %q", c.Annotations.Style)
	}
	return nil
}

// LintTimeout returns the parsed lint timeout. Validate must have
// accepted the configuration first.
func (c Config) LintTimeout() time.Duration {
	d, err := time.ParseDuration(c.ESLint.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// SummaryPath resolves the summary destination, falling back to the
// GITHUB_STEP_SUMMARY environment variable.
func (c Config) SummaryPath() string {
	if c.Summary.Path != "" {
		return c.Summary.Path
	}
	return os.Getenv("GITHUB_STEP_SUMMARY")
}
