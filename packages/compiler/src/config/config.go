package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default name of the compiler config file
	ConfigFileName = "wcc.yaml"

	DefaultDirectivePrefix    = "w:"
	DefaultComponentSeparator = "-"
	DefaultInterpolationStart = "{{"
	DefaultInterpolationEnd   = "}}"
	DefaultCollaboratorName   = "__wScheduler"
	DefaultCollaboratorType   = "Scheduler"
	DefaultCollaboratorMethod = "markForCheck"
	DefaultResultPrefix       = "__wResult"
)

var validate = validator.New()

// CollaboratorConfig describes the constructor parameter threaded into every
// class whose callbacks were instrumented
type CollaboratorConfig struct {
	Name   string `yaml:"name" validate:"required,excludesall=.() "`
	Type   string `yaml:"type" validate:"required"`
	Scope  string `yaml:"scope,omitempty" validate:"omitempty,oneof=private public protected"`
	Method string `yaml:"method" validate:"required,excludesall=.() "`
}

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	DirectivePrefix     string             `yaml:"directive_prefix" validate:"required,len=2"`
	ComponentSeparator  string             `yaml:"component_separator" validate:"required,len=1"`
	InterpolationStart  string             `yaml:"interpolation_start" validate:"required"`
	InterpolationEnd    string             `yaml:"interpolation_end" validate:"required"`
	PreserveWhitespaces bool               `yaml:"preserve_whitespaces"`
	Collaborator        CollaboratorConfig `yaml:"collaborator"`
	ResultPrefix        string             `yaml:"result_prefix" validate:"required,excludesall=.() "`
	LogLevel            string             `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		DirectivePrefix:     DefaultDirectivePrefix,
		ComponentSeparator:  DefaultComponentSeparator,
		InterpolationStart:  DefaultInterpolationStart,
		InterpolationEnd:    DefaultInterpolationEnd,
		PreserveWhitespaces: true,
		Collaborator: CollaboratorConfig{
			Name:   DefaultCollaboratorName,
			Type:   DefaultCollaboratorType,
			Scope:  "private",
			Method: DefaultCollaboratorMethod,
		},
		ResultPrefix: DefaultResultPrefix,
		LogLevel:     "info",
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithPreserveWhitespaces sets whether to preserve whitespaces
func WithPreserveWhitespaces(preserve bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.PreserveWhitespaces = preserve
	}
}

// WithDirectivePrefix sets the reserved directive tag prefix
func WithDirectivePrefix(prefix string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.DirectivePrefix = prefix
	}
}

// WithCollaborator sets the injected constructor parameter
func WithCollaborator(collaborator CollaboratorConfig) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Collaborator = collaborator
	}
}

// Validate checks the configuration against its constraints
func (c *CompilerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.InterpolationStart == c.InterpolationEnd {
		return fmt.Errorf("invalid config: interpolation delimiters must differ, both are %q", c.InterpolationStart)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level
func (c *CompilerConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig reads path over the defaults. An empty path or a missing
// file yields the defaults.
func LoadConfig(path string, opts ...CompilerConfigOption) (*CompilerConfig, error) {
	config := NewCompilerConfig(opts...)
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to path as YAML
func SaveConfig(path string, config *CompilerConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
