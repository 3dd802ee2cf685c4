package config

import (
	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Content   ContentConfig   `mapstructure:"content" yaml:"content"`
	Traversal TraversalConfig `mapstructure:"traversal" yaml:"traversal"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ContentConfig locates the content root and the manifest written for it
type ContentConfig struct {
	Root     string `mapstructure:"root" yaml:"root"`
	Manifest string `mapstructure:"manifest" yaml:"manifest"`
}

// TraversalConfig controls how the content root is enumerated
type TraversalConfig struct {
	Order    string `mapstructure:"order" yaml:"order"`
	PathMode string `mapstructure:"path_mode" yaml:"path_mode"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Atomic   bool `mapstructure:"atomic" yaml:"atomic"`
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration. Unknown logging values fall back
// to defaults; everything else is an error.
func (c *Config) Validate() error {
	if c.Content.Root == "" {
		return domain.NewValidationError("content.root", "must not be empty", nil)
	}
	if c.Content.Manifest == "" {
		return domain.NewValidationError("content.manifest", "must not be empty", nil)
	}

	order, err := domain.ParseOrder(c.Traversal.Order)
	if err != nil {
		return domain.NewValidationError("traversal.order", err.Error(), err)
	}
	c.Traversal.Order = string(order)

	mode, err := domain.ParsePathMode(c.Traversal.PathMode)
	if err != nil {
		return domain.NewValidationError("traversal.path_mode", err.Error(), err)
	}
	c.Traversal.PathMode = string(mode)

	if !utils.IsValidLogLevel(c.Logging.Level) {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format != "pretty" && c.Logging.Format != "json" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

// Order returns the validated traversal order
func (c *Config) Order() domain.Order {
	return domain.Order(c.Traversal.Order)
}

// PathMode returns the validated relative path mode
func (c *Config) PathMode() domain.PathMode {
	return domain.PathMode(c.Traversal.PathMode)
}
