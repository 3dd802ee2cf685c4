package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	// Content defaults
	DefaultContentRoot  = "./Content/"
	DefaultManifestPath = "./Content/Content.mgcb"

	// Traversal defaults
	DefaultOrder    = "filesystem"
	DefaultPathMode = "literal"

	// Output defaults
	DefaultAtomic   = false
	DefaultProgress = false

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// EnvPrefix prefixes every environment variable (MGCBGEN_CONTENT_ROOT, ...)
	EnvPrefix = "MGCBGEN"

	// ConfigName is the config file base name, looked up in . and ConfigDir
	ConfigName = "mgcbgen"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mgcbgen"
	}
	return filepath.Join(home, ".mgcbgen")
}

// ConfigFilePath returns the user-level config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigName+".yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Root:     DefaultContentRoot,
			Manifest: DefaultManifestPath,
		},
		Traversal: TraversalConfig{
			Order:    DefaultOrder,
			PathMode: DefaultPathMode,
		},
		Output: OutputConfig{
			Atomic:   DefaultAtomic,
			Progress: DefaultProgress,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
