package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads configuration from file, .env, environment, and defaults.
// Uses the global viper instance to pick up CLI flag bindings.
func Load() (*Config, error) {
	return LoadWithViper(viper.GetViper())
}

// LoadWithViper loads configuration into the given viper instance. An
// explicitly set config file must exist; the default lookup is optional.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// SetConfigName would discard a file chosen with --config
	if v.ConfigFileUsed() == "" {
		// no SetConfigType: an extensionless "mgcbgen" in . is the binary
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// .env never overrides variables already set in the environment
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// Environment variables (MGCBGEN_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("content.root", DefaultContentRoot)
	v.SetDefault("content.manifest", DefaultManifestPath)

	v.SetDefault("traversal.order", DefaultOrder)
	v.SetDefault("traversal.path_mode", DefaultPathMode)

	v.SetDefault("output.atomic", DefaultAtomic)
	v.SetDefault("output.progress", DefaultProgress)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
