// Package config provides configuration loading and management for paddock.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "PADDOCK"

	// DefaultDotEnvPath is loaded into the environment before overrides are read.
	DefaultDotEnvPath = ".env"
)

// DefaultPath returns <user config dir>/paddock/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, "paddock", "config.yaml"), nil
}

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper

	// DotEnvPath is an optional .env file; a missing file is ignored.
	DotEnvPath string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, DotEnvPath: DefaultDotEnvPath}
}

// LoadConfig loads configuration from path, merges environment variables,
// applies defaults and validates the result.
//
// An empty path means DefaultPath(); if that file does not exist the defaults
// are used. An explicit path must exist.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if err := l.loadDotEnv(); err != nil {
		return nil, &LoadError{Path: l.DotEnvPath, Message: "failed to read .env file", Err: err}
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, &LoadError{Message: "no config path", Err: err}
		}
		path = p
	}

	cfg := NewConfig()

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, &LoadError{
				Path:    path,
				Message: "config file not found",
				Err:     err,
			}
		}
	} else {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "failed to read config file",
				Err:     err,
			}
		}
		if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "failed to parse config file",
				Err:     err,
			}
		}
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

func (l *Loader) loadDotEnv() error {
	if l.DotEnvPath == "" {
		return nil
	}
	if _, err := os.Stat(l.DotEnvPath); os.IsNotExist(err) {
		return nil
	}
	// godotenv.Load never overrides variables that are already set.
	return godotenv.Load(l.DotEnvPath)
}

// applyEnvOverrides applies PADDOCK_* environment variables to the config.
// Unparsable values are ignored.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if d, ok := envDuration("_API_TIMEOUT"); ok {
		cfg.API.Timeout = d
	}

	if v := os.Getenv(EnvPrefix + "_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if d, ok := envDuration("_CACHE_TTL"); ok {
		cfg.Cache.TTL = d
	}
	if v := os.Getenv(EnvPrefix + "_CACHE_DISABLED"); v != "" {
		cfg.Cache.Disabled = parseBool(v)
	}

	if v := os.Getenv(EnvPrefix + "_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = LogLevel(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "_LOG_FORMAT"); v != "" {
		cfg.Log.Format = LogFormat(strings.ToLower(v))
	}

	if v := os.Getenv(EnvPrefix + "_UI_STACK_BELOW_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.StackBelowWidth = n
		}
	}
}

func envDuration(suffix string) (time.Duration, bool) {
	v := os.Getenv(EnvPrefix + suffix)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// parseBool returns true for "true", "1", "yes" (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook composes the standard mapstructure hooks with ours.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc decodes our string enum types case-insensitively.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		switch to {
		case reflect.TypeOf(LogLevel("")):
			return LogLevel(strings.ToLower(data.(string))), nil
		case reflect.TypeOf(LogFormat("")):
			return LogFormat(strings.ToLower(data.(string))), nil
		}

		return data, nil
	}
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}
