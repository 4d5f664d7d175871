// Package config provides configuration data structures for paddock.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dbmrq/paddock/internal/cache"
)

// Config is the complete paddock configuration. Every field has a working
// default, so the file is optional.
type Config struct {
	API   APIConfig   `yaml:"api"   json:"api"   mapstructure:"api"`
	Cache CacheConfig `yaml:"cache" json:"cache" mapstructure:"cache"`
	Log   LogConfig   `yaml:"log"   json:"log"   mapstructure:"log"`
	UI    UIConfig    `yaml:"ui"    json:"ui"    mapstructure:"ui"`
}

// APIConfig configures the standings API client.
type APIConfig struct {
	// BaseURL is the Ergast-compatible endpoint root.
	BaseURL string `yaml:"base_url" json:"base_url" mapstructure:"base_url"`
	// Timeout bounds a single request (default: 8s).
	Timeout time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
}

// CacheConfig configures the local standings cache.
type CacheConfig struct {
	// Path is the cache file. Empty means the user cache directory.
	Path string `yaml:"path" json:"path" mapstructure:"path"`
	// TTL is how long cached standings are shown without asking the API (default: 60m).
	TTL time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
	// Disabled turns the cache off entirely.
	Disabled bool `yaml:"disabled" json:"disabled" mapstructure:"disabled"`
}

// LogLevel is the minimum level written to the log file.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the log file encoding.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogConfig configures file logging.
type LogConfig struct {
	// Dir is the log directory. Empty means <user cache dir>/paddock/logs.
	Dir      string        `yaml:"dir"       json:"dir"       mapstructure:"dir"`
	Level    LogLevel      `yaml:"level"     json:"level"     mapstructure:"level"`
	Format   LogFormat     `yaml:"format"    json:"format"    mapstructure:"format"`
	MaxFiles int           `yaml:"max_files" json:"max_files" mapstructure:"max_files"`
	MaxAge   time.Duration `yaml:"max_age"   json:"max_age"   mapstructure:"max_age"`
}

// UIConfig configures the dashboard layout.
type UIConfig struct {
	// StackBelowWidth stacks the tables vertically on narrower terminals (default: 110).
	StackBelowWidth int `yaml:"stack_below_width" json:"stack_below_width" mapstructure:"stack_below_width"`
}

// Default values.
const (
	DefaultBaseURL         = "https://api.jolpi.ca/ergast/f1"
	DefaultAPITimeout      = 8 * time.Second
	DefaultCacheTTL        = 60 * time.Minute
	DefaultLogMaxFiles     = 10
	DefaultLogMaxAge       = 7 * 24 * time.Hour
	DefaultStackBelowWidth = 110
)

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultAPITimeout,
		},
		Cache: CacheConfig{
			TTL: DefaultCacheTTL,
		},
		Log: LogConfig{
			Level:    LogLevelInfo,
			Format:   LogFormatText,
			MaxFiles: DefaultLogMaxFiles,
			MaxAge:   DefaultLogMaxAge,
		},
		UI: UIConfig{
			StackBelowWidth: DefaultStackBelowWidth,
		},
	}
}

// ApplyDefaults fills in zero values left by a partial config file.
// Cache.TTL is left alone because zero is meaningful (always refetch).
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Log.MaxFiles == 0 {
		c.Log.MaxFiles = defaults.Log.MaxFiles
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = defaults.Log.MaxAge
	}
	if c.UI.StackBelowWidth == 0 {
		c.UI.StackBelowWidth = defaults.UI.StackBelowWidth
	}
}

// CachePath returns the configured cache file, resolving the default location.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	return cache.DefaultPath()
}

// LogDir returns the configured log directory, resolving the default location.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "paddock", "logs")
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, &ValidationError{Field: "api.base_url", Message: "must be an http(s) URL"})
	}
	if c.API.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "api.timeout", Message: "must be non-negative"})
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, &ValidationError{Field: "cache.ttl", Message: "must be non-negative"})
	}

	if c.Log.Level != "" {
		switch c.Log.Level {
		case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		default:
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: "must be 'debug', 'info', 'warn', or 'error'",
			})
		}
	}
	if c.Log.Format != "" {
		switch c.Log.Format {
		case LogFormatText, LogFormatJSON:
		default:
			errs = append(errs, &ValidationError{
				Field:   "log.format",
				Message: "must be 'text' or 'json'",
			})
		}
	}
	if c.Log.MaxFiles < 0 {
		errs = append(errs, &ValidationError{Field: "log.max_files", Message: "must be non-negative"})
	}
	if c.Log.MaxAge < 0 {
		errs = append(errs, &ValidationError{Field: "log.max_age", Message: "must be non-negative"})
	}
	if c.UI.StackBelowWidth < 0 {
		errs = append(errs, &ValidationError{Field: "ui.stack_below_width", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
