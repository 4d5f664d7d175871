package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the user config dir at an empty temp dir and returns a
// loader that ignores any real .env file.
func isolate(t *testing.T) *Loader {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	l := NewLoader()
	l.DotEnvPath = filepath.Join(t.TempDir(), ".env")
	return l
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	l := isolate(t)

	cfg, err := l.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL || cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	l := isolate(t)

	_, err := l.LoadConfig("nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != "nonexistent/config.yaml" {
		t.Errorf("Path = %q", loadErr.Path)
	}
	if loadErr.Message != "config file not found" {
		t.Errorf("Message = %q", loadErr.Message)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	l := isolate(t)
	path := writeConfig(t, `
api:
  base_url: http://localhost:8000/ergast/f1
  timeout: 3s
cache:
  path: /tmp/paddock-test.json
  ttl: 5m
log:
  level: DEBUG
  format: json
ui:
  stack_below_width: 90
`)

	cfg, err := l.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000/ergast/f1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Cache.Path != "/tmp/paddock-test.json" || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Log.Level != LogLevelDebug || cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.UI.StackBelowWidth != 90 {
		t.Errorf("UI.StackBelowWidth = %d", cfg.UI.StackBelowWidth)
	}
	// untouched sections keep defaults
	if cfg.Log.MaxFiles != DefaultLogMaxFiles {
		t.Errorf("Log.MaxFiles = %d", cfg.Log.MaxFiles)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	l := isolate(t)
	path := writeConfig(t, "api: [unclosed")

	_, err := l.LoadConfig(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if loadErr.Message != "failed to read config file" {
		t.Errorf("Message = %q", loadErr.Message)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	l := isolate(t)
	path := writeConfig(t, "log:\n  level: shouty\n")

	_, err := l.LoadConfig(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if loadErr.Message != "configuration validation failed" {
		t.Errorf("Message = %q", loadErr.Message)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Error("validation errors should be reachable with errors.As")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	l := isolate(t)
	path := writeConfig(t, "cache:\n  ttl: 5m\n")

	t.Setenv("PADDOCK_API_BASE_URL", "http://mirror.local/f1")
	t.Setenv("PADDOCK_API_TIMEOUT", "2s")
	t.Setenv("PADDOCK_CACHE_TTL", "30m")
	t.Setenv("PADDOCK_CACHE_DISABLED", "yes")
	t.Setenv("PADDOCK_LOG_LEVEL", "WARN")
	t.Setenv("PADDOCK_UI_STACK_BELOW_WIDTH", "80")

	cfg, err := l.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.API.BaseURL != "http://mirror.local/f1" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %v", cfg.Cache.TTL)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled should be true")
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.UI.StackBelowWidth != 80 {
		t.Errorf("UI.StackBelowWidth = %d", cfg.UI.StackBelowWidth)
	}
}

func TestLoad_InvalidEnvDurationIgnored(t *testing.T) {
	l := isolate(t)
	t.Setenv("PADDOCK_CACHE_TTL", "soon")

	cfg, err := l.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("Cache.TTL = %v, want default", cfg.Cache.TTL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	l := isolate(t)
	// t.Setenv registers cleanup so the value godotenv sets is restored.
	t.Setenv("PADDOCK_LOG_FORMAT", "")
	os.Unsetenv("PADDOCK_LOG_FORMAT")

	if err := os.WriteFile(l.DotEnvPath, []byte("PADDOCK_LOG_FORMAT=json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := l.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log.Format = %q, want json from .env", cfg.Log.Format)
	}
}

func TestSaveThenLoad(t *testing.T) {
	l := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := NewConfig()
	cfg.API.Timeout = 4 * time.Second
	cfg.Cache.Disabled = true
	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := l.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.API.Timeout != 4*time.Second || !loaded.Cache.Disabled {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
}

func TestLoadError_Error(t *testing.T) {
	err := &LoadError{Path: "c.yaml", Message: "bad"}
	if err.Error() != "c.yaml: bad" {
		t.Errorf("Error() = %q", err.Error())
	}
	err.Err = errors.New("cause")
	if err.Error() != "c.yaml: bad: cause" {
		t.Errorf("Error() = %q", err.Error())
	}
}
