package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbmrq/paddock/internal/config"
	perrors "github.com/dbmrq/paddock/internal/errors"
	"github.com/dbmrq/paddock/internal/logging"
)

// newTestRoot creates a fresh command hierarchy for testing.
// This is necessary because Cobra commands maintain state between runs.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "paddock",
		Short:         "Formula 1 standings in your terminal",
		Long:          "Paddock shows the current Formula 1 standings in your terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
	root.Version = "test"
	root.SetVersionTemplate("paddock {{.Version}}\n")
	root.PersistentFlags().String("config", "", "config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE:  runVersion,
	})

	configC := &cobra.Command{
		Use:   "config",
		Short: "Manage the paddock configuration file",
	}
	root.AddCommand(configC)

	initC := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		RunE:  runConfigInit,
	}
	initC.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
	configC.AddCommand(initC)

	configC.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE:  runConfigPath,
	})

	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd := newTestRoot()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "help flag",
			args:       []string{"--help"},
			wantOutput: "Available Commands:",
		},
		{
			name:       "version flag",
			args:       []string{"--version"},
			wantOutput: "paddock test",
		},
		{
			name:    "unknown command",
			args:    []string{"unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantOutput != "" && !strings.Contains(out, tt.wantOutput) {
				t.Errorf("Output = %q, want to contain %q", out, tt.wantOutput)
			}
		})
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !errors.Is(err, perrors.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
	if !perrors.IsUserError(err) {
		t.Error("a bad config file is a user error")
	}
	if !strings.Contains(perrors.Formatted(err), "paddock config init --force") {
		t.Error("formatted error should suggest regenerating the config")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"paddock " + Version, "Commit:", "OS/Arch:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output = %q, want to contain %q", out, want)
		}
	}
}

func TestConfigPathCommand(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		out, err := execute(t, "--config", "/etc/paddock.yaml", "config", "path")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if strings.TrimSpace(out) != "/etc/paddock.yaml" {
			t.Errorf("Output = %q", out)
		}
	})

	t.Run("default", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)

		out, err := execute(t, "config", "path")
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		want := filepath.Join(dir, "paddock", "config.yaml")
		if strings.TrimSpace(out) != want {
			t.Errorf("Output = %q, want %q", out, want)
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paddock", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, "Created "+path) {
		t.Errorf("Output = %q", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config should load: %v", err)
	}
	if cfg.Cache.TTL != time.Hour || cfg.API.BaseURL != config.DefaultBaseURL {
		t.Errorf("written config is not the default: %+v", cfg)
	}

	// A second init refuses to overwrite.
	_, err = execute(t, "--config", path, "config", "init")
	if !errors.Is(err, perrors.ErrConfig) {
		t.Fatalf("expected ErrConfig for existing file, got %v", err)
	}

	if err := os.WriteFile(path, []byte("ui:\n  stack_below_width: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force error = %v", err)
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.StackBelowWidth != config.DefaultStackBelowWidth {
		t.Error("--force should restore the defaults")
	}
}

func TestNewFetcher(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cache.Path = filepath.Join(t.TempDir(), "f1_cache.json")

	f, err := newFetcher(cfg)
	if err != nil || f == nil {
		t.Fatalf("newFetcher() = %v, %v", f, err)
	}

	cfg.Cache.Disabled = true
	f, err = newFetcher(cfg)
	if err != nil || f == nil {
		t.Fatalf("newFetcher() with cache disabled = %v, %v", f, err)
	}
}

func TestInitLogging(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Log.Dir = t.TempDir()
	cfg.Log.Level = config.LogLevelWarn

	if err := initLogging(cfg, true); err != nil {
		t.Fatalf("initLogging() error = %v", err)
	}
	t.Cleanup(func() { _ = logging.CloseGlobal() })

	entries, err := os.ReadDir(cfg.Log.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "paddock_") {
		t.Errorf("expected one paddock log file, got %v", entries)
	}
}

func TestRoot(t *testing.T) {
	if Root() != rootCmd {
		t.Error("Root() should return the root command")
	}
	for _, name := range []string{"version", "config"} {
		if c, _, err := Root().Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("root should have a %q subcommand", name)
		}
	}
}
