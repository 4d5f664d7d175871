// Package cmd provides the CLI commands for paddock.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbmrq/paddock/internal/cache"
	"github.com/dbmrq/paddock/internal/config"
	perrors "github.com/dbmrq/paddock/internal/errors"
	"github.com/dbmrq/paddock/internal/ergast"
	"github.com/dbmrq/paddock/internal/fetch"
	"github.com/dbmrq/paddock/internal/logging"
	"github.com/dbmrq/paddock/internal/tui"
	"github.com/dbmrq/paddock/internal/version"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "paddock",
	Short: "Formula 1 standings in your terminal",
	Long: `Paddock shows the current Formula 1 drivers' and constructors'
championship standings side by side in your terminal.

Standings come from the Jolpica (Ergast-compatible) API and are cached
locally, so the last known standings are still shown when offline.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: <user config dir>/paddock/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs")
}

// runRoot loads the configuration and starts the dashboard.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if err := initLogging(cfg, verbose); err != nil {
		// Non-fatal: the dashboard works without file logging.
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	} else {
		defer func() { _ = logging.CloseGlobal() }()
		logging.Info("paddock starting", "version", Version, "verbose", verbose)
	}

	f, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return tui.Run(ctx, tui.Options{
		Fetcher:         f,
		StackBelowWidth: cfg.UI.StackBelowWidth,
	})
}

// loadConfig loads the file named by --config, or the default file if present.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if path == "" {
			path, _ = config.DefaultPath()
		}
		return nil, perrors.ConfigInvalid(path, err)
	}
	return cfg, nil
}

// initLogging sets up the global file logger. Logs never go to the terminal
// because the dashboard owns it.
func initLogging(cfg *config.Config, verbose bool) error {
	level, err := logging.ParseLevel(string(cfg.Log.Level))
	if err != nil {
		return err
	}
	if verbose {
		level = logging.LevelDebug
	}

	return logging.InitGlobal(&logging.Config{
		Level:       level,
		LogDir:      cfg.LogDir(),
		MaxLogFiles: cfg.Log.MaxFiles,
		MaxLogAge:   cfg.Log.MaxAge,
		JSONFormat:  cfg.Log.Format == config.LogFormatJSON,
	})
}

// newFetcher builds the API client, the cache store and the fetcher.
func newFetcher(cfg *config.Config) (*fetch.Fetcher, error) {
	client := ergast.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	client.UserAgent = version.NewInfo(Version, Commit, Date).UserAgent()

	opts := []fetch.Option{fetch.WithTTL(cfg.Cache.TTL)}

	if cfg.Cache.Disabled {
		logging.Info("cache disabled")
		return fetch.New(client, nil, opts...), nil
	}

	path, err := cfg.CachePath()
	if err != nil {
		return nil, perrors.CacheUnavailable("", err)
	}
	logging.Debug("using cache", "path", path)
	return fetch.New(client, cache.NewStore(path), opts...), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set version info here after main.go has set the variables.
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("paddock {{.Version}}\n")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprint(os.Stderr, perrors.Formatted(err))
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}
