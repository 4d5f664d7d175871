package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbmrq/paddock/internal/config"
	perrors "github.com/dbmrq/paddock/internal/errors"
)

// configCmd groups the configuration commands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the paddock configuration file",
	Long: `Manage the optional paddock configuration file.

paddock works without a configuration file. Settings can also be given
as PADDOCK_* environment variables or in a .env file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Write a configuration file with the default settings.

Examples:
  paddock config init                      # Write the default file
  paddock config init --force              # Overwrite an existing file
  paddock --config ./paddock.yaml config init`,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
}

// configFilePath returns --config or the default location.
func configFilePath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// runConfigInit writes the default configuration.
func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path, err := configFilePath(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return perrors.WithSuggestion(perrors.ErrConfig,
			"configuration file already exists: "+path,
			"Use --force to overwrite it with the defaults").
			WithDetails("path", path)
	}

	if err := config.Save(config.NewConfig(), path); err != nil {
		return err
	}

	cmd.Printf("Created %s\n", path)
	return nil
}

// runConfigPath prints the configuration file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configFilePath(cmd)
	if err != nil {
		return err
	}
	cmd.Println(path)
	return nil
}
