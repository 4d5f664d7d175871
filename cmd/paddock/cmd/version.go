package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbmrq/paddock/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show detailed version information for paddock.

Displays the current version, commit hash, build date,
and Go/platform information.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)
	cmd.Println(info.FullString())
	return nil
}
