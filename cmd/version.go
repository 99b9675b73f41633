package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"counter-terminal/pkg/config"
)

var version = "0.1.0"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and resolved settings",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", config.AppName, version)
	fmt.Fprintf(out, "Settings: %s\n", cfg.String())
	fmt.Fprintf(out, "Log file: %s\n", cfg.LogPath())
	return nil
}
