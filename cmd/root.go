package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"counter-terminal/pkg/config"
)

var (
	// Root command flags
	appConfig = config.DefaultAppConfig()

	// Root command
	rootCmd = &cobra.Command{
		Use:   config.AppName,
		Short: "A terminal counter driven by a raw-mode event loop",
		Long: `A small counter running in the terminal's alternate screen.

Keys:
  j, Down     increment the counter
  k, Up       decrement the counter
  r           reset the counter
  ?           toggle the key help
  Ctrl-Z      suspend to the shell
  q, Esc      quit

The counter resets to zero when it leaves the range -50..50.`,
		Version:           version,
		RunE:              runCounter,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&appConfig.TickRate, "tick-rate", appConfig.TickRate, "domain ticks per second")
	flags.Float64Var(&appConfig.FrameRate, "frame-rate", appConfig.FrameRate, "render requests per second")
	flags.BoolVar(&appConfig.EnableMouse, "mouse", false, "capture mouse events")
	flags.BoolVar(&appConfig.EnablePaste, "paste", false, "enable bracketed paste")
	flags.StringVar(&appConfig.LogLevel, "log-level", appConfig.LogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&appConfig.DataDir, "data-dir", appConfig.DataDir, "directory for the log file and crash reports")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keysCmd)
}

// resolveConfig fills unset flags from the environment and validates the result
func resolveConfig(cmd *cobra.Command) (config.AppConfig, error) {
	cfg := appConfig
	cfg.ApplyEnv(os.Getenv, cmd.Flags().Changed)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
