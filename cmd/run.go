package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"counter-terminal/pkg/app"
	"counter-terminal/pkg/history"
	"counter-terminal/pkg/logging"
	"counter-terminal/pkg/tui"
)

// crashHistory is the number of recent events written to a crash report
const crashHistory = 32

var (
	historyFile   string
	historyFormat string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the counter (default)",
	Long: `Run the counter in the terminal's alternate screen.

The terminal is restored on quit, on error and on panic. Logs are written
to counter-terminal.log in the data directory, crash reports next to it.

With --history-file the session's key and message history is written
there on exit, as plain text, timestamped lines or JSON.

Example:
  counter-terminal run --tick-rate 2 --frame-rate 30 --log-level debug
  counter-terminal run --history-file session.json --history-format json`,
	Args: cobra.NoArgs,
	RunE: runCounter,
}

func init() {
	addHistoryFlags(rootCmd.Flags())
	addHistoryFlags(runCmd.Flags())
}

func addHistoryFlags(flags *pflag.FlagSet) {
	flags.StringVar(&historyFile, "history-file", "", "save the session history to this file on exit")
	flags.StringVar(&historyFormat, "history-format", "timestamped", "history file format (plain, timestamped, json)")
}

// runOptions builds the application options from the history flags
func runOptions() (app.Options, error) {
	format, err := history.ParseFileFormat(historyFormat)
	if err != nil {
		return app.Options{}, app.NewAppError(app.ErrorConfig, "HISTORY_FORMAT", "invalid history format", err)
	}
	return app.Options{
		HistoryFile:   historyFile,
		HistoryFormat: format,
	}, nil
}

func runCounter(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := runOptions()
	if err != nil {
		return err
	}

	logger, logFile, err := logging.Setup(cfg)
	if err != nil {
		return app.NewAppError(app.ErrorLogging, "LOG_SETUP", "failed to set up logging", err)
	}
	defer logFile.Close()

	logger.Info("starting", "config", cfg.String())

	backend, err := tui.NewTerminalBackend()
	if err != nil {
		return app.NewAppError(app.ErrorTerminal, "NO_TERMINAL", "failed to open terminal", err)
	}

	t, err := tui.New(backend, cfg.Tui(), logger)
	if err != nil {
		backend.Fini()
		return app.NewAppError(app.ErrorConfig, "TUI", "failed to create terminal controller", err)
	}

	opts.Logger = logger
	application, err := app.NewApplication(t, opts)
	if err != nil {
		_ = t.Close()
		return err
	}

	guard, err := tui.InstallGuard(t.Restore, tui.GuardConfig{
		ReportDir: cfg.DataDir,
		Session:   t.ID(),
		Recent:    func() []string { return application.Recorder().Recent(crashHistory) },
		Output:    cmd.ErrOrStderr(),
		Logger:    logger,
	})
	if err != nil {
		_ = t.Close()
		return err
	}
	defer guard.Uninstall()
	defer guard.Recover()

	return app.NewRunner(application, cmd.OutOrStdout()).Run(cmd.Context())
}
