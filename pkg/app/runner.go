package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Runner runs an application with signal handling and prints a session
// summary once the terminal has been restored
type Runner struct {
	app     *Application
	out     io.Writer
	signals chan os.Signal
}

// NewRunner creates a runner printing its summary to out
func NewRunner(app *Application, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		app:     app,
		out:     out,
		signals: make(chan os.Signal, 1),
	}
}

// Run starts the application and blocks until it's stopped. SIGINT and
// SIGTERM post a quit request so the loop exits through the normal path.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	signal.Notify(r.signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(r.signals)

	go r.watchSignals(ctx, cancel)

	err := r.app.Run(ctx)
	r.printSessionSummary()
	return err
}

func (r *Runner) watchSignals(ctx context.Context, cancel context.CancelFunc) {
	select {
	case sig := <-r.signals:
		r.app.logger.Info("received signal, shutting down", "signal", sig.String())
		if err := r.app.Quit(); err != nil {
			// The poller is gone, so stop waiting for its quit event
			r.app.logger.Warn("failed to post quit request", "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

// printSessionSummary prints a summary of the session
func (r *Runner) printSessionSummary() {
	events, messages, duration := r.app.GetSession().GetStats()

	fmt.Fprintf(r.out, "Session %s\n", r.app.GetSession().ID)
	fmt.Fprintf(r.out, "Duration: %v\n", duration.Round(time.Millisecond))
	fmt.Fprintf(r.out, "Events: %d, messages: %d\n", events, messages)
	fmt.Fprintf(r.out, "Final counter: %d\n", r.app.Model().Counter)
}
