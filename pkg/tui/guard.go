package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	guardMu     sync.Mutex
	activeGuard *Guard
)

// GuardConfig contains the panic guard configuration
type GuardConfig struct {
	// ReportDir receives crash reports; empty disables them
	ReportDir string
	// Session is written into crash reports
	Session string
	// Recent returns the latest dispatched events for the report
	Recent func() []string
	// Output receives the short notice printed after restoration
	Output io.Writer
	Logger *slog.Logger
}

// Guard restores the terminal before an unhandled panic is allowed to
// terminate the process. One guard is installed per process; deferring
// Recover in every goroutine that can touch the UI routes panics to it.
type Guard struct {
	restore func()
	config  GuardConfig
	logger  *slog.Logger
}

// InstallGuard registers restore as the process-wide restoration routine
func InstallGuard(restore func(), config GuardConfig) (*Guard, error) {
	if restore == nil {
		return nil, errors.New("restore function cannot be nil")
	}

	guardMu.Lock()
	defer guardMu.Unlock()

	if activeGuard != nil {
		return nil, errors.New("a terminal guard is already installed")
	}

	if config.Output == nil {
		config.Output = os.Stderr
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g := &Guard{
		restore: restore,
		config:  config,
		logger:  logger,
	}
	activeGuard = g
	return g, nil
}

// Uninstall removes the guard so another one can be installed
func (g *Guard) Uninstall() {
	guardMu.Lock()
	defer guardMu.Unlock()

	if activeGuard == g {
		activeGuard = nil
	}
}

// Recover must be deferred directly. It restores the terminal, writes a
// crash report and then re-panics with the original value.
func (g *Guard) Recover() {
	r := recover()
	if r == nil {
		return
	}

	g.Handle(r, debug.Stack())
	panic(r)
}

// Handle restores the terminal and reports the panic value r. It returns
// the crash report path, or "" when no report was written.
func (g *Guard) Handle(r any, stack []byte) string {
	g.runRestore()

	g.logger.Error("unhandled panic", "panic", fmt.Sprint(r), "stack", string(stack))

	path, err := g.writeReport(r, stack)
	if err != nil {
		g.logger.Error("failed to write crash report", "error", err)
	}

	fmt.Fprintf(g.config.Output, "\nThe application panicked and the terminal has been restored.\n")
	if path != "" {
		fmt.Fprintf(g.config.Output, "A crash report was written to %s\n", path)
	}
	return path
}

// runRestore calls the restoration routine, containing any panic it raises
func (g *Guard) runRestore() {
	defer func() {
		if rr := recover(); rr != nil {
			g.logger.Error("terminal restore panicked", "panic", fmt.Sprint(rr))
		}
	}()

	g.restore()
}

func (g *Guard) writeReport(r any, stack []byte) (string, error) {
	if g.config.ReportDir == "" {
		return "", nil
	}

	if err := os.MkdirAll(g.config.ReportDir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create report directory")
	}

	now := time.Now()
	var b strings.Builder
	fmt.Fprintf(&b, "crash report\n")
	fmt.Fprintf(&b, "time: %s\n", now.Format(time.RFC3339))
	if g.config.Session != "" {
		fmt.Fprintf(&b, "session: %s\n", g.config.Session)
	}
	fmt.Fprintf(&b, "panic: %v\n", r)

	if g.config.Recent != nil {
		if recent := g.config.Recent(); len(recent) > 0 {
			fmt.Fprintf(&b, "\nrecent events (oldest first):\n")
			for _, line := range recent {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}

	fmt.Fprintf(&b, "\nstack:\n%s", stack)

	path := filepath.Join(g.config.ReportDir, fmt.Sprintf("crash-%s.log", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", errors.Wrap(err, "failed to write crash report")
	}
	return path, nil
}

func currentGuard() *Guard {
	guardMu.Lock()
	defer guardMu.Unlock()

	return activeGuard
}

// recoverToGuard is deferred by goroutines owned by this package. A panic
// is routed to the installed guard, if any, and then re-raised.
func recoverToGuard() {
	r := recover()
	if r == nil {
		return
	}

	if g := currentGuard(); g != nil {
		g.Handle(r, debug.Stack())
	}
	panic(r)
}
