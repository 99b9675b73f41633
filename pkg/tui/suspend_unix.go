//go:build unix

package tui

import (
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// continueWait bounds the wait for SIGCONT when the stop signal was
// discarded, e.g. in an orphaned process group.
const continueWait = 250 * time.Millisecond

// stopProcess raises SIGTSTP on the current process and returns once the
// process has been continued.
func stopProcess() error {
	contCh := make(chan os.Signal, 1)
	signal.Notify(contCh, unix.SIGCONT)
	defer signal.Stop(contCh)

	if err := unix.Kill(unix.Getpid(), unix.SIGTSTP); err != nil {
		return err
	}

	select {
	case <-contCh:
	case <-time.After(continueWait):
	}
	return nil
}
