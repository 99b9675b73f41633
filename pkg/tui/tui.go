// Package tui provides the raw-mode terminal controller. A Tui puts the
// terminal into raw, alternate-screen mode, runs a background poller that
// merges input with tick and render clocks into one event channel, and
// restores the terminal on exit, suspend, error or panic.
package tui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"counter-terminal/pkg/event"
)

const (
	// stopPollStep is the sleep between completion checks while stopping
	stopPollStep = 5 * time.Millisecond
	// stopAbortAfter is how long a cancelled poller gets before it is aborted
	stopAbortAfter = 50 * time.Millisecond
	// stopGiveUpAfter bounds the total wait for a poller to finish
	stopGiveUpAfter = 100 * time.Millisecond
)

// Config contains the controller configuration
type Config struct {
	TickRate    float64 // domain ticks per second
	FrameRate   float64 // render requests per second
	EnableMouse bool
	EnablePaste bool
}

// DefaultConfig returns the default controller configuration
func DefaultConfig() Config {
	return Config{
		TickRate:  4,
		FrameRate: 60,
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got: %v", c.TickRate)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got: %v", c.FrameRate)
	}
	return nil
}

// Modes is the controller's record of which terminal modes are on
type Modes struct {
	Raw          bool
	AltScreen    bool
	CursorHidden bool
	Mouse        bool
	Paste        bool
}

// list returns the flags in the order of Tui.toggles
func (m Modes) list() []bool {
	return []bool{m.Raw, m.AltScreen, m.CursorHidden, m.Mouse, m.Paste}
}

// Tui is the raw-mode controller. Terminal-mutating methods are meant to be
// called from a single goroutine; the poller only produces events.
type Tui struct {
	backend Backend
	config  Config
	logger  *slog.Logger
	id      string

	mu     sync.Mutex // guards modes and poller
	modes  Modes
	poller *poller
	events *event.Channel

	drawMu  sync.Mutex // serializes Draw
	sizeMu  sync.Mutex
	width   int
	height  int
	resized bool
}

// New creates a controller for backend. The terminal is untouched until Enter.
func New(backend Backend, config Config, logger *slog.Logger) (*Tui, error) {
	if backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tui config")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	id := uuid.NewString()
	return &Tui{
		backend: backend,
		config:  config,
		logger:  logger.With("session", id),
		id:      id,
		events:  event.NewChannel(),
	}, nil
}

// ID returns the session identifier attached to log records
func (t *Tui) ID() string {
	return t.id
}

// Config returns the controller configuration
func (t *Tui) Config() Config {
	return t.config
}

// Events transfers the consumer end of the event channel. Only the first
// call returns a receiver; later calls return nil.
func (t *Tui) Events() *event.Receiver {
	return t.events.Take()
}

// Modes returns a snapshot of the terminal modes
func (t *Tui) Modes() Modes {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.modes
}

// Running reports whether a poller is active
func (t *Tui) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.poller != nil
}

// Enter switches the terminal into raw, alternate-screen mode, hides the
// cursor, enables the configured captures and starts the poller. On
// failure every mode enabled by this call is rolled back and a
// *TerminalSetupError is returned.
func (t *Tui) Enter() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.modes
	if err := t.enableModes(); err != nil {
		t.logger.Error("terminal setup failed", "error", err)
		if rbErr := t.restoreTo(before); rbErr != nil {
			t.logger.Warn("rollback after failed setup incomplete", "error", rbErr)
		}
		return err
	}

	t.start()
	t.logger.Debug("entered terminal", "tick_rate", t.config.TickRate, "frame_rate", t.config.FrameRate)
	return nil
}

// Exit stops the poller and turns off every mode that is still on, including
// modes left behind by a failed Enter or an earlier failed Exit. Calling
// Exit on an exited terminal does nothing.
func (t *Tui) Exit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stop()
	if t.modes == (Modes{}) {
		return nil
	}

	err := t.restoreTo(Modes{})
	t.logger.Debug("exited terminal", "error", err)
	return err
}

// Suspend exits the terminal and stops the process until it is continued
// by the shell. Call Resume afterwards.
func (t *Tui) Suspend() error {
	if err := t.Exit(); err != nil {
		return err
	}

	t.logger.Info("suspending process")
	if err := stopSelf(); err != nil {
		return errors.Wrap(err, "failed to stop process")
	}
	return nil
}

// Resume re-enters the terminal after Suspend
func (t *Tui) Resume() error {
	t.logger.Info("resuming process")
	t.requestRedraw()
	return t.Enter()
}

// Restore performs a best-effort Exit, logging instead of returning errors.
// It is the restoration routine used by the panic guard.
func (t *Tui) Restore() {
	if err := t.Exit(); err != nil {
		t.logger.Error("terminal restore incomplete", "error", err)
	}
}

// Close exits the terminal, releases the backend and closes the event
// channel. The Tui cannot be entered again.
func (t *Tui) Close() error {
	err := t.Exit()
	t.backend.Fini()
	t.events.Close()
	return err
}

// RequestQuit asks the poller to publish a Quit event
func (t *Tui) RequestQuit() error {
	return t.backend.Input().PostEvent(tcell.NewEventInterrupt(QuitRequest{}))
}

// Draw renders one frame. It must not be called concurrently with itself;
// calls made while the terminal is not entered are skipped.
func (t *Tui) Draw(render func(f *Frame)) error {
	t.drawMu.Lock()
	defer t.drawMu.Unlock()

	if !t.Modes().Raw {
		t.logger.Debug("draw skipped, terminal not entered")
		return nil
	}

	screen := t.backend.Screen()
	width, height, resized := t.size(screen)
	if resized {
		screen.Sync()
	}

	screen.Clear()
	render(newFrame(screen, width, height))

	if err := t.backend.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush frame")
	}
	return nil
}

// Resize sets the area used by the next Draw
func (t *Tui) Resize(width, height int) {
	t.sizeMu.Lock()
	defer t.sizeMu.Unlock()

	t.width = width
	t.height = height
	t.resized = true
}

func (t *Tui) requestRedraw() {
	t.sizeMu.Lock()
	defer t.sizeMu.Unlock()

	t.resized = true
}

func (t *Tui) size(screen tcell.Screen) (width, height int, resized bool) {
	t.sizeMu.Lock()
	defer t.sizeMu.Unlock()

	width, height = t.width, t.height
	if width <= 0 || height <= 0 {
		width, height = screen.Size()
	}
	resized = t.resized
	t.resized = false
	return width, height, resized
}

// toggle is one reversible terminal capability
type toggle struct {
	name    string
	on      *bool
	wanted  bool
	enable  func() error
	disable func() error
}

// toggles lists the capabilities in enable order
func (t *Tui) toggles() []toggle {
	b := t.backend
	return []toggle{
		{"raw mode", &t.modes.Raw, true, b.EnableRawMode, b.DisableRawMode},
		{"alternate screen", &t.modes.AltScreen, true, b.EnterAlternateScreen, b.LeaveAlternateScreen},
		{"cursor", &t.modes.CursorHidden, true, b.HideCursor, b.ShowCursor},
		{"mouse capture", &t.modes.Mouse, t.config.EnableMouse, b.EnableMouseCapture, b.DisableMouseCapture},
		{"bracketed paste", &t.modes.Paste, t.config.EnablePaste, b.EnablePaste, b.DisablePaste},
	}
}

func (t *Tui) enableModes() error {
	for _, tg := range t.toggles() {
		if !tg.wanted || *tg.on {
			continue
		}
		if err := tg.enable(); err != nil {
			return &TerminalSetupError{Op: "enable " + tg.name, Err: errors.WithStack(err)}
		}
		*tg.on = true
	}
	return nil
}

// restoreTo turns off, in reverse enable order, every mode that is on now
// but off in target. It keeps going past failures; the first one is
// returned and the rest are logged.
func (t *Tui) restoreTo(target Modes) error {
	if t.modes.Raw {
		if err := t.backend.Flush(); err != nil {
			t.logger.Warn("flush before restore failed", "error", err)
		}
	}

	keep := target.list()

	var first error
	toggles := t.toggles()
	for i := len(toggles) - 1; i >= 0; i-- {
		tg := toggles[i]
		if !*tg.on || keep[i] {
			continue
		}
		if err := tg.disable(); err != nil {
			if first == nil {
				first = &TerminalTeardownError{Op: "disable " + tg.name, Err: errors.WithStack(err)}
			} else {
				t.logger.Warn("terminal teardown step failed", "op", "disable "+tg.name, "error", err)
			}
			continue
		}
		*tg.on = false
	}
	return first
}

// start launches a poller, stopping any previous one first
func (t *Tui) start() {
	t.stop()
	t.poller = startPoller(
		t.backend.Input(),
		t.events.Sender(),
		NewToken(),
		t.config.TickRate,
		t.config.FrameRate,
		t.logger,
	)
}

// stop cancels the poller and waits for it to finish. A poller still
// running after stopAbortAfter is aborted; after stopGiveUpAfter the wait
// is abandoned with a warning.
func (t *Tui) stop() {
	p := t.poller
	if p == nil {
		return
	}
	t.poller = nil

	p.token.Cancel()
	// Detach the producer so an event racing the cancel is dropped
	p.tx.Revoke()

	start := time.Now()
	aborted := false
	for {
		select {
		case <-p.done:
			return
		default:
		}

		elapsed := time.Since(start)
		if !aborted && elapsed >= stopAbortAfter {
			t.logger.Debug("aborting event poller", "waited", elapsed)
			p.abort()
			aborted = true
		}
		if elapsed >= stopGiveUpAfter {
			t.logger.Warn("event poller did not stop in time", "waited", elapsed)
			p.abort()
			return
		}

		time.Sleep(stopPollStep)
	}
}
