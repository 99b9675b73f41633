package tui

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// InputSource is the asynchronous stream of raw terminal input. tcell.Screen
// satisfies it: ChannelEvents pumps events into ch until quit is closed or
// the source is finalized, and closes ch when it returns.
type InputSource interface {
	ChannelEvents(ch chan<- tcell.Event, quit <-chan struct{})
	PostEvent(ev tcell.Event) error
}

// EventKeyRelease is delivered by input sources able to report key
// releases. The poller never forwards it.
type EventKeyRelease struct {
	*tcell.EventKey
}

// NewEventKeyRelease creates a key release input item
func NewEventKeyRelease(k tcell.Key, ch rune, mod tcell.ModMask) *EventKeyRelease {
	return &EventKeyRelease{EventKey: tcell.NewEventKey(k, ch, mod)}
}

// Backend is the terminal control surface driven by a Tui. Each toggle is
// called at most once per transition; the Tui tracks which modes are on.
type Backend interface {
	EnableRawMode() error
	DisableRawMode() error
	EnterAlternateScreen() error
	LeaveAlternateScreen() error
	HideCursor() error
	ShowCursor() error
	EnableMouseCapture() error
	DisableMouseCapture() error
	EnablePaste() error
	DisablePaste() error

	// Flush writes pending output to the terminal
	Flush() error

	// Screen is the frame buffer used by Draw
	Screen() tcell.Screen

	// Input is the raw input stream read by the poller
	Input() InputSource

	// Fini releases the terminal for good
	Fini()
}

// ScreenBackend implements Backend on a tcell screen. tcell engages raw
// mode, the alternate screen and focus reporting in one step, so raw mode
// maps to Init/Resume and its reverse to Suspend.
type ScreenBackend struct {
	screen      tcell.Screen
	initialized bool
	engaged     bool
}

// NewScreenBackend wraps an uninitialized tcell screen
func NewScreenBackend(screen tcell.Screen) *ScreenBackend {
	return &ScreenBackend{screen: screen}
}

// NewTerminalBackend creates a backend for the controlling terminal
func NewTerminalBackend() (*ScreenBackend, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create screen")
	}

	return NewScreenBackend(screen), nil
}

// EnableRawMode engages the terminal
func (b *ScreenBackend) EnableRawMode() error {
	if b.engaged {
		return nil
	}

	if !b.initialized {
		if err := b.screen.Init(); err != nil {
			return errors.Wrap(err, "failed to initialize screen")
		}
		b.initialized = true

		// Use default terminal colors instead of forcing a background
		b.screen.SetStyle(tcell.StyleDefault.
			Background(tcell.ColorReset).
			Foreground(tcell.ColorReset))
		b.screen.EnableFocus()
	} else if err := b.screen.Resume(); err != nil {
		return errors.Wrap(err, "failed to resume screen")
	}

	b.engaged = true
	return nil
}

// DisableRawMode disengages the terminal and restores the saved tty state
func (b *ScreenBackend) DisableRawMode() error {
	if !b.engaged {
		return nil
	}

	if err := b.screen.Suspend(); err != nil {
		return errors.Wrap(err, "failed to suspend screen")
	}

	b.engaged = false
	return nil
}

// EnterAlternateScreen is satisfied by the engage step
func (b *ScreenBackend) EnterAlternateScreen() error {
	if !b.engaged {
		return errors.New("alternate screen requires raw mode")
	}
	return nil
}

// LeaveAlternateScreen is performed by the disengage step
func (b *ScreenBackend) LeaveAlternateScreen() error {
	return nil
}

// HideCursor hides the cursor
func (b *ScreenBackend) HideCursor() error {
	b.screen.HideCursor()
	return nil
}

// ShowCursor is performed by the disengage step, which always shows the cursor
func (b *ScreenBackend) ShowCursor() error {
	return nil
}

// EnableMouseCapture turns on mouse reporting
func (b *ScreenBackend) EnableMouseCapture() error {
	b.screen.EnableMouse()
	return nil
}

// DisableMouseCapture turns off mouse reporting
func (b *ScreenBackend) DisableMouseCapture() error {
	b.screen.DisableMouse()
	return nil
}

// EnablePaste turns on bracketed paste
func (b *ScreenBackend) EnablePaste() error {
	b.screen.EnablePaste()
	return nil
}

// DisablePaste turns off bracketed paste
func (b *ScreenBackend) DisablePaste() error {
	b.screen.DisablePaste()
	return nil
}

// Flush shows the pending frame
func (b *ScreenBackend) Flush() error {
	if b.engaged {
		b.screen.Show()
	}
	return nil
}

// Screen returns the underlying tcell screen
func (b *ScreenBackend) Screen() tcell.Screen {
	return b.screen
}

// Input returns the screen as the input source
func (b *ScreenBackend) Input() InputSource {
	return b.screen
}

// Fini finalizes the screen
func (b *ScreenBackend) Fini() {
	if b.initialized {
		b.screen.Fini()
		b.initialized = false
		b.engaged = false
	}
}
