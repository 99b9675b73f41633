package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"counter-terminal/pkg/event"
)

// fakeInput is a channel-fed InputSource
type fakeInput struct {
	feed      chan tcell.Event
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		feed:   make(chan tcell.Event, 64),
		closed: make(chan struct{}),
	}
}

func (f *fakeInput) ChannelEvents(ch chan<- tcell.Event, quit <-chan struct{}) {
	defer close(ch)
	for {
		select {
		case <-quit:
			return
		case <-f.closed:
			return
		case ev := <-f.feed:
			select {
			case ch <- ev:
			case <-quit:
				return
			}
		}
	}
}

func (f *fakeInput) PostEvent(ev tcell.Event) error {
	select {
	case f.feed <- ev:
		return nil
	default:
		return errors.New("input queue full")
	}
}

// end makes every running and future ChannelEvents return
func (f *fakeInput) end() {
	f.closeOnce.Do(func() { close(f.closed) })
}

// fakeBackend records toggle calls and tracks the real terminal state
type fakeBackend struct {
	mu     sync.Mutex
	screen tcell.SimulationScreen
	input  *fakeInput
	real   Modes
	ops    []string
	failOn map[string]error
	finied bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	return &fakeBackend{
		screen: screen,
		input:  newFakeInput(),
		failOn: make(map[string]error),
	}
}

func (b *fakeBackend) op(name string, apply func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ops = append(b.ops, name)
	if err := b.failOn[name]; err != nil {
		return err
	}
	if apply != nil {
		apply()
	}
	return nil
}

func (b *fakeBackend) fail(name string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failOn[name] = err
}

func (b *fakeBackend) heal() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failOn = make(map[string]error)
}

func (b *fakeBackend) Ops() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.ops...)
}

func (b *fakeBackend) resetOps() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ops = nil
}

func (b *fakeBackend) Real() Modes {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.real
}

func (b *fakeBackend) EnableRawMode() error {
	return b.op("enable raw mode", func() { b.real.Raw = true })
}

func (b *fakeBackend) DisableRawMode() error {
	return b.op("disable raw mode", func() { b.real.Raw = false })
}

func (b *fakeBackend) EnterAlternateScreen() error {
	return b.op("enter alternate screen", func() { b.real.AltScreen = true })
}

func (b *fakeBackend) LeaveAlternateScreen() error {
	return b.op("leave alternate screen", func() { b.real.AltScreen = false })
}

func (b *fakeBackend) HideCursor() error {
	return b.op("hide cursor", func() { b.real.CursorHidden = true })
}

func (b *fakeBackend) ShowCursor() error {
	return b.op("show cursor", func() { b.real.CursorHidden = false })
}

func (b *fakeBackend) EnableMouseCapture() error {
	return b.op("enable mouse capture", func() { b.real.Mouse = true })
}

func (b *fakeBackend) DisableMouseCapture() error {
	return b.op("disable mouse capture", func() { b.real.Mouse = false })
}

func (b *fakeBackend) EnablePaste() error {
	return b.op("enable bracketed paste", func() { b.real.Paste = true })
}

func (b *fakeBackend) DisablePaste() error {
	return b.op("disable bracketed paste", func() { b.real.Paste = false })
}

func (b *fakeBackend) Flush() error {
	return b.op("flush", func() { b.screen.Show() })
}

func (b *fakeBackend) Screen() tcell.Screen {
	return b.screen
}

func (b *fakeBackend) Input() InputSource {
	return b.input
}

func (b *fakeBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.finied = true
}

func newTestTui(t *testing.T, config Config) (*Tui, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend(t)
	tu, err := New(backend, config, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tu.Exit() })
	return tu, backend
}

// collect receives events for d
func collect(rx *event.Receiver, d time.Duration) []event.Event {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	var evs []event.Event
	for {
		ev, err := rx.Recv(ctx)
		if err != nil {
			return evs
		}
		evs = append(evs, ev)
	}
}

// waitFor receives events until one of kind arrives or d elapses
func waitFor(t *testing.T, rx *event.Receiver, kind event.Kind, d time.Duration) (event.Event, []event.Event) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	var seen []event.Event
	for {
		ev, err := rx.Recv(ctx)
		if err != nil {
			t.Fatalf("no %s event within %v, saw %v", kind, d, seen)
		}
		if ev.Kind == kind {
			return ev, seen
		}
		seen = append(seen, ev)
	}
}

func countKinds(evs []event.Event) map[event.Kind]int {
	counts := make(map[event.Kind]int)
	for _, ev := range evs {
		counts[ev.Kind]++
	}
	return counts
}
