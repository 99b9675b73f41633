package app

import (
	"errors"
	"sync"

	"counter-terminal/pkg/event"
	"counter-terminal/pkg/tui"
)

// fakeTerminal is a Terminal whose events are pushed by the test
type fakeTerminal struct {
	mu      sync.Mutex
	events  *event.Channel
	tx      *event.Sender
	entered int
	closed  int
	draws   int
	suspend int
	resume  int
	width   int
	height  int

	enterErr   error
	drawErr    error
	suspendErr error
	closeErr   error
}

func newFakeTerminal() *fakeTerminal {
	ch := event.NewChannel()
	return &fakeTerminal{events: ch, tx: ch.Sender()}
}

func (f *fakeTerminal) ID() string              { return "test-session" }
func (f *fakeTerminal) Events() *event.Receiver { return f.events.Take() }

func (f *fakeTerminal) Enter() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entered++
	return f.enterErr
}

func (f *fakeTerminal) Draw(render func(*tui.Frame)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draws++
	return f.drawErr
}

func (f *fakeTerminal) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.width, f.height = width, height
}

func (f *fakeTerminal) Suspend() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.suspend++
	return f.suspendErr
}

func (f *fakeTerminal) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resume++
	return nil
}

func (f *fakeTerminal) RequestQuit() error {
	if !f.tx.Send(event.Quit()) {
		return errors.New("poller stopped")
	}
	return nil
}

func (f *fakeTerminal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed++
	f.events.Close()
	return f.closeErr
}

func (f *fakeTerminal) send(evs ...event.Event) {
	for _, ev := range evs {
		f.tx.Send(ev)
	}
}

func (f *fakeTerminal) counts() (entered, closed, draws int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.entered, f.closed, f.draws
}
