package app

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counter-terminal/pkg/tui"
)

// simTerminal runs the real controller on a simulation screen. Suspend
// only exits so the test binary is never stopped. The screen is only read
// on the drawing goroutine; tests look at the last snapshot.
type simTerminal struct {
	*tui.Tui
	screen   tcell.SimulationScreen
	suspends atomic.Int32

	mu   sync.Mutex
	text string
}

func (s *simTerminal) Draw(render func(f *tui.Frame)) error {
	err := s.Tui.Draw(render)
	text := screenText(s.screen)
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	return err
}

func (s *simTerminal) snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *simTerminal) Suspend() error {
	err := s.Tui.Exit()
	s.suspends.Add(1)
	return err
}

func screenText(screen tcell.SimulationScreen) string {
	cells, width, _ := screen.GetContents()

	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestApplication_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	tu, err := tui.New(tui.NewScreenBackend(screen), tui.Config{TickRate: 20, FrameRate: 50}, nil)
	require.NoError(t, err)

	term := &simTerminal{Tui: tu, screen: screen}
	app, err := NewApplication(term, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	require.Eventually(t, tu.Running, 2*time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	require.Eventually(t, func() bool {
		return strings.Contains(term.snapshot(), "Counter: 2")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, term.snapshot(), "j to increment, k to decrement, q to quit.")

	// Suspend and resume keep the counter and redraw
	screen.InjectKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	require.Eventually(t, func() bool { return term.suspends.Load() == 1 && tu.Running() },
		2*time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)
	require.Eventually(t, func() bool {
		return strings.Contains(term.snapshot(), "Counter: 1")
	}, 2*time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}

	assert.Equal(t, tui.Modes{}, tu.Modes())
	assert.False(t, tu.Running())
}
