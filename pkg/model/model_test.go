package model

import (
	"testing"
	"time"
)

func TestUpdate_Counter(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		msg      MessageKind
		want     int
		followUp bool
	}{
		{"increment", -4, MsgIncrement, -3, false},
		{"decrement", 35, MsgDecrement, 34, false},
		{"increment to limit", 49, MsgIncrement, 50, false},
		{"increment past limit", 50, MsgIncrement, 51, true},
		{"decrement past limit", -50, MsgDecrement, -51, true},
		{"reset", 17, MsgReset, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Counter = tt.start

			next, ok := Update(m, Msg(tt.msg))
			if m.Counter != tt.want {
				t.Errorf("Counter = %d, want %d", m.Counter, tt.want)
			}
			if ok != tt.followUp {
				t.Fatalf("follow-up = %v, want %v", ok, tt.followUp)
			}
			if ok && next.Kind != MsgReset {
				t.Errorf("follow-up = %v, want reset", next)
			}
		})
	}
}

func TestApply_Saturates(t *testing.T) {
	m := New()
	m.Counter = 50

	Apply(m, Msg(MsgIncrement))
	if m.Counter != 0 {
		t.Errorf("Counter = %d after overflow, want 0", m.Counter)
	}

	for i := 0; i < 51; i++ {
		Apply(m, Msg(MsgDecrement))
	}
	if m.Counter != 0 {
		t.Errorf("Counter = %d after underflow, want 0", m.Counter)
	}
}

func TestUpdate_State(t *testing.T) {
	m := New()

	Update(m, Msg(MsgResume))
	if m.State != Running {
		t.Errorf("State = %v, want running", m.State)
	}

	Update(m, Msg(MsgSuspend))
	if m.State != ShouldSuspend {
		t.Errorf("State = %v, want should-suspend", m.State)
	}

	Update(m, Msg(MsgResume))
	if m.State != Running {
		t.Errorf("State = %v after resume, want running", m.State)
	}

	Update(m, Msg(MsgQuit))
	Update(m, Msg(MsgResume))
	if m.State != ShouldQuit {
		t.Errorf("State = %v, resume must not cancel a quit", m.State)
	}
}

func TestUpdate_HelpAndResize(t *testing.T) {
	m := New()

	Update(m, Msg(MsgToggleHelp))
	if !m.ShowHelp {
		t.Error("ShowHelp = false after toggle")
	}
	Update(m, Msg(MsgToggleHelp))
	if m.ShowHelp {
		t.Error("ShowHelp = true after second toggle")
	}

	Update(m, Resize(100, 30))
	if m.Width != 100 || m.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", m.Width, m.Height)
	}
}

func TestMessage_String(t *testing.T) {
	tests := []struct {
		msg  Message
		want string
	}{
		{Msg(MsgIncrement), "increment"},
		{Msg(MsgToggleHelp), "toggle-help"},
		{Resize(80, 24), "resize(80x24)"},
		{Message{Kind: MessageKind(99)}, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.msg.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFPSCounter(t *testing.T) {
	start := time.Unix(1700000000, 0)
	clock := &fakeClock{t: start}
	c := NewFPSCounter(clock.now)

	// 60 frames and 4 ticks spread over one second
	for i := 0; i < 60; i++ {
		if i == 59 {
			clock.t = start.Add(time.Second)
		} else {
			clock.advance(time.Second / 60)
		}
		c.Render()
		if i%15 == 14 {
			c.Tick()
		}
	}

	if got := c.FrameRate(); got < 59.9 || got > 60.1 {
		t.Errorf("FrameRate() = %v, want 60", got)
	}
	if got := c.TickRate(); got < 3.9 || got > 4.1 {
		t.Errorf("TickRate() = %v, want 4", got)
	}
	if got := c.String(); got != "60.00fps, 4.00tps" {
		t.Errorf("String() = %q", got)
	}

	// Rates hold until the next full second
	clock.advance(100 * time.Millisecond)
	c.Render()
	if got := c.FrameRate(); got < 59.9 || got > 60.1 {
		t.Errorf("FrameRate() changed before a second passed: %v", got)
	}
}

func TestUpdate_CountsRates(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := &Model{FPS: NewFPSCounter(clock.now)}

	clock.advance(2 * time.Second)
	Update(m, Msg(MsgTick))
	Update(m, Msg(MsgRender))

	if m.FPS.TickRate() != 0.5 || m.FPS.FrameRate() != 0.5 {
		t.Errorf("rates = %v, %v, want 0.5, 0.5", m.FPS.TickRate(), m.FPS.FrameRate())
	}

	// A model without a counter ignores timing messages
	Update(&Model{}, Msg(MsgTick))
}
