// Package model holds the application state and its update function
package model

import "fmt"

// CounterLimit is the largest magnitude the counter may reach before it resets
const CounterLimit = 50

// MessageKind identifies a state change request
type MessageKind int

const (
	MsgIncrement MessageKind = iota
	MsgDecrement
	MsgReset
	MsgQuit
	MsgSuspend
	MsgResume
	MsgTick
	MsgRender
	MsgResize
	MsgToggleHelp
)

var messageNames = [...]string{
	MsgIncrement:  "increment",
	MsgDecrement:  "decrement",
	MsgReset:      "reset",
	MsgQuit:       "quit",
	MsgSuspend:    "suspend",
	MsgResume:     "resume",
	MsgTick:       "tick",
	MsgRender:     "render",
	MsgResize:     "resize",
	MsgToggleHelp: "toggle-help",
}

// String returns the string representation of MessageKind
func (k MessageKind) String() string {
	if k < 0 || int(k) >= len(messageNames) {
		return "unknown"
	}
	return messageNames[k]
}

// Message is a request to change the model
type Message struct {
	Kind   MessageKind
	Width  int
	Height int
}

// String returns a readable form of the message
func (m Message) String() string {
	if m.Kind == MsgResize {
		return fmt.Sprintf("resize(%dx%d)", m.Width, m.Height)
	}
	return m.Kind.String()
}

// Msg creates a message without payload
func Msg(kind MessageKind) Message {
	return Message{Kind: kind}
}

// Resize creates a resize message
func Resize(width, height int) Message {
	return Message{Kind: MsgResize, Width: width, Height: height}
}

// RunningState tells the dispatch loop what to do after an update
type RunningState int

const (
	Running RunningState = iota
	ShouldQuit
	ShouldSuspend
)

// String returns the string representation of RunningState
func (s RunningState) String() string {
	switch s {
	case Running:
		return "running"
	case ShouldQuit:
		return "should-quit"
	case ShouldSuspend:
		return "should-suspend"
	default:
		return "unknown"
	}
}

// Model is the application state
type Model struct {
	Counter  int
	State    RunningState
	ShowHelp bool
	Width    int
	Height   int
	FPS      *FPSCounter
}

// New creates a model in the running state
func New() *Model {
	return &Model{FPS: NewFPSCounter(nil)}
}

// Update applies msg to m. It returns a follow-up message when the update
// requires one; callers apply follow-ups until ok is false.
func Update(m *Model, msg Message) (next Message, ok bool) {
	switch msg.Kind {
	case MsgIncrement:
		m.Counter++
		if m.Counter > CounterLimit {
			return Msg(MsgReset), true
		}

	case MsgDecrement:
		m.Counter--
		if m.Counter < -CounterLimit {
			return Msg(MsgReset), true
		}

	case MsgReset:
		m.Counter = 0

	case MsgQuit:
		m.State = ShouldQuit

	case MsgSuspend:
		m.State = ShouldSuspend

	case MsgResume:
		if m.State == ShouldSuspend {
			m.State = Running
		}

	case MsgToggleHelp:
		m.ShowHelp = !m.ShowHelp

	case MsgTick:
		if m.FPS != nil {
			m.FPS.Tick()
		}

	case MsgRender:
		if m.FPS != nil {
			m.FPS.Render()
		}

	case MsgResize:
		m.Width = msg.Width
		m.Height = msg.Height
	}

	return Message{}, false
}

// Apply runs Update for msg and every follow-up it produces
func Apply(m *Model, msg Message) {
	for {
		next, ok := Update(m, msg)
		if !ok {
			return
		}
		msg = next
	}
}
