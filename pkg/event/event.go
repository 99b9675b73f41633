// Package event defines the typed events published by the terminal poller
// and the channel that carries them to the dispatch loop.
package event

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Kind identifies the variant of an Event
type Kind int

const (
	KindInit Kind = iota
	KindQuit
	KindError
	KindClosed
	KindTick
	KindRender
	KindFocusGained
	KindFocusLost
	KindPaste
	KindKey
	KindMouse
	KindResize
)

// String returns the string representation of Kind
func (k Kind) String() string {
	kinds := []string{
		"init", "quit", "error", "closed", "tick", "render",
		"focus-gained", "focus-lost", "paste", "key", "mouse", "resize",
	}

	if k >= 0 && int(k) < len(kinds) {
		return kinds[k]
	}
	return "unknown"
}

// KeyKind tells a key press from a key release
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRelease
)

// String returns the string representation of KeyKind
func (k KeyKind) String() string {
	if k == KeyRelease {
		return "release"
	}
	return "press"
}

// KeyEvent is the payload of a Key event
type KeyEvent struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
	Kind KeyKind
}

// Name returns a human readable name such as "Ctrl+C" or "Rune[j]"
func (k KeyEvent) Name() string {
	return tcell.NewEventKey(k.Key, k.Rune, k.Mods).Name()
}

// MouseEvent is the payload of a Mouse event. Wheel actions are reported
// through the WheelUp/WheelDown/WheelLeft/WheelRight button bits.
type MouseEvent struct {
	Buttons tcell.ButtonMask
	X       int
	Y       int
	Mods    tcell.ModMask
}

// IsScroll reports whether the event is a wheel action
func (m MouseEvent) IsScroll() bool {
	return m.Buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0
}

// Event is a single occurrence published by the poller. Only the fields
// belonging to Kind are meaningful; events are treated as immutable values.
type Event struct {
	Kind   Kind
	Key    KeyEvent
	Mouse  MouseEvent
	Width  int
	Height int
	Text   string
	Err    error
}

// String returns a compact description used in logs and crash reports
func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return fmt.Sprintf("key(%s)", e.Key.Name())
	case KindMouse:
		return fmt.Sprintf("mouse(%d,%d buttons=%d)", e.Mouse.X, e.Mouse.Y, e.Mouse.Buttons)
	case KindResize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	case KindPaste:
		return fmt.Sprintf("paste(%d bytes)", len(e.Text))
	case KindError:
		if e.Err != nil {
			return fmt.Sprintf("error(%v)", e.Err)
		}
		return "error"
	default:
		return e.Kind.String()
	}
}

func Init() Event        { return Event{Kind: KindInit} }
func Quit() Event        { return Event{Kind: KindQuit} }
func Closed() Event      { return Event{Kind: KindClosed} }
func Tick() Event        { return Event{Kind: KindTick} }
func Render() Event      { return Event{Kind: KindRender} }
func FocusGained() Event { return Event{Kind: KindFocusGained} }
func FocusLost() Event   { return Event{Kind: KindFocusLost} }

// Error wraps an input read failure
func Error(err error) Event {
	return Event{Kind: KindError, Err: err}
}

// Paste carries the text of one bracketed paste burst
func Paste(text string) Event {
	return Event{Kind: KindPaste, Text: text}
}

// Key builds a Key event
func Key(key tcell.Key, r rune, mods tcell.ModMask, kind KeyKind) Event {
	return Event{Kind: KindKey, Key: KeyEvent{Key: key, Rune: r, Mods: mods, Kind: kind}}
}

// Mouse builds a Mouse event
func Mouse(buttons tcell.ButtonMask, x, y int, mods tcell.ModMask) Event {
	return Event{Kind: KindMouse, Mouse: MouseEvent{Buttons: buttons, X: x, Y: y, Mods: mods}}
}

// Resize builds a Resize event
func Resize(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}
