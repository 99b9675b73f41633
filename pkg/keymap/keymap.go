// Package keymap maps key presses to application actions
package keymap

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"counter-terminal/pkg/event"
)

// Action is what a key binding asks the application to do
type Action int

const (
	ActionNone Action = iota
	ActionIncrement
	ActionDecrement
	ActionReset
	ActionQuit
	ActionSuspend
	ActionToggleHelp
)

// String returns the string representation of Action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionIncrement:
		return "increment"
	case ActionDecrement:
		return "decrement"
	case ActionReset:
		return "reset"
	case ActionQuit:
		return "quit"
	case ActionSuspend:
		return "suspend"
	case ActionToggleHelp:
		return "toggle-help"
	default:
		return "unknown"
	}
}

// Binding represents a keyboard binding
type Binding struct {
	Name        string
	Key         tcell.Key
	Char        rune
	Mods        tcell.ModMask
	Action      Action
	Description string
	Enabled     bool
}

// Matches checks if the given key press triggers this binding
func (b *Binding) Matches(k event.KeyEvent) bool {
	if !b.Enabled || k.Kind != event.KeyPress {
		return false
	}

	if b.Key != tcell.KeyRune {
		// For non-rune keys, only compare the key and modifiers
		return b.Key == k.Key && b.Mods == k.Mods
	}

	// Shift is already folded into the rune
	return k.Key == tcell.KeyRune && b.Char == k.Rune && b.Mods == k.Mods&^tcell.ModShift
}

// Label formats the key combination for display
func (b *Binding) Label() string {
	if b.Key != tcell.KeyRune {
		if name, ok := tcell.KeyNames[b.Key]; ok {
			return name
		}
		return fmt.Sprintf("Key[%d]", b.Key)
	}

	var parts []string
	if b.Mods&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if b.Mods&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	parts = append(parts, string(b.Char))
	return strings.Join(parts, "+")
}

// Keymap holds bindings in the order they were added
type Keymap struct {
	bindings []*Binding
	enabled  bool
}

// New creates an empty keymap
func New() *Keymap {
	return &Keymap{enabled: true}
}

// Default creates the keymap with the default application bindings
func Default() *Keymap {
	km := New()

	km.Add(&Binding{Name: "increment", Key: tcell.KeyRune, Char: 'j', Action: ActionIncrement, Description: "increment the counter", Enabled: true})
	km.Add(&Binding{Name: "increment-arrow", Key: tcell.KeyDown, Action: ActionIncrement, Description: "increment the counter", Enabled: true})
	km.Add(&Binding{Name: "decrement", Key: tcell.KeyRune, Char: 'k', Action: ActionDecrement, Description: "decrement the counter", Enabled: true})
	km.Add(&Binding{Name: "decrement-arrow", Key: tcell.KeyUp, Action: ActionDecrement, Description: "decrement the counter", Enabled: true})
	km.Add(&Binding{Name: "reset", Key: tcell.KeyRune, Char: 'r', Action: ActionReset, Description: "reset the counter", Enabled: true})
	km.Add(&Binding{Name: "quit", Key: tcell.KeyRune, Char: 'q', Action: ActionQuit, Description: "quit", Enabled: true})
	km.Add(&Binding{Name: "quit-escape", Key: tcell.KeyEscape, Action: ActionQuit, Description: "quit", Enabled: true})
	km.Add(&Binding{Name: "quit-interrupt", Key: tcell.KeyCtrlC, Mods: tcell.ModCtrl, Action: ActionQuit, Description: "quit", Enabled: true})
	km.Add(&Binding{Name: "suspend", Key: tcell.KeyCtrlZ, Mods: tcell.ModCtrl, Action: ActionSuspend, Description: "suspend to the shell", Enabled: true})
	km.Add(&Binding{Name: "help", Key: tcell.KeyRune, Char: '?', Action: ActionToggleHelp, Description: "toggle this help", Enabled: true})

	return km
}

// Add adds a binding, replacing any binding with the same name in place
func (km *Keymap) Add(b *Binding) {
	for i, existing := range km.bindings {
		if existing.Name == b.Name {
			km.bindings[i] = b
			return
		}
	}
	km.bindings = append(km.bindings, b)
}

// Remove removes a binding by name
func (km *Keymap) Remove(name string) {
	for i, b := range km.bindings {
		if b.Name == name {
			km.bindings = append(km.bindings[:i], km.bindings[i+1:]...)
			return
		}
	}
}

// Get returns a binding by name
func (km *Keymap) Get(name string) *Binding {
	for _, b := range km.bindings {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// List returns all bindings
func (km *Keymap) List() []*Binding {
	return append([]*Binding(nil), km.bindings...)
}

// Enable enables a binding by name
func (km *Keymap) Enable(name string) {
	if b := km.Get(name); b != nil {
		b.Enabled = true
	}
}

// Disable disables a binding by name
func (km *Keymap) Disable(name string) {
	if b := km.Get(name); b != nil {
		b.Enabled = false
	}
}

// SetEnabled enables or disables the whole keymap
func (km *Keymap) SetEnabled(enabled bool) {
	km.enabled = enabled
}

// IsEnabled returns whether the keymap is enabled
func (km *Keymap) IsEnabled() bool {
	return km.enabled
}

// Lookup returns the action of the first binding matching k
func (km *Keymap) Lookup(k event.KeyEvent) (Action, bool) {
	if !km.enabled {
		return ActionNone, false
	}

	for _, b := range km.bindings {
		if b.Matches(k) {
			return b.Action, true
		}
	}
	return ActionNone, false
}

// HelpEntry is one line of the help overlay
type HelpEntry struct {
	Keys        string
	Description string
}

// Help lists the enabled bindings, one entry per action
func (km *Keymap) Help() []HelpEntry {
	var entries []HelpEntry
	index := make(map[Action]int)

	for _, b := range km.bindings {
		if !b.Enabled {
			continue
		}
		if i, ok := index[b.Action]; ok {
			entries[i].Keys += ", " + b.Label()
			continue
		}
		index[b.Action] = len(entries)
		entries = append(entries, HelpEntry{Keys: b.Label(), Description: b.Description})
	}
	return entries
}

// UsageHints returns the rune bindings for the main actions as Keys and
// action name pairs, in display order
func (km *Keymap) UsageHints() []HelpEntry {
	var hints []HelpEntry
	for _, action := range []Action{ActionIncrement, ActionDecrement, ActionQuit} {
		for _, b := range km.bindings {
			if b.Enabled && b.Action == action && b.Key == tcell.KeyRune {
				hints = append(hints, HelpEntry{Keys: b.Label(), Description: action.String()})
				break
			}
		}
	}
	return hints
}

// Usage returns the one-line hint shown under the counter
func (km *Keymap) Usage() string {
	hints := km.UsageHints()
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = fmt.Sprintf("%s to %s", h.Keys, h.Description)
	}
	return strings.Join(parts, ", ") + "."
}
