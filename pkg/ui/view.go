// Package ui draws the application screen
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"counter-terminal/pkg/keymap"
	"counter-terminal/pkg/model"
	"counter-terminal/pkg/tui"
)

const (
	// statusHeight is the height of the usage and rate boxes
	statusHeight = 3
	// rateWidth fits "30.00fps, 30.00tps" plus the border
	rateWidth = 20
)

var (
	borderStyle = tcell.StyleDefault.Dim(true)
	keyStyle    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorGray)
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle   = tcell.StyleDefault
)

// View draws the counter, the usage hint and the measured rates, plus the
// help overlay when it is enabled
func View(m *model.Model, km *keymap.Keymap, f *tui.Frame) {
	area := f.Area()
	if area.Empty() {
		return
	}

	main, status := area.SplitBottom(statusHeight)
	usage, rates := status.SplitRight(rateWidth)

	counter := Box{Border: RoundedBorder, Style: borderStyle}.Draw(f, main)
	f.DrawText(counter.X, counter.Y, fmt.Sprintf("Counter: %d", m.Counter), textStyle, counter)

	inner := Box{Title: "Usage", Border: RoundedBorder, Style: borderStyle}.Draw(f, usage)
	DrawLine(f, inner.X, inner.Y, UsageLine(km), inner)

	inner = Box{Border: RoundedBorder, Style: borderStyle}.Draw(f, rates)
	if m.FPS != nil {
		f.DrawText(inner.X, inner.Y, m.FPS.String(), hintStyle, inner)
	}

	if m.ShowHelp {
		HelpOverlay{Title: "Keys", Entries: km.Help()}.Draw(f)
	}
}

// UsageLine builds the styled hint "j to increment, k to decrement, q to quit."
func UsageLine(km *keymap.Keymap) []Span {
	hints := km.UsageHints()

	var spans []Span
	for i, h := range hints {
		sep := ", "
		if i == len(hints)-1 {
			sep = "."
		}
		spans = append(spans,
			Span{Text: h.Keys, Style: keyStyle},
			Span{Text: " to " + h.Description + sep, Style: hintStyle},
		)
	}
	return spans
}
