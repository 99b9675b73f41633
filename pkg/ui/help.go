package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"counter-terminal/pkg/keymap"
	"counter-terminal/pkg/tui"
)

// HelpOverlay is a centered box listing key bindings
type HelpOverlay struct {
	Title   string
	Entries []keymap.HelpEntry
}

// Size returns the overlay dimensions including its border
func (h HelpOverlay) Size() (width, height int) {
	keysWidth := 0
	descWidth := runewidth.StringWidth(h.Title)
	for _, e := range h.Entries {
		keysWidth = max(keysWidth, runewidth.StringWidth(e.Keys))
		descWidth = max(descWidth, runewidth.StringWidth(e.Description))
	}

	// Border, padding and the gap between the columns
	width = keysWidth + descWidth + 7
	height = len(h.Entries) + 2
	if h.Title != "" {
		height += 2 // Title and separator
	}
	return width, height
}

// Draw renders the overlay centered in the frame
func (h HelpOverlay) Draw(f *tui.Frame) {
	area := f.Area()
	width, height := h.Size()
	width = min(width, area.Width)
	height = min(height, area.Height)

	r := tui.Rect{
		X:      area.X + (area.Width-width)/2,
		Y:      area.Y + (area.Height-height)/2,
		Width:  width,
		Height: height,
	}

	background := overlayStyle
	inner := Box{Border: SquareBorder, Style: overlayStyle, Background: &background}.Draw(f, r)
	if inner.Empty() {
		return
	}

	y := inner.Y
	if h.Title != "" {
		titleX := inner.X + (inner.Width-runewidth.StringWidth(h.Title))/2
		f.DrawText(titleX, y, h.Title, overlayStyle.Bold(true), inner)
		y++
		// Draw separator under title
		for x := inner.X; x < inner.X+inner.Width; x++ {
			f.SetContent(x, y, '─', overlayStyle)
		}
		y++
	}

	keysWidth := 0
	for _, e := range h.Entries {
		keysWidth = max(keysWidth, runewidth.StringWidth(e.Keys))
	}

	for _, e := range h.Entries {
		if y >= inner.Y+inner.Height {
			break
		}
		f.DrawText(inner.X+1, y, e.Keys, overlayStyle.Bold(true), inner)
		f.DrawText(inner.X+keysWidth+3, y, e.Description, overlayStyle, inner)
		y++
	}
}

var overlayStyle = tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
