package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"counter-terminal/pkg/tui"
)

// Border is a set of box drawing runes
type Border struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// SquareBorder uses square corners
	SquareBorder = Border{'┌', '┐', '└', '┘', '─', '│'}
	// RoundedBorder uses rounded corners
	RoundedBorder = Border{'╭', '╮', '╰', '╯', '─', '│'}
)

// Box is a bordered area with an optional title
type Box struct {
	Title      string
	Border     Border
	Style      tcell.Style // border and title
	Background *tcell.Style
}

// Draw draws the box into r and returns the area inside the border
func (b Box) Draw(f *tui.Frame, r tui.Rect) tui.Rect {
	if r.Width < 2 || r.Height < 2 {
		return tui.Rect{X: r.X, Y: r.Y}
	}

	border := b.Border
	if border == (Border{}) {
		border = RoundedBorder
	}

	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	// Top and bottom borders
	f.SetContent(r.X, r.Y, border.TopLeft, b.Style)
	f.SetContent(right, r.Y, border.TopRight, b.Style)
	f.SetContent(r.X, bottom, border.BottomLeft, b.Style)
	f.SetContent(right, bottom, border.BottomRight, b.Style)
	for x := r.X + 1; x < right; x++ {
		f.SetContent(x, r.Y, border.Horizontal, b.Style)
		f.SetContent(x, bottom, border.Horizontal, b.Style)
	}

	// Side borders
	for y := r.Y + 1; y < bottom; y++ {
		f.SetContent(r.X, y, border.Vertical, b.Style)
		f.SetContent(right, y, border.Vertical, b.Style)
	}

	inner := r.Inner(1)
	if b.Background != nil {
		f.Fill(inner, ' ', *b.Background)
	}

	if b.Title != "" {
		f.DrawText(r.X+1, r.Y, b.Title, b.Style, tui.Rect{X: r.X + 1, Y: r.Y, Width: r.Width - 2, Height: 1})
	}

	return inner
}

// Span is a run of text drawn in one style
type Span struct {
	Text  string
	Style tcell.Style
}

// DrawLine draws spans left to right starting at (x, y), clipped to bounds
func DrawLine(f *tui.Frame, x, y int, spans []Span, bounds tui.Rect) int {
	for _, s := range spans {
		x = f.DrawText(x, y, s.Text, s.Style, bounds)
	}
	return x
}

// LineWidth returns the number of cells the spans occupy
func LineWidth(spans []Span) int {
	w := 0
	for _, s := range spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}
