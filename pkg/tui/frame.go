package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a rectangular area of the frame in cells
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect has no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inner shrinks the rect by margin cells on every side
func (r Rect) Inner(margin int) Rect {
	inner := Rect{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// SplitBottom cuts height rows off the bottom of the rect
func (r Rect) SplitBottom(height int) (top, bottom Rect) {
	if height > r.Height {
		height = r.Height
	}
	if height < 0 {
		height = 0
	}
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - height}
	bottom = Rect{X: r.X, Y: r.Y + r.Height - height, Width: r.Width, Height: height}
	return top, bottom
}

// SplitRight cuts width columns off the right of the rect
func (r Rect) SplitRight(width int) (left, right Rect) {
	if width > r.Width {
		width = r.Width
	}
	if width < 0 {
		width = 0
	}
	left = Rect{X: r.X, Y: r.Y, Width: r.Width - width, Height: r.Height}
	right = Rect{X: r.X + r.Width - width, Y: r.Y, Width: width, Height: r.Height}
	return left, right
}

// Contains reports whether the cell (x, y) lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Frame is the draw target handed to a Draw callback. Writes outside
// the frame area are clipped.
type Frame struct {
	screen tcell.Screen
	area   Rect
}

func newFrame(screen tcell.Screen, width, height int) *Frame {
	return &Frame{
		screen: screen,
		area:   Rect{Width: width, Height: height},
	}
}

// Area returns the full drawable area
func (f *Frame) Area() Rect {
	return f.area
}

// SetContent sets a single cell
func (f *Frame) SetContent(x, y int, r rune, style tcell.Style) {
	if !f.area.Contains(x, y) {
		return
	}
	f.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text starting at (x, y), clipped to bounds. It returns
// the column after the last cell written.
func (f *Frame) DrawText(x, y int, text string, style tcell.Style, bounds Rect) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x+w > bounds.X+bounds.Width {
			break
		}
		if bounds.Contains(x, y) {
			f.SetContent(x, y, ch, style)
		}
		x += w
	}
	return x
}

// Fill sets every cell of r to ch
func (f *Frame) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			f.SetContent(x, y, ch, style)
		}
	}
}
