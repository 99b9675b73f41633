package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Inner(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect
		margin int
		want   Rect
	}{
		{"one", Rect{0, 0, 10, 5}, 1, Rect{1, 1, 8, 3}},
		{"offset", Rect{2, 3, 6, 6}, 2, Rect{4, 5, 2, 2}},
		{"collapse", Rect{0, 0, 3, 1}, 2, Rect{2, 2, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Inner(tt.margin); got != tt.want {
				t.Errorf("Inner() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect_Split(t *testing.T) {
	r := Rect{X: 1, Y: 1, Width: 20, Height: 10}

	top, bottom := r.SplitBottom(3)
	assert.Equal(t, Rect{1, 1, 20, 7}, top)
	assert.Equal(t, Rect{1, 8, 20, 3}, bottom)

	top, bottom = r.SplitBottom(50)
	assert.True(t, top.Empty())
	assert.Equal(t, r, bottom)

	left, right := r.SplitRight(5)
	assert.Equal(t, Rect{1, 1, 15, 10}, left)
	assert.Equal(t, Rect{16, 1, 5, 10}, right)

	assert.True(t, r.Contains(1, 1))
	assert.True(t, r.Contains(20, 10))
	assert.False(t, r.Contains(21, 10))
	assert.False(t, r.Contains(0, 5))
}

func newSimFrame(t *testing.T, w, h int) (*Frame, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return newFrame(screen, w, h), screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	screen.Show()
	cells, width, _ := screen.GetContents()
	var row []rune
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			row = append(row, ' ')
			continue
		}
		row = append(row, c.Runes[0])
	}
	return string(row)
}

func TestFrame_DrawText(t *testing.T) {
	f, screen := newSimFrame(t, 10, 2)

	end := f.DrawText(1, 0, "hello world", tcell.StyleDefault, Rect{X: 1, Y: 0, Width: 6, Height: 1})
	assert.Equal(t, 7, end)
	assert.Equal(t, " hello    ", rowText(screen, 0))

	// Wide runes take two cells and are not split at the edge
	end = f.DrawText(0, 1, "日本語", tcell.StyleDefault, Rect{Width: 5, Height: 2})
	assert.Equal(t, 4, end)
}

func TestFrame_Clipping(t *testing.T) {
	f, screen := newSimFrame(t, 4, 2)

	f.Fill(Rect{X: -2, Y: -2, Width: 10, Height: 10}, '#', tcell.StyleDefault)
	assert.Equal(t, "####", rowText(screen, 0))
	assert.Equal(t, "####", rowText(screen, 1))

	f.SetContent(10, 10, 'x', tcell.StyleDefault)
	f.SetContent(-1, 0, 'x', tcell.StyleDefault)
	assert.Equal(t, "####", rowText(screen, 0))
}
