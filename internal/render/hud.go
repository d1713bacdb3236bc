package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Overlay is a panel of text drawn over the top-left corner of each frame.
// Its owner fills it between frames; the renderer only reads it.
type Overlay struct {
	Style tcell.Style
	lines []string
}

// NewOverlay returns an empty overlay in the default debug style.
func NewOverlay() *Overlay {
	return &Overlay{Style: tcell.StyleDefault.Foreground(tcell.ColorLightGreen)}
}

// Reset drops all lines.
func (o *Overlay) Reset() { o.lines = o.lines[:0] }

// Add appends lines.
func (o *Overlay) Add(lines ...string) { o.lines = append(o.lines, lines...) }

// AddBlock appends lines followed by a blank separator line.
func (o *Overlay) AddBlock(lines []string) {
	o.lines = append(o.lines, lines...)
	o.lines = append(o.lines, "")
}

// Lines returns the current contents.
func (o *Overlay) Lines() []string { return o.lines }

// draw paints at most rows lines from the top of the screen.
func (o *Overlay) draw(s tcell.Screen, rows int) {
	for y, line := range o.lines {
		if y >= rows {
			return
		}
		drawText(s, 0, y, line, o.Style)
	}
}

// drawHUD renders the separator and the status line at the bottom of the screen.
func (r *Renderer) drawHUD() {
	w, h := r.screen.Size()
	if h < hudRows {
		return
	}
	drawHLine(r.screen, w, h-hudRows, tcell.ColorGray)
	drawText(r.screen, 0, h-1, r.status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func drawHLine(s tcell.Screen, width, y int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < width; x++ {
		s.SetContent(x, y, '─', nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		s.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
