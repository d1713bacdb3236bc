package render

import "math"

// Viewport maps normalized view space onto terminal cells.
// Terminal cells are about twice as tall as they are wide.
type Viewport struct {
	Width  int // in terminal columns
	Height int // in terminal rows
}

// AspectRatio is the visible width over height in square units.
func (v Viewport) AspectRatio() float64 {
	if v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / (2 * float64(v.Height))
}

// ToScreen converts a view space x, y in [-1, 1] to a cell. visible is false
// outside the viewport.
func (v Viewport) ToScreen(x, y float64) (sx, sy int, visible bool) {
	if math.Abs(x) > 1 || math.Abs(y) > 1 {
		return 0, 0, false
	}
	sx = int(math.Round((x + 1) / 2 * float64(v.Width-1)))
	sy = int(math.Round((1 - y) / 2 * float64(v.Height-1)))
	visible = sx >= 0 && sx < v.Width && sy >= 0 && sy < v.Height
	return
}
