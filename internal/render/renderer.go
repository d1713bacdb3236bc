// Package render draws a hypersphere scene on a terminal.
package render

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"glome/internal/component"
	"glome/internal/ecs"
	"glome/internal/hypersphere"
	"glome/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
)

// Rows reserved at the bottom of the screen for the status line.
const hudRows = 2

// Renderer draws one frame of submissions onto a tcell screen. It is a
// system.Sink: fill it with system.Submit, then call Draw.
type Renderer struct {
	screen  tcell.Screen
	logger  *slog.Logger
	radius  float64
	fog     Fog
	overlay *Overlay
	status  string

	glyphs []system.Glyph
	lights []light
	view   *system.View
}

// NewRenderer creates a Renderer for a hypersphere of the given radius.
// overlay may be nil.
func NewRenderer(screen tcell.Screen, radius float64, fog Fog, overlay *Overlay, logger *slog.Logger) *Renderer {
	if overlay == nil {
		overlay = NewOverlay()
	}
	return &Renderer{
		screen:  screen,
		logger:  logger,
		radius:  radius,
		fog:     fog,
		overlay: overlay,
	}
}

// SubmitGlyph queues a glyph for the next Draw.
func (r *Renderer) SubmitGlyph(g system.Glyph) { r.glyphs = append(r.glyphs, g) }

// SubmitLight queues a light for the next Draw.
func (r *Renderer) SubmitLight(coord mgl64.Vec4, l component.Light) {
	r.lights = append(r.lights, light{coord: coord, Light: l})
}

// SetCamera sets the view for the next Draw.
func (r *Renderer) SetCamera(v system.View) { r.view = &v }

// SetStatus replaces the status line text.
func (r *Renderer) SetStatus(s string) { r.status = s }

// Viewport is the part of the screen the scene is drawn in.
func (r *Renderer) Viewport() Viewport {
	w, h := r.screen.Size()
	return Viewport{Width: w, Height: max(h-hudRows, 1)}
}

// Projector returns the projection Draw uses for the current camera, so that
// values shown elsewhere agree with the picture.
func (r *Renderer) Projector() hypersphere.Projector {
	p := hypersphere.Projector{
		AspectRatio: r.Viewport().AspectRatio(),
		FarPlane:    2 * math.Pi * r.radius,
		Logger:      r.logger,
	}
	if r.view != nil {
		p.FieldOfView = r.view.FieldOfView
		p.FarPlane = r.view.FarPlane
	}
	return p
}

// Placement is where a submitted glyph was drawn.
type Placement struct {
	Entity ecs.Entity
	Glyph  string
	X, Y   int
	Depth  float64 // 0 at the camera, 1 at the far plane
	Color  tcell.Color
}

// Draw paints the queued submissions, the overlay and the status line, shows
// the screen and clears the queue. It returns the glyphs that landed on screen,
// farthest first.
func (r *Renderer) Draw() []Placement {
	r.screen.Clear()
	var placed []Placement
	if r.view != nil {
		placed = r.place()
		for _, p := range placed {
			style := tcell.StyleDefault.Foreground(p.Color).Background(tcell.ColorBlack)
			r.putGlyph(p.X, p.Y, p.Glyph, style)
		}
	}
	r.overlay.draw(r.screen, r.Viewport().Height)
	r.drawHUD()
	r.screen.Show()

	r.glyphs = r.glyphs[:0]
	r.lights = r.lights[:0]
	r.view = nil
	return placed
}

func (r *Renderer) place() []Placement {
	vp := r.Viewport()
	proj := r.Projector()
	cam := r.view
	placed := make([]Placement, 0, len(r.glyphs))
	for _, g := range r.glyphs {
		if g.Entity == cam.Entity {
			continue
		}
		coord := g.Orientation.Coord
		v := proj.Project(hypersphere.ViewAngles(cam.Local, cam.Orientation, coord, r.radius))
		if !finite(v) || v.Z() < 0 || v.Z() > 1 {
			continue
		}
		x, y, ok := vp.ToScreen(v.X(), v.Y())
		if !ok {
			continue
		}
		dist := hypersphere.Distance(cam.Orientation.Coord, coord, r.radius)
		placed = append(placed, Placement{
			Entity: g.Entity,
			Glyph:  g.Glyph,
			X:      x,
			Y:      y,
			Depth:  v.Z(),
			Color:  shade(g.Color, coord, dist, r.radius, r.lights, r.fog),
		})
	}
	slices.SortStableFunc(placed, func(a, b Placement) int { return cmp.Compare(b.Depth, a.Depth) })
	return placed
}

func finite(v mgl64.Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
