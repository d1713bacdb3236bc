package system

import (
	"glome/internal/component"
	"glome/internal/ecs"
	"glome/internal/hypersphere"

	"github.com/go-gl/mathgl/mgl64"
)

// Glyph is a drawable entity handed to the renderer for one frame.
type Glyph struct {
	Entity      ecs.Entity
	Orientation hypersphere.Orientation
	Local       mgl64.Mat3
	component.Renderable
}

// View is the camera state for one frame.
type View struct {
	Entity      ecs.Entity
	Orientation hypersphere.Orientation
	Local       mgl64.Mat3
	FieldOfView float64 // vertical, radians
	FarPlane    float64 // metres
}

// Sink receives the frame's submissions. Values are copies; a Sink may keep
// them after Submit returns.
type Sink interface {
	SubmitGlyph(g Glyph)
	SubmitLight(coord mgl64.Vec4, l component.Light)
	SetCamera(v View)
}

// Submit hands every drawable, every light and the camera to sink and
// returns the camera entity. With several cameras the last one wins; with
// none it returns ecs.NilEntity and sink.SetCamera is not called.
func Submit(w *ecs.World, farPlane float64, sink Sink) ecs.Entity {
	ecs.Each3(w, func(e ecs.Entity, r *component.Renderable, o *component.Orientation3D, h *component.HypersphereOrientation) {
		sink.SubmitGlyph(Glyph{Entity: e, Orientation: *h, Local: o.Value(), Renderable: *r})
	})
	ecs.Each2(w, func(_ ecs.Entity, h *component.HypersphereOrientation, l *component.Light) {
		sink.SubmitLight(h.Coord, *l)
	})
	camera := ecs.NilEntity
	ecs.Each3(w, func(e ecs.Entity, c *component.Camera, o *component.Orientation3D, h *component.HypersphereOrientation) {
		sink.SetCamera(View{
			Entity:      e,
			Orientation: *h,
			Local:       o.Value(),
			FieldOfView: c.FieldOfView,
			FarPlane:    farPlane,
		})
		camera = e
	})
	return camera
}
