// Package factory turns scene descriptions into entities.
package factory

import (
	"errors"
	"fmt"

	"glome/internal/component"
	"glome/internal/ecs"
	"glome/internal/hypersphere"
	"glome/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
)

// Populate creates one entity per scene object and returns the first camera.
func Populate(w *ecs.World, s *scene.Scene) (ecs.Entity, error) {
	camera := ecs.NilEntity
	for i, obj := range s.Objects {
		e, err := NewObject(w, obj, s.Radius)
		if err != nil {
			return ecs.NilEntity, fmt.Errorf("object %d (%q): %w", i, obj.Name, err)
		}
		if obj.Camera != nil && camera == ecs.NilEntity {
			camera = e
		}
	}
	if camera == ecs.NilEntity {
		return ecs.NilEntity, scene.ErrNoCamera
	}
	return camera, nil
}

// NewObject creates the entity for one scene object. Angles are converted
// from degrees to radians; colours must already have been validated.
func NewObject(w *ecs.World, obj scene.Object, radius float64) (ecs.Entity, error) {
	if obj.Position == nil && (obj.Camera != nil || obj.Light != nil || obj.Glyph != nil) {
		return ecs.NilEntity, fmt.Errorf("%w: camera, light and glyph need a position", scene.ErrInvalidObject)
	}
	id := w.CreateEntity()
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if obj.Name != "" {
		add(ecs.Add(w, id, component.Name(obj.Name)))
	}
	if obj.Position != nil {
		pos := obj.Position.Value()
		coord := hypersphere.CoordinateFromPosition(pos, radius)
		add(ecs.Add(w, id, component.Position3D(pos)))
		add(ecs.Add(w, id, hypersphere.OrientationToward(hypersphere.Origin, coord)))
		add(ecs.Add(w, id, orientationOf(obj.Orientation)))
	}
	if obj.Velocity != nil || obj.Camera != nil {
		var v mgl64.Vec3
		if obj.Velocity != nil {
			v = obj.Velocity.Value()
		}
		add(ecs.Add(w, id, component.Velocity3D(v)))
	}
	if obj.AngularVelocity != nil || obj.Camera != nil {
		add(ecs.Add(w, id, spinOf(obj.AngularVelocity)))
	}
	if g := obj.Glyph; g != nil {
		color, err := scene.ParseColor(g.Color)
		add(err)
		add(ecs.Add(w, id, component.Renderable{Glyph: g.Text, Color: color}))
	}
	if l := obj.Light; l != nil {
		color, err := scene.ParseColor(l.Color)
		add(err)
		add(ecs.Add(w, id, component.Light{Intensity: l.Intensity, Color: color}))
	}
	if c := obj.Camera; c != nil {
		add(ecs.Add(w, id, component.Camera{FieldOfView: mgl64.DegToRad(c.FieldOfView)}))
	}

	if err := errors.Join(errs...); err != nil {
		_ = w.RemoveEntity(id)
		return ecs.NilEntity, err
	}
	return id, nil
}

func orientationOf(r *scene.Rotation) component.Orientation3D {
	if r == nil {
		return component.NewOrientation3D(0, mgl64.Vec3{})
	}
	return component.NewOrientation3D(mgl64.DegToRad(r.Angle), r.Axis.Value())
}

func spinOf(s *scene.Spin) component.AngularVelocity3D {
	if s == nil || s.Axis.Value().Len() == 0 {
		return component.AngularVelocity3D{}
	}
	return component.AngularVelocity3D(s.Axis.Value().Normalize().Mul(mgl64.DegToRad(s.Value)))
}
