// Package system holds the per-frame simulation passes over an ecs.World.
package system

import (
	"math"

	"glome/internal/component"
	"glome/internal/ecs"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera steering limits.
const (
	MaxCameraSpeed    = 30.0                  // metres per second
	MaxCameraTurnRate = 120.0 * math.Pi / 180 // radians per second
)

// Controls is the set of steering keys held during a frame. Opposing keys
// cancel out.
type Controls struct {
	Left, Right   bool // along +x / -x
	Up, Down      bool // along +y / -y
	Forward, Back bool // along +z / -z
	PitchUp       bool // about +x
	PitchDown     bool // about -x
	YawLeft       bool // about +y
	YawRight      bool // about -y
	RollLeft      bool // about +z
	RollRight     bool // about -z
}

// Any reports whether a steering key is held.
func (c Controls) Any() bool {
	return c != Controls{}
}

func axisInput(pos, neg bool) float64 {
	var v float64
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// ApplyCameraInput overwrites the velocity and angular velocity of every
// camera with the steering in c, along the camera's own local axes.
func ApplyCameraInput(w *ecs.World, c Controls) {
	move := mgl64.Vec3{
		axisInput(c.Left, c.Right),
		axisInput(c.Up, c.Down),
		axisInput(c.Forward, c.Back),
	}
	turn := mgl64.Vec3{
		axisInput(c.PitchUp, c.PitchDown),
		axisInput(c.YawLeft, c.YawRight),
		axisInput(c.RollLeft, c.RollRight),
	}
	ids := []ecs.ComponentID{
		ecs.ID[component.Camera](),
		ecs.ID[component.Orientation3D](),
		ecs.ID[component.Velocity3D](),
		ecs.ID[component.AngularVelocity3D](),
	}
	for e := range w.Query(ids...) {
		o, _ := ecs.Get[component.Orientation3D](w, e)
		var v, spin mgl64.Vec3
		for i := 0; i < 3; i++ {
			axis := o.Axis(i)
			v = v.Add(axis.Mul(move[i] * MaxCameraSpeed))
			spin = spin.Add(axis.Mul(turn[i] * MaxCameraTurnRate))
		}
		vel, _ := ecs.Get[component.Velocity3D](w, e)
		*vel = component.Velocity3D(v)
		ang, _ := ecs.Get[component.AngularVelocity3D](w, e)
		*ang = component.AngularVelocity3D(spin)
	}
}
