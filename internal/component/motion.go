package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Position3D is a flat position in metres, used only to place objects when a
// scene is loaded.
type Position3D mgl64.Vec3

// Value returns the position in metres.
func (p Position3D) Value() mgl64.Vec3 { return mgl64.Vec3(p) }

// Velocity3D is a tangent-space velocity in metres per second.
type Velocity3D mgl64.Vec3

// Value returns the velocity in metres per second.
func (v Velocity3D) Value() mgl64.Vec3 { return mgl64.Vec3(v) }

// Displacement is the distance covered in dt, in metres.
func (v Velocity3D) Displacement(dt time.Duration) mgl64.Vec3 {
	return mgl64.Vec3(v).Mul(dt.Seconds())
}

// AngularVelocity3D is a rotation rate: direction is the axis, length the
// rate in radians per second.
type AngularVelocity3D mgl64.Vec3

// Value returns the angular velocity in radians per second.
func (w AngularVelocity3D) Value() mgl64.Vec3 { return mgl64.Vec3(w) }

// Angle is the rotation accumulated over dt, in radians.
func (w AngularVelocity3D) Angle(dt time.Duration) float64 {
	return mgl64.Vec3(w).Len() * dt.Seconds()
}

// Axis returns the normalised rotation axis. Undefined for a zero rate.
func (w AngularVelocity3D) Axis() mgl64.Vec3 {
	return mgl64.Vec3(w).Normalize()
}
