package component

import (
	"glome/internal/hypersphere"

	"github.com/go-gl/mathgl/mgl64"
)

// HypersphereOrientation is where an entity sits on the hypersphere and how
// its tangent frame is laid out there.
type HypersphereOrientation = hypersphere.Orientation

// Orientation3D is an entity's spin inside its own tangent space,
// independent of where on the hypersphere it is.
type Orientation3D mgl64.Mat3

// NewOrientation3D is a rotation by angle radians about axis.
func NewOrientation3D(angle float64, axis mgl64.Vec3) Orientation3D {
	if angle == 0 || axis.Len() == 0 {
		return Orientation3D(mgl64.Ident3())
	}
	return Orientation3D(mgl64.HomogRotate3D(angle, axis.Normalize()).Mat3())
}

// Value returns the rotation matrix.
func (o Orientation3D) Value() mgl64.Mat3 { return mgl64.Mat3(o) }

// Axis returns local axis i (0 = right, 1 = up, 2 = forward), normalised.
func (o Orientation3D) Axis(i int) mgl64.Vec3 {
	return mgl64.Mat3(o).Col(i).Normalize()
}

// Rotated applies a further rotation by angle radians about axis, expressed
// in the parent frame.
func (o Orientation3D) Rotated(angle float64, axis mgl64.Vec3) Orientation3D {
	r := NewOrientation3D(angle, axis)
	return Orientation3D(r.Value().Mul3(o.Value()))
}
