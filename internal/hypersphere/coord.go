package hypersphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orientation is a local frame attached to a point of the hypersphere: three
// tangent axes plus the point itself. The tangent axes are orthonormal and
// orthogonal to Coord at construction; drift is corrected only by the
// per-column renormalisation every transform applies.
type Orientation struct {
	Frame [3]mgl64.Vec4
	Coord mgl64.Vec4
}

// Origin is the frame at the north pole (0,0,0,1) with the coordinate axes as
// tangent vectors.
var Origin = Orientation{
	Frame: [3]mgl64.Vec4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	},
	Coord: mgl64.Vec4{0, 0, 0, 1},
}

// OrientationFromMat4 splits a 4×4 matrix whose last column is the position.
func OrientationFromMat4(m mgl64.Mat4) Orientation {
	return Orientation{
		Frame: [3]mgl64.Vec4{m.Col(0), m.Col(1), m.Col(2)},
		Coord: m.Col(3),
	}
}

// Mat4 returns the frame as a matrix with columns (x, y, z, coord).
func (o Orientation) Mat4() mgl64.Mat4 {
	return mgl64.Mat4FromCols(o.Frame[0], o.Frame[1], o.Frame[2], o.Coord)
}

// Lift maps a tangent-space vector into R⁴ through the frame axes.
func (o Orientation) Lift(v mgl64.Vec3) mgl64.Vec4 {
	return o.Frame[0].Mul(v[0]).Add(o.Frame[1].Mul(v[1])).Add(o.Frame[2].Mul(v[2]))
}

// Apply rotates every column by m and renormalises it.
func (o Orientation) Apply(m mgl64.Mat4) Orientation {
	return Orientation{
		Frame: [3]mgl64.Vec4{
			m.Mul4x1(o.Frame[0]).Normalize(),
			m.Mul4x1(o.Frame[1]).Normalize(),
			m.Mul4x1(o.Frame[2]).Normalize(),
		},
		Coord: m.Mul4x1(o.Coord).Normalize(),
	}
}

// ApproxEqual compares all four columns component-wise within eps.
func (o Orientation) ApproxEqual(p Orientation, eps float64) bool {
	return o.Mat4().ApproxFuncEqual(p.Mat4(), Within(eps))
}

// Within returns an absolute-tolerance comparison for the mgl64
// ApproxFuncEqual methods; ApproxEqualThreshold is relative and fails on
// rounding noise next to an exact zero.
func Within(eps float64) func(a, b float64) bool {
	return func(a, b float64) bool { return math.Abs(a-b) <= eps }
}

// SafeAcos is acos with its argument clamped to [-1, 1]. Dot products of unit
// vectors overshoot that range by rounding; every acos in this package goes
// through here.
func SafeAcos(x float64) float64 {
	return math.Acos(mgl64.Clamp(x, -1, 1))
}

// ArcLength converts a central angle in radians to the geodesic length on a
// hypersphere of the given radius.
func ArcLength(radius, angle float64) float64 {
	return radius * angle
}

// ArcAngle is the inverse of ArcLength.
func ArcAngle(radius, length float64) float64 {
	return length / radius
}

// Distance is the geodesic distance between two coordinates.
func Distance(a, b mgl64.Vec4, radius float64) float64 {
	if a == b {
		return 0
	}
	return ArcLength(radius, SafeAcos(a.Normalize().Dot(b.Normalize())))
}

// OrientationToward rotates from along the great circle joining its
// coordinate and to, so that the result sits at to. Identical coordinates
// return from unchanged and nearly identical ones only move the coordinate.
// An antipodal target is reached through the frame's x axis, since every
// great circle through the pair is then a geodesic.
func OrientationToward(from Orientation, to mgl64.Vec4) Orientation {
	if from.Coord == to {
		return from
	}
	angle := SafeAcos(from.Coord.Normalize().Dot(to.Normalize()))
	var rotation mgl64.Mat4
	switch {
	case angle < 1e-12:
		out := from
		out.Coord = to.Normalize()
		return out
	case math.Pi-angle < 1e-12:
		rotation = Rotate(SpanPlane(from.Frame[0], from.Coord), angle)
	default:
		rotation = Rotate(SpanPlane(to, from.Coord), angle)
	}
	out := from.Apply(rotation)
	out.Coord = to.Normalize()
	return out
}

// offsetRotation is the rotation that carries o.Coord along the geodesic
// selected by offset, a tangent-space vector first rotated by local. The
// geodesic length equals the length of offset. ok is false for a zero offset,
// where the rotation plane is undefined and no motion happens.
func offsetRotation(o Orientation, local mgl64.Mat3, offset mgl64.Vec3, radius float64) (mgl64.Mat4, bool) {
	lifted := o.Lift(local.Mul3x1(offset))
	length := lifted.Len()
	if length == 0 {
		return mgl64.Ident4(), false
	}
	plane := SpanPlane(o.Coord.Add(lifted), o.Coord)
	return Rotate(plane, ArcAngle(radius, length)), true
}

// Coord moves o.Coord by a tangent-space offset and returns the new point.
func Coord(o Orientation, local mgl64.Mat3, offset mgl64.Vec3, radius float64) mgl64.Vec4 {
	rotation, ok := offsetRotation(o, local, offset, radius)
	if !ok {
		return o.Coord
	}
	return rotation.Mul4x1(o.Coord).Normalize()
}

// Transport moves the whole frame o by a tangent-space offset, keeping the
// tangent axes parallel along the geodesic.
func Transport(o Orientation, local mgl64.Mat3, offset mgl64.Vec3, radius float64) Orientation {
	rotation, ok := offsetRotation(o, local, offset, radius)
	if !ok {
		return o
	}
	return o.Apply(rotation)
}

// CoordinateFromPosition places a flat 3D position onto the hypersphere by
// walking it from the north pole.
func CoordinateFromPosition(position mgl64.Vec3, radius float64) mgl64.Vec4 {
	return Coord(Origin, mgl64.Ident3(), position, radius).Normalize()
}
