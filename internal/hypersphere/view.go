package hypersphere

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Angles locates an object relative to a camera: horizontal and vertical
// angles in radians off the view axis, and the geodesic distance along it.
type Angles struct {
	Horizontal float64
	Vertical   float64
	Distance   float64
}

// projection is the vector projection of from onto the direction of onto.
func projection(from, onto mgl64.Vec4) mgl64.Vec4 {
	n := onto.Normalize()
	return n.Mul(from.Dot(n))
}

// LocalDirection is the unit tangent at from pointing along the great circle
// towards to.
func LocalDirection(from, to mgl64.Vec4) mgl64.Vec4 {
	axis := OrthogonalPlane(from, to)
	a, b := axis.Vectors()
	dir := Cross4(a, b, from)
	angle := SafeAcos(dir.Dot(to.Sub(from).Normalize()))
	if math.Pi/2 < angle && angle <= math.Pi {
		dir = dir.Mul(-1)
	}
	return dir
}

// ViewAngles decomposes the direction from the camera to object along the
// camera's right, up and forward axes. local is the camera's spin inside its
// tangent space.
//
// An object behind the camera is seen the long way round the hypersphere: the
// distance becomes circumference minus distance and both angles are mirrored
// through ±π.
func ViewAngles(local mgl64.Mat3, camera Orientation, object mgl64.Vec4, radius float64) Angles {
	right := camera.Lift(local.Col(0)).Normalize()
	up := camera.Lift(local.Col(1)).Normalize()
	forward := camera.Lift(local.Col(2)).Normalize()

	view := LocalDirection(camera.Coord, object)
	projRight := projection(view, right)
	projUp := projection(view, up)
	projForward := projection(view, forward)

	horizontal := SafeAcos(forward.Dot(projRight.Add(projForward).Normalize()))
	if right.Dot(projRight.Normalize()) < 0 {
		horizontal = -horizontal
	}
	vertical := SafeAcos(forward.Dot(projUp.Add(projForward).Normalize()))
	if up.Dot(projUp.Normalize()) < 0 {
		vertical = -vertical
	}

	distance := Distance(camera.Coord, object, radius)
	if forward.Dot(projForward.Normalize()) < 0 {
		distance = 2*math.Pi*radius - distance
		horizontal = mirrorBehind(-horizontal)
		vertical = mirrorBehind(-vertical)
	}
	return Angles{Horizontal: horizontal, Vertical: vertical, Distance: distance}
}

func mirrorBehind(a float64) float64 {
	if a < 0 {
		return -math.Pi - a
	}
	return math.Pi - a
}

// ViewSpaceCoords maps view angles to normalised screen space: x and y in
// [-1, 1] inside the field of view, z as distance over farPlane. fieldOfView
// is the vertical field of view in radians. ok is false when any component is
// not finite.
func ViewSpaceCoords(a Angles, fieldOfView, aspectRatio, farPlane float64) (v mgl64.Vec3, ok bool) {
	vertical := fieldOfView / 2
	horizontal := aspectRatio * fieldOfView / 2
	v = mgl64.Vec3{
		-a.Horizontal / horizontal,
		a.Vertical / vertical,
		a.Distance / farPlane,
	}
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return v, false
		}
	}
	return v, true
}

// Projector carries the camera lens parameters for ViewSpaceCoords and
// reports degenerate results.
type Projector struct {
	FieldOfView float64
	AspectRatio float64
	FarPlane    float64
	Logger      *slog.Logger
}

// Project returns the screen-space coordinate for a. Non-finite results are
// logged and returned as is.
func (p Projector) Project(a Angles) mgl64.Vec3 {
	v, ok := ViewSpaceCoords(a, p.FieldOfView, p.AspectRatio, p.FarPlane)
	if !ok && p.Logger != nil {
		p.Logger.Warn("non-finite view space coordinate",
			"x", v[0], "y", v[1], "z", v[2],
			"horizontal", a.Horizontal, "vertical", a.Vertical, "distance", a.Distance)
	}
	return v
}
