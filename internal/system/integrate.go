package system

import (
	"time"

	"glome/internal/component"
	"glome/internal/ecs"
	"glome/internal/hypersphere"

	"github.com/go-gl/mathgl/mgl64"
)

// IntegratePositions moves every entity with a velocity along its geodesic,
// transporting its whole tangent frame.
func IntegratePositions(w *ecs.World, radius float64, dt time.Duration) {
	ecs.Each2(w, func(_ ecs.Entity, o *component.HypersphereOrientation, v *component.Velocity3D) {
		if v.Value().Len() > 0 {
			*o = hypersphere.Transport(*o, mgl64.Ident3(), v.Displacement(dt), radius)
		}
	})
}

// IntegrateOrientations spins every entity with an angular velocity in its
// own tangent space.
func IntegrateOrientations(w *ecs.World, dt time.Duration) {
	ecs.Each2(w, func(_ ecs.Entity, o *component.Orientation3D, s *component.AngularVelocity3D) {
		if angle := s.Angle(dt); angle > 0 {
			*o = o.Rotated(angle, s.Axis())
		}
	})
}
