package system

import (
	"fmt"
	"slices"

	"glome/internal/component"
	"glome/internal/ecs"
	"glome/internal/hypersphere"

	"github.com/go-gl/mathgl/mgl64"
)

// DebugRow is what the overlay shows for one named entity.
type DebugRow struct {
	Name           string
	Entity         ecs.Entity
	Coord          mgl64.Vec4
	CameraDistance float64 // metres
	CameraAngle    float64 // radians
	Screen         mgl64.Vec3
	Axes           [3]mgl64.Vec3
}

// Lines formats the row as overlay text.
func (r DebugRow) Lines() []string {
	return []string{
		"name: " + r.Name,
		fmt.Sprintf("id: %d", r.Entity),
		"coord: " + formatVec(r.Coord[:]),
		fmt.Sprintf("camera distance: %.3f metre", r.CameraDistance),
		fmt.Sprintf("camera angle: %.3f deg", mgl64.RadToDeg(r.CameraAngle)),
		"screen coord: " + formatVec(r.Screen[:]),
		"orientation:",
		"    x: " + formatVec(r.Axes[0][:]),
		"    y: " + formatVec(r.Axes[1][:]),
		"    z: " + formatVec(r.Axes[2][:]),
	}
}

func formatVec(v []float64) string {
	s := "("
	for i, x := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.3f", x)
	}
	return s + ")"
}

// DebugRows measures every entity whose name is listed in names against the
// camera. The projector's field of view is taken from the camera; its aspect
// ratio and far plane are used as given. It returns nil if camera cannot see.
func DebugRows(w *ecs.World, camera ecs.Entity, names []string, p hypersphere.Projector, radius float64) []DebugRow {
	cam, err := ecs.Get[component.Camera](w, camera)
	if err != nil {
		return nil
	}
	camLocal, err := ecs.Get[component.Orientation3D](w, camera)
	if err != nil {
		return nil
	}
	camOrient, err := ecs.Get[component.HypersphereOrientation](w, camera)
	if err != nil {
		return nil
	}
	p.FieldOfView = cam.FieldOfView

	var rows []DebugRow
	ecs.Each3(w, func(e ecs.Entity, n *component.Name, o *component.Orientation3D, h *component.HypersphereOrientation) {
		if !slices.Contains(names, string(*n)) {
			return
		}
		dist := hypersphere.Distance(h.Coord, camOrient.Coord, radius)
		angles := hypersphere.ViewAngles(camLocal.Value(), *camOrient, h.Coord, radius)
		rows = append(rows, DebugRow{
			Name:           string(*n),
			Entity:         e,
			Coord:          h.Coord,
			CameraDistance: dist,
			CameraAngle:    hypersphere.ArcAngle(radius, dist),
			Screen:         p.Project(angles),
			Axes:           [3]mgl64.Vec3{o.Axis(0), o.Axis(1), o.Axis(2)},
		})
	})
	return rows
}
