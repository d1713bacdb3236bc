package system

import (
	"math"
	"time"

	"glome/internal/ecs"
)

// Simulation advances one world by whole frames.
type Simulation struct {
	World    *ecs.World
	Radius   float64 // metres
	FarPlane float64 // metres
}

// NewSimulation returns a Simulation whose far plane is the circumference.
func NewSimulation(w *ecs.World, radius float64) *Simulation {
	return &Simulation{World: w, Radius: radius, FarPlane: 2 * math.Pi * radius}
}

// Step applies c to the cameras, integrates dt of motion, then submits the
// frame to sink. It returns the camera entity.
func (s *Simulation) Step(c Controls, dt time.Duration, sink Sink) ecs.Entity {
	ApplyCameraInput(s.World, c)
	IntegratePositions(s.World, s.Radius, dt)
	IntegrateOrientations(s.World, dt)
	return Submit(s.World, s.FarPlane, sink)
}
