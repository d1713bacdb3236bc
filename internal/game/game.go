// Package game runs the interactive frame loop over a tcell screen.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"glome/internal/ecs"
	"glome/internal/factory"
	"glome/internal/hypersphere"
	"glome/internal/render"
	"glome/internal/scene"
	"glome/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultFPS = 30
	maxFPS     = 1000
	// Longer than the usual terminal auto-repeat delay, so a key held down
	// does not flicker before the repeats start.
	keyHold = 550 * time.Millisecond
)

// ErrNoScene is returned by New when Config.Scene is nil.
var ErrNoScene = errors.New("no scene")

// Publisher receives one Snapshot per frame. It must not block.
type Publisher interface {
	Publish(v any)
}

// Config configures a Game.
type Config struct {
	Scene         *scene.Scene
	FPS           int  // frames per second; defaults to 30, at most 1000
	Debug         bool // start with the debug overlay shown
	RecordSession bool // append a SessionLog when Run returns
	Logger        *slog.Logger
	Publisher     Publisher // optional
}

// Snapshot is the per-frame telemetry record.
type Snapshot struct {
	Frame   uint64           `json:"frame"`
	Camera  [4]float64       `json:"camera_coord"`
	Objects []ObjectSnapshot `json:"objects"`
}

// ObjectSnapshot is one debug row in a Snapshot.
type ObjectSnapshot struct {
	Name     string      `json:"name"`
	ID       ecs.Entity  `json:"id"`
	Coord    [4]float64  `json:"coord"`
	Distance float64     `json:"camera_distance"`
	AngleDeg float64     `json:"camera_angle_deg"`
	Screen   *[3]float64 `json:"screen,omitempty"` // nil when not finite
}

// Game is the top-level orchestrator for one scene on one screen.
type Game struct {
	screen   tcell.Screen
	world    *ecs.World
	sim      *system.Simulation
	renderer *render.Renderer
	overlay  *render.Overlay
	scene    *scene.Scene
	logger   *slog.Logger
	pub      Publisher
	frame    time.Duration
	debug    bool
	record   bool
	keys     heldKeys

	camera ecs.Entity
	log    SessionLog
}

// New populates a fresh world from cfg.Scene and prepares it for screen.
// The screen must already be initialized; Run finalizes it.
func New(screen tcell.Screen, cfg Config) (*Game, error) {
	if cfg.Scene == nil {
		return nil, ErrNoScene
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	fps = min(fps, maxFPS)

	w := ecs.NewWorld()
	camera, err := factory.Populate(w, cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("populate scene: %w", err)
	}
	fog := render.Fog{Color: tcell.ColorBlack, Density: cfg.Scene.Fog.Density}
	if cfg.Scene.Fog.Color != "" {
		if fog.Color, err = scene.ParseColor(cfg.Scene.Fog.Color); err != nil {
			return nil, fmt.Errorf("fog: %w", err)
		}
	}

	overlay := render.NewOverlay()
	g := &Game{
		screen:   screen,
		world:    w,
		sim:      system.NewSimulation(w, cfg.Scene.Radius),
		renderer: render.NewRenderer(screen, cfg.Scene.Radius, fog, overlay, logger),
		overlay:  overlay,
		scene:    cfg.Scene,
		logger:   logger,
		pub:      cfg.Publisher,
		frame:    time.Second / time.Duration(fps),
		debug:    cfg.Debug,
		record:   cfg.RecordSession,
		keys:     heldKeys{hold: keyHold},
		camera:   camera,
	}
	g.log = SessionLog{
		Radius:  cfg.Scene.Radius,
		Objects: len(cfg.Scene.Objects),
		Start:   g.cameraCoord(),
	}
	return g, nil
}

// World exposes the simulated world.
func (g *Game) World() *ecs.World { return g.world }

// Camera returns the entity the view follows.
func (g *Game) Camera() ecs.Entity { return g.camera }

func (g *Game) cameraCoord() mgl64.Vec4 {
	o, err := ecs.Get[hypersphere.Orientation](g.world, g.camera)
	if err != nil {
		return mgl64.Vec4{}
	}
	return o.Coord
}

// Run is the main loop. It draws a frame on every tick and handles input
// between frames until the viewer quits or ctx is done, then finalizes the
// screen.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()

	// Start an async input reader goroutine.
	events := make(chan tcell.Event, 32)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	start := time.Now()
	g.log.Timestamp = start
	if g.record {
		defer func() {
			g.log.Duration = time.Since(start)
			g.log.End = g.cameraCoord()
			saveSessionLog(g.log, g.logger)
		}()
	}
	g.logger.Info("session started", "radius", g.scene.Radius, "objects", g.world.Len(), "frame", g.frame)

	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()
	last := start
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("session cancelled", "frames", g.log.Frames)
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil // screen closed / disconnected
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
			case *tcell.EventKey:
				if g.handleKey(ev, time.Now()) {
					g.logger.Info("session ended", "frames", g.log.Frames)
					return nil
				}
			}
		case now := <-ticker.C:
			g.Step(now.Sub(last), now)
			last = now
		}
	}
}

// handleKey applies one key event and reports whether the viewer quit.
func (g *Game) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch a := keyToAction(ev); a {
	case ActionQuit:
		return true
	case ActionToggleDebug:
		g.debug = !g.debug
	default:
		g.keys.press(a, now)
	}
	return false
}

// Step advances the simulation by dt with the keys held at now and draws the
// frame. It returns what was drawn.
func (g *Game) Step(dt time.Duration, now time.Time) []render.Placement {
	before := g.cameraCoord()
	if cam := g.sim.Step(g.keys.controls(now), dt, g.renderer); cam != ecs.NilEntity {
		g.camera = cam
	}
	after := g.cameraCoord()
	if before != after {
		g.log.Travelled += hypersphere.Distance(before, after, g.scene.Radius)
	}

	var rows []system.DebugRow
	if g.debug || g.pub != nil {
		rows = system.DebugRows(g.world, g.camera, g.scene.DebugNames, g.renderer.Projector(), g.scene.Radius)
	}
	g.overlay.Reset()
	if g.debug {
		for _, r := range rows {
			g.overlay.AddBlock(r.Lines())
		}
		g.overlay.Add(fmt.Sprintf("frame time: %.2f ms", float64(dt.Microseconds())/1000))
	}
	g.renderer.SetStatus(fmt.Sprintf(
		"r=%.1f m  travelled %.1f m  arrows/PgUp/PgDn move  w/s a/d q/e turn  F1 debug  Esc quit",
		g.scene.Radius, g.log.Travelled))
	placed := g.renderer.Draw()

	if g.pub != nil {
		g.pub.Publish(g.snapshot(rows))
	}
	g.log.Frames++
	return placed
}

func (g *Game) snapshot(rows []system.DebugRow) Snapshot {
	s := Snapshot{Frame: g.log.Frames, Camera: g.cameraCoord(), Objects: make([]ObjectSnapshot, 0, len(rows))}
	for _, r := range rows {
		o := ObjectSnapshot{
			Name:     r.Name,
			ID:       r.Entity,
			Coord:    r.Coord,
			Distance: r.CameraDistance,
			AngleDeg: mgl64.RadToDeg(r.CameraAngle),
		}
		if finite(r.Screen) {
			screen := [3]float64(r.Screen)
			o.Screen = &screen
		}
		s.Objects = append(s.Objects, o)
	}
	return s
}

func finite(v mgl64.Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
